package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendSettlementStatement(ctx context.Context, email, name string, settlement *domain.MonthlySettlement) error {
	subject := fmt.Sprintf("Monthly settlement for %s", settlement.Period.Format("January 2006"))
	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour settlement for %s is ready.\n\nGross revenue: %s (%d bookings)\nCommission (%s%%): %s\nLoan installments: %s\nNet payout: %s\n",
		name,
		settlement.Period.Format("January 2006"),
		settlement.TotalRevenue, settlement.BookingsCount,
		settlement.CommissionRate.Mul(decimal.NewFromInt(100)), settlement.CommissionAmount,
		settlement.InstallmentTotal,
		settlement.NetPayout,
	)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>Your settlement for <strong>%s</strong> is ready.</p>
			<table>
				<tr><td>Gross revenue</td><td>%s (%d bookings)</td></tr>
				<tr><td>Commission (%s%%)</td><td>%s</td></tr>
				<tr><td>Loan installments</td><td>%s</td></tr>
				<tr><td><strong>Net payout</strong></td><td><strong>%s</strong></td></tr>
			</table>
		</body>
		</html>`,
		name,
		settlement.Period.Format("January 2006"),
		settlement.TotalRevenue, settlement.BookingsCount,
		settlement.CommissionRate.Mul(decimal.NewFromInt(100)), settlement.CommissionAmount,
		settlement.InstallmentTotal,
		settlement.NetPayout,
	)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCheckoutStatement(ctx context.Context, email string, rec *domain.CheckoutRecord) error {
	subject := "Your vehicle return statement"
	plainText := fmt.Sprintf(
		"Your return has been settled.\n\nDistance: %d km (%d km over the included %d km): %s\nFuel: %s liters missing: %s\nCleaning: %s\nFines: %s\n\nTotal extra charges: %s\nDeposit refund: %s\nAmount due: %s\n",
		rec.KmDriven, rec.KmOverage, rec.KmIncluded, rec.KmOverageFee,
		rec.FuelMissingLiters, rec.FuelFee,
		rec.ExteriorCleaningFee.Add(rec.InteriorCleaningFee),
		rec.FinesTotal,
		rec.TotalExtraCharges,
		rec.DepositRefund,
		rec.AmountDueFromRenter,
	)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<p>Your return has been settled.</p>
			<table>
				<tr><td>Distance</td><td>%d km driven, %d km over the included %d km</td><td>%s</td></tr>
				<tr><td>Fuel</td><td>%s liters missing</td><td>%s</td></tr>
				<tr><td>Cleaning</td><td></td><td>%s</td></tr>
				<tr><td>Fines</td><td></td><td>%s</td></tr>
				<tr><td><strong>Total extra charges</strong></td><td></td><td><strong>%s</strong></td></tr>
				<tr><td>Deposit refund</td><td></td><td>%s</td></tr>
				<tr><td>Amount due</td><td></td><td>%s</td></tr>
			</table>
		</body>
		</html>`,
		rec.KmDriven, rec.KmOverage, rec.KmIncluded, rec.KmOverageFee,
		rec.FuelMissingLiters, rec.FuelFee,
		rec.ExteriorCleaningFee.Add(rec.InteriorCleaningFee),
		rec.FinesTotal,
		rec.TotalExtraCharges,
		rec.DepositRefund,
		rec.AmountDueFromRenter,
	)
	return s.send(email, "", subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendLoanNotice(ctx context.Context, email, name, subject, body string) error {
	htmlContent := fmt.Sprintf("<html><body><p>Hi %s,</p><p>%s</p></body></html>", name, body)
	return s.send(email, name, subject, body, htmlContent)
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("Email sent", "to", to, "subject", subject, "status", response.StatusCode)
	return nil
}
