package domain

import "time"

// Notification is an in-app record written alongside outbound email. Dispatch
// is best-effort and never rolls back the financial mutation that produced it.
type Notification struct {
	ID         int64             `json:"id"`
	CustomerID string            `json:"customer_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}
