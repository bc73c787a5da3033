package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Engine    EngineConfig    `yaml:"engine"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid dispatch settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// EngineConfig contains the financial engine's tunables. Amounts are whole
// currency units; the defaults mirror the platform's standing rates.
type EngineConfig struct {
	MinLoanAmount       float64 `yaml:"min_loan_amount"`
	LoanSetupFee        float64 `yaml:"loan_setup_fee"`
	MinRepaymentMonths  int     `yaml:"min_repayment_months"`
	PaymentTolerance    float64 `yaml:"payment_tolerance"`
	FuelTolerancePct    float64 `yaml:"fuel_tolerance_percent"`
	FuelTankLiters      float64 `yaml:"fuel_tank_liters"`
	FuelPricePerLiter   float64 `yaml:"fuel_price_per_liter"`
	FuelShortfallFee    float64 `yaml:"fuel_shortfall_fee"`
	DefaultExtraKmRate  float64 `yaml:"default_extra_km_rate"`
	GuaranteeTargetDays int     `yaml:"guarantee_target_days"`
}

// SchedulerConfig contains cron schedule settings (six-field specs, seconds first)
type SchedulerConfig struct {
	MonthlySettlementRun string `yaml:"monthly_settlement_run"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration and applies engine defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Engine defaults
	if c.Engine.MinLoanAmount == 0 {
		c.Engine.MinLoanAmount = 500
	}
	if c.Engine.LoanSetupFee == 0 {
		c.Engine.LoanSetupFee = 300
	}
	if c.Engine.MinRepaymentMonths == 0 {
		c.Engine.MinRepaymentMonths = 3
	}
	if c.Engine.PaymentTolerance == 0 {
		c.Engine.PaymentTolerance = 0.01
	}
	if c.Engine.FuelTolerancePct == 0 {
		c.Engine.FuelTolerancePct = 5
	}
	if c.Engine.FuelTankLiters == 0 {
		c.Engine.FuelTankLiters = 50
	}
	if c.Engine.FuelPricePerLiter == 0 {
		c.Engine.FuelPricePerLiter = 15
	}
	if c.Engine.FuelShortfallFee == 0 {
		c.Engine.FuelShortfallFee = 150
	}
	if c.Engine.DefaultExtraKmRate == 0 {
		c.Engine.DefaultExtraKmRate = 2
	}
	if c.Engine.GuaranteeTargetDays == 0 {
		c.Engine.GuaranteeTargetDays = 300
	}

	// Scheduler defaults
	if c.Scheduler.MonthlySettlementRun == "" {
		c.Scheduler.MonthlySettlementRun = "0 0 6 1 * *" // 1st of month at 6 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
