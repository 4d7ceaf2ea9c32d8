package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// CashAccountCodes selects the chart codes treated as cash/bank by the
	// cash flow report.
	CashAccountCodes []string
	// IncomeSummaryCode and RetainedEarningsCode name the accounts the period
	// close posts against.
	IncomeSummaryCode    string
	RetainedEarningsCode string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// CORSAllowedOrigins lists the origins allowed to call the API. "*"
	// allows all.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CASH_ACCOUNT_CODES", "1000,1010")
	viper.SetDefault("INCOME_SUMMARY_CODE", "3999")
	viper.SetDefault("RETAINED_EARNINGS_CODE", "3998")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	for _, code := range strings.Split(viper.GetString("CASH_ACCOUNT_CODES"), ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			cfg.CashAccountCodes = append(cfg.CashAccountCodes, trimmed)
		}
	}
	if len(cfg.CashAccountCodes) == 0 {
		cfg.CashAccountCodes = []string{"1000", "1010"}
		log.Println("Warning: CASH_ACCOUNT_CODES empty. Defaulting to 1000,1010.")
	}

	cfg.IncomeSummaryCode = viper.GetString("INCOME_SUMMARY_CODE")
	cfg.RetainedEarningsCode = viper.GetString("RETAINED_EARNINGS_CODE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}
