package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort           string
	AppEnv            string
	AWSRegion         string
	AWSEndpointURL    string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID    string
	AWSSecretKey      string
	DynamoTables      DynamoTables
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	SessionExpiry     time.Duration
	GoogleClientID    string
	AdminEmail        string
	AdminPasswordHash string // bcrypt hash; admin login is disabled when empty
	OTPExpiry         time.Duration
	OTPSweepInterval  time.Duration
	RouteTablePath    string // optional YAML override of the default route table
	FrontendURL       string // page renderer behind the edge gate; empty serves a stub
	SecureCookies     bool
	SMTPHost          string
	SMTPPort          string
	SMTPFrom          string
	SMTPUsername      string
	SMTPPassword      string
	SNSRegion         string
	AllowedOrigins    []string // CORS allowed origins
	TrustedProxies    []string // CIDRs whose X-Forwarded-For the rate limiter believes
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Sellers  string
	Shoppers string
	Sessions string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Sellers:  getEnv("DYNAMO_TABLE_SELLERS", "sellers"),
			Shoppers: getEnv("DYNAMO_TABLE_SHOPPERS", "shoppers"),
			Sessions: getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
		},
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),
		SessionExpiry:     getEnvDuration("SESSION_EXPIRY", 30*24*time.Hour),
		GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		OTPExpiry:         getEnvDuration("OTP_EXPIRY", 10*time.Minute),
		OTPSweepInterval:  getEnvDuration("OTP_SWEEP_INTERVAL", time.Minute),
		RouteTablePath:    getEnv("ROUTE_TABLE_PATH", ""),
		FrontendURL:       getEnv("FRONTEND_URL", ""),
		SecureCookies:     getEnvBool("SECURE_COOKIES", false),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPFrom:          getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SNSRegion:         getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustedProxies:    strings.Split(getEnv("TRUSTED_PROXIES", ""), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("10m") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n := getEnvInt(key, -1); n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
