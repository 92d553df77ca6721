package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath      string
	JWTPublicKeyPath       string
	JWTExpiryHours         int
	RefreshTokenExpiryDays int

	// AlertOffsetMinutes is the fixed UTC offset (in minutes) of the zone
	// whose calendar day drives reminder scheduling. 330 = +05:30.
	AlertOffsetMinutes int
	// SweepSpec is the cron expression for the daily alert sweep,
	// evaluated in the alert zone.
	SweepSpec string

	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	Sessions  string
	Contacts  string
	Alerts    string
	Notes     string
	Quotes    string
	Diaries   string
	Medicines string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:  getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Contacts:  getEnv("DYNAMO_TABLE_CONTACTS", "contacts"),
			Alerts:    getEnv("DYNAMO_TABLE_ALERTS", "alerts"),
			Notes:     getEnv("DYNAMO_TABLE_NOTES", "notes"),
			Quotes:    getEnv("DYNAMO_TABLE_QUOTES", "quotes"),
			Diaries:   getEnv("DYNAMO_TABLE_DIARIES", "diary_entries"),
			Medicines: getEnv("DYNAMO_TABLE_MEDICINES", "medicines"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "crm-api-files"),

		JWTPrivateKeyPath:      getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:       getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryHours:         getEnvInt("JWT_EXPIRY_HOURS", 1),
		RefreshTokenExpiryDays: getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30),

		AlertOffsetMinutes: getEnvInt("ALERT_TZ_OFFSET_MINUTES", 330),
		SweepSpec:          getEnv("ALERT_SWEEP_SPEC", "1 0 * * *"),

		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// AlertOffset returns the alert zone's UTC offset as a duration.
func (c *Config) AlertOffset() time.Duration {
	return time.Duration(c.AlertOffsetMinutes) * time.Minute
}

// AlertLocation returns a fixed-offset location for the alert zone, used by
// the scheduler to fire the sweep at a local time of day.
func (c *Config) AlertLocation() *time.Location {
	return time.FixedZone("alerts", c.AlertOffsetMinutes*60)
}

// JWTExpiry returns the bearer token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// RefreshTokenExpiry returns the refresh token lifetime.
func (c *Config) RefreshTokenExpiry() time.Duration {
	return time.Duration(c.RefreshTokenExpiryDays) * 24 * time.Hour
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
