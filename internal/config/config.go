package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	FSPath      string // Physical directory for file uploads
	FSURL       string // URL path prefix for file access

	// Business-rule defaults. The 08:00 anchor for virtual events and the
	// 1-hour implicit event duration are household rules, not incidental
	// literals; keeping them here lets them change without touching the
	// aggregation code.
	Timezone          string        // IANA name used for local-day grouping
	VirtualAnchor     string        // HH:MM anchor for date-only virtual events
	EventDuration     time.Duration // implicit end = start + EventDuration
	ExpiryLookahead   int           // days ahead the scheduler warns about expiries
	ExpiryScanSpec    string        // cron spec of the daily expiry scan
	SignedURLLifetime time.Duration // validity of signed file download links

	// Optional external Postgres the bank feed importer reads from.
	BankFeedDSN   string
	BankFeedTable string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "casa360"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "casa360"),
		FSPath:      getEnv("FS_PATH", "./uploads"),
		FSURL:       getEnv("FS_URL", "/fs/uploads"),

		Timezone:          getEnv("FAMILY_TIMEZONE", "Europe/Rome"),
		VirtualAnchor:     getEnv("VIRTUAL_ANCHOR_TIME", "08:00"),
		EventDuration:     getDuration("EVENT_DEFAULT_DURATION", time.Hour),
		ExpiryLookahead:   getInt("EXPIRY_LOOKAHEAD_DAYS", 7),
		ExpiryScanSpec:    getEnv("EXPIRY_SCAN_SPEC", "0 7 * * *"),
		SignedURLLifetime: getDuration("SIGNED_URL_LIFETIME", 15*time.Minute),

		BankFeedDSN:   getEnv("BANKFEED_DSN", ""),
		BankFeedTable: getEnv("BANKFEED_TABLE", "statement_rows"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
