package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ✅ Global constants (accessible from other packages)
var BaseURL = "http://localhost:8080"

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// ✅ Admin back-office credentials (single clinic admin account)
	AdminEmail        string
	AdminPasswordHash string // bcrypt hash

	JWTSecret       string
	SessionMaxHours int // hard ceiling for an admin session

	// ✅ Login throttling
	LoginMaxAttempts   int
	LoginWindowMinutes int
	LockoutMinutes     int

	// ✅ Redis Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka (optional audit event forwarding)
	KafkaBrokers    []string
	KafkaAuditTopic string

	// ✅ SMTP Config
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	ClinicInbox   string // where callback alerts go

	// ✅ FCM Config
	FCMCredentialsPath string // Path to Firebase service account JSON
	FCMProjectID       string // Firebase Project ID (optional, can be in JSON)
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	sessionHours := atoiDefault(os.Getenv("SESSION_MAX_HOURS"), 24)
	maxAttempts := atoiDefault(os.Getenv("LOGIN_MAX_ATTEMPTS"), 5)
	windowMin := atoiDefault(os.Getenv("LOGIN_WINDOW_MINUTES"), 15)
	lockoutMin := atoiDefault(os.Getenv("LOCKOUT_MINUTES"), 5)
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		Port: os.Getenv("PORT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionMaxHours: sessionHours,

		LoginMaxAttempts:   maxAttempts,
		LoginWindowMinutes: windowMin,
		LockoutMinutes:     lockoutMin,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:    brokers,
		KafkaAuditTopic: os.Getenv("KAFKA_AUDIT_TOPIC"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		ClinicInbox:   os.Getenv("CLINIC_INBOX"),

		FCMCredentialsPath: os.Getenv("FCM_CREDENTIALS_PATH"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),
	}
}

// SessionMaxDuration returns the absolute admin session ceiling.
func (c *Config) SessionMaxDuration() time.Duration {
	return time.Duration(c.SessionMaxHours) * time.Hour
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
