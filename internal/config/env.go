package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-only-secret-change-me"

type Env struct {
	AppAddr string
	GinMode string

	DBDriver      string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	DBAutoMigrate bool

	JWTSecret       string
	JWTSecretIsDev  bool
	TokenTTL        time.Duration
	BcryptCost      int
	AllowedOrigins  []string
	FilterByDate    bool
	TrainDemoMode   bool
	RedisURL        string
	IdempotencyTTL  time.Duration
	RazorpayKeyID   string
	RazorpaySecret  string
	WebhookSecret   string
	RazorpayBaseURL string
	GatewayTimeout  time.Duration
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := getEnv("APP_ADDR", "")
	if appAddr == "" {
		appAddr = ":" + getEnv("PORT", "5000")
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defPort := 3306
	if driver == "postgres" || driver == "postgresql" || driver == "pg" {
		defPort = 5432
	}

	secret := getEnv("JWT_SECRET", "")
	devSecret := false
	if secret == "" {
		secret = devJWTSecret
		devSecret = true
	}

	ttlHours := getEnvInt("TOKEN_TTL_HOURS", 24)
	if ttlHours < 1 {
		ttlHours = 1
	}
	if ttlHours > 168 {
		ttlHours = 168
	}

	origins := splitOrigins(getEnv("ALLOWED_ORIGINS", getEnv("CORS_ALLOWED_ORIGINS", "")))
	if len(origins) == 0 {
		origins = []string{"http://localhost:4000"}
	}

	return Env{
		AppAddr: appAddr,
		GinMode: getEnv("GIN_MODE", ""),

		DBDriver:      driver,
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnvInt("DB_PORT", defPort),
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    getEnv("DB_PASS", getEnv("DB_PASSWORD", "")),
		DBName:        getEnv("DB_NAME", "travel_app"),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		JWTSecret:       secret,
		JWTSecretIsDev:  devSecret,
		TokenTTL:        time.Duration(ttlHours) * time.Hour,
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		AllowedOrigins:  origins,
		FilterByDate:    getEnvBool("SEARCH_FILTER_BY_DATE", false),
		TrainDemoMode:   getEnvBool("TRAIN_DEMO_MODE", false),
		RedisURL:        getEnv("REDIS_URL", ""),
		IdempotencyTTL:  time.Duration(getEnvInt("IDEMPOTENCY_TTL_HOURS", 24)) * time.Hour,
		RazorpayKeyID:   getEnv("RAZORPAY_KEY_ID", ""),
		RazorpaySecret:  getEnv("RAZORPAY_KEY_SECRET", ""),
		WebhookSecret:   getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		RazorpayBaseURL: getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		GatewayTimeout:  time.Duration(getEnvInt("GATEWAY_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitOrigins(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
