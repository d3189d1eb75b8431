package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	AppEnv          string
	SessionSecret   string
	SessionTTL      time.Duration
	GoogleClientID  string
	AppTimezone     string
	UploadDir       string
	UploadURLPrefix string
	TrustedProxies  []string
)

const devSessionSecret = "campus-hub-dev-secret"

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system environment")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system environment")
	}

	AppEnv = strings.ToLower(GetEnv("APP_ENV", "development"))
	SessionSecret = GetEnv("SESSION_SECRET")
	SessionTTL = GetEnvDuration("SESSION_TTL", 24*time.Hour)
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	AppTimezone = GetEnv("APP_TIMEZONE", "UTC")
	UploadDir = GetEnv("UPLOAD_DIR", "./public/uploads")
	UploadURLPrefix = GetEnv("UPLOAD_PUBLIC_PREFIX", "/uploads")
	TrustedProxies = ParseList(GetEnv("TRUSTED_PROXIES"))

	if SessionSecret == "" {
		if IsProduction() {
			log.Fatal("❌ SESSION_SECRET must be set in production")
		}
		log.Println("⚠️ SESSION_SECRET not set, using development secret")
		SessionSecret = devSessionSecret
	} else {
		log.Println("✅ SESSION_SECRET loaded.")
	}

	if GoogleClientID == "" {
		log.Println("ℹ️ GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}
}

func IsProduction() bool {
	return AppEnv == "production"
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// ParseList splits a comma separated value, dropping blanks.
func ParseList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(GetEnv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[WARN] %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	LogQueries    bool
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		LogQueries:    GetEnvBool("DB_LOG_SQL", false),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogQueries:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
