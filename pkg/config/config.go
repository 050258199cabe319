package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Sheets  SheetsConfig
	Script  ScriptConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
	Locale  LocaleConfig
}

// SheetsConfig points at the four read-only table feeds.
type SheetsConfig struct {
	TeacherURL     string
	AssignmentURL  string
	ServiceLogURL  string
	RequestURL     string
	FetchTimeout   time.Duration
	SnapshotTTL    time.Duration
	SnapshotCached bool
}

// ScriptConfig points at the shared write endpoint.
type ScriptConfig struct {
	URL     string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// SessionConfig governs the persisted credential pairs used for silent re-login.
type SessionConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// LocaleConfig carries the display-name tables used when formatting dates.
// Defaults are Indonesian, matching the upstream spreadsheet.
type LocaleConfig struct {
	MonthNames []string
	DayNames   []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Sheets = SheetsConfig{
		TeacherURL:     v.GetString("SHEET_TEACHER_URL"),
		AssignmentURL:  v.GetString("SHEET_ASSIGNMENT_URL"),
		ServiceLogURL:  v.GetString("SHEET_SERVICE_LOG_URL"),
		RequestURL:     v.GetString("SHEET_REQUEST_URL"),
		FetchTimeout:   parseDuration(v.GetString("SHEET_FETCH_TIMEOUT"), 15*time.Second),
		SnapshotTTL:    parseDuration(v.GetString("SHEET_SNAPSHOT_TTL"), time.Minute),
		SnapshotCached: v.GetBool("SHEET_SNAPSHOT_CACHE"),
	}

	cfg.Script = ScriptConfig{
		URL:     v.GetString("SCRIPT_URL"),
		Timeout: parseDuration(v.GetString("SCRIPT_TIMEOUT"), 20*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.Session = SessionConfig{
		TTL: parseDuration(v.GetString("SESSION_TTL"), 30*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Locale = LocaleConfig{
		MonthNames: splitAndTrim(v.GetString("LOCALE_MONTH_NAMES")),
		DayNames:   splitAndTrim(v.GetString("LOCALE_DAY_NAMES")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SHEET_TEACHER_URL", "")
	v.SetDefault("SHEET_ASSIGNMENT_URL", "")
	v.SetDefault("SHEET_SERVICE_LOG_URL", "")
	v.SetDefault("SHEET_REQUEST_URL", "")
	v.SetDefault("SHEET_FETCH_TIMEOUT", "15s")
	v.SetDefault("SHEET_SNAPSHOT_TTL", "1m")
	v.SetDefault("SHEET_SNAPSHOT_CACHE", true)

	v.SetDefault("SCRIPT_URL", "")
	v.SetDefault("SCRIPT_TIMEOUT", "20s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("SESSION_TTL", "720h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("LOCALE_MONTH_NAMES", "Januari,Februari,Maret,April,Mei,Juni,Juli,Agustus,September,Oktober,November,Desember")
	v.SetDefault("LOCALE_DAY_NAMES", "Minggu,Senin,Selasa,Rabu,Kamis,Jumat,Sabtu")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
