package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SteppingCalendar = "calendar"
	SteppingFixed30  = "fixed30"
)

type Config struct {
	DatabaseURL    string
	RedisAddr      string `validate:"required,hostname_port"`
	RedisPassword  string
	RedisDB        int    `validate:"gte=0,lte=15"`
	AppPort        string `validate:"required,numeric"`
	Seed           int64
	OutputDir      string `validate:"required"`
	RosterPath     string `validate:"required"`
	PeriodStart    time.Time
	PeriodCount    int    `validate:"gte=1,lte=120"`
	PeriodStepping string `validate:"oneof=calendar fixed30"`
	LogLevel       string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// LoadConfig reads .env (if present) and the environment, then validates the result.
// DATABASE_URL is only checked by the commands that need it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AppPort:        getEnv("APP_PORT", "8080"),
		OutputDir:      getEnv("OUTPUT_DIR", "attendance_sheets_2022_2024"),
		RosterPath:     getEnv("ROSTER_PATH", "students.csv"),
		PeriodStepping: getEnv("PERIOD_STEPPING", SteppingCalendar),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 8); err != nil {
		return nil, err
	}
	if cfg.PeriodCount, err = getEnvInt("PERIOD_COUNT", 36); err != nil {
		return nil, err
	}

	seed, err := getEnvInt("SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	start := getEnv("PERIOD_START", "2022-01-01")
	cfg.PeriodStart, err = time.Parse(time.DateOnly, start)
	if err != nil {
		return nil, fmt.Errorf("PERIOD_START must be YYYY-MM-DD: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequireDatabase reports whether DATABASE_URL is set
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
