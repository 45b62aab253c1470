package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	dbUserEmptyError      = errors.New("DB User is Empty")
	dbNameEmptyError      = errors.New("DB Name is Empty")
	envLoadError          = errors.New(".env load Error")
	githubTokenEmptyError = errors.New("GITHUB_TOKEN is Empty")
	workerCountError      = errors.New("WORKER_COUNT must be positive")
	queueSizeError        = errors.New("WORKER_QUEUE_SIZE must be positive")
)

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	Password string
	User     string
	URL      string
}

type GitHubConfig struct {
	Token          string
	WebhookSecret  string
	APIURL         string
	StatusContext  string
	RequestTimeout time.Duration
}

type WorkerConfig struct {
	Count      int
	QueueSize  int
	JobTimeout time.Duration
}

type SettingsConfig struct {
	DefaultIgnoreLabels []string
}

type Config struct {
	App            AppConfig
	Database       DatabaseConfig
	GitHub         GitHubConfig
	Worker         WorkerConfig
	Settings       SettingsConfig
	MigrationsPath string
}

func LoadConfig() (*Config, error) {
	// В контейнере .env нет, переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", envLoadError, err)
	}

	requestTimeout, err := getEnvDuration("GITHUB_REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("WORKER_COUNT", 4)
	if err != nil {
		return nil, err
	}
	queueSize, err := getEnvInt("WORKER_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	jobTimeout, err := getEnvDuration("WORKER_JOB_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	c := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "dev"),
			Port: getEnv("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			Name:     getEnv("DATABASE_NAME", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", "postgres"),
			User:     getEnv("DATABASE_USER", "postgres"),
			URL:      os.Getenv("DATABASE_URL"),
		},
		GitHub: GitHubConfig{
			Token:          os.Getenv("GITHUB_TOKEN"),
			WebhookSecret:  os.Getenv("GITHUB_WEBHOOK_SECRET"),
			APIURL:         os.Getenv("GITHUB_API_URL"),
			StatusContext:  getEnv("GITHUB_STATUS_CONTEXT", "code-review/cody"),
			RequestTimeout: requestTimeout,
		},
		Worker: WorkerConfig{
			Count:      workers,
			QueueSize:  queueSize,
			JobTimeout: jobTimeout,
		},
		Settings: SettingsConfig{
			DefaultIgnoreLabels: getEnvList("DEFAULT_IGNORE_LABELS", nil),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := makeDbUrl(c); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if c.GitHub.Token == "" {
		return githubTokenEmptyError
	}
	if c.Worker.Count <= 0 {
		return workerCountError
	}
	if c.Worker.QueueSize <= 0 {
		return queueSizeError
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
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Список через запятую, пустые элементы отбрасываются
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func makeDbUrl(cfg *Config) error {
	if cfg.Database.URL == "" {
		if cfg.Database.User == "" {
			return dbUserEmptyError
		}
		if cfg.Database.Name == "" {
			return dbNameEmptyError
		}
		cfg.Database.URL = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
	}
	return nil
}
