package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Хранилище данных
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Бэкенды исходящих уведомлений
const (
	NotifierLog     = "log"
	NotifierWebhook = "webhook"
	NotifierRedis   = "redis"
	NotifierAMQP    = "amqp"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Office    OfficeConfig    `toml:"office"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Redis     RedisConfig     `toml:"redis"`
	AMQP      AMQPConfig      `toml:"amqp"`
	FileStore FileStoreConfig `toml:"filestore"`
	Gateway   GatewayConfig   `toml:"gateway"`
}

// ServerConfig параметры HTTP сервера; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища; memory без БД, для локального запуска
type StorageConfig struct {
	Driver string `toml:"driver"`
	Seed   bool   `toml:"seed"`
}

// DatabaseConfig параметры PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// OfficeConfig часы работы приходского офиса
type OfficeConfig struct {
	Open     string `toml:"open"`
	Close    string `toml:"close"`
	Timezone string `toml:"timezone"`
}

// Hours рабочие часы как domain.OfficeHours
func (c OfficeConfig) Hours() (domain.OfficeHours, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.OfficeHours{}, fmt.Errorf("%w: office.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	openAt, closeAt := types.TimeString(c.Open), types.TimeString(c.Close)
	if err := openAt.Validate(); err != nil {
		return domain.OfficeHours{}, fmt.Errorf("%w: office.open: %v", ErrInvalidConfig, err)
	}
	if err := closeAt.Validate(); err != nil {
		return domain.OfficeHours{}, fmt.Errorf("%w: office.close: %v", ErrInvalidConfig, err)
	}
	if !openAt.IsBefore(closeAt) {
		return domain.OfficeHours{}, fmt.Errorf("%w: office.open must be before office.close", ErrInvalidConfig)
	}
	return domain.OfficeHours{Open: openAt, Close: closeAt, Location: loc}, nil
}

// NotifierConfig исходящие уведомления
type NotifierConfig struct {
	Backend        string `toml:"backend"`
	WebhookURL     string `toml:"webhook_url"`
	WebhookTimeout int    `toml:"webhook_timeout"`
	RedisChannel   string `toml:"redis_channel"`
	AMQPExchange   string `toml:"amqp_exchange"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AMQPConfig подключение к RabbitMQ
type AMQPConfig struct {
	URL string `toml:"url"`
}

// FileStoreConfig каталог подтверждений оплаты
type FileStoreConfig struct {
	Dir          string `toml:"dir"`
	MaxSizeBytes int64  `toml:"max_size_bytes"`
}

// GatewayConfig обратный вызов платёжного шлюза
// Пустой CallbackToken отключает проверку заголовка X-Gateway-Token
type GatewayConfig struct {
	CallbackToken string `toml:"callback_token"`
}

// Load читает .env (если есть), затем TOML файл, применяет переменные окружения,
// значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Секреты не хранятся в config.toml
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("AMQP_URL"); ok {
		c.AMQP.URL = v
	}
	if v, ok := os.LookupEnv("GATEWAY_CALLBACK_TOKEN"); ok {
		c.Gateway.CallbackToken = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Storage.Driver, StoragePostgres)

	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "parish-office")

	setDefault(&c.Office.Open, "08:00")
	setDefault(&c.Office.Close, "17:00")
	setDefault(&c.Office.Timezone, "Asia/Manila")

	setDefault(&c.Notifier.Backend, NotifierLog)
	setDefault(&c.Notifier.WebhookTimeout, 5)
	setDefault(&c.Notifier.RedisChannel, "parish.notifications")
	setDefault(&c.Notifier.AMQPExchange, "parish.notifications")

	setDefault(&c.Redis.Addr, "localhost:6379")

	setDefault(&c.FileStore.Dir, "uploads")
	setDefault(&c.FileStore.MaxSizeBytes, 5<<20)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StoragePostgres:
		if c.Database.User == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.user and database.dbname are required", ErrInvalidConfig)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := c.Office.Hours(); err != nil {
		return err
	}

	switch c.Notifier.Backend {
	case NotifierLog:
	case NotifierWebhook:
		if c.Notifier.WebhookURL == "" {
			return fmt.Errorf("%w: notifier.webhook_url is required for the webhook backend", ErrInvalidConfig)
		}
	case NotifierRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for the redis backend", ErrInvalidConfig)
		}
	case NotifierAMQP:
		if c.AMQP.URL == "" {
			return fmt.Errorf("%w: amqp.url (or AMQP_URL) is required for the amqp backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifier.backend %q", ErrInvalidConfig, c.Notifier.Backend)
	}

	if c.FileStore.MaxSizeBytes <= 0 {
		return fmt.Errorf("%w: filestore.max_size_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
