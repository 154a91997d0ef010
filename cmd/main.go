package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/app"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/config"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/filestore"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/notifier"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting parish office service...")
	log.Info("Configuration loaded from config.toml (storage=%s, notifier=%s)", cfg.Storage.Driver, cfg.Notifier.Backend)

	office, err := cfg.Office.Hours()
	if err != nil {
		log.Fatal("Invalid office hours: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var storage app.Storage
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		if cfg.Storage.Seed {
			memory.SeedDefaults(store)
			log.Info("In-memory storage seeded with the default catalog")
		}
		storage = app.NewMemoryStorage(store)
		log.Info("Using in-memory storage, data is lost on restart")
	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}
		storage = app.NewPostgresStorage(wrappedDB)
	}

	// Исходящие уведомления
	sender, closeSender, err := newSender(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	defer func() {
		if err := closeSender(); err != nil {
			log.Error("Failed to close notifier: %v", err)
		}
	}()

	files := filestore.NewLocalStore(cfg.FileStore.Dir, cfg.FileStore.MaxSizeBytes)
	log.Info("Proof of payment uploads stored in %s (max %d bytes)", cfg.FileStore.Dir, cfg.FileStore.MaxSizeBytes)

	if cfg.Gateway.CallbackToken == "" {
		log.Warn("Gateway callback token is not set, callbacks are accepted without verification")
	}

	handler := app.NewHandler(app.Dependencies{
		Storage:        storage,
		Sender:         sender,
		Files:          files,
		Metrics:        metricsCollector,
		MetricsPath:    cfg.Metrics.Path,
		Office:         office,
		GatewayToken:   cfg.Gateway.CallbackToken,
		MaxUploadBytes: cfg.FileStore.MaxSizeBytes,
		Logger:         log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newSender выбирает бэкенд исходящих уведомлений; closer освобождает соединения
func newSender(cfg *config.Config, log *logger.Logger) (notifier.Sender, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Notifier.Backend {
	case config.NotifierWebhook:
		timeout := time.Duration(cfg.Notifier.WebhookTimeout) * time.Second
		log.Info("Notifier: webhook %s (timeout=%s)", cfg.Notifier.WebhookURL, timeout)
		return notifier.NewWebhookSender(cfg.Notifier.WebhookURL, timeout, log), noop, nil

	case config.NotifierRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := notifier.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		s := notifier.NewRedisSender(client, cfg.Notifier.RedisChannel)
		log.Info("Notifier: redis %s channel=%s", cfg.Redis.Addr, cfg.Notifier.RedisChannel)
		return s, s.Close, nil

	case config.NotifierAMQP:
		s, err := notifier.NewAMQPSender(cfg.AMQP.URL, cfg.Notifier.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Notifier: amqp exchange=%s", cfg.Notifier.AMQPExchange)
		return s, s.Close, nil

	default:
		log.Info("Notifier: log only")
		return notifier.NewLogSender(log), noop, nil
	}
}
