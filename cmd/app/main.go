package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gromart/cmd"
	httpin "gromart/internal/adapters/in/http"
	"gromart/internal/adapters/out/rabbitmq"
	"gromart/internal/core/ports"
	"gromart/internal/jobs"
	"gromart/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()
	metrics.Register()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Error("failed to unwrap sql connection", "error", err)
		os.Exit(1)
	}

	jobManager := jobs.NewJobManager(sqlDB, logger)
	if configs.EnableAuditJobs {
		if err = jobManager.StartAll(); err != nil {
			logger.Error("failed to start scheduled jobs", "error", err)
			os.Exit(1)
		}
		defer jobManager.StopAll()
	}

	if err = runWebServer(&root, configs, logger); err != nil {
		logger.Error("web server stopped", "error", err)
		os.Exit(1)
	}
}

func getConfigs() cmd.Config {
	// Missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          envOrDefault("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOrDefault("DB_SSLMODE", "disable"),
		JwtSecret:       os.Getenv("JWT_SECRET"),
		RabbitMqURL:     os.Getenv("RABBITMQ_URL"),
		OpenAPIPath:     envOrDefault("OPENAPI_PATH", "api/openapi.yml"),
		EnableAuditJobs: os.Getenv("DISABLE_AUDIT_JOBS") != "true",
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if configs.RabbitMqURL == "" {
		logger.Info("rabbitmq url not configured, order events will not be published")
		return rabbitmq.NewNopPublisher(), func() {}, nil
	}

	publisher, err := rabbitmq.NewPublisher(configs.RabbitMqURL)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func runWebServer(root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())

	apiMiddlewares := []echo.MiddlewareFunc{
		httpin.ActorMiddleware([]byte(configs.JwtSecret)),
	}
	if configs.OpenAPIPath != "" {
		validator, err := httpin.NewOpenAPIValidator(configs.OpenAPIPath)
		if err != nil {
			return err
		}
		apiMiddlewares = append(apiMiddlewares, validator)
	}

	root.NewHTTPServer().RegisterRoutes(e, apiMiddlewares...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting http server", "port", configs.HTTPPort)
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
