package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"bistrobot/pkg/logger"
	"bistrobot/settings-service/internal/app/settings/config"
	"bistrobot/settings-service/internal/app/settings/handler"
	"bistrobot/settings-service/internal/app/settings/infrastructure/clients"
	"bistrobot/settings-service/internal/app/settings/repository"
	"bistrobot/settings-service/internal/app/settings/service"
	"bistrobot/settings-service/internal/app/settings/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("settings-service", cfg.Logger.Level)

	if cfg.Logger.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Logger.LogstashAddr, "settings-service", cfg.Logger.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Logger.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer db.Close()
	logger.Info().Str("database", cfg.Database.DBName).Msg("Connected to PostgreSQL")

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")

	accountsClient := clients.NewAccountsClient(cfg.Accounts.BaseURL, cfg.Accounts.ServiceToken)

	guidelinesRepo := repository.NewGuidelinesRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)

	settingsService := service.NewSettingsService(
		guidelinesRepo,
		templateRepo,
		integrationRepo,
		redisClient,
		kafkaProducer,
		accountsClient,
	)

	settingsHandler := handler.NewSettingsHandler(settingsService)
	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	serviceAuthMiddleware := handler.NewServiceAuthMiddleware(cfg.Server.ServiceToken)

	router := handler.SetupRoutes(settingsHandler, authMiddleware, serviceAuthMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Settings Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Settings Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Settings Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL через pgx connection pool.
// Повторяет попытки подключения пока PostgreSQL поднимается в Docker
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
	}

	return pool, nil
}
