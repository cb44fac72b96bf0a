package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки приложения Worker Service
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Kafka        KafkaConfig
	Reviews      ReviewsConfig
	SMTP         SMTPConfig
	CronSchedule CronScheduleConfig
	Logger       LoggerConfig
}

// ServerConfig - настройки HTTP сервера health и metrics
type ServerConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL с заданиями
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig - настройки подписки на события отзывов
type KafkaConfig struct {
	Brokers  []string
	Topic    string // review_events
	GroupID  string
	MinBytes int
	MaxBytes int
}

// ReviewsConfig - настройки клиента Reviews Service
type ReviewsConfig struct {
	BaseURL      string
	ServiceToken string
}

// SMTPConfig - настройки почтовых уведомлений о негативных отзывах
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AlertTo  string // Адрес владельца ресторана
}

// CronScheduleConfig - расписание диспетчера отложенных публикаций
type CronScheduleConfig struct {
	DispatchReplies string
}

// LoggerConfig - настройки структурированного логирования
type LoggerConfig struct {
	Level        string
	LogstashAddr string // Опциональный TCP адрес Logstash
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8084"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "worker_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "review_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "worker-service-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Reviews: ReviewsConfig{
			BaseURL:      getEnv("REVIEWS_SERVICE_URL", "http://localhost:8081"),
			ServiceToken: getEnv("SERVICE_TOKEN", "internal-service-token"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "BistroBot <no-reply@bistrobot.example>"),
			AlertTo:  getEnv("ALERT_EMAIL", "owner@bistrobot.example"),
		},
		CronSchedule: CronScheduleConfig{
			// Диспетчер проверяет наступившие задания раз в минуту
			DispatchReplies: getEnv("CRON_DISPATCH_REPLIES", "* * * * *"),
		},
		Logger: LoggerConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
