package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Settings Service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Accounts AccountsConfig
	Logger   LoggerConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host         string
	Port         string
	ServiceToken string // Токен для /internal endpoints
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig - настройки Redis для кеширования настроек бренда
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration // TTL кеша настроек бренда
}

// KafkaConfig - настройки Kafka для событий настроек
type KafkaConfig struct {
	Brokers []string
	Topic   string // settings_events
}

// JWTConfig - настройки проверки JWT токенов дашборда
type JWTConfig struct {
	Secret string
}

// AccountsConfig - настройки клиента Accounts Service
type AccountsConfig struct {
	BaseURL      string
	ServiceToken string
}

// LoggerConfig - настройки структурированного логирования
type LoggerConfig struct {
	Level        string
	LogstashAddr string // Опциональный TCP адрес Logstash
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("GUIDELINES_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GUIDELINES_CACHE_TTL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8082"),
			ServiceToken: getEnv("SERVICE_TOKEN", "internal-service-token"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "settings_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "settings_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Accounts: AccountsConfig{
			BaseURL:      getEnv("ACCOUNTS_SERVICE_URL", "http://localhost:8083"),
			ServiceToken: getEnv("SERVICE_TOKEN", "internal-service-token"),
		},
		Logger: LoggerConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
