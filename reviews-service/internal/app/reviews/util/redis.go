package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bistrobot/pkg/metrics"
	"bistrobot/reviews-service/internal/app/reviews/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName     = "reviews-service"
	summaryCacheKey = "analytics:summary"
)

// RedisClient кеширует сводку аналитики дашборда
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

// GetSummary читает сводку из кеша. Промах - не ошибка: (nil, nil)
func (r *RedisClient) GetSummary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := r.client.Get(ctx, summaryCacheKey).Bytes()
	timer.ObserveDuration()

	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "analytics")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary entity.AnalyticsSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "analytics")
	return &summary, nil
}

func (r *RedisClient) SetSummary(ctx context.Context, summary *entity.AnalyticsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err = r.client.Set(ctx, summaryCacheKey, data, r.ttl).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) InvalidateSummary(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	err := r.client.Del(ctx, summaryCacheKey).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}

	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
