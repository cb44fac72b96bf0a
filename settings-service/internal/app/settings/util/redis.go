package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bistrobot/settings-service/internal/app/settings/entity"

	"github.com/redis/go-redis/v9"
)

const guidelinesCacheKey = "settings:guidelines"

// RedisClient кеширует настройки бренда.
// Reviews Service запрашивает их при каждой генерации черновика,
// кеш снимает нагрузку с PostgreSQL
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

// GetGuidelines возвращает настройки из кеша, nil при промахе
func (r *RedisClient) GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error) {
	data, err := r.client.Get(ctx, guidelinesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guidelines from cache: %w", err)
	}

	var guidelines entity.BrandGuidelines
	if err := json.Unmarshal(data, &guidelines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guidelines: %w", err)
	}

	return &guidelines, nil
}

func (r *RedisClient) SetGuidelines(ctx context.Context, guidelines *entity.BrandGuidelines) error {
	data, err := json.Marshal(guidelines)
	if err != nil {
		return fmt.Errorf("failed to marshal guidelines: %w", err)
	}

	if err := r.client.Set(ctx, guidelinesCacheKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set guidelines in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) InvalidateGuidelines(ctx context.Context) error {
	if err := r.client.Del(ctx, guidelinesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete guidelines from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
