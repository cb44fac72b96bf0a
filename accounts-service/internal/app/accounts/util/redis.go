package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/redis/go-redis/v9"
)

const planCacheKey = "accounts:plan"

// RedisClient кеширует лимиты текущего плана.
// Settings Service запрашивает их перед каждым созданием шаблона
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

// GetPlan возвращает лимиты из кеша, nil при промахе
func (r *RedisClient) GetPlan(ctx context.Context) (*entity.PlanLimits, error) {
	data, err := r.client.Get(ctx, planCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan from cache: %w", err)
	}

	var limits entity.PlanLimits
	if err := json.Unmarshal(data, &limits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return &limits, nil
}

func (r *RedisClient) SetPlan(ctx context.Context, limits *entity.PlanLimits) error {
	data, err := json.Marshal(limits)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := r.client.Set(ctx, planCacheKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set plan in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) InvalidatePlan(ctx context.Context) error {
	if err := r.client.Del(ctx, planCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete plan from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
