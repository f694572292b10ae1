package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sales-forecast/internal/models"
)

// LatestKey ключ последнего опубликованного прогноза
const LatestKey = "forecast:latest"

// RedisCache публикует прогнозы в Redis. Прогноз только записывается,
// программа его обратно не читает.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает клиент и проверяет подключение
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     2,
		MaxRetries:   1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	// Проверяем подключение
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// YearKey ключ прогноза на год
func YearKey(year int) string {
	return fmt.Sprintf("forecast:%d", year)
}

// StoreForecast сохраняет прогноз под ключом года и под forecast:latest
func (r *RedisCache) StoreForecast(ctx context.Context, year int, forecast models.PublishedForecast) error {
	jsonData, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, YearKey(year), jsonData, r.ttl)
	pipe.Set(ctx, LatestKey, jsonData, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store forecast: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisCache) Close() error {
	return r.client.Close()
}
