package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
)

const (
	anomalyQueueKey = "anomaly_events"
)

// AnomalyEvent - событие "при осмотре зафиксирована аномалия"
type AnomalyEvent struct {
	Team       string             `json:"team"`
	AssetID    string             `json:"asset_id"`
	Kind       models.AssetKind   `json:"kind"`
	Address    string             `json:"address,omitempty"`
	Issue      models.AnomalyKind `json:"issue"`
	ReportedAt time.Time          `json:"reported_at"`
}

// AnomalyPublisher - интерфейс для публикации событий об аномалиях
type AnomalyPublisher interface {
	Publish(ctx context.Context, event AnomalyEvent) error
}

// RedisAnomalyPublisher - реализация AnomalyPublisher, использующая Redis
type RedisAnomalyPublisher struct {
	redisClient *redis.Client
}

// NewRedisAnomalyPublisher создает новый RedisAnomalyPublisher
func NewRedisAnomalyPublisher(client *redis.Client) *RedisAnomalyPublisher {
	return &RedisAnomalyPublisher{
		redisClient: client,
	}
}

// Publish публикует событие об аномалии в очередь Redis
func (p *RedisAnomalyPublisher) Publish(ctx context.Context, event AnomalyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal anomaly event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, anomalyQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish anomaly event to Redis: %w", err)
	}
	return nil
}
