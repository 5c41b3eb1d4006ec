package availability

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisCache кеш доступности в Redis, разделяемый между инстансами сервиса
// Ошибки Redis не фатальны: промах кеша всегда корректен, расчет уходит в БД
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewRedisCache создает кеш поверх существующего клиента Redis
func NewRedisCache(client *redis.Client, ttl time.Duration, log Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

type slotPayload struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	StaffID *string   `json:"staff_id"`
}

// Get возвращает закешированные слоты, если ключ существует
func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.Slot, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache: redis get failed for key=%s: %v", key, err)
		}
		return nil, false
	}

	var payload []slotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.log.Warn("availability cache: corrupted entry for key=%s: %v", key, err)
		return nil, false
	}

	slots := make([]domain.Slot, len(payload))
	for i, p := range payload {
		slots[i] = domain.Slot{Start: p.Start, End: p.End, StaffID: p.StaffID}
	}

	return slots, true
}

// Set кладет слоты в кеш с TTL
func (c *RedisCache) Set(ctx context.Context, key string, slots []domain.Slot) {
	payload := make([]slotPayload, len(slots))
	for i, s := range slots {
		payload[i] = slotPayload{Start: s.Start, End: s.End, StaffID: s.StaffID}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("availability cache: failed to marshal slots for key=%s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: redis set failed for key=%s: %v", key, err)
	}
}

// InvalidateDay удаляет все записи тенанта за дату
func (c *RedisCache) InvalidateDay(ctx context.Context, tenantID string, date time.Time) error {
	pattern := dayPrefix(tenantID, date) + "*"

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}

	return iter.Err()
}
