package availability

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// Clock источник текущего времени; в тестах подменяется фиксированным
type Clock func() time.Time

type memoryEntry struct {
	slots     []domain.Slot
	expiresAt time.Time
}

// MemoryCache кеш доступности в памяти процесса с ограниченным TTL
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   Clock
}

// NewMemoryCache создает кеш с указанным TTL
// clock == nil означает time.Now
func NewMemoryCache(ttl time.Duration, clock Clock) *MemoryCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get возвращает закешированные слоты, если запись не истекла
func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.Slot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.clock().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return entry.slots, true
}

// Set кладет слоты в кеш с TTL
func (c *MemoryCache) Set(_ context.Context, key string, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		slots:     slots,
		expiresAt: c.clock().Add(c.ttl),
	}
}

// InvalidateDay удаляет все записи тенанта за дату
// Вызывается путями записи (создание и отмена встречи)
func (c *MemoryCache) InvalidateDay(_ context.Context, tenantID string, date time.Time) error {
	prefix := dayPrefix(tenantID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}

	return nil
}

// Len возвращает количество записей (для мониторинга и тестов)
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
