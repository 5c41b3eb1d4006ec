package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

var cacheDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func testSlots() []domain.Slot {
	return []domain.Slot{{
		Start: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
	}}
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, nil)
	ctx := context.Background()

	key := Key("salon-1", cacheDate, 42, 30)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, testSlots())

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, testSlots(), got)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := NewMemoryCache(time.Minute, clock)
	ctx := context.Background()

	key := Key("salon-1", cacheDate, 42, 30)
	c.Set(ctx, key, testSlots())

	now = now.Add(59 * time.Second)
	_, ok := c.Get(ctx, key)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestMemoryCache_InvalidateDay(t *testing.T) {
	c := NewMemoryCache(time.Minute, nil)
	ctx := context.Background()

	otherDate := cacheDate.AddDate(0, 0, 1)

	// Две записи за один день (разные услуги и шаги), одна за другой день,
	// одна за другого тенанта
	c.Set(ctx, Key("salon-1", cacheDate, 42, 30), testSlots())
	c.Set(ctx, Key("salon-1", cacheDate, 7, 60), testSlots())
	c.Set(ctx, Key("salon-1", otherDate, 42, 30), testSlots())
	c.Set(ctx, Key("salon-2", cacheDate, 42, 30), testSlots())
	require.Equal(t, 4, c.Len())

	require.NoError(t, c.InvalidateDay(ctx, "salon-1", cacheDate))
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(ctx, Key("salon-1", cacheDate, 42, 30))
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key("salon-1", otherDate, 42, 30))
	assert.True(t, ok)
	_, ok = c.Get(ctx, Key("salon-2", cacheDate, 42, 30))
	assert.True(t, ok)
}

func TestKey_DistinguishesParameters(t *testing.T) {
	base := Key("salon-1", cacheDate, 42, 30)

	assert.NotEqual(t, base, Key("salon-2", cacheDate, 42, 30))
	assert.NotEqual(t, base, Key("salon-1", cacheDate.AddDate(0, 0, 1), 42, 30))
	assert.NotEqual(t, base, Key("salon-1", cacheDate, 7, 30))
	assert.NotEqual(t, base, Key("salon-1", cacheDate, 42, 60))
}
