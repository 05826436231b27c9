package productcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func product(id string) domain.Product {
	return domain.Product{ID: id, Source: domain.SourceOpenFoodFacts, Name: "Product " + id, Brand: domain.OptionalString("Brand")}
}

func TestCache_SetThenGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set(domain.SourceOpenFoodFacts, "1", product("1"))

	got, ok := c.Get(domain.SourceOpenFoodFacts, "1")
	require.True(t, ok)
	assert.Equal(t, product("1"), got)

	_, ok = c.Get(domain.SourceUSDA, "1")
	assert.False(t, ok, "key includes the source")
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(10*time.Minute, WithClock(clock.Now))
	c.Set(domain.SourceUSDA, "42", product("42"))

	clock.Advance(10 * time.Minute)
	_, ok := c.Get(domain.SourceUSDA, "42")
	assert.True(t, ok, "entry is valid exactly at ttl")

	clock.Advance(time.Nanosecond)
	_, ok = c.Get(domain.SourceUSDA, "42")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on access")

	_, ok = c.Get(domain.SourceUSDA, "42")
	assert.False(t, ok, "expired entry does not resurface")
}

func TestCache_SetRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(time.Minute, WithClock(clock.Now))

	c.Set(domain.SourceManual, "a", product("a"))
	clock.Advance(50 * time.Second)
	updated := product("a")
	updated.Name = "Renamed"
	c.Set(domain.SourceManual, "a", updated)
	clock.Advance(50 * time.Second)

	got, ok := c.Get(domain.SourceManual, "a")
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
}

func TestCache_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	p := product("1")
	c.Set(domain.SourceOpenFoodFacts, "1", p)
	*p.Brand = "Mutated"

	got, _ := c.Get(domain.SourceOpenFoodFacts, "1")
	*got.Brand = "Mutated again"

	again, _ := c.Get(domain.SourceOpenFoodFacts, "1")
	assert.Equal(t, "Brand", *again.Brand)
}

func TestCache_DefaultTTL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTTL, New(0).TTL())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprint(i % 5)
			c.Set(domain.SourceOpenFoodFacts, id, product(id))
			c.Get(domain.SourceOpenFoodFacts, id)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, c.Len())
}
