package geocache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/geo"
)

func result(address string) *geo.GeocodeResult {
	return &geo.GeocodeResult{Address: address, Location: geo.Coordinates{Lat: 1, Lng: 2}, Quality: geo.QualityExact}
}

func TestLRUTier_PutGet(t *testing.T) {
	tier := newLRUTier(10, time.Hour)

	tier.put("a", result("a"), 0)
	got, ok := tier.get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Address)

	_, ok = tier.get("missing")
	assert.False(t, ok)
}

func TestLRUTier_EvictsLeastRecentlyUsed(t *testing.T) {
	tier := newLRUTier(2, time.Hour)

	tier.put("a", result("a"), 0)
	tier.put("b", result("b"), 0)

	// touch "a" so "b" becomes the eviction candidate
	_, ok := tier.get("a")
	require.True(t, ok)

	tier.put("c", result("c"), 0)

	_, ok = tier.get("a")
	assert.True(t, ok)
	_, ok = tier.get("b")
	assert.False(t, ok)
	_, ok = tier.get("c")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), tier.evicted())
	assert.Equal(t, 2, tier.len())
}

func TestLRUTier_CapacityNeverExceeded(t *testing.T) {
	tier := newLRUTier(5, time.Hour)
	for i := 0; i < 20; i++ {
		tier.put(fmt.Sprintf("key-%d", i), result("x"), 0)
	}
	assert.Equal(t, 5, tier.len())
	assert.Equal(t, uint64(15), tier.evicted())
}

func TestLRUTier_TTLExpiry(t *testing.T) {
	tier := newLRUTier(10, time.Hour)
	current := time.Unix(1000, 0)
	tier.now = func() time.Time { return current }

	tier.put("a", result("a"), 10*time.Minute)

	current = current.Add(5 * time.Minute)
	_, ok := tier.get("a")
	assert.True(t, ok)

	current = current.Add(6 * time.Minute)
	_, ok = tier.get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, tier.len())
}

func TestLRUTier_EntryTTLCappedAtTierTTL(t *testing.T) {
	tier := newLRUTier(10, time.Hour)
	current := time.Unix(1000, 0)
	tier.now = func() time.Time { return current }

	// an absurd per-entry TTL cannot outlive the tier TTL
	tier.put("a", result("a"), 24*time.Hour)

	current = current.Add(2 * time.Hour)
	_, ok := tier.get("a")
	assert.False(t, ok)
}

func TestLRUTier_UpdateRefreshesEntry(t *testing.T) {
	tier := newLRUTier(2, time.Hour)

	tier.put("a", result("old"), 0)
	tier.put("a", result("new"), 0)
	assert.Equal(t, 1, tier.len())

	got, ok := tier.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Address)
}

func TestLRUTier_Clear(t *testing.T) {
	tier := newLRUTier(10, time.Hour)
	tier.put("a", result("a"), 0)
	tier.put("b", result("b"), 0)

	tier.clear()
	assert.Equal(t, 0, tier.len())
	_, ok := tier.get("a")
	assert.False(t, ok)
}
