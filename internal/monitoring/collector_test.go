package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/store"
)

type fakeStore struct {
	records []store.PriceRecord
	err     error
}

func (f *fakeStore) GetRecord(context.Context, string) (*store.PriceRecord, error) { return nil, nil }
func (f *fakeStore) UpsertRecord(context.Context, string, float64, string, float64) error {
	return nil
}
func (f *fakeStore) ListRecords(context.Context) ([]store.PriceRecord, error) {
	return f.records, f.err
}
func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

type fakeStatser struct {
	stats geo.CacheStats
}

func (f *fakeStatser) CacheStats() geo.CacheStats { return f.stats }

func TestCollector_EmptyStore(t *testing.T) {
	c := NewCollector(&fakeStore{}, &fakeStatser{stats: geo.CacheStats{Capacity: 1000}})

	snap, err := c.Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.PriceRecords)
	assert.Equal(t, 0, snap.StaleRecords)
	assert.False(t, snap.FallbackOnly)
	assert.True(t, snap.OldestUpdateAt.IsZero())
	assert.Equal(t, 1000, snap.CacheCapacity)
	assert.Equal(t, 24, snap.StaleAfterHours)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollector_StaleAndFreshRecords(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-1 * time.Hour)
	stale := now.Add(-48 * time.Hour)
	st := &fakeStore{records: []store.PriceRecord{
		{MSAName: "Atlanta", CurrentPrice: 3.20, Source: "EIA", UpdatedAt: fresh},
		{MSAName: "Chicago", CurrentPrice: 3.80, Source: "EIA", UpdatedAt: stale},
		{MSAName: "National Average", CurrentPrice: 3.50, Source: "Calculated", UpdatedAt: fresh},
	}}
	c := NewCollector(st, &fakeStatser{stats: geo.CacheStats{Hits: 7, Misses: 3, Size: 4, Capacity: 1000}})

	snap, err := c.Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.PriceRecords)
	assert.Equal(t, 1, snap.StaleRecords)
	assert.False(t, snap.FallbackOnly)
	assert.Equal(t, stale, snap.OldestUpdateAt)
	assert.Equal(t, fresh, snap.NewestUpdateAt)
	assert.ElementsMatch(t, []string{"EIA", "Calculated"}, snap.SourcesSeen)
	assert.Equal(t, int64(7), snap.CacheHits)
	assert.Equal(t, int64(3), snap.CacheMisses)
	assert.Equal(t, 4, snap.CacheSize)
}

func TestCollector_FallbackOnly(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeStore{records: []store.PriceRecord{
		{MSAName: "Atlanta", CurrentPrice: 3.20, Source: "Fallback", UpdatedAt: now},
		{MSAName: "National Average", CurrentPrice: 3.655, Source: "Calculated", UpdatedAt: now},
	}}
	c := NewCollector(st, nil)

	snap, err := c.Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.True(t, snap.FallbackOnly)
	assert.Equal(t, 0, snap.CacheSize)
}

func TestCollector_RealSourceClearsFallbackOnly(t *testing.T) {
	now := time.Now().UTC()
	st := &fakeStore{records: []store.PriceRecord{
		{MSAName: "Atlanta", CurrentPrice: 3.20, Source: "Fallback", UpdatedAt: now},
		{MSAName: "Miami", CurrentPrice: 3.41, Source: "CollectAPI", UpdatedAt: now},
	}}
	c := NewCollector(st, nil)

	snap, err := c.Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.False(t, snap.FallbackOnly)
}

func TestCollector_StoreError(t *testing.T) {
	c := NewCollector(&fakeStore{err: eris.New("boom")}, nil)

	snap, err := c.Collect(context.Background(), 24)
	assert.Error(t, err)
	assert.Nil(t, snap)
}
