package pricing

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/source"
	"github.com/fuelcast/gasprice-cli/internal/store"
)

// mockStore is an in-memory PriceStore with injectable failures.
type mockStore struct {
	mu        sync.Mutex
	records   map[string]store.PriceRecord
	getErr    error
	upsertErr error
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]store.PriceRecord)}
}

func (m *mockStore) GetRecord(_ context.Context, msaName string) (*store.PriceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[msaName]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *mockStore) UpsertRecord(_ context.Context, msaName string, price float64, src string, confidence float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	rec := m.records[msaName]
	rec.PreviousPrice = rec.CurrentPrice
	if rec.MSAName != "" {
		rec.PriceChange = price - rec.CurrentPrice
	}
	rec.MSAName = msaName
	rec.CurrentPrice = price
	rec.Source = src
	rec.Confidence = confidence
	rec.UpdatedAt = time.Now().UTC()
	m.records[msaName] = rec
	return nil
}

func (m *mockStore) ListRecords(_ context.Context) ([]store.PriceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]store.PriceRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MSAName < out[j].MSAName })
	return out, nil
}

func (m *mockStore) Migrate(context.Context) error { return nil }
func (m *mockStore) Close() error                  { return nil }

// stubSource is a scripted price source.
type stubSource struct {
	name      string
	conf      float64
	available bool
	batch     map[string]float64
	err       error
	calls     int
}

func (s *stubSource) Name() string        { return s.name }
func (s *stubSource) Confidence() float64 { return s.conf }
func (s *stubSource) Available() bool     { return s.available }

func (s *stubSource) FetchBatch(context.Context) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.batch, nil
}

var _ source.Source = (*stubSource)(nil)

func newTestService(t *testing.T, st store.PriceStore, sources ...source.Source) *Service {
	t.Helper()
	assigner, err := geo.NewAssigner()
	require.NoError(t, err)
	return NewService(assigner, st, sources...)
}

func TestPriceForZipcode_EmptyStoreUsesFallback(t *testing.T) {
	svc := newTestService(t, newMockStore())

	got := svc.PriceForZipcode(context.Background(), "30301")
	assert.True(t, got.Success)
	assert.Equal(t, "Atlanta", got.MSAName)
	assert.True(t, got.IsFallback)
	assert.Equal(t, FallbackPrice("Atlanta"), got.Price)
	assert.Equal(t, "Fallback", got.Source)
	assert.Equal(t, 0.5, got.Confidence)
	assert.NotEmpty(t, got.Warning)
	require.NotNil(t, got.DistanceToMSA)
	assert.LessOrEqual(t, *got.DistanceToMSA, 75.0)
}

func TestPriceForZipcode_PersistedRecord(t *testing.T) {
	st := newMockStore()
	require.NoError(t, st.UpsertRecord(context.Background(), "New York", 3.91, "EIA", 0.9))
	svc := newTestService(t, st)

	got := svc.PriceForZipcode(context.Background(), "10001")
	assert.True(t, got.Success)
	assert.Equal(t, "New York", got.MSAName)
	assert.False(t, got.IsFallback)
	assert.Equal(t, 3.91, got.Price)
	assert.Equal(t, "EIA", got.Source)
	assert.Equal(t, 0.9, got.Confidence)
	assert.Empty(t, got.Warning)
}

func TestPriceForZipcode_StoreErrorUsesFallback(t *testing.T) {
	st := newMockStore()
	st.getErr = eris.New("connection refused")
	svc := newTestService(t, st)

	got := svc.PriceForZipcode(context.Background(), "10001")
	assert.True(t, got.Success)
	assert.True(t, got.IsFallback)
	assert.Equal(t, FallbackPrice("New York"), got.Price)
}

func TestPriceForZipcode_InvalidZipcode(t *testing.T) {
	svc := newTestService(t, newMockStore())

	for _, raw := range []string{"", "abc", "≈ツ☃"} {
		got := svc.PriceForZipcode(context.Background(), raw)
		assert.True(t, got.Success, "input %q", raw)
		assert.Equal(t, geo.NationalAverage, got.MSAName, "input %q", raw)
		assert.True(t, got.IsFallback, "input %q", raw)
		assert.Equal(t, FallbackPrice(geo.NationalAverage), got.Price, "input %q", raw)
		assert.Nil(t, got.DistanceToMSA, "input %q", raw)
	}
}

func TestFallbackPrice_UnknownMSA(t *testing.T) {
	assert.Equal(t, fallbackPrices[geo.NationalAverage], FallbackPrice("Nowhere"))
}

func TestFallbackBatch_ExcludesNationalAverage(t *testing.T) {
	batch := FallbackBatch()
	assert.Len(t, batch, 10)
	_, ok := batch[geo.NationalAverage]
	assert.False(t, ok)
}
