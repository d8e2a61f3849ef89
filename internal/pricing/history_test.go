package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceHistory_Deterministic(t *testing.T) {
	svc := newTestService(t, newMockStore())

	first := svc.PriceHistory(context.Background(), "Atlanta", 30)
	second := svc.PriceHistory(context.Background(), "Atlanta", 30)
	assert.Equal(t, first, second)
}

func TestPriceHistory_LengthAndOrdering(t *testing.T) {
	svc := newTestService(t, newMockStore())

	points := svc.PriceHistory(context.Background(), "Chicago", 7)
	require.Len(t, points, 7)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, points[len(points)-1].Date)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Date, points[i].Date)
	}
}

func TestPriceHistory_DefaultWindow(t *testing.T) {
	svc := newTestService(t, newMockStore())

	assert.Len(t, svc.PriceHistory(context.Background(), "Miami", 0), defaultHistoryDays)
	assert.Len(t, svc.PriceHistory(context.Background(), "Miami", -5), defaultHistoryDays)
}

func TestPriceHistory_BoundedAroundBase(t *testing.T) {
	svc := newTestService(t, newMockStore())

	base := FallbackPrice("Seattle")
	for _, p := range svc.PriceHistory(context.Background(), "Seattle", 60) {
		assert.GreaterOrEqual(t, p.Price, round3(base*0.90), "date %s", p.Date)
		assert.LessOrEqual(t, p.Price, round3(base*1.10), "date %s", p.Date)
		assert.Equal(t, round3(p.Price), p.Price, "prices carry three decimals")
	}
}

func TestPriceHistory_UsesPersistedBase(t *testing.T) {
	st := newMockStore()
	require.NoError(t, st.UpsertRecord(context.Background(), "Houston", 10.0, "EIA", 0.9))
	svc := newTestService(t, st)

	for _, p := range svc.PriceHistory(context.Background(), "Houston", 14) {
		assert.GreaterOrEqual(t, p.Price, 9.0, "date %s", p.Date)
		assert.LessOrEqual(t, p.Price, 11.0, "date %s", p.Date)
	}
}

func TestPriceHistory_UnknownMSAUsesNationalBaseline(t *testing.T) {
	svc := newTestService(t, newMockStore())

	base := FallbackPrice("Nowhere")
	for _, p := range svc.PriceHistory(context.Background(), "Nowhere", 5) {
		assert.InDelta(t, base, p.Price, base*0.10+0.001)
	}
}
