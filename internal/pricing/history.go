package pricing

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// defaultHistoryDays is used when the caller asks for a non-positive window.
const defaultHistoryDays = 30

// PriceHistory generates a deterministic synthetic daily series for the MSA,
// ascending by date, ending today. Each day's price is the current (or
// baseline) price offset by a reproducible ±10% variation derived from
// hashing the MSA name and date. This is a charting placeholder, not real
// historical data.
func (s *Service) PriceHistory(ctx context.Context, msaName string, days int) []PricePoint {
	if days <= 0 {
		days = defaultHistoryDays
	}

	base := FallbackPrice(msaName)
	rec, err := s.store.GetRecord(ctx, msaName)
	if err != nil {
		zap.L().Warn("pricing: history base lookup failed, using baseline",
			zap.String("msa", msaName),
			zap.Error(err),
		)
	}
	if err == nil && rec != nil {
		base = rec.CurrentPrice
	}

	today := time.Now().UTC()
	points := make([]PricePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		price := round3(base * (1 + dailyOffset(msaName, date)))
		if price < 0 {
			price = 0
		}
		points = append(points, PricePoint{Date: date, Price: price})
	}
	return points
}

// dailyOffset maps SHA-256 of "msa|date" onto [-0.10, 0.10]. Deterministic,
// so re-requesting the same window reproduces the same series.
func dailyOffset(msaName, date string) float64 {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s", msaName, date)))
	u := binary.BigEndian.Uint64(h[:8])
	frac := float64(u) / float64(math.MaxUint64)
	return frac*0.20 - 0.10
}
