package pricing

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/source"
)

// RefreshAll fetches a fresh price batch from the highest-priority source
// that responds, persists it, and recomputes the National Average record.
//
// Source failures are never fatal: each is logged, recorded in the summary,
// and the next source is tried. When every real source fails the static
// baseline table is persisted instead. Only a persistence failure during
// the winning write propagates as an error, since a refresh that "succeeds"
// without persisting anything would leave lookups silently stale.
func (s *Service) RefreshAll(ctx context.Context) (*RefreshSummary, error) {
	summary := &RefreshSummary{
		ID:        uuid.New().String(),
		StartTime: time.Now().UTC(),
	}

	batch, winner := s.fetchWinningBatch(ctx, summary)

	for _, msa := range sortedKeys(batch) {
		if err := s.store.UpsertRecord(ctx, msa, batch[msa], winner.Name(), winner.Confidence()); err != nil {
			return nil, eris.Wrapf(err, "refresh: persist %s", msa)
		}
		summary.UpdatedMSAs = append(summary.UpdatedMSAs, msa)
	}
	summary.DataSourcesUsed = append(summary.DataSourcesUsed, winner.Name())

	if err := s.recomputeNationalAverage(ctx); err != nil {
		return nil, err
	}
	summary.UpdatedMSAs = append(summary.UpdatedMSAs, geo.NationalAverage)

	summary.TotalUpdated = len(summary.UpdatedMSAs)
	summary.Success = true
	summary.EndTime = time.Now().UTC()

	zap.L().Info("pricing: refresh complete",
		zap.String("winning_source", winner.Name()),
		zap.Int("updated", summary.TotalUpdated),
		zap.Int("failed_sources", len(summary.FailedSources)),
	)
	return summary, nil
}

// fetchWinningBatch tries real sources in priority order and returns the
// first non-empty batch. Falls back to the static source when none succeed.
func (s *Service) fetchWinningBatch(ctx context.Context, summary *RefreshSummary) (map[string]float64, source.Source) {
	for _, src := range s.sources {
		if !src.Available() {
			continue
		}
		batch, err := src.FetchBatch(ctx)
		if err != nil {
			zap.L().Warn("pricing: source failed, trying next",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			summary.FailedSources = append(summary.FailedSources, SourceFailure{
				Source: src.Name(),
				Error:  err.Error(),
			})
			continue
		}
		if len(batch) == 0 {
			summary.FailedSources = append(summary.FailedSources, SourceFailure{
				Source: src.Name(),
				Error:  "empty batch",
			})
			continue
		}
		// First successful source wins, even with a partial batch.
		return batch, src
	}

	zap.L().Warn("pricing: all sources failed, persisting static baseline")
	batch, _ := s.static.FetchBatch(ctx)
	return batch, s.static
}

// recomputeNationalAverage upserts the National Average record as the mean
// of every other persisted current price. Stale records from MSAs missing
// in the latest batch are included in the average.
func (s *Service) recomputeNationalAverage(ctx context.Context) error {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return eris.Wrap(err, "refresh: list records for national average")
	}

	var sum float64
	var n int
	for _, r := range records {
		if r.MSAName == geo.NationalAverage {
			continue
		}
		sum += r.CurrentPrice
		n++
	}
	if n == 0 {
		return nil
	}

	avg := round3(sum / float64(n))
	if err := s.store.UpsertRecord(ctx, geo.NationalAverage, avg, "Calculated", 0.8); err != nil {
		return eris.Wrap(err, "refresh: persist national average")
	}
	return nil
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
