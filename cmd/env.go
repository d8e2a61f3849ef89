package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/pricing"
	"github.com/fuelcast/gasprice-cli/internal/source"
	"github.com/fuelcast/gasprice-cli/internal/store"
)

func initStore(ctx context.Context) (store.PriceStore, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initAssigner() (*geo.Assigner, error) {
	opts := []geo.AssignerOption{
		geo.WithRadiusMiles(cfg.Geo.RadiusMiles),
		geo.WithCacheSize(cfg.Geo.CacheSize),
		geo.WithBatchConcurrency(cfg.Geo.BatchConcurrency),
	}

	if path := cfg.Geo.SupplementPath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read geo supplement %s", path)
		}
		extra, err := geo.ParseSupplement(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geo.WithExtraZipcodes(extra))
	}

	return geo.NewAssigner(opts...)
}

// initService wires the assigner, store, and the source cascade. The store
// is migrated before use; callers own closing it via the returned store.
func initService(ctx context.Context) (*pricing.Service, *geo.Assigner, store.PriceStore, error) {
	assigner, err := initAssigner()
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	svc := pricing.NewService(assigner, st,
		source.NewEIA(cfg.EIA.BaseURL, cfg.EIA.Key),
		source.NewCollectAPI(cfg.CollectAPI.BaseURL, cfg.CollectAPI.Key),
	)
	return svc, assigner, st, nil
}
