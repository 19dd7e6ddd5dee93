package usecase

import (
	"context"
	"log"

	"sentinel-backend/internal/domain"
	"sentinel-backend/internal/infrastructure/indicators"
)

// TimeframeData is one timeframe's slice of a snapshot. Indicators is nil
// whenever OK is false.
type TimeframeData struct {
	Candles    []domain.Candle
	Indicators *indicators.Bundle
	OK         bool
}

// Snapshot maps timeframe label to its candles and indicators. It is built
// fresh per scan cycle and owned by that cycle.
type Snapshot map[string]TimeframeData

// SnapshotBuilder fetches candles per timeframe and runs the indicator
// aggregator. A timeframe with a failed fetch or fewer than minBars candles
// degrades to OK=false without failing the snapshot.
type SnapshotBuilder struct {
	provider domain.MarketDataProvider
	params   indicators.Params
	minBars  int
	limit    int
}

func NewSnapshotBuilder(provider domain.MarketDataProvider, params indicators.Params, minBars, limit int) *SnapshotBuilder {
	return &SnapshotBuilder{
		provider: provider,
		params:   params,
		minBars:  minBars,
		limit:    limit,
	}
}

// Build assembles the multi-timeframe snapshot for one symbol. Intervals are
// evaluated in the given macro-to-tactical order.
func (b *SnapshotBuilder) Build(ctx context.Context, symbol string, intervals []string) Snapshot {
	snap := make(Snapshot, len(intervals))
	for _, interval := range intervals {
		candles, err := b.provider.FetchCandles(ctx, symbol, interval, b.limit)
		if err != nil {
			log.Printf("snapshot %s %s: fetch failed: %v", symbol, interval, err)
			snap[interval] = TimeframeData{OK: false}
			continue
		}
		if len(candles) < b.minBars {
			log.Printf("snapshot %s %s: only %d candles, minimum %d", symbol, interval, len(candles), b.minBars)
			snap[interval] = TimeframeData{Candles: candles, OK: false}
			continue
		}
		bundle, err := indicators.ComputeBundle(candles, b.params)
		if err != nil {
			// Indicator errors mean bad configuration, not bad data.
			log.Printf("snapshot %s %s: indicators: %v", symbol, interval, err)
			snap[interval] = TimeframeData{Candles: candles, OK: false}
			continue
		}
		snap[interval] = TimeframeData{Candles: candles, Indicators: bundle, OK: true}
	}
	return snap
}
