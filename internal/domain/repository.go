package domain

import "context"

// MarketDataProvider yields OHLCV candles ordered oldest to newest. Minimum
// bar-count validation is the caller's job.
type MarketDataProvider interface {
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// ResultRepository stores the latest cycle's decision contexts for the
// delivery layer (HTTP and websocket).
type ResultRepository interface {
	SaveResults(results []DecisionContext)
	GetResults() []DecisionContext
}

// SignalHistory persists authorized signals.
type SignalHistory interface {
	Insert(ctx context.Context, rec *SignalRecord) error
	Recent(ctx context.Context, limit int) ([]SignalRecord, error)
}

// AlertStateStore is the durable dedup/cooldown state, keyed by symbol.
// Implementations must write atomically (temp file + rename).
type AlertStateStore interface {
	Get(symbol string) (AlertState, bool)
	Put(symbol string, state AlertState) error
}
