package domain

import "time"

// Candle is one OHLCV bar. Times are Unix milliseconds as delivered by the
// exchange. Candles are ordered ascending by OpenTime.
type Candle struct {
	OpenTime  int64   `json:"openTime"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	CloseTime int64   `json:"closeTime"`
}

// StageCategory is the coarse classification of one timeframe.
type StageCategory string

const (
	StageTrendUp      StageCategory = "tendencia_alta"
	StageTrendDown    StageCategory = "tendencia_baixa"
	StageIntermediate StageCategory = "tendencia_intermediaria"
	StageNeutral      StageCategory = "neutra"
	StageInsufficient StageCategory = "insuficiente"
)

// TacticalCategory is the fast-timeframe scorer verdict.
type TacticalCategory string

const (
	TacticalLong         TacticalCategory = "long"
	TacticalShort        TacticalCategory = "short"
	TacticalWatchLong    TacticalCategory = "watch_long"
	TacticalWatchShort   TacticalCategory = "watch_short"
	TacticalNoTrade      TacticalCategory = "no_trade"
	TacticalInsufficient TacticalCategory = "insuficiente"
)

// Direction of an authorized entry.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
	DirectionNone  Direction = ""
)

// Stage is one timeframe's classification plus its operator message.
type Stage struct {
	Category StageCategory `json:"categoria"`
	Message  string        `json:"msg"`
}

// TacticalScore is the weighted confluence result for the fastest timeframe.
type TacticalScore struct {
	Category TacticalCategory `json:"categoria"`
	LongPct  int              `json:"pctLong"`
	ShortPct int              `json:"pctShort"`
	Signals  []string         `json:"sinais,omitempty"`
	Message  string           `json:"msg"`
}

// Targets holds the computed take-profit and stop-loss levels for an entry.
type Targets struct {
	TP1 float64 `json:"tp1"`
	TP2 float64 `json:"tp2"`
	TP3 float64 `json:"tp3"`
	SL  float64 `json:"sl"`
}

// DecisionContext is the consolidated verdict for one symbol in one cycle.
type DecisionContext struct {
	Symbol         string           `json:"symbol"`
	Stages         map[string]Stage `json:"stages"`
	Tactical       TacticalScore    `json:"tactical"`
	Message        string           `json:"message"`
	Direction      Direction        `json:"direction,omitempty"`
	Confidence     float64          `json:"confidenceScore"`
	MeetsThreshold bool             `json:"meetsThreshold"`
	Authorized     bool             `json:"authorized"`
	EntryPrice     float64          `json:"entryPrice,omitempty"`
	Targets        *Targets         `json:"targets,omitempty"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// SignalRecord is one persisted authorized signal.
type SignalRecord struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"`
	EntryPrice float64   `json:"entryPrice"`
	TP1        float64   `json:"tp1"`
	SL         float64   `json:"sl"`
	Stages     string    `json:"stages"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AlertState is the per-symbol dedup record. Entries are only ever created or
// overwritten, never deleted.
type AlertState struct {
	LastSignature string `json:"last_signature"`
	LastSentTS    int64  `json:"last_sent_ts"`
}
