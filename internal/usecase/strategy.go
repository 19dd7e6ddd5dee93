package usecase

import (
	"fmt"
	"math"
	"strings"

	"sentinel-backend/internal/domain"
	"sentinel-backend/internal/infrastructure/indicators"
)

// StageInputs are the last indicator values of one macro/intermediate
// timeframe. Float fields use NaN for undefined; SupertrendDir uses 0.
type StageInputs struct {
	SupertrendDir int
	RSI           float64
	MACDHist      float64
	EMAFast       float64
	EMASlow       float64
	// EMATrend is an optional long-horizon filter (e.g. EMA200); NaN disables it.
	EMATrend float64
}

// StageInputsFromBundle extracts classifier inputs from an aggregated bundle.
func StageInputsFromBundle(b *indicators.Bundle) StageInputs {
	return StageInputs{
		SupertrendDir: b.Last.SupertrendDir,
		RSI:           b.Last.RSI,
		MACDHist:      b.Last.MACDHist,
		EMAFast:       b.Last.EMAFast,
		EMASlow:       b.Last.EMASlow,
		EMATrend:      b.Last.EMATrend,
	}
}

// ClassifyStage converts one timeframe's last indicator values into a coarse
// trend category. The RSI gates are asymmetric on purpose (53 up / 47 down):
// a trend call requires a decisive RSI, not a coin flip around 50.
func ClassifyStage(in StageInputs) domain.Stage {
	if in.SupertrendDir == 0 || !indicators.Defined(in.RSI) || !indicators.Defined(in.MACDHist) ||
		!indicators.Defined(in.EMAFast) || !indicators.Defined(in.EMASlow) {
		return domain.Stage{
			Category: domain.StageInsufficient,
			Message:  "Dados insuficientes para avaliar tendência no timeframe maior.",
		}
	}

	alta := in.SupertrendDir > 0 && in.RSI > 53 && in.MACDHist > 0 && in.EMAFast > in.EMASlow
	baixa := in.SupertrendDir < 0 && in.RSI < 47 && in.MACDHist < 0 && in.EMAFast < in.EMASlow

	if indicators.Defined(in.EMATrend) {
		if alta && in.EMASlow > in.EMATrend {
			return domain.Stage{
				Category: domain.StageTrendUp,
				Message:  "Tendência de Alta: força compradora alinhada (macro).",
			}
		}
		if baixa && in.EMASlow < in.EMATrend {
			return domain.Stage{
				Category: domain.StageTrendDown,
				Message:  "Tendência de Baixa: força vendedora alinhada (macro).",
			}
		}
	}

	if alta || baixa {
		return domain.Stage{
			Category: domain.StageIntermediate,
			Message:  "Tendência intermediária: acompanhar movimentação.",
		}
	}
	return domain.Stage{
		Category: domain.StageNeutral,
		Message:  "Zona neutra: aguardando direcionamento.",
	}
}

// TacticalInputs are the fast-timeframe readings for the confluence scorer.
type TacticalInputs struct {
	RSI           float64
	MACD          float64
	MACDSignal    float64
	MACDHist      float64
	SupertrendDir int
	EMAFast       float64
	EMASlow       float64
	OBVLast       float64
	// OBVSeries enables slope-based OBV voting; nil falls back to OBVLast.
	OBVSeries indicators.Series
	// ADX is optional; NaN skips it.
	ADX float64
}

// TacticalInputsFromBundle extracts scorer inputs from an aggregated bundle.
func TacticalInputsFromBundle(b *indicators.Bundle) TacticalInputs {
	return TacticalInputs{
		RSI:           b.Last.RSI,
		MACD:          b.Last.MACD,
		MACDSignal:    b.Last.MACDSignal,
		MACDHist:      b.Last.MACDHist,
		SupertrendDir: b.Last.SupertrendDir,
		EMAFast:       b.Last.EMAFast,
		EMASlow:       b.Last.EMASlow,
		OBVLast:       b.Last.OBV,
		OBVSeries:     b.OBV,
		ADX:           indicators.Undefined(),
	}
}

// ScoreTactical runs the weighted confluence vote for the fastest timeframe.
// Each indicator contributes its weight once to the considered total and votes
// for at most one side; undefined indicators are skipped entirely. ADX is a
// strength multiplier: it reinforces whichever side already leads.
// obvBars is the lookback window for the OBV slope vote.
func ScoreTactical(in TacticalInputs, obvBars int) domain.TacticalScore {
	scoreLong := 0
	scoreShort := 0
	total := 0
	var signals []string

	vote := func(weight int, label string, long, short bool) {
		total += weight
		switch {
		case long:
			scoreLong += weight
			signals = append(signals, label+" ↑")
		case short:
			scoreShort += weight
			signals = append(signals, label+" ↓")
		default:
			signals = append(signals, label+" =")
		}
	}
	skip := func(label string) {
		signals = append(signals, label+" ⚠️")
	}

	if indicators.Defined(in.RSI) {
		vote(2, "RSI", in.RSI > 50, in.RSI < 50)
	} else {
		skip("RSI")
	}

	if indicators.Defined(in.MACD) && indicators.Defined(in.MACDSignal) {
		vote(2, "MACD", in.MACD > in.MACDSignal, in.MACD < in.MACDSignal)
	} else {
		skip("MACD")
	}

	if indicators.Defined(in.MACDHist) {
		vote(1, "Hist", in.MACDHist > 0, in.MACDHist < 0)
	} else {
		skip("Hist")
	}

	if in.SupertrendDir != 0 {
		vote(2, "SuperTrend", in.SupertrendDir > 0, in.SupertrendDir < 0)
	} else {
		skip("SuperTrend")
	}

	if indicators.Defined(in.EMAFast) && indicators.Defined(in.EMASlow) {
		vote(2, "EMA20/50", in.EMAFast > in.EMASlow, in.EMAFast < in.EMASlow)
	} else {
		skip("EMA20/50")
	}

	// OBV prefers the slope over a recent window; the absolute last value is a
	// weaker fallback and carries less weight.
	if slope, ok := in.OBVSeries.Slope(obvBars); ok {
		vote(2, "OBV", slope > 0, slope < 0)
	} else if indicators.Defined(in.OBVLast) {
		vote(1, "OBV", in.OBVLast >= 0, in.OBVLast < 0)
	} else {
		skip("OBV")
	}

	if indicators.Defined(in.ADX) {
		total++
		if in.ADX >= 17 {
			if scoreLong > scoreShort {
				scoreLong++
				signals = append(signals, "ADX forte ↑")
			} else if scoreShort > scoreLong {
				scoreShort++
				signals = append(signals, "ADX forte ↓")
			} else {
				signals = append(signals, "ADX forte =")
			}
		} else {
			signals = append(signals, "ADX fraco")
		}
	}

	if total == 0 {
		return domain.TacticalScore{
			Category: domain.TacticalInsufficient,
			Message:  "Nenhum dado disponível para pontuar o ativo.",
		}
	}

	longPct := pct(scoreLong, total)
	shortPct := pct(scoreShort, total)
	joined := strings.Join(signals, ", ")

	switch {
	case longPct >= 65:
		return domain.TacticalScore{
			Category: domain.TacticalLong, LongPct: longPct, ShortPct: shortPct, Signals: signals,
			Message: fmt.Sprintf("ENTRADA DETECTADA: LONG com %d%% de confluência. Sinais: %s", longPct, joined),
		}
	case shortPct >= 65:
		return domain.TacticalScore{
			Category: domain.TacticalShort, LongPct: longPct, ShortPct: shortPct, Signals: signals,
			Message: fmt.Sprintf("ENTRADA DETECTADA: SHORT com %d%% de confluência. Sinais: %s", shortPct, joined),
		}
	case longPct >= 50:
		return domain.TacticalScore{
			Category: domain.TacticalWatchLong, LongPct: longPct, ShortPct: shortPct, Signals: signals,
			Message: fmt.Sprintf("POTENCIAL DE ENTRADA: possível LONG com %d%% de confluência. Sinais: %s", longPct, joined),
		}
	case shortPct >= 50:
		return domain.TacticalScore{
			Category: domain.TacticalWatchShort, LongPct: longPct, ShortPct: shortPct, Signals: signals,
			Message: fmt.Sprintf("POTENCIAL DE ENTRADA: possível SHORT com %d%% de confluência. Sinais: %s", shortPct, joined),
		}
	}
	return domain.TacticalScore{
		Category: domain.TacticalNoTrade, LongPct: longPct, ShortPct: shortPct, Signals: signals,
		Message:  fmt.Sprintf("SEM ENTRADA: LONG %d%%, SHORT %d%%. Aguardando melhor cenário.", longPct, shortPct),
	}
}

func pct(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
