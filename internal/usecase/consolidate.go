package usecase

import (
	"fmt"
	"time"

	"sentinel-backend/internal/domain"
)

// Consolidate fuses the per-timeframe stages and the tactical score into one
// decision. Stage alignment decides direction and the message; confidence is
// the tactical winning-side percentage, independent of alignment. Both must
// pass (alignment and the confidence threshold) for Authorized.
//
// intervals must be ordered macro → intermediate → confirmation → tactical.
func Consolidate(symbol string, intervals []string, stages map[string]domain.Stage,
	tactical domain.TacticalScore, threshold float64, now time.Time) domain.DecisionContext {

	ctx := domain.DecisionContext{
		Symbol:      symbol,
		Stages:      stages,
		Tactical:    tactical,
		GeneratedAt: now,
	}

	winning := tactical.LongPct
	if tactical.ShortPct > winning {
		winning = tactical.ShortPct
	}
	ctx.Confidence = float64(winning) / 100.0
	ctx.MeetsThreshold = ctx.Confidence >= threshold

	macro, inter, confirm := stageCat(stages, intervals, 0), stageCat(stages, intervals, 1), stageCat(stages, intervals, 2)
	confirmLabel := intervalLabel(intervals, 2)
	timingLabel := intervalLabel(intervals, 3)

	if macro == domain.StageInsufficient || inter == domain.StageInsufficient ||
		confirm == domain.StageInsufficient || tactical.Category == domain.TacticalInsufficient {
		ctx.Message = "Dados insuficientes para consolidar: aguardando candles em todos os timeframes."
		return ctx
	}

	longMacro := macro == domain.StageTrendUp &&
		(inter == domain.StageTrendUp || inter == domain.StageIntermediate)
	shortMacro := macro == domain.StageTrendDown &&
		(inter == domain.StageTrendDown || inter == domain.StageIntermediate)

	switch {
	case longMacro:
		if confirm == domain.StageTrendUp || confirm == domain.StageIntermediate {
			if tactical.Category == domain.TacticalLong || tactical.Category == domain.TacticalWatchLong {
				ctx.Direction = domain.DirectionLong
				ctx.Message = "Entrada LONG autorizada: macro e timing alinhados."
			} else {
				ctx.Message = fmt.Sprintf("Segurar mão: tendência de alta, aguardando %s confirmar.", timingLabel)
			}
		} else {
			ctx.Message = fmt.Sprintf("Alta macro com %s neutro: aguardando confirmação no curto prazo.", confirmLabel)
		}
	case shortMacro:
		if confirm == domain.StageTrendDown || confirm == domain.StageIntermediate {
			if tactical.Category == domain.TacticalShort || tactical.Category == domain.TacticalWatchShort {
				ctx.Direction = domain.DirectionShort
				ctx.Message = "Entrada SHORT autorizada: macro e timing alinhados."
			} else {
				ctx.Message = fmt.Sprintf("Segurar mão: tendência de baixa, aguardando %s confirmar.", timingLabel)
			}
		} else {
			ctx.Message = fmt.Sprintf("Baixa macro com %s neutro: aguardando confirmação no curto prazo.", confirmLabel)
		}
	default:
		ctx.Message = "Não entrar agora: timeframes desalinhados."
	}

	ctx.Authorized = ctx.Direction != domain.DirectionNone && ctx.MeetsThreshold
	return ctx
}

// ComputeTargets derives the TP/SL ladder from the entry price, direction-aware.
func ComputeTargets(entry float64, direction domain.Direction, tp1, tp2, tp3, sl float64) *domain.Targets {
	if entry <= 0 {
		return nil
	}
	switch direction {
	case domain.DirectionLong:
		return &domain.Targets{
			TP1: entry * (1.0 + tp1),
			TP2: entry * (1.0 + tp2),
			TP3: entry * (1.0 + tp3),
			SL:  entry * (1.0 - sl),
		}
	case domain.DirectionShort:
		return &domain.Targets{
			TP1: entry * (1.0 - tp1),
			TP2: entry * (1.0 - tp2),
			TP3: entry * (1.0 - tp3),
			SL:  entry * (1.0 + sl),
		}
	}
	return nil
}

func stageCat(stages map[string]domain.Stage, intervals []string, idx int) domain.StageCategory {
	if idx >= len(intervals) {
		return domain.StageInsufficient
	}
	st, ok := stages[intervals[idx]]
	if !ok {
		return domain.StageInsufficient
	}
	return st.Category
}

func intervalLabel(intervals []string, idx int) string {
	if idx >= len(intervals) {
		return "?"
	}
	return intervals[idx]
}
