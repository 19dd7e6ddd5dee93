package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"sentinel-backend/internal/config"
	"sentinel-backend/internal/domain"
)

// Sentinel runs the scan cycles: fan out per symbol under a concurrency
// limit, analyze all timeframes, consolidate, gate and dispatch alerts.
type Sentinel struct {
	cfg        *config.Config
	provider   domain.MarketDataProvider
	snapshots  *SnapshotBuilder
	results    domain.ResultRepository
	history    domain.SignalHistory
	gate       *AlertGate
	dispatcher *Dispatcher
	clock      Clock
}

func NewSentinel(cfg *config.Config, provider domain.MarketDataProvider, snapshots *SnapshotBuilder,
	results domain.ResultRepository, history domain.SignalHistory, gate *AlertGate,
	dispatcher *Dispatcher, clock Clock) *Sentinel {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Sentinel{
		cfg:        cfg,
		provider:   provider,
		snapshots:  snapshots,
		results:    results,
		history:    history,
		gate:       gate,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Run executes scan cycles until ctx is cancelled. A cancellation lets the
// in-flight cycle finish its running analyses but starts no new cycle.
func (s *Sentinel) Run(ctx context.Context) {
	log.Printf("sentinel started: %d assets, intervals %v, cycle %s, concurrency %d",
		len(s.cfg.Assets), s.cfg.Intervals, s.cfg.CycleInterval, s.cfg.MaxConcurrency)

	for {
		s.RunCycle(ctx)
		select {
		case <-time.After(s.cfg.CycleInterval):
		case <-ctx.Done():
			log.Println("sentinel stopped")
			return
		}
	}
}

// RunCycle scans every configured symbol once and stores the results. Each
// symbol is independently fallible; the cycle always completes.
func (s *Sentinel) RunCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := s.clock.Now()
	log.Printf("scan cycle starting: %d symbols", len(s.cfg.Assets))

	sem := make(chan struct{}, s.cfg.MaxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []domain.DecisionContext
	authorized := 0
	errors := 0

	for _, sym := range s.cfg.Assets {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			// Stagger the fan-out so the provider is not hit in a burst.
			if s.cfg.PerAssetJitter > 0 {
				jitter := time.Duration(rand.Int63n(int64(s.cfg.PerAssetJitter)))
				select {
				case <-time.After(jitter):
				case <-ctx.Done():
					return
				}
			}

			sem <- struct{}{}
			defer func() { <-sem }()

			dec, err := s.AnalyzeSymbol(ctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("worker %s: %v", symbol, err)
				errors++
				return
			}
			results = append(results, dec)
			if dec.Authorized {
				authorized++
			}
		}(sym)
	}
	wg.Wait()

	s.results.SaveResults(results)
	log.Printf("scan cycle done in %s: %d results, %d authorized, %d errors",
		time.Since(start).Round(time.Millisecond), len(results), authorized, errors)
}

// AnalyzeSymbol builds the snapshot, classifies the macro timeframes, scores
// the tactical one, consolidates and (when authorized and not deduplicated)
// dispatches the alert.
func (s *Sentinel) AnalyzeSymbol(ctx context.Context, symbol string) (domain.DecisionContext, error) {
	if len(s.cfg.Intervals) < 2 {
		return domain.DecisionContext{}, fmt.Errorf("analyze %s: need at least 2 intervals, have %d", symbol, len(s.cfg.Intervals))
	}

	snap := s.snapshots.Build(ctx, symbol, s.cfg.Intervals)

	stages := make(map[string]domain.Stage, len(s.cfg.Intervals))
	tacticalInterval := s.cfg.Intervals[len(s.cfg.Intervals)-1]

	var tactical domain.TacticalScore
	for _, interval := range s.cfg.Intervals {
		tf := snap[interval]
		if interval == tacticalInterval {
			if !tf.OK {
				tactical = domain.TacticalScore{
					Category: domain.TacticalInsufficient,
					Message:  "Nenhum dado disponível para pontuar o ativo.",
				}
				continue
			}
			tactical = ScoreTactical(TacticalInputsFromBundle(tf.Indicators), s.cfg.OBVBars)
			continue
		}
		if !tf.OK {
			stages[interval] = domain.Stage{
				Category: domain.StageInsufficient,
				Message:  "Timeframe indisponível.",
			}
			continue
		}
		stages[interval] = ClassifyStage(StageInputsFromBundle(tf.Indicators))
	}

	dec := Consolidate(symbol, s.cfg.Intervals, stages, tactical, s.cfg.ConfidenceThreshold, s.clock.Now())

	log.Printf("%s: %s | dir=%s conf=%.2f L=%d%% S=%d%%",
		symbol, tactical.Category, dec.Direction, dec.Confidence, tactical.LongPct, tactical.ShortPct)

	signature := Signature(s.cfg.Intervals, stages, tactical)

	if dec.Authorized {
		if price, err := s.provider.CurrentPrice(ctx, symbol); err == nil {
			dec.EntryPrice = price
			dec.Targets = ComputeTargets(price, dec.Direction, s.cfg.TP1Pct, s.cfg.TP2Pct, s.cfg.TP3Pct, s.cfg.SLPct)
		} else {
			log.Printf("%s: current price: %v", symbol, err)
		}

		if s.gate.ShouldSend(symbol, signature) {
			s.dispatcher.DispatchAlert(ctx, dec, FormatAlert(dec))
			if err := s.gate.MarkSent(symbol, signature); err != nil {
				log.Printf("%s: persist alert state: %v", symbol, err)
			}
			s.recordSignal(ctx, dec, signature)
		}
	} else if s.cfg.VerboseDiscord && s.gate.ShouldSend(symbol, signature) {
		s.dispatcher.DispatchReport(ctx, FormatReport(dec))
		if err := s.gate.MarkSent(symbol, signature); err != nil {
			log.Printf("%s: persist alert state: %v", symbol, err)
		}
	}

	return dec, nil
}

func (s *Sentinel) recordSignal(ctx context.Context, dec domain.DecisionContext, signature string) {
	if s.history == nil {
		return
	}
	rec := &domain.SignalRecord{
		ID:         fmt.Sprintf("%s-%d", dec.Symbol, dec.GeneratedAt.UnixMilli()),
		Symbol:     dec.Symbol,
		Direction:  dec.Direction,
		Confidence: dec.Confidence,
		EntryPrice: dec.EntryPrice,
		Stages:     signature,
		CreatedAt:  dec.GeneratedAt,
	}
	if dec.Targets != nil {
		rec.TP1 = dec.Targets.TP1
		rec.SL = dec.Targets.SL
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		log.Printf("%s: signal history: %v", dec.Symbol, err)
	}
}

// FormatAlert renders the entry alert text sent to the notification sinks.
func FormatAlert(dec domain.DecisionContext) string {
	text := fmt.Sprintf("**%s** - %s\n%s\nConf: %.2f | L=%d%% | S=%d%%",
		dec.Symbol, dec.Direction, dec.Message, dec.Confidence, dec.Tactical.LongPct, dec.Tactical.ShortPct)
	if dec.Targets != nil {
		text += fmt.Sprintf("\nEntry: %.6f | TP1: %.6f | TP2: %.6f | TP3: %.6f | SL: %.6f",
			dec.EntryPrice, dec.Targets.TP1, dec.Targets.TP2, dec.Targets.TP3, dec.Targets.SL)
	}
	return text
}

// FormatReport renders the verbose non-entry report.
func FormatReport(dec domain.DecisionContext) string {
	return fmt.Sprintf("%s - %s\n%s\nConf: %.2f | L=%d%% | S=%d%%",
		dec.Symbol, dec.Tactical.Category, dec.Message, dec.Confidence, dec.Tactical.LongPct, dec.Tactical.ShortPct)
}
