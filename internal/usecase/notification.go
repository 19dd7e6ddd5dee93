package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"sentinel-backend/internal/domain"
	"sentinel-backend/internal/repository"
)

// Clock abstracts time for deterministic cooldown tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Signature derives the dedup key from the stage categories and the tactical
// category, in macro-to-tactical order. It is deterministic across restarts.
func Signature(intervals []string, stages map[string]domain.Stage, tactical domain.TacticalScore) string {
	h := fnv.New64a()
	for i, interval := range intervals {
		if i > 0 {
			h.Write([]byte("|"))
		}
		if i == len(intervals)-1 {
			h.Write([]byte(tactical.Category))
			continue
		}
		h.Write([]byte(stages[interval].Category))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// AlertGate suppresses repeated alerts: a send is blocked while the signature
// is unchanged and the cooldown window has not elapsed. State mutations go
// through a single-writer lock and land on durable storage.
type AlertGate struct {
	state    domain.AlertStateStore
	cooldown time.Duration
	clock    Clock
	mu       sync.Mutex
}

func NewAlertGate(state domain.AlertStateStore, cooldown time.Duration, clock Clock) *AlertGate {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AlertGate{state: state, cooldown: cooldown, clock: clock}
}

// ShouldSend reports whether an alert with this signature may go out now.
func (g *AlertGate) ShouldSend(symbol, signature string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.state.Get(symbol)
	if !ok {
		return true
	}
	if st.LastSignature != signature {
		return true
	}
	elapsed := g.clock.Now().Unix() - st.LastSentTS
	return elapsed >= int64(g.cooldown.Seconds())
}

// MarkSent records an accepted send for the symbol.
func (g *AlertGate) MarkSent(symbol, signature string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Put(symbol, domain.AlertState{
		LastSignature: signature,
		LastSentTS:    g.clock.Now().Unix(),
	})
}

// AlertSink is a text notification destination that may route internally by
// confidence (e.g. premium vs general channel).
type AlertSink interface {
	SendAlert(ctx context.Context, text string, confidence float64) error
	SendReport(ctx context.Context, text string) error
}

// PushSink is a device push destination (FCM).
type PushSink interface {
	IsEnabled() bool
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// Dispatcher fans an authorized decision out to the configured sinks.
// Delivery errors are logged and never block the rest of the cycle.
type Dispatcher struct {
	sink   AlertSink
	push   PushSink
	tokens *repository.TokenRepository
}

func NewDispatcher(sink AlertSink, push PushSink, tokens *repository.TokenRepository) *Dispatcher {
	return &Dispatcher{sink: sink, push: push, tokens: tokens}
}

// DispatchAlert sends the entry alert to every sink.
func (d *Dispatcher) DispatchAlert(ctx context.Context, dec domain.DecisionContext, text string) {
	if d.sink != nil {
		if err := d.sink.SendAlert(ctx, text, dec.Confidence); err != nil {
			log.Printf("dispatch %s: alert sink: %v", dec.Symbol, err)
		}
	}
	if d.push != nil && d.push.IsEnabled() && d.tokens != nil {
		tokens := d.tokens.GetAllTokens()
		if len(tokens) == 0 {
			return
		}
		title := fmt.Sprintf("%s %s", dec.Symbol, dec.Direction)
		body := fmt.Sprintf("Conf: %.2f | L=%d%% S=%d%%", dec.Confidence, dec.Tactical.LongPct, dec.Tactical.ShortPct)
		data := map[string]string{
			"symbol":     dec.Symbol,
			"direction":  string(dec.Direction),
			"confidence": fmt.Sprintf("%.2f", dec.Confidence),
		}
		if err := d.push.SendMulticast(ctx, tokens, title, body, data); err != nil {
			log.Printf("dispatch %s: push: %v", dec.Symbol, err)
		}
	}
}

// DispatchReport sends a non-entry cycle report to the text sink only.
func (d *Dispatcher) DispatchReport(ctx context.Context, text string) {
	if d.sink == nil {
		return
	}
	if err := d.sink.SendReport(ctx, text); err != nil {
		log.Printf("dispatch report: %v", err)
	}
}
