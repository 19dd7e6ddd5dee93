package usecase

import (
	"testing"
	"time"

	"sentinel-backend/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type memStateStore struct {
	state map[string]domain.AlertState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{state: make(map[string]domain.AlertState)}
}

func (s *memStateStore) Get(symbol string) (domain.AlertState, bool) {
	st, ok := s.state[symbol]
	return st, ok
}

func (s *memStateStore) Put(symbol string, st domain.AlertState) error {
	s.state[symbol] = st
	return nil
}

func TestSignatureIsDeterministic(t *testing.T) {
	intervals := []string{"4h", "1h", "15m", "5m"}
	stages := map[string]domain.Stage{
		"4h":  {Category: domain.StageTrendUp},
		"1h":  {Category: domain.StageIntermediate},
		"15m": {Category: domain.StageIntermediate},
	}
	tactical := domain.TacticalScore{Category: domain.TacticalLong}

	a := Signature(intervals, stages, tactical)
	b := Signature(intervals, stages, tactical)
	if a != b {
		t.Errorf("same inputs produced %s and %s", a, b)
	}

	stages["1h"] = domain.Stage{Category: domain.StageNeutral}
	if c := Signature(intervals, stages, tactical); c == a {
		t.Error("changing a stage category must change the signature")
	}

	tactical.Category = domain.TacticalNoTrade
	stages["1h"] = domain.Stage{Category: domain.StageIntermediate}
	if d := Signature(intervals, stages, tactical); d == a {
		t.Error("changing the tactical category must change the signature")
	}
}

func TestAlertGateCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	gate := NewAlertGate(newMemStateStore(), 300*time.Second, clock)

	const sym = "BTCUSDT"
	const sig = "aabbccdd00112233"

	if !gate.ShouldSend(sym, sig) {
		t.Fatal("first send must pass")
	}
	if err := gate.MarkSent(sym, sig); err != nil {
		t.Fatal(err)
	}

	clock.now = clock.now.Add(100 * time.Second)
	if gate.ShouldSend(sym, sig) {
		t.Error("identical signature at t=100s with 300s cooldown must be suppressed")
	}

	clock.now = clock.now.Add(210 * time.Second) // t=310s
	if !gate.ShouldSend(sym, sig) {
		t.Error("identical signature after the cooldown must pass")
	}
}

func TestAlertGateNewSignatureBypassesCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	gate := NewAlertGate(newMemStateStore(), 300*time.Second, clock)

	if err := gate.MarkSent("BTCUSDT", "sig-a"); err != nil {
		t.Fatal(err)
	}
	clock.now = clock.now.Add(10 * time.Second)

	if !gate.ShouldSend("BTCUSDT", "sig-b") {
		t.Error("a changed signature must pass regardless of cooldown")
	}
	if gate.ShouldSend("BTCUSDT", "sig-a") {
		t.Error("the old signature is still inside the cooldown")
	}
}

func TestAlertGateSymbolsAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	gate := NewAlertGate(newMemStateStore(), 300*time.Second, clock)

	if err := gate.MarkSent("BTCUSDT", "sig-a"); err != nil {
		t.Fatal(err)
	}
	if !gate.ShouldSend("ETHUSDT", "sig-a") {
		t.Error("another symbol must not share the cooldown")
	}
}
