package repository

import (
	"os"
	"path/filepath"
	"testing"

	"sentinel-backend/internal/domain"
)

func TestFileStateRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	repo, err := NewFileStateRepository(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := repo.Get("BTCUSDT"); ok {
		t.Error("fresh store should have no entries")
	}

	want := domain.AlertState{LastSignature: "deadbeef01234567", LastSentTS: 1_700_000_000}
	if err := repo.Put("BTCUSDT", want); err != nil {
		t.Fatal(err)
	}

	// A new instance must see the persisted state.
	reopened, err := NewFileStateRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := reopened.Get("BTCUSDT")
	if !ok {
		t.Fatal("expected persisted entry after reopen")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFileStateRepositoryOverwritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repo, err := NewFileStateRepository(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Put("ETHUSDT", domain.AlertState{LastSignature: "aaaa", LastSentTS: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Put("ETHUSDT", domain.AlertState{LastSignature: "bbbb", LastSentTS: 2}); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.Get("ETHUSDT")
	if got.LastSignature != "bbbb" || got.LastSentTS != 2 {
		t.Errorf("got %+v, want the newer entry", got)
	}
}

func TestFileStateRepositoryRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStateRepository(path); err == nil {
		t.Error("expected parse error for corrupt state file")
	}
}

func TestFileStateRepositoryLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileStateRepository(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Put("BTCUSDT", domain.AlertState{LastSignature: "cccc", LastSentTS: 3}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory should hold only state.json, got %v", names)
	}
}
