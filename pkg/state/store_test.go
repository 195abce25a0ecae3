package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "gmud_data.json"))

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if st.Boss.LastReading != nil {
		t.Error("fresh state should have no last reading")
	}
	if st.Boss.Players == nil || len(st.Boss.Players) != 0 {
		t.Error("fresh state should have an empty players map")
	}
	if st.Whale.RecentEvents == nil || len(st.Whale.RecentEvents) != 0 {
		t.Error("fresh state should have an empty whale event history")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmud_data.json")
	store := NewFileStore(path)

	reading := int64(29_950_000)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := NewGameState()
	st.Boss.LastReading = &reading
	st.Boss.LastActor = "Alice"
	st.Boss.LastMagnitude = 50_000
	st.Boss.LastAttackAt = &now
	st.Boss.RecentEvents = append(st.Boss.RecentEvents, Event{Magnitude: 50_000, Actor: "Alice"})
	st.Boss.Player("Alice").Damage = 50_000
	st.Whale.FullArtShown = true

	if err := store.Save(st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Boss.LastReading == nil || *loaded.Boss.LastReading != reading {
		t.Errorf("LastReading = %v, expected %d", loaded.Boss.LastReading, reading)
	}
	if loaded.Boss.LastActor != "Alice" || loaded.Boss.LastMagnitude != 50_000 {
		t.Errorf("last event = (%q, %d), expected (Alice, 50000)",
			loaded.Boss.LastActor, loaded.Boss.LastMagnitude)
	}
	if len(loaded.Boss.RecentEvents) != 1 || loaded.Boss.RecentEvents[0].Actor != "Alice" {
		t.Errorf("RecentEvents = %v, expected one Alice entry", loaded.Boss.RecentEvents)
	}
	if loaded.Boss.Players["Alice"].Damage != 50_000 {
		t.Errorf("Alice damage = %d, expected 50000", loaded.Boss.Players["Alice"].Damage)
	}
	if !loaded.Whale.FullArtShown {
		t.Error("whale FullArtShown should survive a round trip")
	}
	if loaded.Boss.LastAttackAt == nil || !loaded.Boss.LastAttackAt.Equal(now) {
		t.Errorf("LastAttackAt = %v, expected %v", loaded.Boss.LastAttackAt, now)
	}
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gmud_data.json")
	store := NewFileStore(path)

	if err := store.Save(NewGameState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, expected only the data file (no temp leftovers)", len(entries))
	}
}

func TestFileStoreSavePrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmud_data.json")
	store := NewFileStore(path)

	if err := store.Save(NewGameState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) == "" || data[0] != '{' || !json.Valid(data) {
		t.Fatalf("saved document is not valid JSON: %q", data)
	}
	// Indented output always spans multiple lines.
	if !containsByte(data, '\n') {
		t.Error("saved document is not pretty-printed")
	}
}

func TestFileStoreLoadLegacySchema(t *testing.T) {
	// Older documents predate the whale variant and event history.
	path := filepath.Join(t.TempDir(), "gmud_data.json")
	legacy := `{
  "boss": {
    "last_reading": 30000000,
    "players": {"Bob": {"damage": 1000, "last_attack_at": null}},
    "last_actor": "Bob",
    "last_magnitude": 1000
  }
}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	st, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if st.Boss.LastReading == nil || *st.Boss.LastReading != 30_000_000 {
		t.Errorf("LastReading = %v, expected 30000000", st.Boss.LastReading)
	}
	if st.Boss.RecentEvents == nil {
		t.Error("missing event history should default to empty, not nil")
	}
	if st.Whale.Players == nil {
		t.Error("missing whale state should default to an empty variant")
	}
	if st.Whale.LastReading != nil {
		t.Error("defaulted whale variant should be uninitialized")
	}
}

func TestPlayerCreatedLazily(t *testing.T) {
	st := NewGameState()

	p := st.Boss.Player("Newcomer")
	if p.Damage != 0 || p.LastAttackAt != nil {
		t.Errorf("new player record = %+v, expected zero record", p)
	}

	p.Damage = 500
	if st.Boss.Player("Newcomer").Damage != 500 {
		t.Error("Player() should return the same record on subsequent calls")
	}
	if len(st.Boss.Players) != 1 {
		t.Errorf("players map has %d entries, expected 1", len(st.Boss.Players))
	}
}

func containsByte(b []byte, c byte) bool {
	for _, x := range b {
		if x == c {
			return true
		}
	}
	return false
}
