package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/bridge-runner/internal/bridge"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []int{100, 50, 200} {
		if _, err := store.SaveScore("normal", sc, 7, ""); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("hard", 500, 9, ""); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("normal", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("TopScores() = %+v, expected 200 then 100", scores)
	}
	if scores[0].Seed != 7 || scores[0].RunID != "" {
		t.Errorf("entry = %+v, expected seed 7 and no run", scores[0])
	}

	high, err := store.HighScore("hard")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("HighScore() = %d, expected 500", high)
	}
	if high, _ := store.HighScore("easy"); high != 0 {
		t.Errorf("HighScore() for empty preset = %d, expected 0", high)
	}

	if err := store.ClearScores("normal"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("normal", 10); len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("hard", 10); len(scores) != 1 {
		t.Error("clearing one preset should not touch another")
	}
}

func TestStoreSeedRoundTripsFullRange(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("normal", 1, 0xFFFFFFFF, ""); err != nil {
		t.Fatal(err)
	}
	scores, err := store.TopScores("normal", 1)
	if err != nil {
		t.Fatal(err)
	}
	if scores[0].Seed != 0xFFFFFFFF {
		t.Errorf("Seed = %d, expected max uint32", scores[0].Seed)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	rec := RunRecord{
		Seed: 42,
		Moves: []bridge.Move{
			{StartTime: 100, Duration: 250, IdleDurationMs: 100, Debug: &bridge.MoveDebug{StickTip: 220.5, PlatformX: 200, PlatformWidth: 40}},
			{StartTime: 900, Duration: 310, IdleDurationMs: 120},
		},
		Claimed:  4,
		Verified: 4,
		Verdict:  "ok",
		Preset:   "normal",
	}

	id, err := store.SaveRun(rec)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID", id)
	}
	if _, err := store.SaveScore("normal", 4, 42, id); err != nil {
		t.Fatal(err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a stored run")
	}
	if got.Seed != 42 || got.Claimed != 4 || got.Verdict != "ok" {
		t.Errorf("RunByID() = %+v", got)
	}
	if !reflect.DeepEqual(got.RunData(), bridge.RunData{Seed: 42, Moves: rec.Moves}) {
		t.Errorf("moves did not round trip: %+v", got.Moves)
	}

	missing, err := store.RunByID(uuid.New().String())
	if err != nil || missing != nil {
		t.Errorf("RunByID() for unknown id = %v, %v; expected nil, nil", missing, err)
	}

	scores, _ := store.TopScores("normal", 1)
	if scores[0].RunID != id {
		t.Errorf("score RunID = %q, expected %q", scores[0].RunID, id)
	}
}

func TestStoreRejectsMalformedRunID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{ID: "not-a-uuid", Verdict: "ok"}); err == nil {
		t.Error("SaveRun() accepted a malformed id")
	}
}

func TestStoreRecentRunsAndStats(t *testing.T) {
	store := openTestStore(t)

	verdicts := []string{"ok", "score_mismatch", "ok", "rejected"}
	var ids []string
	for i, v := range verdicts {
		id, err := store.SaveRun(RunRecord{Seed: uint32(i), Claimed: i, Verified: i, Verdict: v, Preset: "hard"})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
		store.SaveScore("hard", i*10, uint32(i), id)
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("RecentRuns(3) returned %d runs", len(runs))
	}
	if runs[0].ID != ids[3] {
		t.Errorf("most recent run = %s, expected %s", runs[0].ID, ids[3])
	}
	if runs[0].Moves == nil {
		t.Error("empty move log should decode to an empty slice")
	}

	stats, err := store.GetGameStats("hard")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 4 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 15 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.RunsStored != 4 || stats.RunsRejected != 2 {
		t.Errorf("run stats = %d stored, %d rejected; expected 4 and 2", stats.RunsStored, stats.RunsRejected)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("easy")
	if err != nil {
		t.Fatal(err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}
