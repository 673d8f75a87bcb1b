package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	// Reopening runs the migrations again
	store.Close()
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestTopScoresOrdering(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game  string
		score int
		level int
	}{
		{"platformer", 10, 2},
		{"platformer", 5, 1},
		{"platformer", 10, 3},
		{"platformer", 20, 4},
		{"platformer_endless", 99, 7},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.game, s.score, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	expected := []struct{ score, level int }{{20, 4}, {10, 3}, {10, 2}, {5, 1}}
	if len(scores) != len(expected) {
		t.Fatalf("got %d scores, expected %d", len(scores), len(expected))
	}
	for i, e := range expected {
		if scores[i].Score != e.score || scores[i].Level != e.level {
			t.Errorf("scores[%d] = %d/L%d, expected %d/L%d",
				i, scores[i].Score, scores[i].Level, e.score, e.level)
		}
		if scores[i].GameID != "platformer" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	limited, err := store.TopScores("platformer", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d rows", len(limited))
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty high score = %d, expected 0", high)
	}

	for _, s := range []int{3, 12, 7} {
		store.SaveScore("platformer", s, 1) //nolint:errcheck // Checked via HighScore
	}
	if high, _ = store.HighScore("platformer"); high != 12 {
		t.Errorf("HighScore = %d, expected 12", high)
	}
}

func TestRuns(t *testing.T) {
	store := openTestStore(t)

	fixed := uuid.New()
	runs := []Run{
		{GameID: "platformer", Score: 4, Level: 2, Deaths: 1, Duration: 90 * time.Second},
		{ID: fixed, GameID: "platformer", Score: 9, Level: 5, Deaths: 3, Duration: 3 * time.Minute},
		{GameID: "platformer_endless", Score: 1, Level: 8},
	}
	var ids []uuid.UUID
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == uuid.Nil {
			t.Error("SaveRun returned a nil UUID")
		}
		ids = append(ids, id)
	}
	if ids[1] != fixed {
		t.Errorf("SaveRun replaced a preset ID: %v", ids[1])
	}

	recent, err := store.RecentRuns("platformer", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d runs, expected 2", len(recent))
	}
	if recent[0].ID != fixed || recent[1].ID != ids[0] {
		t.Errorf("runs not newest first: %v, %v", recent[0].ID, recent[1].ID)
	}
	if recent[0].Duration != 3*time.Minute || recent[0].Deaths != 3 || recent[0].Level != 5 {
		t.Errorf("run round trip = %+v", recent[0])
	}

	level, err := store.MaxLevel("platformer")
	if err != nil {
		t.Fatalf("MaxLevel() failed: %v", err)
	}
	if level != 5 {
		t.Errorf("MaxLevel = %d, expected 5", level)
	}
	if level, _ = store.MaxLevel("unknown"); level != 0 {
		t.Errorf("MaxLevel for unknown game = %d, expected 0", level)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("platformer", 10, 2) //nolint:errcheck // Checked via stats
	store.SaveScore("platformer", 20, 3) //nolint:errcheck // Checked via stats
	store.SaveRun(Run{GameID: "platformer", Score: 10, Level: 2, Deaths: 2, Duration: time.Minute}) //nolint:errcheck // Checked via stats
	store.SaveRun(Run{GameID: "platformer", Score: 20, Level: 3, Deaths: 1, Duration: time.Minute}) //nolint:errcheck // Checked via stats

	stats, err = store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"games", stats.GamesCount, 2},
		{"high", stats.HighScore, 20},
		{"avg", stats.AvgScore, 15.0},
		{"max level", stats.MaxLevel, 3},
		{"deaths", stats.TotalDeaths, 3},
		{"play time", stats.PlayTime, 2 * time.Minute},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
		}
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer", 10, 1)                       //nolint:errcheck // Setup
	store.SaveScore("platformer_endless", 30, 1)               //nolint:errcheck // Setup
	store.SaveRun(Run{GameID: "platformer", Level: 4})         //nolint:errcheck // Setup
	store.SaveRun(Run{GameID: "platformer_endless", Level: 2}) //nolint:errcheck // Setup

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if high, _ := store.HighScore("platformer"); high != 0 {
		t.Errorf("platformer high score = %d after clear", high)
	}
	if level, _ := store.MaxLevel("platformer"); level != 0 {
		t.Errorf("platformer max level = %d after clear", level)
	}
	if high, _ := store.HighScore("platformer_endless"); high != 30 {
		t.Errorf("other game lost its scores: %d", high)
	}
	if level, _ := store.MaxLevel("platformer_endless"); level != 2 {
		t.Errorf("other game lost its runs: %d", level)
	}
}
