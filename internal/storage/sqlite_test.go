package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("platformer:1-1", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("platformer:1-2", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("platformer:1-1", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
		if scores[i].GameID != "platformer:1-1" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	other, err := store.TopScores("platformer:1-2", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 || other[0].Score != 500 {
		t.Errorf("Expected a single 500 score for 1-2, got %+v", other)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("platformer:1-1", i*10)
	}

	scores, err := store.TopScores("platformer:1-1", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	all, err := store.AllScores("platformer:1-1")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer:1-1")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score 0 for empty game, got %d", high)
	}

	store.SaveScore("platformer:1-1", 100)
	store.SaveScore("platformer:1-1", 300)
	store.SaveScore("platformer:1-1", 200)

	high, err = store.HighScore("platformer:1-1")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer:1-1", 100)
	store.SaveScore("platformer:1-2", 200)

	if err := store.ClearScores("platformer:1-1"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("platformer:1-1", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	scores, _ = store.TopScores("platformer:1-2", 10)
	if len(scores) != 1 {
		t.Errorf("Expected other level to keep 1 score, got %d", len(scores))
	}
}

func TestStoreGamesWithScores(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.GamesWithScores()
	if err != nil {
		t.Fatalf("GamesWithScores() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no games, got %v", ids)
	}

	store.SaveScore("platformer:1-3", 10)
	store.SaveScore("platformer:1-1", 20)
	store.SaveScore("platformer:1-3", 30)

	ids, err = store.GamesWithScores()
	if err != nil {
		t.Fatalf("GamesWithScores() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "platformer:1-1" || ids[1] != "platformer:1-3" {
		t.Errorf("GamesWithScores() = %v", ids)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{LevelID: "1-1", Score: 300, LivesLeft: 2, Ticks: 1200, Cleared: true},
		{LevelID: "1-2", Score: 100, LivesLeft: 0, Ticks: 800},
		{LevelID: "1-1", Score: 50, LivesLeft: 0, Ticks: 400},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("SaveRun() id = %d, expected positive", id)
		}
	}

	level, err := store.RecentRuns("1-1", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(level) != 2 {
		t.Fatalf("Expected 2 runs for 1-1, got %d", len(level))
	}

	// Newest first
	if level[0].Score != 50 || level[0].Cleared {
		t.Errorf("level[0] = %+v", level[0])
	}
	if level[1].Score != 300 || !level[1].Cleared || level[1].LivesLeft != 2 || level[1].Ticks != 1200 {
		t.Errorf("level[1] = %+v", level[1])
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected limit of 2 runs, got %d", len(all))
	}
	if all[0].LevelID != "1-1" || all[1].LevelID != "1-2" {
		t.Errorf("RecentRuns(\"\") order = %s, %s", all[0].LevelID, all[1].LevelID)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("platformer:1-1")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("platformer:1-1", 100)
	store.SaveScore("platformer:1-1", 300)

	stats, err := store.GetGameStats("platformer:1-1")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
}
