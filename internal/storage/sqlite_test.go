package storage

import (
	"database/sql"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("flappy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("water", 5); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].Player != AnonymousPlayer {
			t.Errorf("scores[%d].Player = %q, want %q", i, scores[i].Player, AnonymousPlayer)
		}
		if scores[i].RunID == "" {
			t.Errorf("scores[%d] has no run ID", i)
		}
	}

	other, err := store.TopScores("water", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 water score, got %d", len(other))
	}
}

func TestStoreRecordRunIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	run := Run{RunID: "run-1", GameID: "flappy", Player: "alice", Score: 7}

	inserted, err := store.RecordRun(run)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if !inserted {
		t.Fatal("first RecordRun() should insert")
	}

	run.Score = 9
	inserted, err = store.RecordRun(run)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if inserted {
		t.Error("second RecordRun() with the same run ID should be ignored")
	}

	scores, _ := store.AllScores("flappy")
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	if scores[0].Score != 7 || scores[0].Player != "alice" || scores[0].RunID != "run-1" {
		t.Errorf("unexpected entry: %+v", scores[0])
	}
}

func TestStoreRecordRunValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.RecordRun(Run{GameID: "flappy", Score: 1}); err == nil {
		t.Error("RecordRun() without a run ID should fail")
	}

	if _, err := store.RecordRun(Run{RunID: "r", GameID: "flappy", Score: 1}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	scores, _ := store.AllScores("flappy")
	if len(scores) != 1 || scores[0].Player != AnonymousPlayer {
		t.Errorf("empty player should be stored as %q: %+v", AnonymousPlayer, scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("non-positive limit should use the default, got %d rows", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("flappy", 100)
	store.SaveScore("flappy", 300)
	store.SaveScore("flappy", 200)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy", 100)
	store.SaveScore("flappy", 200)
	store.SaveScore("water", 300)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}

	waterScores, _ := store.TopScores("water", 10)
	if len(waterScores) != 1 {
		t.Errorf("Water scores should not be affected by clearing flappy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(Run{RunID: "a", GameID: "flappy", Player: "alice", Score: 4})
	store.RecordRun(Run{RunID: "b", GameID: "flappy", Player: "bob", Score: 8})
	store.RecordRun(Run{RunID: "c", GameID: "flappy", Player: "alice", Score: 6})
	store.RecordRun(Run{RunID: "d", GameID: "water", Score: 1})

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 8 || stats.TotalScore != 18 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 6 {
		t.Errorf("AvgScore = %v, want 6", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for unplayed game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["water"].GamesCount != 1 || all["flappy"].HighScore != 8 {
		t.Errorf("unexpected per-game stats: flappy=%+v water=%+v", all["flappy"], all["water"])
	}
}

func TestStoreMigratesLegacySchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('flappy', 42);
	`)
	db.Close()
	if err != nil {
		t.Fatalf("legacy schema setup failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on legacy database failed: %v", err)
	}
	defer store.Close()

	scores, err := store.AllScores("flappy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 42 || scores[0].RunID != "" {
		t.Errorf("legacy row not preserved: %+v", scores)
	}

	if _, err := store.RecordRun(Run{RunID: "new", GameID: "flappy", Score: 1}); err != nil {
		t.Fatalf("RecordRun() after migration failed: %v", err)
	}
}

func TestStoreNestedPath(t *testing.T) {
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
