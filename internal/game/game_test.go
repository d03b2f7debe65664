package game

import (
	"testing"
	"time"

	"go-ttrys/internal/board"
	"go-ttrys/internal/scoring"
	"go-ttrys/internal/state"
	"go-ttrys/internal/tetromino"
)

// MockStorage implements scoring.ScoreStorage for testing.
type MockStorage struct {
	Entries    []scoring.ScoreHistoryEntry
	SaveCalled bool
}

func (m *MockStorage) LoadAll() ([]scoring.ScoreHistoryEntry, error) {
	return m.Entries, nil
}

func (m *MockStorage) SaveAll(entries []scoring.ScoreHistoryEntry) error {
	m.Entries = entries
	m.SaveCalled = true
	return nil
}

func newTestGame(t *testing.T) (*Game, *MockStorage) {
	t.Helper()
	store := &MockStorage{}
	sc, err := scoring.InitScoring(store)
	if err != nil {
		t.Fatalf("InitScoring failed: %v", err)
	}
	return NewGame(5, sc), store
}

func TestGame_InitialQueries(t *testing.T) {
	g, _ := newTestGame(t)

	if !g.Running() {
		t.Error("a new game should be running")
	}
	if g.Paused() {
		t.Error("a new game should not be paused")
	}
	if g.Score() != 0 || g.Level() != 0 || g.Lines() != 0 {
		t.Errorf("expected zeroed score/level/lines, got %d/%d/%d", g.Score(), g.Level(), g.Lines())
	}
	if g.Active() != nil {
		t.Error("no piece should exist before the first tick")
	}
	if k := g.NextKind(); k < 0 || k >= tetromino.NumKinds {
		t.Errorf("NextKind returned invalid kind %d", k)
	}
	if g.FallInterval() != 600*time.Millisecond {
		t.Errorf("FallInterval at level 0 = %v, expected 600ms", g.FallInterval())
	}
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			if g.Cell(col, row).State != board.Empty {
				t.Fatalf("cell (%d,%d) not empty on a new board", col, row)
			}
		}
	}
}

func TestGame_SpawnConsumesPeekedKind(t *testing.T) {
	g, _ := newTestGame(t)

	next := g.NextKind()
	g.HandleTick()

	if g.Active() == nil {
		t.Fatal("expected an active piece after the spawn tick")
	}
	if g.Active().Kind != next {
		t.Errorf("spawned kind %s, but NextKind promised %s", g.Active().Kind, next)
	}
}

func TestGame_RunsToTopOut(t *testing.T) {
	g, store := newTestGame(t)

	// Hard-drop every piece in place; the center columns fill and the
	// game must top out within a bounded number of ticks.
	for i := 0; i < 1000 && g.Running(); i++ {
		g.HandleAction(state.HardDrop)
		g.HandleTick()
	}

	if g.Running() {
		t.Fatal("game did not end after filling the center columns")
	}
	if !store.SaveCalled {
		t.Error("expected the run to be persisted on game over")
	}

	// Final queries stay meaningful; input becomes a no-op.
	score := g.Score()
	g.HandleAction(state.MoveLeft)
	g.HandleTick()
	if g.Score() != score {
		t.Error("score changed after game over")
	}
}

func TestGame_PauseBlocksTicks(t *testing.T) {
	g, _ := newTestGame(t)
	g.HandleTick()
	piece := *g.Active()

	g.HandleAction(state.TogglePause)
	if !g.Paused() {
		t.Fatal("expected the game to pause")
	}
	g.HandleTick()
	g.HandleTick()
	if *g.Active() != piece {
		t.Error("piece moved while paused")
	}

	g.HandleAction(state.TogglePause)
	if g.Paused() {
		t.Error("expected the game to resume")
	}
	g.HandleTick()
	if g.Active().Position.Row != piece.Position.Row-1 {
		t.Error("piece should fall again after resuming")
	}
}

func TestGame_FallIntervalTracksLevel(t *testing.T) {
	g, _ := newTestGame(t)

	g.State.Score.CurrentScore = 2500
	if g.Level() != 2 {
		t.Fatalf("level = %d, expected 2", g.Level())
	}
	if g.FallInterval() >= 600*time.Millisecond {
		t.Errorf("FallInterval at level 2 = %v, expected under 600ms", g.FallInterval())
	}
	if g.FallInterval() <= 150*time.Millisecond {
		t.Errorf("FallInterval at level 2 = %v, expected over 150ms", g.FallInterval())
	}
}
