package game

import (
	"time"

	"go-ttrys/internal/board"
	"go-ttrys/internal/scoring"
	"go-ttrys/internal/sequence"
	"go-ttrys/internal/state"
	"go-ttrys/internal/tetromino"
)

// Game encapsulates the core simulation, independent of the UI. The
// presentation layer feeds it ticks and actions and reads its state back
// through the query methods; it never mutates the engine directly.
type Game struct {
	State *state.State
}

// NewGame initializes a new game instance with the given bag window.
func NewGame(bagSize int, sc *scoring.Scoring) *Game {
	return &Game{
		State: state.NewState(sequence.New(bagSize), sc),
	}
}

// HandleTick advances the simulation by one step. The caller decides the
// cadence using FallInterval.
func (g *Game) HandleTick() {
	if !g.State.Running() {
		return
	}
	g.State.Tick()
}

// HandleAction processes one abstract user action.
func (g *Game) HandleAction(action state.Action) {
	if !g.State.Running() {
		return
	}
	g.State.Apply(action)
}

// Cell returns the grid cell at the given column and row.
func (g *Game) Cell(col, row int) board.Cell {
	return g.State.Board.Cell(col, row)
}

// Active returns the piece under player control, or nil outside the
// fall/lock phases.
func (g *Game) Active() *state.ActivePiece {
	return g.State.Active
}

// NextKind previews the next piece without consuming it.
func (g *Game) NextKind() tetromino.Kind {
	return g.State.Sequence.Peek()
}

func (g *Game) Score() int {
	return g.State.Score.CurrentScore
}

func (g *Game) Level() int {
	return g.State.Score.Level()
}

func (g *Game) Lines() int {
	return g.State.Score.LineCount
}

func (g *Game) Running() bool {
	return g.State.Running()
}

func (g *Game) Paused() bool {
	return g.State.Paused()
}

// FallInterval returns the tick interval for the current level.
func (g *Game) FallInterval() time.Duration {
	return scoring.FallInterval(g.Level())
}
