package state

import (
	"context"

	"github.com/looplab/fsm"

	"go-ttrys/internal/board"
	"go-ttrys/internal/scoring"
	"go-ttrys/internal/tetromino"
)

// Phase names of the piece lifecycle.
const (
	PhaseSpawn  = "spawn"
	PhaseFall   = "fall"
	PhaseLock   = "lock"
	PhaseClear  = "clearRows"
	PhasePaused = "paused"
	PhaseEnd    = "end"
)

// KindSource supplies the upcoming piece kinds. Satisfied by
// sequence.Sequence; tests substitute a scripted source.
type KindSource interface {
	Peek() tetromino.Kind
	Pop() tetromino.Kind
}

// ActivePiece is the piece under player control. It exists only between
// spawning and locking.
type ActivePiece struct {
	Kind        tetromino.Kind
	Position    tetromino.Offset
	Orientation tetromino.Orientation
}

// State is the simulation engine: the board, the active piece, and the
// lifecycle state machine. Tick and Apply are never called concurrently;
// the caller owns all scheduling.
type State struct {
	Board    *board.Board
	Sequence KindSource
	Score    *scoring.Scoring
	Active   *ActivePiece
	Kicks    tetromino.KickTable
	FSM      *fsm.FSM

	hardDrop   bool
	clearRows  []int // rows pending removal, ascending
	savedPhase string
}

// NewState creates the engine with an empty board, ready to spawn its
// first piece.
func NewState(seq KindSource, sc *scoring.Scoring) *State {
	s := &State{
		Board:      board.New(),
		Sequence:   seq,
		Score:      sc,
		Kicks:      tetromino.NoKicks,
		savedPhase: PhaseEnd,
	}

	s.FSM = fsm.NewFSM(
		PhaseSpawn,
		getPhaseTransitions(),
		getPhaseCallbacks(s),
	)

	return s
}

func getPhaseTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "spawned", Src: []string{PhaseSpawn}, Dst: PhaseFall},
		{Name: "topOut", Src: []string{PhaseSpawn}, Dst: PhaseEnd},

		{Name: "landed", Src: []string{PhaseFall}, Dst: PhaseLock},

		{Name: "rowsFull", Src: []string{PhaseLock}, Dst: PhaseClear},
		{Name: "noRows", Src: []string{PhaseLock}, Dst: PhaseSpawn},

		{Name: "compacted", Src: []string{PhaseClear}, Dst: PhaseSpawn},

		{Name: "pause", Src: []string{PhaseSpawn, PhaseFall, PhaseLock, PhaseClear}, Dst: PhasePaused},
		{Name: "quit", Src: []string{PhaseSpawn, PhaseFall, PhaseLock, PhaseClear, PhasePaused}, Dst: PhaseEnd},
	}
}

func getPhaseCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + PhaseLock: func(ctx context.Context, e *fsm.Event) {
			// The pending hard drop is consumed by landing.
			s.hardDrop = false
		},
		"enter_" + PhaseEnd: func(ctx context.Context, e *fsm.Event) {
			_ = s.Score.SaveEntries()
		},
	}
}

// Tick advances the simulation by exactly one phase's worth of work. The
// external timing loop calls it whenever the fall interval for the
// current level has elapsed; ticks while paused or ended do nothing.
func (s *State) Tick() {
	ctx := context.Background()
	switch s.FSM.Current() {
	case PhaseSpawn:
		s.spawn(ctx)
	case PhaseFall:
		s.fall(ctx)
	case PhaseLock:
		s.lock(ctx)
	case PhaseClear:
		s.clear(ctx)
	}
}

func (s *State) spawn(ctx context.Context) {
	kind := s.Sequence.Pop()
	position := tetromino.Offset{Col: board.Cols / 2, Row: board.Rows - 1}
	if kind == tetromino.I {
		// The I shape occupies the row below its origin in the spawn
		// orientation, so it starts one row higher to enter at the top.
		position.Row++
	}
	s.Active = &ActivePiece{Kind: kind, Position: position}

	if s.collides(s.Active.Orientation, tetromino.Offset{}) {
		// Top-out: no room for the new piece.
		_ = s.FSM.Event(ctx, "topOut")
		return
	}
	_ = s.FSM.Event(ctx, "spawned")
}

func (s *State) fall(ctx context.Context) {
	if s.hardDrop {
		// Search is bounded by the grid height; the floor guarantees a
		// collision within board.Rows steps.
		drop := 0
		for drop < board.Rows && !s.collides(s.Active.Orientation, tetromino.Offset{Row: -(drop + 1)}) {
			drop++
		}
		s.Active.Position.Row -= drop
		_ = s.FSM.Event(ctx, "landed")
		return
	}

	if s.collides(s.Active.Orientation, tetromino.Offset{Row: -1}) {
		_ = s.FSM.Event(ctx, "landed")
		return
	}
	s.Active.Position.Row--
}

func (s *State) lock(ctx context.Context) {
	p := s.Active
	s.Board.Lock(p.Kind, p.Orientation, p.Position, p.Kind.Color())
	rows := s.Board.FullRowsTouching(p.Kind, p.Orientation, p.Position)
	s.Active = nil

	if len(rows) > 0 {
		s.Board.MarkPendingClear(rows)
		s.clearRows = rows
		_ = s.FSM.Event(ctx, "rowsFull")
		return
	}
	_ = s.FSM.Event(ctx, "noRows")
}

func (s *State) clear(ctx context.Context) {
	streaks := s.Board.Compact(s.clearRows)
	s.clearRows = nil
	s.Score.ScoreStreaks(streaks)
	_ = s.FSM.Event(ctx, "compacted")
}

// Apply feeds one abstract user action into the engine. Illegal moves
// and rotations are silently ignored; they are not errors.
func (s *State) Apply(action Action) {
	ctx := context.Background()
	switch action {
	case MoveLeft:
		s.nudge(-1)
	case MoveRight:
		s.nudge(1)
	case RotateCW:
		s.rotate(true)
	case RotateCCW:
		s.rotate(false)
	case HardDrop:
		// Consumed on the next fall tick.
		s.hardDrop = true
	case TogglePause:
		s.togglePause(ctx)
	case ClearStack:
		// Debug/utility: empty the board, keep score and sequence.
		s.Board.Reset()
	case Quit:
		_ = s.FSM.Event(ctx, "quit")
	}
}

func (s *State) nudge(dir int) {
	if !s.FSM.Is(PhaseFall) {
		return
	}
	if s.collides(s.Active.Orientation, tetromino.Offset{Col: dir}) {
		return
	}
	s.Active.Position.Col += dir
}

func (s *State) rotate(cw bool) {
	if !s.FSM.Is(PhaseFall) {
		return
	}
	next := s.Active.Orientation.CW()
	if !cw {
		next = s.Active.Orientation.CCW()
	}
	// Try the kick offsets in order; the first collision-free one wins.
	for _, offset := range s.Kicks.Offsets(s.Active.Orientation, cw) {
		if s.collides(next, offset) {
			continue
		}
		s.Active.Orientation = next
		s.Active.Position.Col += offset.Col
		s.Active.Position.Row += offset.Row
		return
	}
}

func (s *State) togglePause(ctx context.Context) {
	if s.FSM.Is(PhasePaused) {
		// Pause is the only phase with return-to-caller semantics, so a
		// single saved phase stands in for a state stack.
		s.FSM.SetState(s.savedPhase)
		return
	}
	if s.FSM.Is(PhaseEnd) {
		return
	}
	s.savedPhase = s.FSM.Current()
	_ = s.FSM.Event(ctx, "pause")
}

func (s *State) collides(o tetromino.Orientation, offset tetromino.Offset) bool {
	if s.Active == nil {
		return false
	}
	return s.Board.Collides(s.Active.Kind, o, s.Active.Position, offset)
}

// Running reports whether the round is still in progress.
func (s *State) Running() bool {
	return !s.FSM.Is(PhaseEnd)
}

// Paused reports whether the engine is in the paused phase.
func (s *State) Paused() bool {
	return s.FSM.Is(PhasePaused)
}
