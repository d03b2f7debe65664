package board

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"go-ttrys/internal/tetromino"
)

// Grid dimensions. Row 0 is the bottom row; row Rows-1 is the top.
const (
	Cols = 10
	Rows = 20
)

// CellState says what occupies one grid slot.
type CellState int

const (
	Empty CellState = iota
	Filled
	// PendingClear marks a just-completed row awaiting compaction.
	PendingClear
)

// Cell is one slot of the grid.
type Cell struct {
	State CellState
	Color lipgloss.Color
}

// Board owns the playing-field grid. The grid is stored flattened,
// indexed by row*Cols+col, with a cached highest occupied row. Only the
// engine mutates it; collaborators read it through Cell.
type Board struct {
	cells   []Cell
	highest int // highest occupied row index, -1 when the grid is empty
}

func New() *Board {
	return &Board{
		cells:   make([]Cell, Cols*Rows),
		highest: -1,
	}
}

// Cell returns the cell at the given column and row. Out-of-range
// coordinates indicate a defect in the caller and panic.
func (b *Board) Cell(col, row int) Cell {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		panic("board: cell coordinates out of range")
	}
	return b.cells[row*Cols+col]
}

// HighestRow returns the row index of the highest occupied cell, or -1
// when the grid is empty.
func (b *Board) HighestRow() int {
	return b.highest
}

// Collides reports whether the piece's footprint at origin+offset lands
// outside the grid or on a non-empty cell. It backs both movement
// legality and wall-kick testing.
func (b *Board) Collides(kind tetromino.Kind, o tetromino.Orientation, origin, offset tetromino.Offset) bool {
	for _, cell := range tetromino.Cells(kind, o) {
		col := origin.Col + offset.Col + cell.Col
		row := origin.Row + offset.Row + cell.Row
		if col < 0 || col >= Cols || row < 0 || row >= Rows {
			return true
		}
		if b.cells[row*Cols+col].State != Empty {
			return true
		}
	}
	return false
}

// Lock burns the piece's footprint into the grid. The caller must have
// verified the position is collision-free.
func (b *Board) Lock(kind tetromino.Kind, o tetromino.Orientation, origin tetromino.Offset, color lipgloss.Color) {
	for _, cell := range tetromino.Cells(kind, o) {
		col := origin.Col + cell.Col
		row := origin.Row + cell.Row
		b.cells[row*Cols+col] = Cell{State: Filled, Color: color}
		if row > b.highest {
			b.highest = row
		}
	}
}

// FullRowsTouching returns, sorted ascending, the distinct rows touched
// by the piece at origin in which every column is occupied. Only rows the
// just-locked piece touches can have been completed, so the check never
// scans the whole grid.
func (b *Board) FullRowsTouching(kind tetromino.Kind, o tetromino.Orientation, origin tetromino.Offset) []int {
	touched := map[int]bool{}
	for _, cell := range tetromino.Cells(kind, o) {
		touched[origin.Row+cell.Row] = true
	}

	var full []int
	for row := range touched {
		if b.rowFull(row) {
			full = append(full, row)
		}
	}
	sort.Ints(full)
	return full
}

func (b *Board) rowFull(row int) bool {
	for col := 0; col < Cols; col++ {
		if b.cells[row*Cols+col].State == Empty {
			return false
		}
	}
	return true
}

// MarkPendingClear flags every cell of the given rows for removal.
func (b *Board) MarkPendingClear(rows []int) {
	for _, row := range rows {
		for col := 0; col < Cols; col++ {
			b.cells[row*Cols+col] = Cell{State: PendingClear}
		}
	}
}

// Compact removes the given rows (sorted ascending) and drops everything
// above them down, in a single sweep over the occupied rows. It returns
// the lengths of the contiguous runs of removed rows, the clear streaks
// used for scoring.
func (b *Board) Compact(rows []int) []int {
	// The row above the stack works as a sentinel that can never match.
	rows = append(rows, b.highest+1)

	var streaks []int
	next := 0
	clearRow := rows[next]
	drop := 0
	streak := 0
	for row := 0; row <= b.highest; row++ {
		if row < clearRow {
			if drop > 0 {
				copy(b.cells[(row-drop)*Cols:(row-drop+1)*Cols], b.cells[row*Cols:(row+1)*Cols])
				if streak > 0 {
					streaks = append(streaks, streak)
					streak = 0
				}
			}
			continue
		}
		next++
		clearRow = rows[next]
		drop++
		streak++
	}
	if streak > 0 {
		streaks = append(streaks, streak)
	}

	// The top drop rows now hold stale duplicates.
	for r := 0; r < drop; r++ {
		row := b.highest - r
		for col := 0; col < Cols; col++ {
			b.cells[row*Cols+col] = Cell{}
		}
	}
	b.highest -= drop

	return streaks
}

// Reset empties the grid without touching anything else.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
	b.highest = -1
}
