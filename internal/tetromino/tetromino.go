package tetromino

import "github.com/charmbracelet/lipgloss"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

// NumKinds is the number of distinct tetrominoes.
const NumKinds = 7

func (k Kind) String() string {
	return string("IJLOSTZ"[k])
}

// Color returns the fixed display color for a kind.
func (k Kind) Color() lipgloss.Color {
	return colors[k]
}

var colors = [NumKinds]lipgloss.Color{
	I: "14",  // cyan
	J: "12",  // blue
	L: "214", // orange
	O: "11",  // yellow
	S: "10",  // green
	T: "13",  // magenta
	Z: "9",   // red
}

// Orientation is one of the 4 rotation states of a piece. Zero is the
// spawn orientation; states advance clockwise.
type Orientation uint8

// CW returns the next orientation clockwise.
func (o Orientation) CW() Orientation {
	return (o + 1) % 4
}

// CCW returns the next orientation counter-clockwise.
func (o Orientation) CCW() Orientation {
	return (o + 3) % 4
}

// Offset is a (column, row) pair. It serves both as a cell position
// relative to a piece's local origin and as an absolute grid position;
// rows grow upward, so a negative row offset extends below the origin.
type Offset struct {
	Col, Row int
}

// Cells returns the 4 occupied cell offsets of a kind at the given
// orientation, relative to the piece's local origin.
func Cells(k Kind, o Orientation) [4]Offset {
	return shapes[k][o]
}

// One entry per tetromino, describing its 4 rotation states by the
// relative positions of the occupied cells. The first state is the
// spawning state and the states are listed clockwise.
var shapes = [NumKinds][4][4]Offset{
	I: {
		{{0, -1}, {1, -1}, {2, -1}, {3, -1}},
		{{2, 0}, {2, -1}, {2, -2}, {2, -3}},
		{{0, -2}, {1, -2}, {2, -2}, {3, -2}},
		{{1, 0}, {1, -1}, {1, -2}, {1, -3}},
	},
	J: {
		{{0, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{1, 0}, {2, 0}, {1, -1}, {1, -2}},
		{{0, -1}, {1, -1}, {2, -1}, {2, -2}},
		{{1, 0}, {1, -1}, {0, -2}, {1, -2}},
	},
	L: {
		{{2, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{1, 0}, {1, -1}, {1, -2}, {2, -2}},
		{{0, -1}, {1, -1}, {2, -1}, {0, -2}},
		{{0, 0}, {1, 0}, {1, -1}, {1, -2}},
	},
	O: {
		{{1, 0}, {2, 0}, {1, -1}, {2, -1}},
		{{1, 0}, {2, 0}, {1, -1}, {2, -1}},
		{{1, 0}, {2, 0}, {1, -1}, {2, -1}},
		{{1, 0}, {2, 0}, {1, -1}, {2, -1}},
	},
	S: {
		{{1, 0}, {2, 0}, {0, -1}, {1, -1}},
		{{1, 0}, {1, -1}, {2, -1}, {2, -2}},
		{{1, -1}, {2, -1}, {0, -2}, {1, -2}},
		{{0, 0}, {0, -1}, {1, -1}, {1, -2}},
	},
	T: {
		{{1, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{1, 0}, {1, -1}, {2, -1}, {1, -2}},
		{{0, -1}, {1, -1}, {2, -1}, {1, -2}},
		{{1, 0}, {0, -1}, {1, -1}, {1, -2}},
	},
	Z: {
		{{0, 0}, {1, 0}, {1, -1}, {2, -1}},
		{{2, 0}, {1, -1}, {2, -1}, {1, -2}},
		{{0, -1}, {1, -1}, {1, -2}, {2, -2}},
		{{1, 0}, {0, -1}, {1, -1}, {0, -2}},
	},
}
