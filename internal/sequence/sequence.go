package sequence

import (
	"math/rand"

	"go-ttrys/internal/tetromino"
)

// Sequence produces the upcoming tetromino kinds from a shuffled bag:
// whenever the bag runs out it is refilled with the first bagSize kinds
// of a fresh uniform permutation of all seven, so kinds never repeat
// within a drawn batch (unless bagSize < 7 forces it by construction).
type Sequence struct {
	current tetromino.Kind
	bag     []tetromino.Kind
	bagSize int
}

// New creates a sequence with the given bag window, clamped to [1,7].
// One kind is popped eagerly so Peek is valid from the start.
func New(bagSize int) *Sequence {
	if bagSize < 1 {
		bagSize = 1
	}
	if bagSize > tetromino.NumKinds {
		bagSize = tetromino.NumKinds
	}
	s := &Sequence{
		bag:     make([]tetromino.Kind, 0, bagSize),
		bagSize: bagSize,
	}
	s.Pop()
	return s
}

// Peek returns the next kind without consuming it.
func (s *Sequence) Peek() tetromino.Kind {
	return s.current
}

// Pop consumes and returns the next kind, refilling the bag when empty.
func (s *Sequence) Pop() tetromino.Kind {
	if len(s.bag) == 0 {
		// rand.Perm is uniform over permutations, so truncating it keeps
		// each kind equally likely without any modulo conversion.
		for _, i := range rand.Perm(tetromino.NumKinds)[:s.bagSize] {
			s.bag = append(s.bag, tetromino.Kind(i))
		}
	}
	ret := s.current
	s.current = s.bag[len(s.bag)-1]
	s.bag = s.bag[:len(s.bag)-1]
	return ret
}
