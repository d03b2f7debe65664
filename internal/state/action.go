package state

// Action is the closed set of abstract user inputs the engine accepts.
// The input collaborator maps raw key events onto these; the engine
// never sees key codes.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	RotateCW
	RotateCCW
	HardDrop
	TogglePause
	ClearStack
	Quit
)
