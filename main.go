package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go-ttrys/internal/board"
	"go-ttrys/internal/game"
	"go-ttrys/internal/scoring"
	"go-ttrys/internal/state"
	"go-ttrys/internal/tetromino"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle = lipgloss.NewStyle().Background(lipgloss.Color("15")) // flash for completed rows
	panelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	HardDrop  key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move right"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "rotate cw"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "rotate ccw"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "hard drop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear stack"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.RotateCCW, k.HardDrop, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.RotateCW, k.RotateCCW},
		{k.HardDrop, k.Pause, k.Reset, k.Quit},
	}
}

type LocalState struct {
	Game *game.Game
	Keys keyMap
	Help help.Model
}

type TickMsg time.Time

// tickCmd schedules the next simulation step. The interval follows the
// difficulty curve, so the chain re-reads it on every tick.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func initialModel(bagSize int, noScores bool) (*LocalState, error) {
	var storage scoring.ScoreStorage
	if noScores {
		storage = scoring.NopStorage{}
	} else {
		// Create the concrete storage implementation.
		jfs, err := scoring.NewJSONFileStorage()
		if err != nil {
			return nil, fmt.Errorf("failed to create score storage: %w", err)
		}
		storage = jfs
	}

	sc, err := scoring.InitScoring(storage)
	if err != nil {
		return nil, err
	}

	return &LocalState{
		Game: game.NewGame(bagSize, sc),
		Keys: defaultKeyMap(),
		Help: help.New(),
	}, nil
}

func (s *LocalState) Init() tea.Cmd {
	return tickCmd(s.Game.FallInterval())
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		s.Game.HandleTick()
		if !s.Game.Running() {
			return s, tea.Quit
		}
		if s.Game.Paused() {
			// The tick chain stops here; resuming restarts it.
			return s, nil
		}
		return s, tickCmd(s.Game.FallInterval())
	case tea.WindowSizeMsg:
		s.Help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.Keys.Quit):
			s.Game.HandleAction(state.Quit)
			return s, tea.Quit
		case key.Matches(msg, s.Keys.Left):
			s.Game.HandleAction(state.MoveLeft)
		case key.Matches(msg, s.Keys.Right):
			s.Game.HandleAction(state.MoveRight)
		case key.Matches(msg, s.Keys.RotateCW):
			s.Game.HandleAction(state.RotateCW)
		case key.Matches(msg, s.Keys.RotateCCW):
			s.Game.HandleAction(state.RotateCCW)
		case key.Matches(msg, s.Keys.HardDrop):
			s.Game.HandleAction(state.HardDrop)
		case key.Matches(msg, s.Keys.Reset):
			s.Game.HandleAction(state.ClearStack)
		case key.Matches(msg, s.Keys.Pause):
			wasPaused := s.Game.Paused()
			s.Game.HandleAction(state.TogglePause)
			if wasPaused && !s.Game.Paused() {
				return s, tickCmd(s.Game.FallInterval())
			}
		}
	}

	return s, nil
}

// RenderBoard draws the well with the stack, the pending-clear flash and
// the active piece overlaid.
func (s *LocalState) RenderBoard() string {
	// Absolute positions covered by the active piece.
	active := map[tetromino.Offset]lipgloss.Color{}
	if p := s.Game.Active(); p != nil {
		for _, cell := range tetromino.Cells(p.Kind, p.Orientation) {
			pos := tetromino.Offset{Col: p.Position.Col + cell.Col, Row: p.Position.Row + cell.Row}
			if pos.Col >= 0 && pos.Col < board.Cols && pos.Row >= 0 && pos.Row < board.Rows {
				active[pos] = p.Kind.Color()
			}
		}
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render("╔" + strings.Repeat("══", board.Cols) + "╗"))
	b.WriteString("\n")
	for row := board.Rows - 1; row >= 0; row-- {
		b.WriteString(borderStyle.Render("║"))
		for col := 0; col < board.Cols; col++ {
			if color, ok := active[tetromino.Offset{Col: col, Row: row}]; ok {
				b.WriteString(lipgloss.NewStyle().Background(color).Render("  "))
				continue
			}
			cell := s.Game.Cell(col, row)
			switch cell.State {
			case board.Filled:
				b.WriteString(lipgloss.NewStyle().Background(cell.Color).Render("  "))
			case board.PendingClear:
				b.WriteString(pendingStyle.Render("<>"))
			default:
				b.WriteString("  ")
			}
		}
		b.WriteString(borderStyle.Render("║"))
		b.WriteString("\n")
	}
	b.WriteString(borderStyle.Render("╚" + strings.Repeat("══", board.Cols) + "╝"))
	return b.String()
}

// renderPreview draws the next piece in a 4x4 box at its spawn
// orientation.
func (s *LocalState) renderPreview() string {
	kind := s.Game.NextKind()
	occupied := map[tetromino.Offset]bool{}
	for _, cell := range tetromino.Cells(kind, 0) {
		occupied[cell] = true
	}

	style := lipgloss.NewStyle().Background(kind.Color())
	var b strings.Builder
	for row := 0; row > -4; row-- {
		for col := 0; col < 4; col++ {
			if occupied[tetromino.Offset{Col: col, Row: row}] {
				b.WriteString(style.Render("  "))
			} else {
				b.WriteString("  ")
			}
		}
		if row > -3 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *LocalState) renderPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NEXT"))
	b.WriteString("\n")
	b.WriteString(s.renderPreview())
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(fmt.Sprintf("Level: %d", s.Game.Level())))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(fmt.Sprintf("Score: %d", s.Game.Score())))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(fmt.Sprintf("Lines: %d", s.Game.Lines())))

	if high := s.Game.State.Score.GetHighScore(); high != nil {
		b.WriteString("\n\n")
		b.WriteString(panelStyle.Render(fmt.Sprintf("Best: %d", high.Score)))
	}

	if s.Game.Paused() {
		b.WriteString("\n\n")
		b.WriteString(pausedStyle.Render("PAUSED"))
	}
	return b.String()
}

func (s *LocalState) View() string {
	well := s.RenderBoard()
	panel := lipgloss.NewStyle().MarginLeft(4).Render(s.renderPanel())
	display := lipgloss.JoinHorizontal(lipgloss.Top, well, panel)
	return display + "\n" + s.Help.View(s.Keys) + "\n"
}

type bagFlag int

func (b *bagFlag) String() string {
	return fmt.Sprint(int(*b))
}

func (b *bagFlag) Set(v string) error {
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return fmt.Errorf("invalid bag size: %s", v)
	}
	if n < 1 || n > tetromino.NumKinds {
		return fmt.Errorf("bag size must be between 1 and %d", tetromino.NumKinds)
	}
	*b = bagFlag(n)
	return nil
}

func main() {
	// defaults
	var bag bagFlag = 5
	var noScores bool

	flag.Var(&bag, "bag", "Size of the piece bag window (1-7)")
	flag.Var(&bag, "b", "Size of the piece bag window (shorthand)")

	flag.BoolVar(&noScores, "noscores", false, "Do not load or save the score history")
	flag.BoolVar(&noScores, "ns", false, "Do not load or save the score history (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -b, --bag=N       Size of the piece bag window, 1-7 (default 5)\n")
		fmt.Fprintf(os.Stderr, "  -ns, --noscores    Do not load or save the score history\n")
		fmt.Fprintf(os.Stderr, "   -h, --help        Show this help message\n")
	}

	flag.Parse()

	model, err := initialModel(int(bag), noScores)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}

	// Final output
	final := model.Game.Score()
	fmt.Println(overStyle.Render(fmt.Sprintf("Game over ! %d pts", final)))
	sc := model.Game.State.Score
	if sc.GetAttempts() > 0 && sc.GotHighScore() {
		fmt.Println("You got a high score! Top 5 previous scores:")
		for _, entry := range sc.GetNScoreEntries(5) {
			fmt.Printf("  * %d (%d lines) on %s\n", entry.Score, entry.Lines, entry.Timestamp)
		}
	}
}
