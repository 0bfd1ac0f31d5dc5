package tetris

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/herbhall/cli-tetris/internal/playfield"
	"github.com/herbhall/cli-tetris/internal/scores"
	"github.com/herbhall/cli-tetris/internal/settings"
	"github.com/herbhall/cli-tetris/internal/shapes"
)

type phase int

const (
	phasePlaying phase = iota
	phasePaused
	phaseGameOver
)

const tickInterval = 16 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubbletea model driving a Driver with a real-time clock.
type Model struct {
	driver *Driver
	cfg    settings.Config
	mode   string

	phase     phase
	width     int
	height    int
	done      bool
	startedAt time.Time

	scoreStore *scores.Store
	best       uint64
}

// NewModel creates a fresh Tetris model. mode identifies the seed bucket
// used for best-run persistence ("random", or the decimal seed).
func NewModel(cfg settings.Config, mode string, seed uint64, scoreStore *scores.Store) Model {
	d := New(0, Config{
		Cols:               cfg.Cols,
		Rows:               cfg.Rows,
		PreviewSize:        cfg.PreviewSize,
		Seed:               seed,
		InitialGarbageRows: cfg.InitialGarbageRows,
		GarbageHoleMode:    cfg.GarbageHolePolicy.Mode(),
		GarbageHoleColumn:  cfg.GarbageHoleColumn,
		MsPerGravityDrop:   uint64(cfg.MsPerGravityDrop),
		MsPerSoftDropStep:  uint64(cfg.MsPerSoftDropStep),
		MsPerAutoshift:     uint64(cfg.MsPerAutoshift),
		AutoshiftDelayMs:   uint64(cfg.AutoshiftDelayMs),
		LockDelayMs:        uint64(cfg.LockDelayMs),
	})

	best := uint64(0)
	if scoreStore != nil {
		if e := scoreStore.Get(mode); e != nil {
			best = e.LinesCleared
		}
	}
	return Model{
		driver:     d,
		cfg:        cfg,
		mode:       mode,
		phase:      phasePlaying,
		scoreStore: scoreStore,
		best:       best,
	}
}

func (m Model) elapsedMs() uint64 {
	return uint64(time.Since(m.startedAt) / time.Millisecond)
}

// Init starts the render clock. The start time is recorded by the first
// Update.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Done returns true when the player wants to quit.
func (m Model) Done() bool { return m.done }

// Update handles input and advances game state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.phase == phasePlaying {
			m.driver.Tick(m.elapsedMs())
			if err := m.driver.GameOver(); err != nil {
				m.phase = phaseGameOver
				m.recordBest()
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case phasePlaying:
			return m.updatePlaying(key)
		case phasePaused:
			return m.updatePaused(key)
		case phaseGameOver:
			return m.updateGameOver(key)
		}
	}
	return m, nil
}

func (m *Model) recordBest() {
	if m.scoreStore == nil {
		return
	}
	if m.scoreStore.Update(m.mode, m.driver.Cleared()) {
		m.best = m.driver.Cleared()
	}
}

func (m Model) updatePlaying(key string) (tea.Model, tea.Cmd) {
	ms := m.elapsedMs()
	switch key {
	case "left", "h":
		m.driver.LeftPressed(ms)
	case "right", "l":
		m.driver.RightPressed(ms)
	case "down", "j":
		m.driver.SoftDropPressed(ms)
	case "up", "k", "x":
		m.driver.RotateCw(ms)
	case "z":
		m.driver.RotateCcw(ms)
	case "a":
		m.driver.Rotate180(ms)
	case "c", "shift+down":
		m.driver.Hold(ms)
	case " ":
		m.driver.HardDrop(ms)
		if err := m.driver.GameOver(); err != nil {
			m.phase = phaseGameOver
			m.recordBest()
		}
	case "p":
		m.phase = phasePaused
	case "q", "esc":
		m.done = true
	}
	if err := m.driver.GameOver(); err != nil {
		m.phase = phaseGameOver
		m.recordBest()
	}
	return m, nil
}

func (m Model) updatePaused(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "p":
		m.phase = phasePlaying
	case "q", "esc":
		m.done = true
	}
	return m, nil
}

func (m Model) updateGameOver(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		m.done = true
	}
	return m, nil
}

// View renders the complete game screen.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("T E T R I S"))

	cleared := fmt.Sprintf("Lines: %d", m.driver.Cleared())
	if m.best > 0 {
		cleared += fmt.Sprintf("  (Best: %d)", m.best)
	}
	sections = append(sections,
		infoStyle.Render(cleared),
		infoStyle.Render(fmt.Sprintf("FPS: %.0f", m.driver.FPSEstimate())),
		"",
	)

	board := m.renderBoard()
	side := lipgloss.JoinVertical(lipgloss.Left, m.renderHold(), "", m.renderQueue())
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", side), "")

	switch m.phase {
	case phasePaused:
		sections = append(sections, pauseStyle.Render("PAUSED"), "")
	case phaseGameOver:
		sections = append(sections, gameOverStyle.Render(
			fmt.Sprintf("GAME OVER -- lines cleared: %d", m.driver.Cleared()),
		), "")
	default:
		sections = append(sections, "")
	}

	var footer string
	switch m.phase {
	case phasePlaying:
		footer = "Arrow/HJKL Move | Space Drop | Z/X Rotate | C Hold | P Pause | Q Quit"
	case phasePaused:
		footer = "P Resume | Q Quit"
	case phaseGameOver:
		footer = "Q Quit"
	}
	sections = append(sections, footerStyle.Render(footer))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderBoard() string {
	snap := m.driver.Playfield(m.phase == phasePlaying)
	cols := snap.Cols()

	var rows strings.Builder
	top := borderStyle.Render("+" + strings.Repeat("--", cols) + "+")
	rows.WriteString(top)
	rows.WriteString("\n")

	for y := snap.Rows() - 1; y >= 0; y-- {
		rows.WriteString(borderStyle.Render("|"))
		for x := 0; x < cols; x++ {
			if t := snap.At(x, y); t != nil {
				rows.WriteString(cellStyle(*t).Render("[]"))
			} else {
				rows.WriteString(emptyStyle.Render(" ."))
			}
		}
		rows.WriteString(borderStyle.Render("|"))
		rows.WriteString("\n")
	}

	bottom := borderStyle.Render("+" + strings.Repeat("--", cols) + "+")
	rows.WriteString(bottom)
	return rows.String()
}

func (m Model) renderHold() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Hold:"))
	b.WriteString("\n")
	b.WriteString(renderShapeGlyph(m.driver.HeldShape()))
	return b.String()
}

func (m Model) renderQueue() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Next:"))
	b.WriteString("\n")
	for i, s := range m.driver.Queue() {
		shape := s
		b.WriteString(renderShapeGlyph(&shape))
		if i < len(m.driver.Queue())-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderShapeGlyph draws a shape's rotation-0 blocks in a 4x3 grid: every
// rotation-0 template (spec.md's fixed bounding boxes: O 2x2, I 4x4 but
// flat at y=2, the rest 3x3) fits within four columns and three rows.
func renderShapeGlyph(name *shapes.Name) string {
	if name == nil {
		return emptyStyle.Render("  --  \n        \n        ")
	}
	offsets := shapes.Blocks(*name, 0)
	cellSet := make(map[shapes.Point]bool, 4)
	for _, o := range offsets {
		cellSet[o] = true
	}
	tile := playfield.Tile{Shape: *name, Variant: playfield.Normal}

	var b strings.Builder
	for y := 2; y >= 0; y-- {
		for x := 0; x < 4; x++ {
			if cellSet[shapes.Point{X: x, Y: y}] {
				b.WriteString(cellStyle(tile).Render("[]"))
			} else {
				b.WriteString("  ")
			}
		}
		if y > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
