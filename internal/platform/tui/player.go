package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okhotin/piblocks/internal/core"
	"github.com/okhotin/piblocks/internal/physics"
)

// speedLevels are the playback speed multipliers stepped through with +/-.
var speedLevels = []float64{0.25, 0.5, 1, 2, 4, 8}

// defaultSpeedIdx selects real-time playback.
const defaultSpeedIdx = 2

// PlayerModel replays a sampled trajectory frame by frame. The simulation
// is already finished when the player starts; this model only moves a
// cursor through precomputed positions.
type PlayerModel struct {
	traj   *physics.Trajectory
	result *physics.Result
	wall   float64
	label  string

	screen   *core.Screen
	config   core.RuntimeConfig
	keys     *KeyMapper
	viewport core.Viewport

	// pos is the fractional frame cursor; fractional steps make the
	// slow-motion speed levels possible at a fixed tick rate.
	pos      float64
	speedIdx int
	paused   bool
	finished bool

	quitting bool
	backing  bool
}

// NewPlayerModel creates a playback model for a finished run.
func NewPlayerModel(traj *physics.Trajectory, res *physics.Result, wall float64, label string, cfg core.RuntimeConfig) *PlayerModel {
	m := &PlayerModel{
		traj:     traj,
		result:   res,
		wall:     wall,
		label:    label,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		keys:     NewKeyMapper(),
		speedIdx: defaultSpeedIdx,
	}
	m.fitViewport()
	return m
}

// fitViewport frames the wall and the whole trajectory with a small margin.
func (m *PlayerModel) fitViewport() {
	minX, maxX := m.traj.Bounds()
	if m.wall < minX {
		minX = m.wall
	}
	margin := (maxX - minX) * 0.05
	if margin < 0.5 {
		margin = 0.5
	}
	m.viewport = core.NewViewport(minX, maxX+margin, m.screen.Width())
}

// Init starts the playback tick loop.
func (m *PlayerModel) Init() tea.Cmd {
	return tickCmd(m.config.FPS)
}

// Update handles messages.
func (m *PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.advance()
		return m, tickCmd(m.config.FPS)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.fitViewport()
		return m, nil
	}

	return m, nil
}

func (m *PlayerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapPlaybackKey(msg) {
	case PlaybackQuit:
		m.quitting = true
		return m, tea.Quit
	case PlaybackBack:
		m.backing = true
		return m, tea.Quit
	case PlaybackTogglePause:
		if !m.finished {
			m.paused = !m.paused
		}
	case PlaybackRestart:
		m.pos = 0
		m.paused = false
		m.finished = false
	case PlaybackFaster:
		if m.speedIdx < len(speedLevels)-1 {
			m.speedIdx++
		}
	case PlaybackSlower:
		if m.speedIdx > 0 {
			m.speedIdx--
		}
	}
	return m, nil
}

// advance moves the frame cursor according to the current speed level.
func (m *PlayerModel) advance() {
	if m.paused || m.finished {
		return
	}
	m.pos += speedLevels[m.speedIdx]
	if int(m.pos) >= m.traj.Frames()-1 {
		m.pos = float64(m.traj.Frames() - 1)
		m.finished = true
	}
}

// View renders the current playback state.
func (m *PlayerModel) View() string {
	if m.quitting || m.backing {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// render draws the scene into the cell buffer.
func (m *PlayerModel) render() {
	s := m.screen
	s.Clear()

	frame := int(m.pos)
	leftX, rightX := m.traj.At(frame)
	events := m.traj.EventsBefore(frame)

	floorY := s.Height() - 3
	if floorY < 4 {
		floorY = 4
	}

	// Title and HUD
	s.DrawTextCentered(0, fmt.Sprintf("π blocks — %s", m.label))
	hud := fmt.Sprintf("collisions %d   t %6.2fs   speed x%g", events, float64(frame)/float64(m.traj.FPS), speedLevels[m.speedIdx])
	if m.paused {
		hud += "   [paused]"
	}
	s.DrawTextColored(2, 1, hud, core.ColorGray)

	// Floor and wall
	s.DrawHLine(0, floorY, s.Width(), '─')
	wallCol := m.viewport.Col(m.wall)
	s.DrawVLineColored(wallCol, 2, floorY-2, '│', core.ColorGray)

	// Boxes sit on the floor; terminal cells are roughly twice as tall as
	// wide, so box height is half the column span.
	maxH := floorY - 3
	m.drawBox(leftX, m.traj.LeftLength, floorY, maxH, '█', core.ColorCyan,
		fmt.Sprintf("%g kg", m.result.Left.Mass()))
	m.drawBox(rightX, m.traj.RightLength, floorY, maxH, '█', core.ColorOrange,
		fmt.Sprintf("%g kg", m.result.Right.Mass()))

	// Help line
	s.DrawTextColored(2, s.Height()-1, "space pause · r restart · +/- speed · b back · q quit", core.ColorGray)

	if m.finished {
		m.renderSummary()
	}
}

// drawBox draws one box with its left edge at world coordinate x.
func (m *PlayerModel) drawBox(x, length float64, floorY, maxH int, fill rune, c core.Color, caption string) {
	col := m.viewport.Col(x)
	w := m.viewport.Span(length)
	h := core.Clamp(w/2, 2, maxH)

	rect := core.Rect{X: col, Y: floorY - h, W: w, H: h}
	m.screen.DrawRect(rect, fill, c)
	m.screen.DrawTextColored(col, floorY-h-1, caption, c)
}

// renderSummary overlays the final counts once playback reaches the end.
func (m *PlayerModel) renderSummary() {
	midY := m.screen.Height() / 2
	m.screen.DrawTextCentered(midY-1,
		fmt.Sprintf("  %d collisions (%d wall bounces, %d impacts)  ",
			m.result.Collisions, m.result.WallBounces, m.result.Impacts))
	m.screen.DrawTextCentered(midY,
		fmt.Sprintf("  smallest interval %.6g s  ", m.result.SmallestInterval))
	m.screen.DrawTextCentered(midY+1, "  press R to replay, B to go back  ")
}

// IsQuitting reports whether the user asked to leave the program.
func (m *PlayerModel) IsQuitting() bool { return m.quitting }

// BackRequested reports whether the user asked to return to the previous
// screen. Only meaningful when the player runs inside a session.
func (m *PlayerModel) BackRequested() bool { return m.backing }

// RunPlayer runs the playback UI standalone in the alternate screen.
func RunPlayer(traj *physics.Trajectory, res *physics.Result, wall float64, label string, cfg core.RuntimeConfig) error {
	m := NewPlayerModel(traj, res, wall, label, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: playback failed: %w", err)
	}
	return nil
}
