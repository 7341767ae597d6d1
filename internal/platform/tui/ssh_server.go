package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/okhotin/piblocks/internal/config"
	"github.com/okhotin/piblocks/internal/core"
	"github.com/okhotin/piblocks/internal/physics"
	"github.com/okhotin/piblocks/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.piblocks/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// Scenario is the base scenario prefilled into each session's form.
	Scenario config.ScenarioConfig

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.piblocks/runs.db",
		Scenario:    config.DefaultScenario(),
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that serves the simulator to remote
// terminals.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "piblocks-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".piblocks", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		FPS:     s.config.Scenario.Animation.FPS,
	}
	if cfg.FPS <= 0 {
		cfg.FPS = core.DefaultConfig().FPS
	}

	model := NewSessionModel(s.store, s.config.Scenario, cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// simDoneMsg carries a finished simulation back into the session loop.
type simDoneMsg struct {
	cfg  config.ScenarioConfig
	res  *physics.Result
	traj *physics.Trajectory
	err  error
}

// runSimCmd runs the engine and sampler off the UI loop.
func runSimCmd(cfg config.ScenarioConfig) tea.Cmd {
	return func() tea.Msg {
		left, right, err := cfg.Bodies()
		if err != nil {
			return simDoneMsg{cfg: cfg, err: err}
		}
		res, err := physics.Run(left, right, cfg.Wall, cfg.Options())
		if err != nil {
			return simDoneMsg{cfg: cfg, err: err}
		}
		traj, err := physics.SampleTail(left, right, cfg.Animation.FPS, cfg.Animation.TailSeconds)
		if err != nil {
			return simDoneMsg{cfg: cfg, err: err}
		}
		return simDoneMsg{cfg: cfg, res: res, traj: traj}
	}
}

// SessionModel manages the full session flow for SSH clients:
// parameter form -> simulation -> playback -> back to form.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	base     config.ScenarioConfig
	form     *FormModel
	player   *PlayerModel
	waiting  bool
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, base config.ScenarioConfig, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		base:     base,
		form:     NewFormModel(base),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if done, ok := msg.(simDoneMsg); ok {
		return m.handleSimDone(done)
	}

	if m.player != nil {
		return m.updatePlayer(msg)
	}
	return m.updateForm(msg)
}

// updateForm handles updates while the parameter form is showing.
func (m SessionModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	newForm, cmd := m.form.Update(msg)
	if formModel, ok := newForm.(*FormModel); ok {
		m.form = formModel
	}

	// In a session the form's esc/quit both end the connection.
	if m.form.IsQuitting() || m.form.BackRequested() {
		m.quitting = true
		return m, tea.Quit
	}

	if scenario := m.form.Submitted(); scenario != nil && !m.waiting {
		m.waiting = true
		// Intercept the form's quit and run the simulation instead.
		return m, runSimCmd(*scenario)
	}

	return m, cmd
}

// handleSimDone switches to playback or reports the failure in the form.
func (m SessionModel) handleSimDone(done simDoneMsg) (tea.Model, tea.Cmd) {
	m.waiting = false
	m.base = done.cfg

	if done.err != nil {
		m.form = NewFormModel(done.cfg)
		m.form.errMsg = done.err.Error()
		return m, m.form.Init()
	}

	if m.store != nil {
		//nolint:errcheck // Best-effort save
		m.store.SaveRun(storage.NewRunEntry("custom", done.cfg, done.res))
	}

	m.player = NewPlayerModel(done.traj, done.res, done.cfg.Wall, m.username, m.config)
	return m, m.player.Init()
}

// updatePlayer handles updates during playback.
func (m SessionModel) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.player.Update(msg)
	if playerModel, ok := newModel.(*PlayerModel); ok {
		m.player = playerModel
	}

	// Back returns to a fresh form prefilled with the last scenario.
	if m.player.BackRequested() {
		m.player = nil
		m.form = NewFormModel(m.base)
		return m, m.form.Init()
	}

	if m.player.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.player != nil {
		return m.player.View()
	}
	if m.waiting {
		return "\n  running simulation...\n"
	}
	return m.form.View()
}
