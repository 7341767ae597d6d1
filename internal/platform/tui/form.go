package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okhotin/piblocks/internal/config"
)

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	formLabelStyle = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("245"))
	formFocusStyle = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("6"))
	formErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	formHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// formLabels name the editable scenario values, in display order. The
// input slice in FormModel is index-aligned with this list.
var formLabels = []string{
	"wall position (m)",
	"left box position (m)",
	"left box mass (kg)",
	"left box velocity (m/s)",
	"left box length (m)",
	"right box position (m)",
	"right box mass (kg)",
	"right box velocity (m/s)",
	"right box length (m)",
}

// FormModel is an interactive editor for scenario parameters. It starts
// from a base scenario and produces a validated copy on submit.
type FormModel struct {
	inputs []textinput.Model
	focus  int
	errMsg string

	base      config.ScenarioConfig
	submitted *config.ScenarioConfig

	quitting bool
	backing  bool
}

// NewFormModel creates a form prefilled from the base scenario. Playback
// and limit settings are carried over unchanged.
func NewFormModel(base config.ScenarioConfig) *FormModel {
	defaults := []float64{
		base.Wall,
		base.Left.Position, base.Left.Mass, base.Left.Velocity, base.Left.Length,
		base.Right.Position, base.Right.Mass, base.Right.Velocity, base.Right.Length,
	}

	inputs := make([]textinput.Model, len(formLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.SetValue(strconv.FormatFloat(defaults[i], 'g', -1, 64))
		ti.CharLimit = 20
		ti.Width = 14
		ti.Prompt = "> "
		inputs[i] = ti
	}
	inputs[0].Focus()

	return &FormModel{
		inputs: inputs,
		base:   base,
	}
}

// Init implements tea.Model.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.backing = true
			return m, tea.Quit
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit parses and validates all fields. On failure the error is shown
// and the form stays open; on success the model quits with the scenario
// available through Submitted.
func (m *FormModel) submit() (tea.Model, tea.Cmd) {
	values := make([]float64, len(m.inputs))
	for i, ti := range m.inputs {
		v, err := strconv.ParseFloat(ti.Value(), 64)
		if err != nil {
			m.errMsg = fmt.Sprintf("%s: not a number", formLabels[i])
			m.setFocus(i)
			return m, nil
		}
		values[i] = v
	}

	cfg := m.base
	cfg.Wall = values[0]
	cfg.Left = config.BoxConfig{Position: values[1], Mass: values[2], Velocity: values[3], Length: values[4]}
	cfg.Right = config.BoxConfig{Position: values[5], Mass: values[6], Velocity: values[7], Length: values[8]}

	if err := cfg.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.submitted = &cfg
	return m, tea.Quit
}

// View renders the form.
func (m *FormModel) View() string {
	if m.quitting || m.backing {
		return ""
	}

	view := formTitleStyle.Render("π blocks — scenario") + "\n\n"
	for i, ti := range m.inputs {
		style := formLabelStyle
		if i == m.focus {
			style = formFocusStyle
		}
		view += style.Render(formLabels[i]) + ti.View() + "\n"
	}
	view += "\n"
	if m.errMsg != "" {
		view += formErrorStyle.Render(m.errMsg) + "\n\n"
	}
	view += formHelpStyle.Render("enter next/run · tab/↑↓ move · esc back · ctrl+c quit")
	return view
}

// Submitted returns the validated scenario, or nil if the form was left
// without submitting.
func (m *FormModel) Submitted() *config.ScenarioConfig { return m.submitted }

// IsQuitting reports whether the user asked to leave the program.
func (m *FormModel) IsQuitting() bool { return m.quitting }

// BackRequested reports whether the user dismissed the form.
func (m *FormModel) BackRequested() bool { return m.backing }

// RunForm runs the form standalone and returns the submitted scenario,
// or nil if the user cancelled.
func RunForm(base config.ScenarioConfig) (*config.ScenarioConfig, error) {
	m := NewFormModel(base)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("tui: form failed: %w", err)
	}
	fm, ok := final.(*FormModel)
	if !ok {
		return nil, nil
	}
	return fm.Submitted(), nil
}
