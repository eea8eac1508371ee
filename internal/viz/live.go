package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nukelab/internal/reactor"
)

const (
	historyCapacity = 600
	stepsPerTick    = 4
)

type TickMsg time.Time

// Model holds simulation state and UI context for the live view.
type Model struct {
	sys        reactor.System
	integrator reactor.Integrator
	controller reactor.Controller
	state      reactor.State
	u          reactor.Control
	t, dt      float64
	running    bool
	modelName  string
	labels     []string
	channel    int

	history        []float64
	balanceHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	initialState  reactor.State
	showHelp      bool
}

// NewModel initializes the live simulation view.
func NewModel(sys reactor.System, integ reactor.Integrator, ctrl reactor.Controller, initState []float64, dt float64, modelName string) Model {
	params := make(map[string]float64)
	if c, ok := sys.(reactor.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	sort.Strings(keys)

	state := make(reactor.State, len(initState))
	copy(state, initState)

	return Model{
		sys:            sys,
		integrator:     integ,
		controller:     ctrl,
		state:          state,
		u:              make(reactor.Control, sys.ControlDim()),
		dt:             dt,
		running:        true,
		modelName:      modelName,
		labels:         ChannelLabels(modelName, sys.StateDim()),
		history:        make([]float64, 0, historyCapacity),
		balanceHistory: make([]float64, 0, historyCapacity),
		params:         params,
		initialParams:  initialParams,
		paramKeys:      keys,
		initialState:   state.Clone(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "c":
			m.cycleChannel()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) cycleChannel() {
	m.channel = (m.channel + 1) % m.sys.StateDim()
	m.history = m.history[:0]
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if c, ok := m.sys.(reactor.Configurable); ok {
		if err := c.SetParam(key, newVal); err != nil {
			return
		}
	}
	m.params[key] = newVal
}

// step advances the simulation one dt.
func (m *Model) step() {
	m.u = m.controller.Compute(m.state, m.t)
	if adaptive, ok := m.integrator.(reactor.AdaptiveIntegrator); ok {
		newState, used, suggestedDt, err := adaptive.StepAdaptive(m.sys, m.state, m.u, m.t, m.dt, 1e-6)
		if err == nil {
			m.state = newState
			m.t += used
			if suggestedDt > 1e-5 && suggestedDt < 0.1 {
				m.dt = suggestedDt
			}
		}
	} else {
		m.state = m.integrator.Step(m.sys, m.state, m.u, m.t, m.dt)
		m.t += m.dt
	}

	if m.channel < len(m.state) {
		m.history = append(m.history, m.state[m.channel])
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}

	if b, ok := m.sys.(reactor.Balance); ok {
		m.balanceHistory = append(m.balanceHistory, b.Total(m.state, m.t))
		if len(m.balanceHistory) > historyCapacity {
			m.balanceHistory = m.balanceHistory[1:]
		}
	}
}

// reset restores the initial state and parameters.
func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.history = m.history[:0]
	m.balanceHistory = m.balanceHistory[:0]
	m.u = make(reactor.Control, m.sys.ControlDim())
	for k, v := range m.initialParams {
		m.params[k] = v
		if c, ok := m.sys.(reactor.Configurable); ok {
			c.SetParam(k, v)
		}
	}
}

func (m Model) channelLabel() string {
	if m.channel < len(m.labels) {
		return m.labels[m.channel]
	}
	return fmt.Sprintf("x%d", m.channel)
}

// View renders the live TUI.
func (m Model) View() string {
	var chart string
	if len(m.history) > 1 {
		chart = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption(m.channelLabel()),
		))
	} else {
		chart = graphStyle.Render("collecting samples...")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if m.channel < len(m.state) {
		s.WriteString(labelStyle.Render(m.channelLabel()) + valueStyle.Render(fmt.Sprintf("%.4g", m.state[m.channel])) + "\n")
	}
	if len(m.balanceHistory) > 0 {
		s.WriteString(labelStyle.Render("Inventory") + valueStyle.Render(fmt.Sprintf("%.6g", m.balanceHistory[len(m.balanceHistory)-1])) + "\n")
		s.WriteString(labelStyle.Render("") + Sparkline(m.balanceHistory, 20) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.params) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-10s %s %.4g", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nC:Channel Tab/↑↓:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, chart, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  C        - Cycle plotted channel    ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
