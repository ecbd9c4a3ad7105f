//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TerminalConfig controls the terminal runner.
type TerminalConfig struct {
	Host HostConfig
	Hz   int
	// Downsample keeps every Nth framebuffer pixel in each direction.
	Downsample int
}

// RunTerminal renders the framebuffer in the terminal with half-block
// characters (two pixel rows per text row) and maps arrow keys onto the
// watch buttons. Terminals report no key releases, so each key press is
// delivered as a press immediately followed by a release.
func RunTerminal(cfg TerminalConfig, newApp func(HAL) (App, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	if cfg.Downsample <= 0 {
		cfg.Downsample = 2
	}
	// Log lines would tear the alt screen; keep them out of the way.
	if cfg.Host.Log == nil {
		cfg.Host.Log = io.Discard
	}

	h := newHostHAL(cfg.Host)
	defer h.close()

	app, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	m := &termModel{h: h, app: app, period: time.Second / time.Duration(cfg.Hz), step: cfg.Downsample}
	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if runErr == nil {
		runErr = m.err
	}
	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

type termFrameMsg time.Time

type termModel struct {
	h      *hostHAL
	app    App
	period time.Duration
	step   int
	err    error
	styles map[[2]uint16]lipgloss.Style
}

func (m *termModel) frame() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return termFrameMsg(t) })
}

func (m *termModel) Init() tea.Cmd { return m.frame() }

func (m *termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		code := KeyUnknown
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "up", "k", "w", "+":
			code = KeyUp
		case "down", "j", "s", "-":
			code = KeyDown
		case "enter", "right", "l":
			code = KeySelect
		case "esc", "left", "h", "q", "backspace":
			code = KeyBack
		}
		if code != KeyUnknown {
			m.h.kbd.inject(KeyEvent{Code: code, Press: true})
			m.h.kbd.inject(KeyEvent{Code: code, Press: false})
		}
		return m, nil

	case termFrameMsg:
		m.h.t.sync()
		if err := m.app.Step(); err != nil {
			if !errors.Is(err, ErrExit) {
				m.err = err
			}
			return m, tea.Quit
		}
		return m, m.frame()
	}
	return m, nil
}

func (m *termModel) View() string {
	fb := m.h.fb
	var sb strings.Builder
	for y := 0; y < fb.height; y += 2 * m.step {
		for x := 0; x < fb.width; x += m.step {
			top := fb.pixel565(x, y)
			bottom := fb.pixel565(x, y+m.step)
			sb.WriteString(m.style(top, bottom).Render("▀"))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("↑/↓ adjust  esc quit")
	return sb.String()
}

func (m *termModel) style(top, bottom uint16) lipgloss.Style {
	key := [2]uint16{top, bottom}
	if st, ok := m.styles[key]; ok {
		return st
	}
	if m.styles == nil {
		m.styles = make(map[[2]uint16]lipgloss.Style)
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(top))).
		Background(lipgloss.Color(hexColor(bottom)))
	m.styles[key] = st
	return st
}

func hexColor(p uint16) string {
	r, g, b := rgb888From565(p)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
