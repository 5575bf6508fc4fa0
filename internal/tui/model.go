// Package tui is the terminal gradient editor: a Bubbletea model around
// gradgen.Editor.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yacobolo/gradgen"
	"github.com/yacobolo/gradgen/internal/termui"
)

// Step sizes for keyboard adjustments
const (
	angleStep    = 5
	opacityStep  = 5
	positionStep = 1
	positionJump = 10
)

// Config configures the terminal editor.
type Config struct {
	// Token is an optional share token to start from.
	Token string
	// BaseURL is the page URL share links point at.
	BaseURL string
	// Clipboard receives copied CSS and links. Defaults to the system
	// clipboard.
	Clipboard gradgen.Clipboard
	// UseColors enables the color ramp and styled text.
	UseColors bool
	// Options are passed to the editor's state, e.g. gradgen.WithRand.
	Options []gradgen.Option
}

// noticeExpired clears a notice once its display time has passed. seq
// ties it to the notice that scheduled it.
type noticeExpired struct {
	seq int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A1A1AA"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// Model is the editor view.
type Model struct {
	editor   *gradgen.Editor
	cfg      Config
	keys     keyMap
	help     help.Model
	input    textinput.Model
	editing  bool
	selected int // stop id
	rendered gradgen.Rendered
	width    int

	notice    *gradgen.Notice
	noticeSeq int
	shown     int // noticeSeq at the end of the previous Update
}

// New creates the editor model and loads cfg.Token.
func New(cfg Config) *Model {
	if cfg.Clipboard == nil {
		cfg.Clipboard = gradgen.ClipboardFunc(clipboard.WriteAll)
	}

	ti := textinput.New()
	ti.Placeholder = "#rrggbb"
	ti.CharLimit = 7
	ti.Width = 10
	ti.Prompt = "color: "

	m := &Model{
		cfg:   cfg,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
	}
	m.editor = gradgen.NewEditor(gradgen.NewState(cfg.Options...), gradgen.Hooks{
		Render:       func(r gradgen.Rendered) { m.rendered = r },
		Notify:       m.setNotice,
		StopsChanged: m.setStops,
	})
	m.editor.Start(cfg.Token, cfg.Options...)
	return m
}

// Editor exposes the underlying editor.
func (m *Model) Editor() *gradgen.Editor { return m.editor }

// Selected returns the id of the selected stop.
func (m *Model) Selected() int { return m.selected }

// Notice returns the notice on screen, if any.
func (m *Model) Notice() (gradgen.Notice, bool) {
	if m.notice == nil {
		return gradgen.Notice{}, false
	}
	return *m.notice, true
}

func (m *Model) setNotice(n gradgen.Notice) {
	m.notice = &n
	m.noticeSeq++
}

// setStops keeps the selection on an existing stop.
func (m *Model) setStops(stops []gradgen.ColorStop) {
	if _, ok := m.editor.State().Stop(m.selected); !ok && len(stops) > 0 {
		m.selected = m.editor.State().SortedStops()[0].ID
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.noticeTimer()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case noticeExpired:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m, tea.Batch(m.updateInput(msg), m.noticeTimer())
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.noticeTimer())
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := m.editor.State()
	switch {
	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Add):
		m.selected = m.editor.AddStop().ID
	case key.Matches(msg, m.keys.Remove):
		_ = m.editor.RemoveStop(m.selected)
	case key.Matches(msg, m.keys.Edit):
		if stop, ok := state.Stop(m.selected); ok {
			m.editing = true
			m.input.SetValue(stop.Color)
			m.input.CursorEnd()
			return m.input.Focus()
		}
	case key.Matches(msg, m.keys.PosDown):
		m.nudgePosition(-positionStep)
	case key.Matches(msg, m.keys.PosUp):
		m.nudgePosition(positionStep)
	case key.Matches(msg, m.keys.PosDownFast):
		m.nudgePosition(-positionJump)
	case key.Matches(msg, m.keys.PosUpFast):
		m.nudgePosition(positionJump)
	case key.Matches(msg, m.keys.Linear):
		m.editor.SetKind(gradgen.Linear)
	case key.Matches(msg, m.keys.Radial):
		m.editor.SetKind(gradgen.Radial)
	case key.Matches(msg, m.keys.Conic):
		m.editor.SetKind(gradgen.Conic)
	case key.Matches(msg, m.keys.AngleDown):
		if state.AngleApplicable() {
			m.editor.SetAngle(state.Angle() - angleStep)
		}
	case key.Matches(msg, m.keys.AngleUp):
		if state.AngleApplicable() {
			m.editor.SetAngle(state.Angle() + angleStep)
		}
	case key.Matches(msg, m.keys.OpacityDown):
		m.editor.SetOpacity(state.Opacity() - opacityStep)
	case key.Matches(msg, m.keys.OpacityUp):
		m.editor.SetOpacity(state.Opacity() + opacityStep)
	case key.Matches(msg, m.keys.Randomize):
		m.editor.Randomize()
	case key.Matches(msg, m.keys.CopyCSS):
		_ = m.editor.CopyCSS(m.cfg.Clipboard)
	case key.Matches(msg, m.keys.CopyShare):
		_, _ = m.editor.CopyShareLink(m.cfg.BaseURL, m.cfg.Clipboard)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		_ = m.editor.SetStopColor(m.selected, strings.TrimSpace(m.input.Value()))
		return nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// moveSelection steps through stops in position order, wrapping around.
func (m *Model) moveSelection(delta int) {
	stops := m.editor.State().SortedStops()
	if len(stops) == 0 {
		return
	}
	i := 0
	for j, s := range stops {
		if s.ID == m.selected {
			i = j
			break
		}
	}
	i = (i + delta + len(stops)) % len(stops)
	m.selected = stops[i].ID
}

func (m *Model) nudgePosition(delta int) {
	stop, ok := m.editor.State().Stop(m.selected)
	if !ok {
		return
	}
	m.editor.SetStopPosition(m.selected, stop.Position+delta)
}

// noticeTimer schedules expiry for a notice raised since the last call.
func (m *Model) noticeTimer() tea.Cmd {
	if m.notice == nil || m.shown == m.noticeSeq {
		return nil
	}
	m.shown = m.noticeSeq
	seq := m.noticeSeq
	return tea.Tick(m.notice.Duration, func(time.Time) tea.Msg {
		return noticeExpired{seq: seq}
	})
}

// View implements tea.Model
func (m *Model) View() string {
	state := m.editor.State()
	useColors := m.cfg.UseColors

	var b strings.Builder
	b.WriteString(termui.RenderStyle(titleStyle, "Gradient Editor", useColors))
	b.WriteString("\n\n")

	width := termui.DefaultRampWidth
	if m.width > 8 {
		width = m.width - 4
	}
	ramp := termui.RenderRamp(termui.Swatches(state), width, useColors)
	b.WriteString(termui.RenderStyle(boxStyle, ramp, useColors))
	b.WriteString("\n\n")

	kinds := make([]string, len(gradgen.Kinds))
	for i, k := range gradgen.Kinds {
		name := fmt.Sprintf("%d %s", i+1, k)
		if k == state.Kind() {
			name = termui.RenderStyle(selectedStyle, "["+name+"]", useColors)
		}
		kinds[i] = name
	}
	fmt.Fprintf(&b, "Type:    %s\n", strings.Join(kinds, "  "))
	if state.AngleApplicable() {
		fmt.Fprintf(&b, "Angle:   %d°\n", state.Angle())
	}
	fmt.Fprintf(&b, "Opacity: %d%%\n\n", state.Opacity())

	for _, stop := range state.SortedStops() {
		cursor := "  "
		line := fmt.Sprintf("%s %3d%%", termui.Chip(stop.Color, useColors), stop.Position)
		if stop.ID == m.selected {
			cursor = termui.RenderStyle(selectedStyle, "> ", useColors)
		}
		b.WriteString(cursor + line + "\n")
	}
	if m.editing {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	b.WriteString("\n" + termui.RenderStyle(mutedStyle, m.rendered.Declaration, useColors) + "\n")

	if m.notice != nil {
		style := termui.NoticeStyle(m.notice.Level)
		b.WriteString("\n" + termui.RenderStyle(style, m.notice.Message, useColors) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// Run starts the editor in the alternate screen and blocks until the user
// quits. It returns the final state.
func Run(cfg Config) (*gradgen.State, error) {
	m := New(cfg)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return nil, fmt.Errorf("run editor: %w", err)
	}
	return m.editor.State(), nil
}
