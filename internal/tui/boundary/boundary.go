// Package boundary isolates bubbletea models from each other's failures. A
// Model wraps a child, recovers panics raised from its Init, Update or View,
// and renders a fallback with bounded retries instead of crashing the program.
package boundary

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

// Level is how much of the screen a boundary guards.
type Level string

const (
	LevelComponent Level = "component"
	LevelPage      Level = "page"
	LevelGlobal    Level = "global"
)

// Report is the summarized failure handed to a Reporter.
type Report struct {
	Message   string    `json:"message"`
	Stack     string    `json:"stack,omitempty"`
	Level     Level     `json:"level"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`
}

// Reporter receives failures outside development.
type Reporter func(Report)

// Options configures a boundary.
type Options struct {
	Level      Level
	MaxRetries int
	// Development logs full details instead of reporting a summary.
	Development bool
	Logger      ports.Logger
	Report      Reporter
	// OnReload runs before a reload rebuilds the child.
	OnReload func()
	Styles   *components.Styles
	Now      func() time.Time
}

// StylesChangedMsg carries new styles after a theme change. Boundaries keep
// them for their fallback and pass the message on.
type StylesChangedMsg struct {
	Styles components.Styles
}

// HomeMsg asks the child to return to its home screen. A global boundary
// sends it when the user picks "Go home" from the fallback.
type HomeMsg struct{}

type failure struct {
	err   error
	stack string
}

// Model is a boundary around a child model built by a factory.
type Model struct {
	factory func() tea.Model
	child   tea.Model
	opts    Options
	styles  components.Styles
	logger  ports.Logger

	failure *failure
	retries int
	size    *tea.WindowSizeMsg
}

var _ tea.Model = Model{}

// New wraps the model returned by factory. The factory is called again on
// every retry so the child starts from a clean state.
func New(factory func() tea.Model, opts Options) Model {
	if opts.Level == "" {
		opts.Level = LevelPage
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = components.DefaultMaxRetries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	styles := components.NewStyles(components.DarkPalette)
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	m := Model{
		factory: factory,
		opts:    opts,
		styles:  styles,
		logger:  logger.OrNoOp(opts.Logger).With("component", "boundary", "level", string(opts.Level)),
	}
	m.build()
	return m
}

func (m *Model) build() {
	defer m.recoverInto("build")
	m.child = m.factory()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.failure != nil || m.child == nil {
		return nil
	}
	return m.initChild()
}

func (m *Model) initChild() (cmd tea.Cmd) {
	defer m.recoverInto("init")
	return m.child.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		size := msg
		m.size = &size
	case StylesChangedMsg:
		m.styles = msg.Styles
	}

	if m.failure != nil {
		return m.updateFallback(msg)
	}

	cmd := m.updateChild(msg)
	return m, cmd
}

func (m *Model) updateChild(msg tea.Msg) (cmd tea.Cmd) {
	defer m.recoverInto("update")
	next, cmd := m.child.Update(msg)
	m.child = next
	return cmd
}

func (m Model) updateFallback(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "enter":
		if !m.CanRetry() {
			return m, nil
		}
		m.retries++
		m.logger.Info(context.Background(), "retrying after failure", "retries", m.retries)
		return m, m.restart()
	case "ctrl+r", "R":
		if m.opts.Level != LevelGlobal {
			return m, nil
		}
		if m.opts.OnReload != nil {
			m.opts.OnReload()
		}
		m.retries = 0
		return m, m.restart()
	case "h":
		if m.opts.Level != LevelGlobal {
			return m, nil
		}
		m.retries = 0
		return m, m.goHome()
	}
	return m, nil
}

// goHome keeps the child and its loaded state and navigates it home. A child
// that never built, or that fails again on the way home, is rebuilt.
func (m *Model) goHome() tea.Cmd {
	if m.child == nil {
		return m.restart()
	}
	m.failure = nil
	cmd := m.updateChild(HomeMsg{})
	if m.failure != nil {
		m.logger.Warn(context.Background(), "going home failed, rebuilding", "error", m.failure.err)
		return m.restart()
	}
	return cmd
}

// restart rebuilds the child and replays the last window size.
func (m *Model) restart() tea.Cmd {
	m.failure = nil
	m.build()
	if m.failure != nil {
		return nil
	}

	cmds := []tea.Cmd{m.initChild()}
	if m.size != nil {
		size := *m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.failure != nil {
		return m.fallbackView()
	}
	view, ok := m.viewChild()
	if !ok {
		return m.fallbackView()
	}
	return view
}

// viewChild renders the child. View has a value receiver, so a panic here
// cannot be stored; it is reported and the fallback is drawn for this frame.
func (m Model) viewChild() (view string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.capture("view", r)
			view, ok = "", false
		}
	}()
	return m.child.View(), true
}

func (m *Model) recoverInto(phase string) {
	if r := recover(); r != nil {
		m.failure = m.capture(phase, r)
	}
}

func (m Model) capture(phase string, r any) *failure {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	f := &failure{err: err, stack: string(debug.Stack())}

	ctx := context.Background()
	if m.opts.Development {
		m.logger.Error(ctx, "recovered panic",
			"phase", phase,
			"error", err,
			"retries", m.retries,
			"stack", f.stack,
		)
		return f
	}

	m.logger.Warn(ctx, "recovered panic", "phase", phase, "error", err)
	if m.opts.Report != nil {
		m.opts.Report(Report{
			Message:   err.Error(),
			Stack:     f.stack,
			Level:     m.opts.Level,
			Retries:   m.retries,
			Timestamp: m.opts.Now(),
		})
	}
	return f
}

// Failed reports whether the fallback is showing.
func (m Model) Failed() bool {
	return m.failure != nil
}

// Err returns the recovered failure, if any.
func (m Model) Err() error {
	if m.failure == nil {
		return nil
	}
	return m.failure.err
}

// Retries returns how many retries have been used.
func (m Model) Retries() int {
	return m.retries
}

// CanRetry reports whether the retry action is still offered.
func (m Model) CanRetry() bool {
	return m.retries < m.opts.MaxRetries
}

// Child returns the wrapped model.
func (m Model) Child() tea.Model {
	return m.child
}

func (m Model) fallbackView() string {
	s := m.styles
	message := "unknown error"
	if m.failure != nil {
		message = m.failure.err.Error()
	}

	if m.opts.Level == LevelComponent {
		line := s.ErrorText.Render("! This section failed to load.")
		if m.CanRetry() {
			line += " " + s.Muted.Render("[r] retry")
		}
		return line
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Oh no! Something went wrong."))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render(message))
	b.WriteString("\n")

	if m.opts.Development && m.failure != nil {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(firstLines(m.failure.stack, 12)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.CanRetry() {
		b.WriteString(s.Button.Render(fmt.Sprintf("[r] Try again (%d left)", m.opts.MaxRetries-m.retries)))
	} else {
		b.WriteString(s.ErrorText.Render("Maximum retries reached. Reload required."))
	}

	if m.opts.Level == LevelGlobal {
		actions := lipgloss.JoinHorizontal(lipgloss.Top,
			s.HelpKey.Render("ctrl+r"), s.HelpDesc.Render("Reload"),
			"  ",
			s.HelpKey.Render("h"), s.HelpDesc.Render("Go home"),
			"  ",
			s.HelpKey.Render("q"), s.HelpDesc.Render("Quit"),
		)
		b.WriteString("\n\n")
		b.WriteString(actions)
	}

	return s.ErrorBanner.Render(b.String())
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
