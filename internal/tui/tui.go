// Package tui provides a Bubble Tea terminal user interface for glyphmask.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/glyphmask/internal/config"
	"github.com/handiism/glyphmask/internal/render"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	jobStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateRendering
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   render.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	jobs      []string
	err       error

	// Batch context
	ctx    context.Context
	cancel context.CancelFunc

	manager *render.Manager
	events  chan render.ProgressEvent

	// run identifies the current batch; messages from earlier runs are dropped.
	run int

	// Batch progress
	doneJobs   int32
	failedJobs int32
	totalJobs  int32
	images     int64

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. The input field starts with the
// configured input root.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/input"
	ti.SetValue(settings.InputPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan render.ProgressEvent, 64),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Run   int
		Event render.ProgressEvent
	}

	// InitDoneMsg is sent when job discovery completes.
	InitDoneMsg struct {
		Run     int
		Jobs    []string
		Manager *render.Manager
		Err     error
	}

	// RunDoneMsg is sent when the whole batch has finished.
	RunDoneMsg struct {
		Run    int
		Done   int32
		Failed int32
		Total  int32
		Images int64
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct {
		Run int
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRendering || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				m.run++
				return m, tea.Batch(m.initializeBatch(), m.spinner.Tick, m.waitForEvent())
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.jobs = nil
				m.err = nil
				m.doneJobs, m.failedJobs, m.totalJobs, m.images = 0, 0, 0, 0
				m.manager = nil
				m.run++
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.events = make(chan render.ProgressEvent, 64)
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Run != m.run {
			return m, nil
		}
		m = m.appendLog(msg.Event)
		cmds = append(cmds, m.waitForEvent())

	case InitDoneMsg:
		if msg.Run != m.run || m.state != StateInitializing {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.jobs = msg.Jobs
			m.manager = msg.Manager
			m.totalJobs = int32(len(msg.Jobs))
			m.state = StateRendering
			cmds = append(cmds, m.startRun(), m.tickProgress())
		}

	case RunDoneMsg:
		if msg.Run != m.run {
			return m, nil
		}
		m.doneJobs = msg.Done
		m.failedJobs = msg.Failed
		m.totalJobs = msg.Total
		m.images = msg.Images
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if msg.Run == m.run && m.manager != nil && m.state == StateRendering {
			m.doneJobs, m.failedJobs, m.totalJobs, m.images = m.manager.GetProgress()

			var percent float64
			if m.totalJobs > 0 {
				percent = float64(m.doneJobs) / float64(m.totalJobs)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) appendLog(event render.ProgressEvent) Model {
	if event.Level == render.LevelVerbose && !m.verbose {
		return m
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	run := m.run
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{Run: run}
	})
}

// waitForEvent delivers the next manager event as a ProgressMsg. It gives
// up without a message once the run's context is done.
func (m Model) waitForEvent() tea.Cmd {
	events, ctx, run := m.events, m.ctx, m.run
	return func() tea.Msg {
		select {
		case event := <-events:
			return ProgressMsg{Run: run, Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("glyphmask"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Textured alphabet images from job folders"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateRendering:
		b.WriteString(m.viewRendering())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Input folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputBasePath)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Font: %s | Canvas: %dx%d | Batch: %d",
		m.settings.FontPath, m.settings.CanvasWidth, m.settings.CanvasHeight, m.settings.BatchLimit)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Looking for job folders..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewRendering() string {
	var b strings.Builder

	if len(m.jobs) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d job(s):", len(m.jobs))))
		b.WriteString("\n")
		for _, job := range m.jobs {
			b.WriteString(jobStyle.Render("  • " + job))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.doneJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Jobs: %d/%d | Failed: %d | Images: %d",
		m.doneJobs, m.totalJobs, m.failedJobs, m.images,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	title := "Batch complete"
	if m.failedJobs > 0 {
		title = "Batch complete with failures"
	}
	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Jobs: %d\n"+
			"Failed: %d\n"+
			"Images: %d",
		title,
		m.doneJobs,
		m.failedJobs,
		m.images,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case render.LevelError:
			style = errorStyle
			prefix = "✗"
		case render.LevelWarning:
			style = warningStyle
			prefix = "!"
		case render.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case render.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+v: verbose • esc: quit"
	case StateInitializing, StateRendering:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// initializeBatch discovers job folders and creates the manager.
func (m *Model) initializeBatch() tea.Cmd {
	settings := *m.settings
	settings.InputPath = filepath.Clean(strings.TrimSpace(m.textInput.Value()))
	ctx := m.ctx
	events := m.events
	run := m.run

	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return InitDoneMsg{Run: run, Err: err}
		}

		manager := render.NewManager(&settings, func(event render.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		if err := manager.Initialize(ctx); err != nil {
			return InitDoneMsg{Run: run, Err: err}
		}

		return InitDoneMsg{
			Run:     run,
			Jobs:    manager.GetJobNames(),
			Manager: manager,
		}
	}
}

// startRun runs the batch in the background.
func (m *Model) startRun() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	run := m.run

	return func() tea.Msg {
		if manager == nil {
			return RunDoneMsg{Run: run, Err: errors.New("no manager")}
		}

		_, err := manager.Run(ctx)
		done, failed, total, images := manager.GetProgress()

		return RunDoneMsg{
			Run:    run,
			Done:   done,
			Failed: failed,
			Total:  total,
			Images: images,
			Err:    err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
