package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/termquest/internal/tui/components"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// Shell is the session surface the screen drives.
type Shell interface {
	Execute(ctx context.Context, line string) termquest.CommandResult
	Prompt() string
	Intro() string
	Exited() bool
	History() []string
	SetTerminal(t termquest.Terminal)
}

// resultMsg carries a finished command back to the UI goroutine.
type resultMsg struct {
	result termquest.CommandResult
}

// chromeHeight is the rows below the viewport: the prompt and the help line.
const chromeHeight = 2

// Model is the interactive shell screen: scrollback above, prompt below.
type Model struct {
	ctx       context.Context
	shell     Shell
	completer *components.Completer
	terminal  *bufferTerminal
	keys      KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	scrollback []string
	running    bool
	histPos    int
	draft      string
	ready      bool
	quitting   bool
}

// NewModel builds the screen for sh. completer may be nil.
func NewModel(ctx context.Context, sh Shell, completer *components.Completer) Model {
	term := &bufferTerminal{}
	sh.SetTerminal(term)

	input := textinput.New()
	input.Prompt = PromptStyle.Render(sh.Prompt())
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	m := Model{
		ctx:       ctx,
		shell:     sh,
		completer: completer,
		terminal:  term,
		keys:      DefaultKeyMap(),
		viewport:  viewport.New(80, 20),
		input:     input,
		spinner:   sp,
		histPos:   len(sh.History()),
	}
	m.appendOutput(TitleStyle.Render(sh.Intro()))
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(1, msg.Width-len(m.shell.Prompt())-1)
		m.ready = true
		m.refresh()
		return m, nil

	case resultMsg:
		return m.finish(msg.result)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.HistPrev):
		m.browseHistory(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistNext):
		m.browseHistory(1)
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if m.completer != nil {
			m.input.SetValue(m.completer.Next(m.input.Value()))
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.ClearView):
		m.scrollback = nil
		m.refresh()
		return m, nil
	}

	if m.completer != nil {
		m.completer.Reset()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.appendOutput(PromptStyle.Render(m.shell.Prompt()) + EchoStyle.Render(line))
	m.input.Reset()
	m.draft = ""
	m.running = true

	ctx, sh := m.ctx, m.shell
	run := func() tea.Msg {
		return resultMsg{result: sh.Execute(ctx, line)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) finish(result termquest.CommandResult) (tea.Model, tea.Cmd) {
	m.running = false

	lines, cleared := m.terminal.drain()
	if cleared {
		m.scrollback = nil
	}
	for _, l := range lines {
		m.appendOutput(OutputStyle.Render(l))
	}
	if result.Output != "" {
		style := OutputStyle
		if !result.Success {
			style = NarrationStyle
		}
		m.appendOutput(style.Render(result.Output))
	}
	if !result.Success && result.Error != "" {
		m.appendOutput(ErrorStyle.Render(result.Error))
	}

	m.histPos = len(m.shell.History())
	m.input.Prompt = PromptStyle.Render(m.shell.Prompt())
	if m.shell.Exited() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// browseHistory moves through earlier input. Moving past the newest entry
// restores the line being typed.
func (m *Model) browseHistory(delta int) {
	hist := m.shell.History()
	if m.histPos == len(hist) {
		m.draft = m.input.Value()
	}
	pos := m.histPos + delta
	if pos < 0 || pos > len(hist) {
		return
	}
	m.histPos = pos
	if pos == len(hist) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(hist[pos])
	}
	m.input.CursorEnd()
}

func (m *Model) appendOutput(text string) {
	m.scrollback = append(m.scrollback, strings.TrimRight(text, "\n"))
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.scrollback, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	prompt := m.input.View()
	if m.running {
		prompt = m.spinner.View() + " running…"
	}
	return m.viewport.View() + "\n" + prompt + "\n" + HelpStyle.Render(m.keys.HelpText())
}

// Scrollback returns the rendered lines, for tests and transcripts.
func (m Model) Scrollback() []string { return m.scrollback }

// Run starts the full-screen shell and blocks until the player quits.
func Run(ctx context.Context, sh Shell, completer *components.Completer, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewModel(ctx, sh, completer), opts...).Run()
	return err
}
