package narrative

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/vvka-141/termquest/internal/processor"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// Manager tracks the player's position in a story. It is safe for
// concurrent use.
type Manager struct {
	mu        sync.Mutex
	story     *Story
	current   *Scene
	narration []string
	reply     int
	logger    termquest.Logger
}

// NewManager starts story at its start scene.
func NewManager(story *Story, logger termquest.Logger) *Manager {
	return &Manager{
		story:   story,
		current: story.Scenes[story.Start],
		logger:  logger,
	}
}

func (m *Manager) Title() string { return m.story.Title }

// Current returns the active scene.
func (m *Manager) Current() *Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Scene returns the scene with the given id.
func (m *Manager) Scene(id string) (*Scene, bool) {
	s, ok := m.story.Scenes[id]
	return s, ok
}

// Describe renders the active scene text followed by its numbered choices.
func (m *Manager) Describe() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return describe(m.current)
}

// TakeNarration returns and clears text produced by scene changes that
// happened outside a resolver, such as an awaited command completing.
func (m *Manager) TakeNarration() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	text := strings.Join(m.narration, "\n\n")
	m.narration = nil
	return text
}

// ResolveChoice handles purely numeric input against the current scene's
// choices. Scenes without choices are not applicable.
func (m *Manager) ResolveChoice(_ context.Context, req processor.Request) (termquest.CommandResult, processor.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.current.Choices) == 0 {
		return termquest.CommandResult{}, processor.NotApplicable
	}
	n, err := strconv.Atoi(req.Input)
	if err != nil || n < 1 || n > len(m.current.Choices) {
		return termquest.Failf("invalid choice: %s", req.Input), processor.Handled
	}

	choice := m.current.Choices[n-1]
	return termquest.Ok(m.say(choice.Say, choice.Next)), processor.Handled
}

// ResolveTrigger matches free text against the current scene's trigger
// phrases, then the story-wide ones.
func (m *Manager) ResolveTrigger(_ context.Context, req processor.Request) (termquest.CommandResult, processor.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := normalize(req.Input)
	for _, triggers := range [][]Trigger{m.current.Triggers, m.story.Triggers} {
		for _, t := range triggers {
			if !t.matches(text) {
				continue
			}
			say := t.Say
			if t.Hint {
				say = m.current.Hint
				if say == "" {
					say = "No hints here. Trust your instincts."
				}
			}
			return termquest.Ok(m.say(say, t.Next)), processor.Handled
		}
	}
	return termquest.CommandResult{}, processor.NotApplicable
}

// ResolveResponse answers anything else with the story's generic replies in
// rotation.
func (m *Manager) ResolveResponse(_ context.Context, req processor.Request) (termquest.CommandResult, processor.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.story.Responses) == 0 {
		return termquest.CommandResult{}, processor.NotApplicable
	}
	text := m.story.Responses[m.reply%len(m.story.Responses)]
	m.reply++
	return termquest.CommandResult{Success: false, Output: text, Error: fmt.Sprintf("Command not found: %s", req.Name)}, processor.Handled
}

// OnExecution advances the story when a successful command matches what the
// current scene awaits.
func (m *Manager) OnExecution(_ context.Context, ev termquest.ExecutionEvent) error {
	if !ev.Successful || ev.Stage != termquest.StageCommand {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	await := m.current.Await
	if await == nil || !await.matches(ev.Command, ev.Args) {
		return nil
	}
	from := m.current.ID
	m.enter(await.Next)
	m.narration = append(m.narration, describe(m.current))
	if m.logger != nil {
		m.logger.Verbose("story: %s -> %s after %s", from, m.current.ID, ev.Command)
	}
	return nil
}

// say returns text, moving to next first and appending the new scene's
// description when next is set.
func (m *Manager) say(text, next string) string {
	if next == "" {
		return text
	}
	m.enter(next)
	if text == "" {
		return describe(m.current)
	}
	return text + "\n\n" + describe(m.current)
}

func (m *Manager) enter(id string) {
	if s, ok := m.story.Scenes[id]; ok {
		m.current = s
	}
}

func describe(s *Scene) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(s.Text, "\n"))
	for i, c := range s.Choices {
		fmt.Fprintf(&b, "\n  [%d] %s", i+1, c.Label)
	}
	return b.String()
}

func (t Trigger) matches(text string) bool {
	for _, p := range t.Phrases {
		if p = normalize(p); p != "" && strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func (a *Await) matches(command string, args []string) bool {
	if command != a.Command {
		return false
	}
	if a.Path == "" {
		return true
	}
	want := strings.TrimSuffix(a.Path, "/")
	for _, arg := range args {
		arg = strings.TrimSuffix(arg, "/")
		if arg == want || path.Base(arg) == path.Base(want) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
