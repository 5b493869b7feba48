// Package narrative drives the story layered on top of the shell: numbered
// choices, free-text trigger phrases, generic replies and scene progression
// when the player runs the command a scene is waiting for.
package narrative

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/termquest/pkg/termquest"
)

//go:embed story.yaml
var defaultStory []byte

// Story is the parsed story file.
type Story struct {
	Title     string            `yaml:"title"`
	Start     string            `yaml:"start"`
	Scenes    map[string]*Scene `yaml:"scenes"`
	Triggers  []Trigger         `yaml:"triggers"`
	Responses []string          `yaml:"responses"`
}

// Scene is one node of the story graph.
type Scene struct {
	ID       string    `yaml:"-"`
	Text     string    `yaml:"text"`
	Hint     string    `yaml:"hint"`
	Choices  []Choice  `yaml:"choices"`
	Triggers []Trigger `yaml:"triggers"`
	Await    *Await    `yaml:"await"`
}

// Choice is a numbered menu entry. An empty Next keeps the current scene.
type Choice struct {
	Label string `yaml:"label"`
	Say   string `yaml:"say"`
	Next  string `yaml:"next"`
}

// Trigger reacts to free text containing one of its phrases. Hint makes the
// trigger answer with the current scene's hint.
type Trigger struct {
	Phrases []string `yaml:"phrases"`
	Say     string   `yaml:"say"`
	Hint    bool     `yaml:"hint"`
	Next    string   `yaml:"next"`
}

// Await advances the story when the player successfully runs Command. If
// Path is set, one of the arguments must name it.
type Await struct {
	Command string `yaml:"command"`
	Path    string `yaml:"path"`
	Next    string `yaml:"next"`
}

// Default returns the embedded story.
func Default() (*Story, error) {
	return Parse(defaultStory)
}

// Load reads and validates a story file.
func Load(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story %s: %w", path, err)
	}
	story, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return story, nil
}

// Parse decodes and validates story YAML.
func Parse(data []byte) (*Story, error) {
	var story Story
	if err := yaml.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("%w: %v", termquest.ErrStoryInvalid, err)
	}
	if err := story.Validate(); err != nil {
		return nil, err
	}
	return &story, nil
}

// Validate checks that every scene reference resolves. It also fills in
// scene IDs.
func (s *Story) Validate() error {
	if len(s.Scenes) == 0 {
		return fmt.Errorf("%w: no scenes", termquest.ErrStoryInvalid)
	}
	if _, ok := s.Scenes[s.Start]; !ok {
		return fmt.Errorf("%w: start scene %q does not exist", termquest.ErrStoryInvalid, s.Start)
	}

	ref := func(where, next string) error {
		if next == "" {
			return nil
		}
		if _, ok := s.Scenes[next]; !ok {
			return fmt.Errorf("%w: %s refers to unknown scene %q", termquest.ErrStoryInvalid, where, next)
		}
		return nil
	}
	checkTriggers := func(where string, triggers []Trigger) error {
		for i, t := range triggers {
			at := fmt.Sprintf("%s trigger %d", where, i+1)
			if len(t.Phrases) == 0 {
				return fmt.Errorf("%w: %s has no phrases", termquest.ErrStoryInvalid, at)
			}
			if err := ref(at, t.Next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := checkTriggers("story", s.Triggers); err != nil {
		return err
	}

	ids := make([]string, 0, len(s.Scenes))
	for id := range s.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		scene := s.Scenes[id]
		if scene == nil {
			return fmt.Errorf("%w: scene %q is empty", termquest.ErrStoryInvalid, id)
		}
		scene.ID = id
		for i, c := range scene.Choices {
			at := fmt.Sprintf("scene %q choice %d", id, i+1)
			if c.Label == "" {
				return fmt.Errorf("%w: %s has no label", termquest.ErrStoryInvalid, at)
			}
			if err := ref(at, c.Next); err != nil {
				return err
			}
		}
		if err := checkTriggers(fmt.Sprintf("scene %q", id), scene.Triggers); err != nil {
			return err
		}
		if scene.Await != nil {
			at := fmt.Sprintf("scene %q await", id)
			if scene.Await.Command == "" || scene.Await.Next == "" {
				return fmt.Errorf("%w: %s needs command and next", termquest.ErrStoryInvalid, at)
			}
			if err := ref(at, scene.Await.Next); err != nil {
				return err
			}
		}
	}
	return nil
}
