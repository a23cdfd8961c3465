package models

import "encoding/json"

// Map is a graph of courses laid out for navigation.
type Map struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Nodes       []MapNode `json:"nodes"`

	rawJSON
}

type MapNode struct {
	ID       string   `json:"id"`
	CourseID string   `json:"courseId"`
	Title    string   `json:"title"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Requires []string `json:"requires,omitempty"`
}

func (m *Map) UnmarshalJSON(b []byte) error {
	type alias Map
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	typed, err := json.Marshal(a)
	if err != nil {
		return err
	}
	*m = Map(a)
	m.rawJSON = keep(b, typed)
	return nil
}

// MarshalJSON re-emits the decoded document, unknown fields included, as
// long as no field was changed; otherwise the current fields are encoded.
func (m Map) MarshalJSON() ([]byte, error) {
	type alias Map
	fresh, err := json.Marshal(alias(m))
	if err != nil {
		return nil, err
	}
	return m.pick(fresh), nil
}

type Course struct {
	ID          string `json:"id"`
	MapID       string `json:"mapId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Steps       []Step `json:"steps"`

	rawJSON
}

func (c *Course) UnmarshalJSON(b []byte) error {
	type alias Course
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	typed, err := json.Marshal(a)
	if err != nil {
		return err
	}
	*c = Course(a)
	c.rawJSON = keep(b, typed)
	return nil
}

// MarshalJSON re-emits the decoded document, unknown fields included, as
// long as no field was changed; otherwise the current fields are encoded.
func (c Course) MarshalJSON() ([]byte, error) {
	type alias Course
	fresh, err := json.Marshal(alias(c))
	if err != nil {
		return nil, err
	}
	return c.pick(fresh), nil
}

// Step finds the step with the given id.
func (c *Course) Step(id string) (Step, bool) {
	for _, s := range c.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

type StepType string

const (
	StepTypeContent    StepType = "content"
	StepTypeQuiz       StepType = "quiz"
	StepTypeBlockchain StepType = "blockchain"
	StepTypeNFT        StepType = "nft"
)

type Step struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Type     StepType        `json:"type"`
	Content  string          `json:"content,omitempty"`
	Quiz     *Quiz           `json:"quiz,omitempty"`
	Checkers []Checker       `json:"checkers,omitempty"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Checker is a backend verification rule gating step completion.
type Checker struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}
