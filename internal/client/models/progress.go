package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Progress struct {
	CourseID       string     `json:"courseId"`
	CompletedSteps []string   `json:"completedSteps"`
	CurrentStepID  string     `json:"currentStepId,omitempty"`
	Completed      bool       `json:"completed"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`

	rawJSON
}

func (p *Progress) UnmarshalJSON(b []byte) error {
	type alias Progress
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	typed, err := json.Marshal(a)
	if err != nil {
		return err
	}
	*p = Progress(a)
	p.rawJSON = keep(b, typed)
	return nil
}

// MarshalJSON re-emits the decoded document, unknown fields included, as
// long as no field was changed; otherwise the current fields are encoded.
func (p Progress) MarshalJSON() ([]byte, error) {
	type alias Progress
	fresh, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	return p.pick(fresh), nil
}

// StepPayload is the optional body of a step completion.
type StepPayload struct {
	SelectedOptionIndex *int   `json:"selectedOptionIndex,omitempty"`
	TxHash              string `json:"txHash,omitempty"`
}

func (p *StepPayload) Empty() bool {
	return p == nil || (p.SelectedOptionIndex == nil && p.TxHash == "")
}

var ErrIncorrectArgument = errors.New("argument must be answer=<n> or tx=<hash>")

// StepPayloadFromArgs parses name=value pairs such as "answer=2" and
// "tx=abc". It returns nil when args is empty.
func StepPayloadFromArgs(args []string) (*StepPayload, error) {
	if len(args) == 0 {
		return nil, nil
	}

	p := &StepPayload{}
	for _, item := range args {
		name, value, ok := strings.Cut(item, "=")
		if !ok || value == "" {
			return nil, ErrIncorrectArgument
		}
		switch name {
		case "answer":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad answer %q", ErrIncorrectArgument, value)
			}
			p.SelectedOptionIndex = &n
		case "tx":
			p.TxHash = value
		default:
			return nil, ErrIncorrectArgument
		}
	}
	return p, nil
}

type CompleteStepResult struct {
	Success      bool                `json:"success"`
	Progress     *Progress           `json:"progress,omitempty"`
	Verification *VerificationResult `json:"verification,omitempty"`
	Error        string              `json:"error,omitempty"`
}

type VerificationResult struct {
	CheckerID   string         `json:"checkerId"`
	CheckerName string         `json:"checkerName"`
	Type        string         `json:"type"`
	Passed      bool           `json:"passed"`
	Message     string         `json:"message"`
	Details     map[string]any `json:"details,omitempty"`
}
