// Package planfile reads and writes day plans in YAML.
//
//	events:
//	  - title: Standup
//	    start: "09:00"
//	    end: "09:15"
package planfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/dayslot/internal/scheduling/application/queries"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is returned when an entry lacks a start or end time.
var ErrMissingField = errors.New("plan entry is missing a required field")

// Plan is the document stored in a plan file.
type Plan struct {
	Events []Entry `yaml:"events"`
}

// Entry is one event of a plan. Times use the HH:MM format.
type Entry struct {
	Title string `yaml:"title"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Decode reads a plan. Unknown keys are rejected.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	plan := &Plan{}
	if err := dec.Decode(plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	for i, e := range plan.Events {
		if e.Start == "" || e.End == "" {
			return nil, fmt.Errorf("event %d (%q): %w", i+1, e.Title, ErrMissingField)
		}
	}
	return plan, nil
}

// Load reads the plan file at path.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	plan, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// Commands converts the plan to add-event commands in file order.
func (p *Plan) Commands() []commands.AddEventCommand {
	cmds := make([]commands.AddEventCommand, len(p.Events))
	for i, e := range p.Events {
		cmds[i] = commands.AddEventCommand{Title: e.Title, Start: e.Start, End: e.End}
	}
	return cmds
}

// FromEvents builds a plan from scheduled events.
func FromEvents(events []queries.EventDTO) *Plan {
	plan := &Plan{Events: make([]Entry, len(events))}
	for i, e := range events {
		plan.Events[i] = Entry{Title: e.Title, Start: e.Start, End: e.End}
	}
	return plan
}

// Encode writes the plan as YAML.
func Encode(w io.Writer, plan *Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}
