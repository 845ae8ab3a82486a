// Package script replays recorded learner inputs against a level controller.
// A script is a YAML list of steps; time only moves on "wait" steps, so a
// replay always produces the same result.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Op names a step kind.
type Op string

const (
	OpStart  Op = "start"
	OpLevel  Op = "level"
	OpReset  Op = "reset"
	OpSelect Op = "select"
	OpAssign Op = "assign"
	OpCable  Op = "cable"
	OpUndo   Op = "undo"
	OpPickUp Op = "pickup"
	OpPlace  Op = "place"
	OpClose  Op = "close"
	OpHelp   Op = "help"
	OpWait   Op = "wait"
	OpCheck  Op = "check"
)

var knownOps = map[Op]bool{
	OpStart: true, OpLevel: true, OpReset: true, OpSelect: true,
	OpAssign: true, OpCable: true, OpUndo: true, OpPickUp: true,
	OpPlace: true, OpClose: true, OpHelp: true, OpWait: true, OpCheck: true,
}

// Step is one learner input.
type Step struct {
	Op Op `yaml:"op" json:"op"`

	// Arg carries the operand: a core id, terminal key, slot, level,
	// cable, hint tier or number of seconds.
	Arg string `yaml:"arg,omitempty" json:"arg,omitempty"`

	// Expect names the rejection the step must produce, e.g. "out_of_order".
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Script is a named sequence of steps.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`

	// ReferenceSocket defaults to true when omitted.
	ReferenceSocket   *bool `yaml:"reference_socket,omitempty" json:"reference_socket,omitempty"`
	StrictProgression bool  `yaml:"strict_progression,omitempty" json:"strict_progression,omitempty"`

	Steps []Step `yaml:"steps" json:"steps"`
}

// ErrInvalidScript is returned for scripts that cannot be replayed.
var ErrInvalidScript = errors.New("invalid script")

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script file. The file name stands in for a missing name.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks op names and expectation names before anything runs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if !knownOps[Op(strings.ToLower(string(st.Op)))] {
			return fmt.Errorf("%w: step %d: unknown op %q", ErrInvalidScript, i+1, st.Op)
		}
		if st.Expect != "" {
			if _, ok := lookupError(st.Expect); !ok {
				return fmt.Errorf("%w: step %d: unknown expectation %q", ErrInvalidScript, i+1, st.Expect)
			}
		}
	}
	return nil
}
