package player

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/picker/pkg/actuator"
)

// Move is a servo move at a time offset from the start of a sequence.
type Move struct {
	Target int           `yaml:"target"`
	Angle  int           `yaml:"angle"`
	At     time.Duration `yaml:"at"`
}

// Sequence is a list of timed moves.
type Sequence struct {
	Name  string `yaml:"name"`
	Moves []Move `yaml:"moves"`
}

// LoadSequence reads a YAML sequence file.
func LoadSequence(fs afero.Fs, path string) (*Sequence, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if seq.Name == "" {
		seq.Name = path
	}
	if err := seq.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &seq, nil
}

// Normalize validates the moves and sorts them by time.
func (s *Sequence) Normalize() error {
	for n, m := range s.Moves {
		if m.Target < 0 || m.Target >= actuator.MaxServos {
			return fmt.Errorf("move %d: invalid target %d", n, m.Target)
		}
		if m.Angle < 0 || m.Angle > actuator.MaxAngle {
			return fmt.Errorf("move %d: angle %d out of range", n, m.Angle)
		}
		if m.At < 0 {
			return fmt.Errorf("move %d: negative time %v", n, m.At)
		}
	}
	sort.SliceStable(s.Moves, func(i, j int) bool {
		return s.Moves[i].At < s.Moves[j].At
	})
	return nil
}

// Duration is the time of the last move.
func (s *Sequence) Duration() time.Duration {
	var d time.Duration
	for _, m := range s.Moves {
		if m.At > d {
			d = m.At
		}
	}
	return d
}
