// Package config loads batch harmonization jobs from YAML files, in the
// shape described in SPEC_FULL.md's supplemented "batch processing"
// feature. Grounded on ako-backing-tracks/parser's Track/LoadTrack, which
// loads a similarly document-shaped YAML file with gopkg.in/yaml.v3 and
// applies the same default-filling pattern after unmarshaling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go-four-part-harmony/music"
)

// Batch is a YAML file describing one or more harmonization jobs to run
// in sequence.
type Batch struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is a single unit of work: an operation name and its input.
type Job struct {
	Name       string   `yaml:"name"`
	Operation  string   `yaml:"operation"` // "harmonize", "melody", "counterpoint"; there is no "check" operation
	BassLine   []int    `yaml:"bass_line,omitempty"`
	Melody     []int    `yaml:"melody,omitempty"`
	ChordTypes []string `yaml:"chord_types,omitempty"`
	Above      bool     `yaml:"above,omitempty"`
	Species    int      `yaml:"species,omitempty"`
	BeamWidth  int      `yaml:"beam_width,omitempty"`
}

// LoadBatch reads and parses a batch YAML file.
func LoadBatch(filename string) (*Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}

	for i := range b.Jobs {
		if b.Jobs[i].Species == 0 {
			b.Jobs[i].Species = 1
		}
	}

	return &b, nil
}

// Pitches converts a job's raw MIDI integers into music.Pitch values.
func Pitches(raw []int) []music.Pitch {
	out := make([]music.Pitch, len(raw))
	for i, n := range raw {
		out[i] = music.Pitch(n)
	}
	return out
}

// ChordQualities converts a job's raw chord-type strings into
// music.ChordQuality values, validating each against the known set.
func ChordQualities(raw []string) ([]music.ChordQuality, error) {
	out := make([]music.ChordQuality, len(raw))
	for i, s := range raw {
		q := music.ChordQuality(s)
		switch q {
		case music.Major, music.Minor, music.Diminished, music.Augmented,
			music.Dominant7, music.Major7, music.Minor7,
			music.HalfDiminished7, music.FullyDiminished7:
			out[i] = q
		default:
			return nil, fmt.Errorf("config: unknown chord quality %q at index %d", s, i)
		}
	}
	return out, nil
}
