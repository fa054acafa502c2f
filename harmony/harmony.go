// Package harmony is the public entry point the rest of this module is
// built to serve: a synchronous, side-effect-free function from a bass
// line (or melody, or cantus firmus) to a complete four-part realization
// plus its rationale. It owns no state and performs no I/O; callers
// (cmd/harmonize, a future HTTP handler) are responsible for that.
package harmony

import (
	"errors"
	"fmt"
	"strings"

	"go-four-part-harmony/beam"
	"go-four-part-harmony/exercises"
	"go-four-part-harmony/explain"
	"go-four-part-harmony/music"
)

// Voicing is an alias for music.Voicing, re-exported here so callers of
// this package don't need to import music just to read a Result.
type Voicing = music.Voicing

// Request describes a bass-line harmonization: one bass pitch and chord
// quality per step.
type Request struct {
	BassLine   []music.Pitch
	ChordTypes []music.ChordQuality // optional; defaults to major for unset entries
	BeamWidth  int                  // optional; defaults to beam.DefaultWidth
}

// Result is the outcome of any of this package's operations: either a
// voiced, explained progression, or a typed error.
type Result struct {
	Success      bool
	Voices       []Voicing
	Explanations string
	Err          error
}

// Sentinel error kinds, per spec.md §7.
var (
	ErrInputEmpty      = errors.New("harmony: input is empty")
	ErrNoSolution      = errors.New("harmony: no legal solution exists for the first step")
	ErrInvalidSpec     = errors.New("harmony: invalid specification")
	ErrInternalFailure = errors.New("harmony: internal failure")
)

// Harmonize realizes a bass line into a full four-part progression.
func Harmonize(req Request) Result {
	if len(req.BassLine) == 0 {
		return Result{Err: fmt.Errorf("%w: no bass notes given", ErrInputEmpty)}
	}

	width := req.BeamWidth
	if width <= 0 {
		width = beam.DefaultWidth
	}

	steps := make([]beam.Step, len(req.BassLine))
	for i, bass := range req.BassLine {
		quality := music.Major
		if i < len(req.ChordTypes) && req.ChordTypes[i] != "" {
			quality = req.ChordTypes[i]
		}
		rootPC := bass.Class()
		allowed := music.ChordTones(music.Pitch(int(rootPC)), quality)
		steps[i] = beam.Step{
			Bass:    bass,
			Allowed: allowed,
			RootPC:  rootPC,
		}
	}

	beams, err := beam.Solve(steps, width)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrNoSolution, err)}
	}

	return buildResult(steps, beams)
}

// HarmonizeMelody realizes a soprano line, inferring plausible bass notes
// under each melody note.
func HarmonizeMelody(melody []music.Pitch, chordTypes []music.ChordQuality) Result {
	if len(melody) == 0 {
		return Result{Err: fmt.Errorf("%w: no melody notes given", ErrInputEmpty)}
	}
	voices := exercises.HarmonizeMelody(melody, chordTypes)
	return Result{Success: true, Voices: voices}
}

// Counterpoint writes species counterpoint against a cantus firmus. Only
// species 1 is implemented; other species values return ErrInvalidSpec.
func Counterpoint(cantusFirmus []music.Pitch, above bool, species int) Result {
	if len(cantusFirmus) == 0 {
		return Result{Err: fmt.Errorf("%w: no cantus firmus notes given", ErrInputEmpty)}
	}
	if species != 1 {
		return Result{Err: fmt.Errorf("%w: species %d is not implemented", ErrInvalidSpec, species)}
	}
	voices := exercises.SolveSpecies1(cantusFirmus, above)
	return Result{Success: true, Voices: voices}
}

// CheckErrors finds and, where possible, corrects errors in an existing
// four-part progression.
func CheckErrors(progression []music.Voicing) exercises.ErrorReport {
	return exercises.CheckErrors(progression)
}

func buildResult(steps []beam.Step, beams []beam.Beam) Result {
	voices := make([]Voicing, len(beams))
	var explanations strings.Builder
	var prev *music.Voicing

	for i, b := range beams {
		best, ok := beam.Best(b)
		if !ok {
			return Result{Err: fmt.Errorf("%w: empty beam at step %d", ErrInternalFailure, i)}
		}
		voices[i] = best.Voicing
		e := explain.Explain(i, b, prev, steps[i])
		explanations.WriteString(explain.Format(e))
		v := best.Voicing
		prev = &v
	}

	return Result{Success: true, Voices: voices, Explanations: explanations.String()}
}
