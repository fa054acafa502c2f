package explain

import (
	"strings"
	"testing"

	"go-four-part-harmony/beam"
	"go-four-part-harmony/music"
)

func cMajorStep(bass music.Pitch) beam.Step {
	rootPC := bass.Class()
	return beam.Step{
		Bass:    bass,
		Allowed: music.ChordTones(music.Pitch(int(rootPC)), music.Major),
		RootPC:  rootPC,
	}
}

func TestExplainInitialChordWhyChosen(t *testing.T) {
	step := cMajorStep(48)
	b := beam.Beam{
		{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 3.0, PredecessorIx: -1},
	}
	e := Explain(0, b, nil, step)
	if len(e.WhyChosen) == 0 {
		t.Fatal("expected a why-chosen rationale")
	}
	if e.WhyChosen[0] != "this is the initial chord; selection is based on optimal spacing and root doubling" {
		t.Errorf("unexpected first-step why-chosen text: %v", e.WhyChosen)
	}
}

func TestExplainWithMotionAndDoubling(t *testing.T) {
	step := cMajorStep(48)
	prev := music.Voicing{S: 72, A: 67, T: 64, B: 48}
	b := beam.Beam{
		{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 2.0, PredecessorIx: 0},
	}
	e := Explain(1, b, &prev, step)

	if len(e.PositiveFactors) == 0 {
		t.Error("expected positive factors for voices that held still")
	}
	foundHeld := false
	for _, f := range e.PositiveFactors {
		if strings.Contains(f, "stays on same note") {
			foundHeld = true
		}
	}
	if !foundHeld {
		t.Errorf("expected a held-note positive factor, got %v", e.PositiveFactors)
	}

	foundParallelFree := false
	for _, f := range e.PositiveFactors {
		if strings.Contains(f, "no parallel fifths or octaves") {
			foundParallelFree = true
		}
	}
	if !foundParallelFree {
		t.Errorf("expected confirmation of parallel-free motion, got %v", e.PositiveFactors)
	}

	foundDoubled := false
	for _, f := range e.PositiveFactors {
		if strings.Contains(f, "root is doubled (2 times)") {
			foundDoubled = true
		}
	}
	if !foundDoubled {
		t.Errorf("expected a root-doubling positive factor, got %v", e.PositiveFactors)
	}
}

func TestExplainRejectedAlternativesClassifyHardViolations(t *testing.T) {
	step := cMajorStep(48)
	b := beam.Beam{
		{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 2.0, PredecessorIx: 0},
	}
	e := Explain(0, b, nil, step)

	if len(e.RejectedAlternatives) == 0 {
		t.Fatal("expected rejected alternatives drawn from the full candidate list")
	}
	sawHard := false
	for _, alt := range e.RejectedAlternatives {
		if alt.Reason == "hard_constraint_violation" {
			sawHard = true
			if len(alt.Violations) == 0 {
				t.Errorf("hard_constraint_violation alternative has no violation descriptions: %+v", alt)
			}
		}
	}
	if !sawHard {
		t.Error("expected at least one alternative rejected for a hard constraint violation")
	}
}

func TestExplainActiveConstraintsAreConstant(t *testing.T) {
	step := cMajorStep(48)
	b1 := beam.Beam{{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 1.0}}
	e1 := Explain(0, b1, nil, step)

	prev := music.Voicing{S: 72, A: 67, T: 64, B: 48}
	b2 := beam.Beam{{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 1.0}}
	e2 := Explain(1, b2, &prev, step)

	if len(e1.ActiveConstraints) == 0 || len(e2.ActiveConstraints) == 0 {
		t.Fatal("expected active constraints to be reported regardless of step")
	}
	// Active constraints describe the rules evaluated, not which ones were
	// stressed to reach this voicing; they must not collapse into Tradeoffs.
	for _, c := range e2.ActiveConstraints {
		for _, tr := range e2.Tradeoffs {
			if c == tr {
				t.Errorf("active constraint %q duplicated verbatim in tradeoffs", c)
			}
		}
	}
}

func TestExplainFallback(t *testing.T) {
	step := cMajorStep(48)
	b := beam.Beam{
		{Voicing: music.Voicing{S: 72, A: 67, T: 64, B: 48}, Score: 100.0, Fallback: true, PredecessorIx: 0},
	}
	e := Explain(2, b, nil, step)
	if len(e.PotentialErrors) == 0 {
		t.Error("expected a potential-error note for a fallback solution")
	}
}

func TestExplainPotentialErrorsWarnsOnLargeLeapAndMissingRoot(t *testing.T) {
	step := cMajorStep(48)
	prev := music.Voicing{S: 60, A: 57, T: 52, B: 48}
	// Soprano leaps a tenth (16 semitones); no voice doubles the bass's C.
	b := beam.Beam{
		{Voicing: music.Voicing{S: 76, A: 64, T: 55, B: 48}, Score: 1.0},
	}
	e := Explain(1, b, &prev, step)

	sawLeap, sawMissingRoot := false, false
	for _, p := range e.PotentialErrors {
		if strings.Contains(p, "large leap") {
			sawLeap = true
		}
		if strings.Contains(p, "not doubled") {
			sawMissingRoot = true
		}
	}
	if !sawLeap {
		t.Errorf("expected a large-leap warning, got %v", e.PotentialErrors)
	}
	if !sawMissingRoot {
		t.Errorf("expected a missing-root warning, got %v", e.PotentialErrors)
	}
}

func TestFormatIncludesStepAndWhyChosen(t *testing.T) {
	e := Explanation{Step: 3, WhyChosen: []string{"because it scored lowest"}}
	out := Format(e)
	if !strings.Contains(out, "Step 3") {
		t.Errorf("Format() = %q, want it to contain the step number", out)
	}
	if !strings.Contains(out, "because it scored lowest") {
		t.Errorf("Format() = %q, want it to contain the why-chosen text", out)
	}
}
