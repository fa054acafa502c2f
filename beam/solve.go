// Package beam implements the step-wise beam search that drives the
// harmonizer: at each step it forms the Cartesian product of upper-voice
// candidates against the fixed bass, prunes by the hard rules (including
// the cross-step rules paired against every beam predecessor), scores
// survivors with the soft rules, and keeps the best Width. Grounded on
// solver.py's Solver.solve, with one deliberate correction described in
// SPEC_FULL.md open question 1: a candidate's soft score is computed
// against the specific predecessor it was paired with during hard-rule
// pruning, not always against the single best predecessor.
package beam

import (
	"fmt"
	"sort"

	"go-four-part-harmony/candidates"
	"go-four-part-harmony/music"
	"go-four-part-harmony/rules"
)

// DefaultWidth is the beam width used when a caller does not specify one.
const DefaultWidth = 10

// Step describes one chord in the progression to be harmonized: its fixed
// bass, the pitch-class vocabulary upper voices may draw from, and the
// harmonic context needed for cross-step hard rules and soft scoring.
type Step struct {
	Bass          music.Pitch
	Allowed       []music.PitchClass
	RootPC        music.PitchClass
	LeadingTonePC *music.PitchClass
	KeyRootPC     *music.PitchClass
}

// Solution is one beam member: a complete voicing, its cumulative score,
// the violations tolerated to reach it, whether it is a fallback sentinel,
// and the index of the beam member from the previous step it was built on.
type Solution struct {
	Voicing       music.Voicing
	Score         float64
	Violations    []rules.Violation
	Fallback      bool
	PredecessorIx int
}

// Beam is a ranked set of solutions, best (lowest score) first.
type Beam []Solution

// candidate is an unpruned upper-voice combination for one step, before it
// is checked against any predecessor.
type candidate struct {
	voicing music.Voicing
}

func upperCombinations(bass music.Pitch, allowed []music.PitchClass) []candidate {
	slices := candidates.UpperVoices(allowed)
	var out []candidate
	for _, s := range slices[0] {
		for _, a := range slices[1] {
			for _, t := range slices[2] {
				out = append(out, candidate{voicing: music.Voicing{S: s, A: a, T: t, B: bass}})
			}
		}
	}
	return out
}

// solvePairing checks one candidate against one predecessor, returning the
// violations and whether it survives (no hard violation, including the
// per-voicing checks which are predecessor-independent but cheap enough to
// recheck here for simplicity).
func solvePairing(step Step, pred Solution, cand candidate) (violations []rules.Violation, ok bool) {
	violations = append(violations, rules.CheckPerVoicing(cand.voicing)...)
	violations = append(violations, rules.CheckCrossStep(pred.Voicing, step.RootPC, step.LeadingTonePC, cand.voicing)...)
	if step.LeadingTonePC != nil && step.KeyRootPC != nil {
		violations = append(violations, rules.CheckLeadingToneSoft(pred.Voicing, *step.LeadingTonePC, *step.KeyRootPC, cand.voicing)...)
	}
	return violations, !rules.HasHard(violations)
}

// firstStepSurvives checks a candidate with no predecessor: only the
// per-voicing hard rules apply.
func firstStepSurvives(cand candidate) (violations []rules.Violation, ok bool) {
	violations = rules.CheckPerVoicing(cand.voicing)
	return violations, !rules.HasHard(violations)
}

// scorePairing computes the soft score of cand against the specific
// predecessor it survived pairing with.
func scorePairing(step Step, pred *Solution, cand candidate) float64 {
	in := rules.TotalScoreInput{
		Curr:          cand.voicing,
		RootPC:        &step.RootPC,
		LeadingTonePC: step.LeadingTonePC,
	}
	if pred != nil {
		in.Prev = &pred.Voicing
		in.BassMotion = int(cand.voicing.B) - int(pred.Voicing.B)
	}
	return rules.TotalScore(in)
}

// Advance runs one step of beam search: it expands every candidate in prev
// (or, if prev is empty, an implicit single empty predecessor for the first
// step), prunes with the hard rules, scores survivors, and returns the top
// Width solutions. If no candidate survives pairing with any predecessor and
// prev is non-empty, it returns a single fallback sentinel: the best
// predecessor cloned forward with its bass replaced by the step's bass and
// score 100.0, so the search can continue
// rather than dead-end. A first step with no valid candidate at all returns
// an error; there is no predecessor to fall back to.
func Advance(step Step, prev Beam, width int) (Beam, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	combos := upperCombinations(step.Bass, step.Allowed)
	if len(combos) == 0 {
		return nil, fmt.Errorf("beam: no candidate pitches for allowed set %v", step.Allowed)
	}

	type scored struct {
		sol Solution
	}
	var survivors []scored

	if len(prev) == 0 {
		for _, cand := range combos {
			violations, ok := firstStepSurvives(cand)
			if !ok {
				continue
			}
			score := scorePairing(step, nil, cand)
			survivors = append(survivors, scored{Solution{
				Voicing:       cand.voicing,
				Score:         score,
				Violations:    violations,
				PredecessorIx: -1,
			}})
		}
		if len(survivors) == 0 {
			return nil, fmt.Errorf("beam: no surviving voicing for first step")
		}
	} else {
		// For each candidate, keep only its best (lowest-scoring) pairing
		// across every predecessor it can legally follow.
		type best struct {
			has bool
			sol Solution
		}
		bestByCandidate := make([]best, len(combos))
		for ci, cand := range combos {
			for pi, pred := range prev {
				violations, ok := solvePairing(step, pred, cand)
				if !ok {
					continue
				}
				score := pred.Score + scorePairing(step, &pred, cand)
				if !bestByCandidate[ci].has || score < bestByCandidate[ci].sol.Score {
					bestByCandidate[ci] = best{true, Solution{
						Voicing:       cand.voicing,
						Score:         score,
						Violations:    violations,
						PredecessorIx: pi,
					}}
				}
			}
		}
		for _, b := range bestByCandidate {
			if b.has {
				survivors = append(survivors, scored{b.sol})
			}
		}
		if len(survivors) == 0 {
			return Beam{fallbackSentinel(prev, step.Bass)}, nil
		}
	}

	sort.Slice(survivors, func(i, j int) bool {
		si, sj := survivors[i].sol, survivors[j].sol
		if si.Score != sj.Score {
			return si.Score < sj.Score
		}
		return lexLess(si.Voicing, sj.Voicing)
	})

	out := make(Beam, 0, width)
	for i := 0; i < len(survivors) && i < width; i++ {
		out = append(out, survivors[i].sol)
	}
	return out, nil
}

// Candidates returns every upper-voice combination considered at this step,
// before any hard-rule pruning against a predecessor. The explanation
// engine needs this full list (not the already-pruned Beam) to classify
// rejected alternatives by which hard rule actually killed them, per
// spec.md §4.5.
func Candidates(step Step) []music.Voicing {
	combos := upperCombinations(step.Bass, step.Allowed)
	out := make([]music.Voicing, len(combos))
	for i, c := range combos {
		out[i] = c.voicing
	}
	return out
}

// Evaluate reports the hard/soft violations and soft score for one
// candidate voicing judged against a single previous voicing (nil for the
// first step), independent of beam pruning or any other candidate.
func Evaluate(step Step, prev *music.Voicing, voicing music.Voicing) ([]rules.Violation, float64) {
	violations := rules.CheckPerVoicing(voicing)
	if prev != nil {
		violations = append(violations, rules.CheckCrossStep(*prev, step.RootPC, step.LeadingTonePC, voicing)...)
		if step.LeadingTonePC != nil && step.KeyRootPC != nil {
			violations = append(violations, rules.CheckLeadingToneSoft(*prev, *step.LeadingTonePC, *step.KeyRootPC, voicing)...)
		}
	}

	in := rules.TotalScoreInput{
		Curr:          voicing,
		RootPC:        &step.RootPC,
		LeadingTonePC: step.LeadingTonePC,
	}
	if prev != nil {
		in.Prev = prev
		in.BassMotion = int(voicing.B) - int(prev.B)
	}

	return violations, rules.TotalScore(in)
}

// fallbackSentinel clones the best predecessor forward, overwriting its bass
// with the step's actual bass pitch, flagged as a fallback, with a fixed
// penalty score. This keeps the search alive when an entire step finds no
// legal continuation, while still honoring the invariant that every emitted
// voicing's bass matches the input progression at that position.
func fallbackSentinel(prev Beam, bass music.Pitch) Solution {
	best := prev[0]
	return Solution{
		Voicing:       best.Voicing.With(music.Bass, bass),
		Score:         100.0,
		Violations:    nil,
		Fallback:      true,
		PredecessorIx: 0,
	}
}

func lexLess(a, b music.Voicing) bool {
	if a.S != b.S {
		return a.S < b.S
	}
	if a.A != b.A {
		return a.A < b.A
	}
	if a.T != b.T {
		return a.T < b.T
	}
	return a.B < b.B
}

// Solve runs the full progression through beam search and returns the beam
// produced at every step, in step order; Best picks a beam's top solution.
func Solve(steps []Step, width int) ([]Beam, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("beam: empty progression")
	}
	beams := make([]Beam, 0, len(steps))
	var prev Beam
	for i, step := range steps {
		b, err := Advance(step, prev, width)
		if err != nil {
			return nil, fmt.Errorf("beam: step %d: %w", i, err)
		}
		beams = append(beams, b)
		prev = b
	}
	return beams, nil
}

// Best returns the top-ranked solution of a beam, and false if the beam is
// empty.
func Best(b Beam) (Solution, bool) {
	if len(b) == 0 {
		return Solution{}, false
	}
	return b[0], true
}
