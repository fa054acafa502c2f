// Package explain builds structured rationale records for a chosen beam
// solution before rendering them, grounded on explanation.py's
// ExplanationEngine: positive factors, the constant list of active
// constraints, rejected alternatives classified by the hard rule that
// actually killed them, a similarity-filtered why-chosen comparison,
// paired trade-off heuristics, and potential-error warnings for the next
// step.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"go-four-part-harmony/beam"
	"go-four-part-harmony/music"
	"go-four-part-harmony/rules"
)

// Explanation is the structured rationale for one step's chosen solution.
type Explanation struct {
	Step                 int                   `json:"step"`
	ChosenScore          float64               `json:"chosen_score"`
	PositiveFactors      []string              `json:"positive_factors"`
	ActiveConstraints    []string              `json:"active_constraints"`
	RejectedAlternatives []RejectedAlternative `json:"rejected_alternatives"`
	WhyChosen            []string              `json:"why_chosen"`
	Tradeoffs            []string              `json:"tradeoffs"`
	PotentialErrors      []string              `json:"potential_errors"`
}

// RejectedAlternative is one candidate voicing from the step's full
// candidate list that was not chosen, together with why it lost: either a
// hard rule it violated, or a soft score worse than the chosen voicing's.
type RejectedAlternative struct {
	Voicing    music.Voicing `json:"voicing"`
	Reason     string        `json:"reason"`
	Violations []string      `json:"violations,omitempty"`
	Score      float64       `json:"score,omitempty"`
}

var upperVoices = [3]music.Voice{music.Soprano, music.Alto, music.Tenor}

// Explain builds the rationale for the top-ranked member of b at the given
// step. stepInfo is the same Step passed to beam.Advance for this step; it
// is needed to reconstruct the full, unpruned candidate list that rejected
// alternatives and the why-chosen comparison are drawn from, since b itself
// holds only the survivors of hard-rule pruning.
func Explain(step int, b beam.Beam, prevVoicing *music.Voicing, stepInfo beam.Step) Explanation {
	chosen, ok := beam.Best(b)
	if !ok {
		return Explanation{Step: step}
	}

	e := Explanation{Step: step, ChosenScore: chosen.Score}

	if chosen.Fallback {
		e.PotentialErrors = append(e.PotentialErrors,
			"no legal continuation was found at this step; the previous voicing was carried forward with only the bass changed")
	}

	e.PositiveFactors = positiveFactors(chosen.Voicing, prevVoicing)
	e.ActiveConstraints = activeConstraints(prevVoicing != nil)
	e.RejectedAlternatives = rejectedAlternatives(stepInfo, chosen, prevVoicing)
	e.WhyChosen = whyChosen(stepInfo, chosen, prevVoicing)
	e.Tradeoffs = tradeoffs(stepInfo, chosen, prevVoicing)
	e.PotentialErrors = append(e.PotentialErrors, potentialErrors(chosen.Voicing, prevVoicing)...)

	return e
}

// positiveFactors reports held/stepwise motion, contrary motion against the
// bass, root doubling, and confirmation that the move introduced no
// parallel fifths or octaves.
func positiveFactors(curr music.Voicing, prev *music.Voicing) []string {
	if prev == nil {
		return []string{"initial chord: no motion constraints"}
	}

	var out []string
	bassMotion := int(curr.B) - int(prev.B)

	for _, v := range upperVoices {
		p, c := prev.Get(v), curr.Get(v)
		motion := music.IntervalSemitones(p, c)
		switch {
		case motion == 0:
			out = append(out, fmt.Sprintf("%s stays on same note (minimal motion)", v))
		case motion <= 2:
			out = append(out, fmt.Sprintf("%s moves stepwise (%d semitones)", v, motion))
		}

		voiceMotion := int(c) - int(p)
		if bassMotion != 0 && voiceMotion != 0 && bassMotion*voiceMotion < 0 {
			out = append(out, fmt.Sprintf("%s moves contrary to the bass (good counterpoint)", v))
		}
	}

	if rootCount(curr) >= 2 {
		out = append(out, fmt.Sprintf("root is doubled (%d times)", rootCount(curr)))
	}

	if len(rules.CheckParallels(*prev, curr)) == 0 {
		out = append(out, "no parallel fifths or octaves")
	}

	return out
}

// activeConstraints lists the constant set of rules every candidate was
// evaluated against, independent of whether any of them were stressed to
// reach the chosen voicing (that is what Tradeoffs reports). The
// leading-tone rule, which applies only when a step names a leading tone,
// is not listed.
func activeConstraints(hasPrev bool) []string {
	out := []string{
		fmt.Sprintf("voice ranges: S[%d-%d] A[%d-%d] T[%d-%d] B[%d-%d]",
			music.Ranges[music.Soprano].Low, music.Ranges[music.Soprano].High,
			music.Ranges[music.Alto].Low, music.Ranges[music.Alto].High,
			music.Ranges[music.Tenor].Low, music.Ranges[music.Tenor].High,
			music.Ranges[music.Bass].Low, music.Ranges[music.Bass].High),
		"voice order: S >= A >= T >= B",
		"spacing: <= octave between S-A and A-T",
	}
	if hasPrev {
		out = append(out,
			"no parallel perfect fifths or octaves",
			"no hidden fifths/octaves in parallel motion",
			"a chordal seventh resolves down by step",
		)
	}
	return out
}

// rejectedAlternatives walks the step's full candidate list -- not just the
// beam survivors -- and classifies every one other than the chosen voicing
// either by the hard rule that killed it or, for the candidates that
// survived hard-rule pruning but scored worse, by how much worse.
func rejectedAlternatives(stepInfo beam.Step, chosen beam.Solution, prevVoicing *music.Voicing) []RejectedAlternative {
	var out []RejectedAlternative
	for _, cand := range beam.Candidates(stepInfo) {
		if cand == chosen.Voicing {
			continue
		}

		violations, score := beam.Evaluate(stepInfo, prevVoicing, cand)

		var hard []string
		for _, v := range violations {
			if v.Severity == rules.Hard {
				hard = append(hard, v.Description)
			}
		}

		switch {
		case len(hard) > 0:
			out = append(out, RejectedAlternative{
				Voicing:    cand,
				Reason:     "hard_constraint_violation",
				Violations: hard,
			})
		case score > chosen.Score:
			out = append(out, RejectedAlternative{
				Voicing: cand,
				Reason:  "lower_score",
				Score:   score,
			})
		}
	}
	return out
}

// whyChosen compares the chosen voicing against its similar alternatives --
// candidates sharing at least two of the three upper voices -- on total
// motion and contrary-motion count, the same similarity filter
// explanation.py's _explain_why_chosen applies before comparing specifics.
func whyChosen(stepInfo beam.Step, chosen beam.Solution, prevVoicing *music.Voicing) []string {
	if prevVoicing == nil {
		return []string{"this is the initial chord; selection is based on optimal spacing and root doubling"}
	}

	type similar struct {
		voicing music.Voicing
		score   float64
		same    int
	}
	var candidates []similar
	for _, cand := range beam.Candidates(stepInfo) {
		if cand == chosen.Voicing {
			continue
		}
		same := sharedUpperVoices(cand, chosen.Voicing)
		if same < 2 {
			continue
		}
		_, score := beam.Evaluate(stepInfo, prevVoicing, cand)
		candidates = append(candidates, similar{cand, score, same})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].same != candidates[j].same {
			return candidates[i].same > candidates[j].same
		}
		return candidates[i].score < candidates[j].score
	})

	var out []string
	if len(candidates) > 0 {
		best := candidates[0]
		out = append(out, fmt.Sprintf("chosen over %d similar alternatives", len(candidates)))
		out = append(out, fmt.Sprintf("best alternative scored %.1f versus %.1f for the chosen voicing (difference %.1f)",
			best.score, chosen.Score, best.score-chosen.Score))

		chosenMotion, altMotion := totalMotion(chosen.Voicing, *prevVoicing), totalMotion(best.voicing, *prevVoicing)
		if chosenMotion < altMotion {
			out = append(out, fmt.Sprintf("chosen voicing has less total voice motion (%d semitones vs %d)", chosenMotion, altMotion))
		}

		chosenContrary, altContrary := contraryMotionCount(chosen.Voicing, *prevVoicing), contraryMotionCount(best.voicing, *prevVoicing)
		if chosenContrary > altContrary {
			out = append(out, fmt.Sprintf("chosen voicing has more contrary motion with the bass (%d voices vs %d)", chosenContrary, altContrary))
		}
	}

	if chosen.Score < 5.0 {
		out = append(out, "low overall score indicates a good balance of all factors")
	}

	return out
}

// tradeoffs reports the paired heuristics explanation.py's
// _explain_tradeoffs applies: minimal motion versus contrary motion, an
// explicit call-out when a more contrapuntal alternative was rejected for
// moving too much, and root doubling versus even spacing.
func tradeoffs(stepInfo beam.Step, chosen beam.Solution, prevVoicing *music.Voicing) []string {
	if prevVoicing == nil {
		return nil
	}

	var out []string
	totalMot := totalMotion(chosen.Voicing, *prevVoicing)
	contrary := contraryMotionCount(chosen.Voicing, *prevVoicing)

	switch {
	case totalMot < 5 && contrary < 2:
		out = append(out, "minimal motion prioritized over contrary motion: voices stay close to their previous positions")
	case totalMot > 10 && contrary >= 2:
		out = append(out, "contrary motion prioritized over minimal motion: more voice movement for better counterpoint")
	}

	type betterContrary struct {
		contrary, motion int
	}
	var best *betterContrary
	for _, cand := range beam.Candidates(stepInfo) {
		if cand == chosen.Voicing {
			continue
		}
		altContrary := contraryMotionCount(cand, *prevVoicing)
		altMotion := totalMotion(cand, *prevVoicing)
		if altContrary > contrary && altMotion > totalMot {
			if best == nil || altContrary > best.contrary {
				best = &betterContrary{altContrary, altMotion}
			}
		}
	}
	if best != nil {
		out = append(out, fmt.Sprintf(
			"alternative with better contrary motion (%d vs %d) rejected for excessive voice motion (%d vs %d semitones)",
			best.contrary, contrary, best.motion, totalMot))
	}

	if rootCount(chosen.Voicing) >= 2 {
		if spacingVariance(chosen.Voicing) > 5 {
			out = append(out, "root doubling prioritized over even spacing: the chord may sound less balanced but harmonically stronger")
		}
	}

	return out
}

// potentialErrors warns about range edges, large leaps, motion parallel
// with the bass (a possible hidden parallel one step away), a root that is
// not doubled, and wide upper-voice spacing.
func potentialErrors(chosen music.Voicing, prevVoicing *music.Voicing) []string {
	if prevVoicing == nil {
		return []string{"initial chord: ensure proper voice spacing and root doubling"}
	}

	var out []string

	for _, v := range upperVoices {
		p := chosen.Get(v)
		r := music.Ranges[v]
		if p <= r.Low+2 {
			out = append(out, fmt.Sprintf("%s is near its lower range limit (%d); risk of going out of range", v, p))
		}
		if p >= r.High-2 {
			out = append(out, fmt.Sprintf("%s is near its upper range limit (%d); risk of going out of range", v, p))
		}
	}

	bassMotion := int(chosen.B) - int(prevVoicing.B)
	if bassMotion != 0 {
		for _, v := range upperVoices {
			voiceMotion := int(chosen.Get(v)) - int(prevVoicing.Get(v))
			if voiceMotion != 0 && bassMotion*voiceMotion > 0 {
				out = append(out, fmt.Sprintf("%s moves parallel with the bass; watch the next step for hidden parallels", v))
			}
		}
	}

	for _, v := range upperVoices {
		motion := music.IntervalSemitones(prevVoicing.Get(v), chosen.Get(v))
		if motion > 7 {
			out = append(out, fmt.Sprintf("%s makes a large leap (%d semitones); confirm voice leading into the next step", v, motion))
		}
	}

	if n := rootCount(chosen); n < 2 {
		out = append(out, fmt.Sprintf("root is not doubled (only %d occurrence); may leave a weak harmonic foundation", n))
	}

	sa, at := music.IntervalSemitones(chosen.S, chosen.A), music.IntervalSemitones(chosen.A, chosen.T)
	if sa > 10 || at > 10 {
		out = append(out, "wide spacing between upper voices; may sound disconnected")
	}

	return out
}

func rootCount(v music.Voicing) int {
	count := 0
	v.Each(func(_ music.Voice, p music.Pitch) {
		if p.Class() == v.B.Class() {
			count++
		}
	})
	return count
}

func sharedUpperVoices(a, b music.Voicing) int {
	count := 0
	for _, v := range upperVoices {
		if a.Get(v) == b.Get(v) {
			count++
		}
	}
	return count
}

func totalMotion(curr, prev music.Voicing) int {
	total := 0
	for _, v := range upperVoices {
		total += music.IntervalSemitones(prev.Get(v), curr.Get(v))
	}
	return total
}

func contraryMotionCount(curr, prev music.Voicing) int {
	bassMotion := int(curr.B) - int(prev.B)
	if bassMotion == 0 {
		return 0
	}
	count := 0
	for _, v := range upperVoices {
		voiceMotion := int(curr.Get(v)) - int(prev.Get(v))
		if voiceMotion != 0 && bassMotion*voiceMotion < 0 {
			count++
		}
	}
	return count
}

// spacingVariance measures how evenly the S-A and A-T intervals are
// balanced; unlike rules.ScoreSpacingVariance (which also folds in T-B for
// scoring every candidate), this mirrors explanation.py's
// _calculate_spacing_variance, which looks only at the two upper gaps when
// judging whether doubling was bought at the price of lopsided spacing.
func spacingVariance(v music.Voicing) float64 {
	sa := float64(music.IntervalSemitones(v.S, v.A))
	at := float64(music.IntervalSemitones(v.A, v.T))
	avg := (sa + at) / 2
	return ((sa-avg)*(sa-avg) + (at-avg)*(at-avg)) / 2
}

// Format renders an Explanation as prose, in the order
// explanation.py's format_explanation prints its sections: positive
// factors, rejected alternatives (first five), active constraints,
// why-chosen, trade-offs, potential errors.
func Format(e Explanation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Step %d\n", e.Step)

	if len(e.PositiveFactors) > 0 {
		b.WriteString("  Positive factors:\n")
		for _, f := range e.PositiveFactors {
			fmt.Fprintf(&b, "    - %s\n", f)
		}
	}

	if len(e.RejectedAlternatives) > 0 {
		fmt.Fprintf(&b, "  Rejected alternatives (%d):\n", len(e.RejectedAlternatives))
		for i, alt := range e.RejectedAlternatives {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "    %d. %v\n", i+1, alt.Voicing)
			if alt.Reason == "hard_constraint_violation" {
				for j, v := range alt.Violations {
					if j >= 2 {
						break
					}
					fmt.Fprintf(&b, "       x %s\n", v)
				}
			} else {
				fmt.Fprintf(&b, "       scored %.2f versus %.2f for the chosen voicing\n", alt.Score, e.ChosenScore)
			}
		}
	}

	if len(e.ActiveConstraints) > 0 {
		b.WriteString("  Active constraints:\n")
		for _, c := range e.ActiveConstraints {
			fmt.Fprintf(&b, "    - %s\n", c)
		}
	}

	if len(e.WhyChosen) > 0 {
		b.WriteString("  Why chosen:\n")
		for _, reason := range e.WhyChosen {
			fmt.Fprintf(&b, "    - %s\n", reason)
		}
	}

	if len(e.Tradeoffs) > 0 {
		b.WriteString("  Trade-offs:\n")
		for _, t := range e.Tradeoffs {
			fmt.Fprintf(&b, "    - %s\n", t)
		}
	}

	if len(e.PotentialErrors) > 0 {
		b.WriteString("  Potential errors:\n")
		for _, p := range e.PotentialErrors {
			fmt.Fprintf(&b, "    - %s\n", p)
		}
	}

	return b.String()
}
