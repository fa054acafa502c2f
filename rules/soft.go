package rules

import (
	"fmt"

	"go-four-part-harmony/music"
)

// ScoreVoiceMotion scores one upper voice's motion from hasPrev/prev to
// curr. Lower is better; staying in place is free, stepwise motion is
// cheap, leaps are increasingly expensive.
func ScoreVoiceMotion(hasPrev bool, prev, curr music.Pitch) float64 {
	if !hasPrev {
		return 0.0
	}
	motion := music.IntervalSemitones(prev, curr)
	switch {
	case motion == 0:
		return 0.0
	case motion <= 2:
		return 1.0
	case motion <= 7:
		return 3.0
	default:
		return 10.0
	}
}

// ScoreContraryMotion rewards an upper voice moving opposite the bass and
// penalizes similar motion. No bonus or penalty applies when either party
// holds still.
func ScoreContraryMotion(bassMotion, voiceMotion int) float64 {
	if bassMotion == 0 || voiceMotion == 0 {
		return 0.0
	}
	if bassMotion*voiceMotion < 0 {
		return -2.0
	}
	return 2.0
}

// ScoreDoubling rewards doubling the root at least twice and penalizes its
// absence.
func ScoreDoubling(v music.Voicing, rootPC music.PitchClass) float64 {
	count := 0
	v.Each(func(_ music.Voice, p music.Pitch) {
		if p.Class() == rootPC {
			count++
		}
	})
	switch {
	case count >= 2:
		return -1.0
	case count == 0:
		return 5.0
	default:
		return 0.0
	}
}

// ScoreLeadingToneDoubling heavily penalizes doubling the leading tone.
func ScoreLeadingToneDoubling(v music.Voicing, leadingTonePC music.PitchClass) float64 {
	count := 0
	v.Each(func(_ music.Voice, p music.Pitch) {
		if p.Class() == leadingTonePC {
			count++
		}
	})
	if count >= 2 {
		return 10.0
	}
	return 0.0
}

// ScoreSpacingVariance penalizes uneven distribution across (S-A), (A-T),
// (T-B).
func ScoreSpacingVariance(v music.Voicing) float64 {
	sa := float64(music.IntervalSemitones(v.S, v.A))
	at := float64(music.IntervalSemitones(v.A, v.T))
	tb := float64(music.IntervalSemitones(v.T, v.B))
	avg := (sa + at + tb) / 3.0
	variance := ((sa-avg)*(sa-avg) + (at-avg)*(at-avg) + (tb-avg)*(tb-avg)) / 3.0
	return variance * 0.1
}

// CheckLeadingToneSoft reports the soft half of the leading-tone rule: a
// voice that held the leading tone and ascended, but not to the key root,
// as described in spec.md §4.2.
func CheckLeadingToneSoft(prev music.Voicing, leadingTonePC, keyRootPC music.PitchClass, curr music.Voicing) []Violation {
	var out []Violation
	for _, v := range music.AllVoices {
		p, c := prev.Get(v), curr.Get(v)
		if p.Class() != leadingTonePC || c <= p {
			continue
		}
		if c.Class() != keyRootPC {
			out = append(out, Violation{
				Rule:        "leading_tone_resolution",
				Description: fmt.Sprintf("%s resolved the leading tone upward but not to the tonic", v),
				Severity:    Soft,
			})
		}
	}
	return out
}

// TotalScoreInput bundles the optional context total scoring needs so
// callers don't have to pass five positional arguments of mixed
// optionality.
type TotalScoreInput struct {
	Prev          *music.Voicing
	Curr          music.Voicing
	BassMotion    int
	RootPC        *music.PitchClass
	LeadingTonePC *music.PitchClass
}

// TotalScore sums every soft factor for one step, mirroring
// SoftConstraintScorer.total_score in the reference implementation.
func TotalScore(in TotalScoreInput) float64 {
	score := 0.0

	for _, v := range []music.Voice{music.Soprano, music.Alto, music.Tenor} {
		curr := in.Curr.Get(v)
		if in.Prev == nil {
			score += ScoreVoiceMotion(false, 0, curr)
			continue
		}
		prev := in.Prev.Get(v)
		score += ScoreVoiceMotion(true, prev, curr)
		voiceMotion := int(curr) - int(prev)
		score += ScoreContraryMotion(in.BassMotion, voiceMotion)
	}

	if in.RootPC != nil {
		score += ScoreDoubling(in.Curr, *in.RootPC)
	}
	if in.LeadingTonePC != nil {
		score += ScoreLeadingToneDoubling(in.Curr, *in.LeadingTonePC)
	}

	score += ScoreSpacingVariance(in.Curr)

	return score
}
