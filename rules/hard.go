package rules

import (
	"fmt"

	"go-four-part-harmony/music"
)

// CheckRange reports a range violation for each voice whose pitch falls
// outside its fixed table entry.
func CheckRange(v music.Voicing) []Violation {
	var out []Violation
	v.Each(func(voice music.Voice, p music.Pitch) {
		r := music.Ranges[voice]
		if p < r.Low || p > r.High {
			out = append(out, Violation{
				Rule:        "voice_range",
				Description: fmt.Sprintf("%s note %d outside range [%d, %d]", voice, p, r.Low, r.High),
				Severity:    Hard,
			})
		}
	})
	return out
}

// CheckOrder reports a voice-crossing violation for any adjacent pair that
// is not S >= A >= T >= B.
func CheckOrder(v music.Voicing) []Violation {
	var out []Violation
	if v.S < v.A {
		out = append(out, Violation{"voice_crossing", fmt.Sprintf("Soprano (%d) < Alto (%d)", v.S, v.A), Hard})
	}
	if v.A < v.T {
		out = append(out, Violation{"voice_crossing", fmt.Sprintf("Alto (%d) < Tenor (%d)", v.A, v.T), Hard})
	}
	if v.T < v.B {
		out = append(out, Violation{"voice_crossing", fmt.Sprintf("Tenor (%d) < Bass (%d)", v.T, v.B), Hard})
	}
	return out
}

// CheckSpacing reports a violation when S-A or A-T exceeds an octave. There
// is no constraint on T-B.
func CheckSpacing(v music.Voicing) []Violation {
	var out []Violation
	if sa := music.IntervalSemitones(v.S, v.A); sa > 12 {
		out = append(out, Violation{"spacing", fmt.Sprintf("Interval between Soprano (%d) and Alto (%d) is %d semitones (> octave)", v.S, v.A, sa), Hard})
	}
	if at := music.IntervalSemitones(v.A, v.T); at > 12 {
		out = append(out, Violation{"spacing", fmt.Sprintf("Interval between Alto (%d) and Tenor (%d) is %d semitones (> octave)", v.A, v.T, at), Hard})
	}
	return out
}

// CheckPerVoicing runs the three hard rules that need only a single,
// complete voicing: range, order and spacing.
func CheckPerVoicing(v music.Voicing) []Violation {
	var out []Violation
	out = append(out, CheckRange(v)...)
	out = append(out, CheckOrder(v)...)
	out = append(out, CheckSpacing(v)...)
	return out
}

// pairs enumerates the twelve ordered pairs of distinct voices.
func pairs(f func(v1, v2 music.Voice)) {
	for _, v1 := range music.AllVoices {
		for _, v2 := range music.AllVoices {
			if v1 == v2 {
				continue
			}
			f(v1, v2)
		}
	}
}

// CheckParallelFifths reports a violation for every ordered voice pair that
// forms a perfect fifth at both steps and moves in the same direction.
func CheckParallelFifths(prev, curr music.Voicing) []Violation {
	var out []Violation
	pairs(func(v1, v2 music.Voice) {
		p1, p2 := prev.Get(v1), prev.Get(v2)
		c1, c2 := curr.Get(v1), curr.Get(v2)
		if !music.IsPerfectFifth(p1, p2) || !music.IsPerfectFifth(c1, c2) {
			return
		}
		m1, m2 := music.Sign(p1, c1), music.Sign(p2, c2)
		if m1 != 0 && m2 != 0 && m1 == m2 {
			out = append(out, Violation{"parallel_fifths", fmt.Sprintf("Parallel fifths between %s and %s", v1, v2), Hard})
		}
	})
	return out
}

// CheckParallelOctaves reports a violation for every ordered voice pair that
// forms a perfect octave (or unison) at both steps and moves in the same
// direction.
func CheckParallelOctaves(prev, curr music.Voicing) []Violation {
	var out []Violation
	pairs(func(v1, v2 music.Voice) {
		p1, p2 := prev.Get(v1), prev.Get(v2)
		c1, c2 := curr.Get(v1), curr.Get(v2)
		if !music.IsPerfectOctave(p1, p2) || !music.IsPerfectOctave(c1, c2) {
			return
		}
		m1, m2 := music.Sign(p1, c1), music.Sign(p2, c2)
		if m1 != 0 && m2 != 0 && m1 == m2 {
			out = append(out, Violation{"parallel_octaves", fmt.Sprintf("Parallel octaves between %s and %s", v1, v2), Hard})
		}
	})
	return out
}

// CheckHiddenFifthsOctaves reports a violation whenever two voices move in
// the same non-zero direction and arrive at a perfect fifth or octave. This
// subsumes the parallel cases; both are emitted rather than deduplicated
// (see SPEC_FULL.md open question 2).
func CheckHiddenFifthsOctaves(prev, curr music.Voicing) []Violation {
	var out []Violation
	pairs(func(v1, v2 music.Voice) {
		p1, p2 := prev.Get(v1), prev.Get(v2)
		c1, c2 := curr.Get(v1), curr.Get(v2)
		m1, m2 := music.Sign(p1, c1), music.Sign(p2, c2)
		if m1 == 0 || m2 == 0 || m1 != m2 {
			return
		}
		if music.IsPerfectFifth(c1, c2) || music.IsPerfectOctave(c1, c2) {
			out = append(out, Violation{"hidden_fifths_octaves", fmt.Sprintf("Hidden P5/P8 between %s and %s in parallel motion", v1, v2), Hard})
		}
	})
	return out
}

// CheckParallels runs all three parallel/hidden-motion rules.
func CheckParallels(prev, curr music.Voicing) []Violation {
	var out []Violation
	out = append(out, CheckParallelFifths(prev, curr)...)
	out = append(out, CheckParallelOctaves(prev, curr)...)
	out = append(out, CheckHiddenFifthsOctaves(prev, curr)...)
	return out
}

// CheckSeventhResolution checks that a voice which held the chordal seventh
// at the previous step (its pitch class sits 10 or 11 semitones above
// prevRootPC) descends by one or two semitones in the same voice.
func CheckSeventhResolution(prev music.Voicing, prevRootPC music.PitchClass, curr music.Voicing) []Violation {
	var out []Violation
	for _, v := range music.AllVoices {
		p, c := prev.Get(v), curr.Get(v)
		offset := ((int(p.Class()) - int(prevRootPC)) % 12 + 12) % 12
		if offset != 10 && offset != 11 {
			continue
		}
		motion := int(c) - int(p)
		if motion >= -2 && motion <= -1 {
			continue
		}
		out = append(out, Violation{
			Rule:        "seventh_resolution",
			Description: fmt.Sprintf("%s held the seventh but moved by %d semitones instead of descending 1-2", v, motion),
			Severity:    Hard,
		})
	}
	return out
}

// CheckLeadingToneResolution checks the hard half of the leading-tone rule:
// a voice holding the leading tone must ascend at the next step. The soft
// half (ascending to the wrong pitch class) is reported as a Soft violation
// by CheckLeadingToneSoft rather than disqualifying; TotalScore adds nothing
// for it.
func CheckLeadingToneResolution(prev music.Voicing, leadingTonePC music.PitchClass, curr music.Voicing) []Violation {
	var out []Violation
	for _, v := range music.AllVoices {
		p, c := prev.Get(v), curr.Get(v)
		if p.Class() != leadingTonePC {
			continue
		}
		if c > p {
			continue
		}
		out = append(out, Violation{
			Rule:        "leading_tone_resolution",
			Description: fmt.Sprintf("%s held the leading tone but did not ascend", v),
			Severity:    Hard,
		})
	}
	return out
}

// CheckCrossStep runs every hard rule that depends on a predecessor
// voicing: parallels, hidden perfects, seventh resolution and leading-tone
// resolution.
func CheckCrossStep(prev music.Voicing, prevRootPC music.PitchClass, leadingTonePC *music.PitchClass, curr music.Voicing) []Violation {
	var out []Violation
	out = append(out, CheckParallels(prev, curr)...)
	out = append(out, CheckSeventhResolution(prev, prevRootPC, curr)...)
	if leadingTonePC != nil {
		out = append(out, CheckLeadingToneResolution(prev, *leadingTonePC, curr)...)
	}
	return out
}

// HasHard reports whether any violation in the list is disqualifying.
func HasHard(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == Hard {
			return true
		}
	}
	return false
}
