// Package exercises implements the harmony-exercise wrappers around the
// beam solver: melody harmonization, species-1 counterpoint and error
// correction, grounded on exercises.py's MelodyHarmonizer,
// CounterpointSolver and ErrorCorrector.
package exercises

import (
	"go-four-part-harmony/candidates"
	"go-four-part-harmony/music"
	"go-four-part-harmony/rules"
)

// melodyBassOffsets are the semitone distances subtracted from a melody
// note to guess the chord root it might belong to: itself (root position),
// a third below (major or minor), a perfect fifth below and a minor sixth
// below.
var melodyBassOffsets = []int{0, 3, 4, 7, 8}

// HarmonizeMelody produces one four-part voicing per melody note, trying
// every plausible bass candidate under each soprano note against every
// given chord quality and keeping whichever fully-voiced, hard-rule-legal
// combination scores lowest. chordTypes defaults to a plain major triad
// when empty.
func HarmonizeMelody(melody []music.Pitch, chordTypes []music.ChordQuality) []music.Voicing {
	if len(chordTypes) == 0 {
		chordTypes = []music.ChordQuality{music.Major}
	}

	out := make([]music.Voicing, 0, len(melody))
	var prev *music.Voicing

	for _, soprano := range melody {
		best, ok := bestHarmonization(soprano, prev, chordTypes)
		if !ok {
			best = fallbackHarmonization(soprano, prev)
		}
		out = append(out, best)
		v := best
		prev = &v
	}
	return out
}

func bestHarmonization(soprano music.Pitch, prev *music.Voicing, chordTypes []music.ChordQuality) (music.Voicing, bool) {
	var best music.Voicing
	bestScore := 0.0
	found := false

	for _, offset := range melodyBassOffsets {
		bassCandidate := soprano - music.Pitch(offset)
		if bassCandidate < music.Ranges[music.Bass].Low || bassCandidate > music.Ranges[music.Bass].High {
			continue
		}
		rootPC := bassCandidate.Class()

		for _, quality := range chordTypes {
			allowed := music.ChordTones(music.Pitch(int(rootPC)), quality)

			altoCandidates := candidates.ForVoice(music.Alto, allowed)
			tenorCandidates := candidates.ForVoice(music.Tenor, allowed)

			for _, alto := range limit(altoCandidates, 5) {
				for _, tenor := range limit(tenorCandidates, 5) {
					v := music.Voicing{S: soprano, A: alto, T: tenor, B: bassCandidate}

					var violations []rules.Violation
					violations = append(violations, rules.CheckPerVoicing(v)...)
					if prev != nil {
						violations = append(violations, rules.CheckCrossStep(*prev, rootPC, nil, v)...)
					}
					if rules.HasHard(violations) {
						continue
					}

					bassMotion := 0
					if prev != nil {
						bassMotion = int(v.B) - int(prev.B)
					}
					score := rules.TotalScore(rules.TotalScoreInput{
						Prev:       prev,
						Curr:       v,
						BassMotion: bassMotion,
						RootPC:     &rootPC,
					})

					if !found || score < bestScore {
						best, bestScore, found = v, score, true
					}
				}
			}
		}
	}

	return best, found
}

// fallbackHarmonization is used when no candidate bass/alto/tenor
// combination survives the hard rules: it carries the previous voicing
// forward, replacing only the soprano, or (for the first note) stacks a
// bare root-position triad below the melody.
func fallbackHarmonization(soprano music.Pitch, prev *music.Voicing) music.Voicing {
	if prev != nil {
		v := *prev
		v.S = soprano
		return v
	}
	return music.Voicing{
		S: soprano,
		A: soprano - 5,
		T: soprano - 8,
		B: soprano - 12,
	}
}

func limit(s []music.Pitch, n int) []music.Pitch {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
