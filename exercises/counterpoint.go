package exercises

import (
	"sort"

	"go-four-part-harmony/music"
)

// consonantIntervals are the candidate-generating intervals above or
// below the cantus firmus; rejectIntervals are the ones species 1 forbids
// outright. The two sets overlap deliberately, mirroring exercises.py: a
// handful of candidate intervals (the tritone and the minor seventh) are
// generated and then always discarded by the reject filter, so they never
// actually survive. Preserved rather than pruned, since that is the
// reference behavior this package reproduces.
var consonantIntervals = []int{3, 4, 5, 6, 8, 10}
var rejectIntervals = map[int]bool{0: true, 1: true, 2: true, 6: true, 10: true, 11: true}

const (
	cpRangeLow  = music.Pitch(60)
	cpRangeHigh = music.Pitch(84)
)

// SolveSpecies1 writes one note of first-species counterpoint against each
// note of a cantus firmus. above controls whether the counterpoint line is
// the soprano (cantus firmus in the bass) or vice versa.
func SolveSpecies1(cantusFirmus []music.Pitch, above bool) []music.Voicing {
	out := make([]music.Voicing, 0, len(cantusFirmus))
	var prevCP *music.Pitch
	var prevCF music.Pitch

	for i, cf := range cantusFirmus {
		isStart := i == 0
		isEnd := i == len(cantusFirmus)-1

		candidates := generateCounterpointCandidates(cf, above, isStart, isEnd)

		type scoredNote struct {
			note  music.Pitch
			score float64
		}
		var valid []scoredNote

		for _, cp := range candidates {
			interval := (int(cp) - int(cf)) % 12
			if interval < 0 {
				interval += 12
			}
			if rejectIntervals[interval] {
				continue
			}

			if prevCP != nil && i > 0 {
				if hasParallelOrHiddenMotion(*prevCP, prevCF, cp, cf) {
					continue
				}
			}

			var cfMotion int
			if prevCP != nil {
				cfMotion = int(cf) - int(prevCF)
			}
			score := scoreCounterpointNote(cp, prevCP, cfMotion, cf)
			valid = append(valid, scoredNote{cp, score})
		}

		var chosen music.Pitch
		if len(valid) == 0 {
			if above {
				chosen = cf + 7
			} else {
				chosen = cf - 7
			}
		} else {
			sort.Slice(valid, func(i, j int) bool { return valid[i].score < valid[j].score })
			chosen = valid[0].note
		}

		var soprano, bass music.Pitch
		if above {
			soprano, bass = chosen, cf
		} else {
			soprano, bass = cf, chosen
		}
		out = append(out, music.Voicing{S: soprano, A: soprano, T: bass, B: bass})

		c := chosen
		prevCP = &c
		prevCF = cf
	}

	return out
}

// hasParallelOrHiddenMotion reports whether the single real voice pair in
// this exercise -- the counterpoint line against the cantus firmus -- moves
// in similar motion into a perfect fifth or octave. rules.CheckParallels is
// written for a full SATB voicing and checks all twelve voice pairs; padding
// a two-voice line into S=A=cp, T=B=cf to reuse it would make the (S,A) and
// (T,B) self-pairs trivially "parallel" at every step where the cantus
// firmus moves, since identical pitches are always a perfect unison/octave
// moving with identical motion. Checking the real pair directly avoids that.
func hasParallelOrHiddenMotion(prevCP, prevCF, cp, cf music.Pitch) bool {
	m1, m2 := music.Sign(prevCP, cp), music.Sign(prevCF, cf)
	if m1 == 0 || m2 == 0 || m1 != m2 {
		return false
	}
	prevFifth, currFifth := music.IsPerfectFifth(prevCP, prevCF), music.IsPerfectFifth(cp, cf)
	prevOctave, currOctave := music.IsPerfectOctave(prevCP, prevCF), music.IsPerfectOctave(cp, cf)
	if prevFifth && currFifth {
		return true
	}
	if prevOctave && currOctave {
		return true
	}
	return currFifth || currOctave
}

func generateCounterpointCandidates(cf music.Pitch, above, isStart, isEnd bool) []music.Pitch {
	seen := map[music.Pitch]bool{}
	var out []music.Pitch
	add := func(p music.Pitch) {
		if p < cpRangeLow || p > cpRangeHigh {
			return
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, interval := range consonantIntervals {
		if above {
			add(cf + music.Pitch(interval))
		} else {
			add(cf - music.Pitch(interval))
		}
	}
	if above {
		add(cf + 12)
	} else {
		add(cf - 12)
	}
	if isStart || isEnd {
		if above {
			add(cf)
			add(cf + 7)
			add(cf + 12)
		} else {
			add(cf)
			add(cf - 7)
			add(cf - 12)
		}
	}

	return out
}

// scoreCounterpointNote scores a counterpoint candidate: stepwise motion is
// rewarded, large leaps penalized, contrary motion against the cantus
// firmus's own motion rewarded, and a perfect consonance (unison or fifth)
// against the current cantus firmus note rewarded. This deliberately
// compares against the cantus firmus's actual motion rather than
// reconstructing it from the candidate note, correcting a self-referential
// computation in the reference implementation (see DESIGN.md).
func scoreCounterpointNote(cp music.Pitch, prevCP *music.Pitch, cfMotion int, cf music.Pitch) float64 {
	score := 0.0

	if prevCP != nil {
		motion := absInt(int(cp) - int(*prevCP))
		switch {
		case motion <= 2:
			score += 1.0
		case motion > 7:
			score += 5.0
		}

		cpMotion := int(cp) - int(*prevCP)
		if cfMotion*cpMotion < 0 {
			score -= 2.0
		}
	}

	interval := ((int(cp) - int(cf)) % 12)
	if interval < 0 {
		interval += 12
	}
	if interval == 0 || interval == 7 {
		score -= 1.0
	}

	return score
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
