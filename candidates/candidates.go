// Package candidates enumerates the pitches a voice may take at a given
// step: every pitch within the voice's fixed range whose pitch class
// belongs to an allowed set, ascending and deduplicated. Grounded on
// solver.py's generate_candidate_notes and on the teacher's recursive
// cantus generator, which walks a bounded pitch window the same way.
package candidates

import "go-four-part-harmony/music"

// ForVoice returns every pitch in v's range whose pitch class is in
// allowed, in ascending order.
func ForVoice(v music.Voice, allowed []music.PitchClass) []music.Pitch {
	r := music.Ranges[v]
	var out []music.Pitch
	for p := r.Low; p <= r.High; p++ {
		if music.HasPitchClass(allowed, p.Class()) {
			out = append(out, p)
		}
	}
	return out
}

// UpperVoices returns the Cartesian product source for soprano, alto and
// tenor: one candidate slice per voice, in voice order.
func UpperVoices(allowed []music.PitchClass) [3][]music.Pitch {
	return [3][]music.Pitch{
		ForVoice(music.Soprano, allowed),
		ForVoice(music.Alto, allowed),
		ForVoice(music.Tenor, allowed),
	}
}
