// Package music provides the pitch-level primitives shared by the rest of
// the harmony core: MIDI pitches, pitch classes, voices and their ranges,
// intervals, and chord-tone enumeration by quality. Every function here is
// pure and total; there are no error conditions.
package music

import "fmt"

// Pitch is a MIDI note number (0-127).
type Pitch int

// PitchClass is a pitch modulo the octave, in 0..11 with C = 0.
type PitchClass int

// Class reduces a Pitch to its PitchClass.
func (p Pitch) Class() PitchClass {
	return PitchClass(((int(p) % 12) + 12) % 12)
}

var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name returns the pitch class's display name using sharps.
func (pc PitchClass) Name() string {
	return pitchClassNames[((int(pc)%12)+12)%12]
}

// Name returns the note name and scientific octave for a pitch, e.g. "C4" for
// MIDI 60.
func (p Pitch) Name() string {
	octave := int(p)/12 - 1
	return fmt.Sprintf("%s%d", p.Class().Name(), octave)
}

// IntervalSemitones returns the absolute distance in semitones between two
// pitches.
func IntervalSemitones(a, b Pitch) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

// IntervalClassSemitones returns the interval between two pitches reduced to
// within a single octave (0..11).
func IntervalClassSemitones(a, b Pitch) int {
	return IntervalSemitones(a, b) % 12
}

var intervalClassNames = []string{
	"P1", "m2", "M2", "m3", "M3", "P4", "TT", "P5", "m6", "M6", "m7", "M7",
}

// IntervalClassName names the interval class between two pitches (P1, m2,
// M2, ... M7).
func IntervalClassName(a, b Pitch) string {
	return intervalClassNames[IntervalClassSemitones(a, b)]
}

// IsPerfectFifth reports whether two pitches form a perfect fifth, in any
// octave.
func IsPerfectFifth(a, b Pitch) bool {
	return IntervalClassSemitones(a, b) == 7
}

// IsPerfectOctave reports whether two pitches form a perfect octave or
// unison; the interval class is the same (0) for both, so callers that care
// about the distinction should compare a == b separately.
func IsPerfectOctave(a, b Pitch) bool {
	return IntervalClassSemitones(a, b) == 0
}

// Sign returns 1, -1 or 0 for the direction of motion from a to b.
func Sign(a, b Pitch) int {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	default:
		return 0
	}
}

// Abs returns the absolute value of an integer motion in semitones.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
