package music

// Voice identifies one of the four parts in a chorale-style texture.
type Voice int

const (
	Soprano Voice = iota
	Alto
	Tenor
	Bass
)

// AllVoices lists the four voices from highest to lowest.
var AllVoices = [4]Voice{Soprano, Alto, Tenor, Bass}

// String returns the single-letter tag used throughout the external
// interface ("S", "A", "T", "B").
func (v Voice) String() string {
	switch v {
	case Soprano:
		return "S"
	case Alto:
		return "A"
	case Tenor:
		return "T"
	case Bass:
		return "B"
	default:
		return "?"
	}
}

// VoiceRange is the inclusive MIDI range available to a voice.
type VoiceRange struct {
	Low, High Pitch
}

// Ranges gives the fixed MIDI range for each voice.
var Ranges = map[Voice]VoiceRange{
	Soprano: {Low: 60, High: 84},
	Alto:    {Low: 55, High: 72},
	Tenor:   {Low: 48, High: 69},
	Bass:    {Low: 40, High: 60},
}

// InRange reports whether p lies within v's fixed range.
func (v Voice) InRange(p Pitch) bool {
	r := Ranges[v]
	return p >= r.Low && p <= r.High
}

// Voicing is a total mapping from voice to pitch for one time step.
type Voicing struct {
	S, A, T, B Pitch
}

// Get returns the pitch assigned to a voice.
func (vc Voicing) Get(v Voice) Pitch {
	switch v {
	case Soprano:
		return vc.S
	case Alto:
		return vc.A
	case Tenor:
		return vc.T
	default:
		return vc.B
	}
}

// With returns a copy of vc with voice v set to p.
func (vc Voicing) With(v Voice, p Pitch) Voicing {
	switch v {
	case Soprano:
		vc.S = p
	case Alto:
		vc.A = p
	case Tenor:
		vc.T = p
	case Bass:
		vc.B = p
	}
	return vc
}

// Each calls f once per voice, highest to lowest.
func (vc Voicing) Each(f func(v Voice, p Pitch)) {
	f(Soprano, vc.S)
	f(Alto, vc.A)
	f(Tenor, vc.T)
	f(Bass, vc.B)
}
