package exercises

import (
	"fmt"

	"go-four-part-harmony/music"
	"go-four-part-harmony/rules"
)

// FoundError is one flaw found in a four-part progression, located by step
// and, where applicable, voice.
type FoundError struct {
	Step        int
	Voice       *music.Voice
	Type        string
	Description string
}

// ErrorReport bundles the errors found in a progression with the
// best-effort corrected progression, for callers that want both the
// diagnostics and the (partial) fix in one value.
type ErrorReport struct {
	Errors    []FoundError
	Corrected []music.Voicing
}

// CheckErrors runs FindErrors and CorrectErrors over a progression and
// returns both results together.
func CheckErrors(progression []music.Voicing) ErrorReport {
	errs := FindErrors(progression)
	return ErrorReport{
		Errors:    errs,
		Corrected: CorrectErrors(progression, errs),
	}
}

// FindErrors checks a progression for range, voice-crossing, spacing and
// parallel/hidden fifth and octave violations and reports every one found,
// grounded on ErrorCorrector.find_errors. The seventh- and leading-tone-
// resolution rules are not checked, since a bare voicing carries no chord
// root or key.
func FindErrors(progression []music.Voicing) []FoundError {
	var out []FoundError

	for i, v := range progression {
		v.Each(func(voice music.Voice, p music.Pitch) {
			r := music.Ranges[voice]
			if p < r.Low || p > r.High {
				voiceCopy := voice
				out = append(out, FoundError{
					Step:        i,
					Voice:       &voiceCopy,
					Type:        "range",
					Description: fmt.Sprintf("%s note %d outside range [%d, %d]", voice, p, r.Low, r.High),
				})
			}
		})

		for _, viol := range rules.CheckOrder(v) {
			out = append(out, FoundError{Step: i, Type: "voice_crossing", Description: viol.Description})
		}
		for _, viol := range rules.CheckSpacing(v) {
			out = append(out, FoundError{Step: i, Type: "spacing", Description: viol.Description})
		}

		if i > 0 {
			for _, viol := range rules.CheckParallels(progression[i-1], v) {
				out = append(out, FoundError{Step: i, Type: "parallelism", Description: viol.Description})
			}
		}
	}

	return out
}

// CorrectErrors applies the one correction the reference implementation
// actually performs: clamping a voice back inside its range. Every other
// error type is reported by FindErrors but left for a human to resolve, as
// in the reference's find_errors/correct_errors split.
func CorrectErrors(progression []music.Voicing, errs []FoundError) []music.Voicing {
	out := make([]music.Voicing, len(progression))
	copy(out, progression)

	for _, e := range errs {
		if e.Type != "range" || e.Voice == nil {
			continue
		}
		r := music.Ranges[*e.Voice]
		p := out[e.Step].Get(*e.Voice)
		if p < r.Low {
			out[e.Step] = out[e.Step].With(*e.Voice, r.Low)
		} else if p > r.High {
			out[e.Step] = out[e.Step].With(*e.Voice, r.High)
		}
	}

	return out
}
