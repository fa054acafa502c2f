package harmonicfn

// CorrectSequence repairs a sequence of harmonic functions per the rules in
// corrector.py's Corrector.correct_function: an out-of-range inversion
// notation is clamped down to third inversion rather than rejected, a
// dominant seventh in third inversion resolving to a tonic whose position
// is unspecified has that tonic rewritten to first inversion (the textbook
// resolution of the seventh into the third; an explicit tonic position is
// kept), and a chromatic (Chopin) chord left without an
// explicit Extra has its fifth omitted by default -- the reference
// implementation marks this by stuffing a literal 5 into Extra, a marker
// its own chord-tone builder never actually reads; here it is realized
// properly via OmitFifth, which ChordTones does honor.
func CorrectSequence(fns []HarmonicFunction) []HarmonicFunction {
	out := make([]HarmonicFunction, len(fns))
	copy(out, fns)

	for i := range out {
		if out[i].Position > 3 {
			out[i].Position = 3
		}
	}

	for i := 0; i < len(out)-1; i++ {
		curr, next := out[i], out[i+1]
		isD7ThirdInversion := curr.Type == Dominant && curr.Position == 3 && hasExtra(curr.Extra, 7)
		if isD7ThirdInversion && next.Type == Tonic && next.Position == 0 {
			out[i+1].Position = 1
		}
	}

	for i := range out {
		if out[i].Type == Chromatic && len(out[i].Extra) == 0 {
			out[i].OmitFifth = true
		}
	}

	return out
}
