package harmonicfn

import "testing"

func TestCorrectSequenceClampsOutOfRangePosition(t *testing.T) {
	f, _ := ParseFunction("T{position: 9}", 0)
	out := CorrectSequence([]HarmonicFunction{f})
	if out[0].Position != 3 {
		t.Errorf("Position = %d, want 3 after clamping", out[0].Position)
	}
}

func TestCorrectSequenceD7ThirdInversionResolvesToFirstInversionTonic(t *testing.T) {
	d7, _ := ParseFunction("D{position: 3; extra: 7}", 0)
	tonic, _ := ParseFunction("T{}", 0)
	out := CorrectSequence([]HarmonicFunction{d7, tonic})
	if out[1].Position != 1 {
		t.Errorf("resolving tonic Position = %d, want 1", out[1].Position)
	}
}

func TestCorrectSequenceLeavesExplicitTonicPositionAlone(t *testing.T) {
	d7, _ := ParseFunction("D{position: 3; extra: 7}", 0)
	tonic, _ := ParseFunction("T{position: 2}", 0)
	out := CorrectSequence([]HarmonicFunction{d7, tonic})
	if out[1].Position != 2 {
		t.Errorf("resolving tonic Position = %d, want 2 (an explicit position should not be overridden)", out[1].Position)
	}
}

func TestCorrectSequenceOmitsFifthOnUnspecifiedChromaticChord(t *testing.T) {
	chopin, _ := ParseFunction("Ch{}", 0)
	out := CorrectSequence([]HarmonicFunction{chopin})
	if !out[0].OmitFifth {
		t.Error("expected a chromatic chord with no explicit extra to have its fifth omitted")
	}
}

func TestCorrectSequenceLeavesExplicitChromaticExtraAlone(t *testing.T) {
	chopin, _ := ParseFunction("Ch{extra: 9}", 0)
	out := CorrectSequence([]HarmonicFunction{chopin})
	if out[0].OmitFifth {
		t.Error("a chromatic chord with an explicit extra should not have its fifth omitted")
	}
}
