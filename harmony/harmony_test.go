package harmony

import (
	"errors"
	"testing"

	"go-four-part-harmony/music"
)

func TestHarmonizeEmptyBassLine(t *testing.T) {
	got := Harmonize(Request{})
	if got.Success {
		t.Fatal("expected failure for an empty bass line")
	}
	if !errors.Is(got.Err, ErrInputEmpty) {
		t.Errorf("Err = %v, want wrapping ErrInputEmpty", got.Err)
	}
}

func TestHarmonizeSimpleProgression(t *testing.T) {
	req := Request{
		BassLine: []music.Pitch{48, 43, 48},
	}
	got := Harmonize(req)
	if !got.Success {
		t.Fatalf("Harmonize() failed: %v", got.Err)
	}
	if len(got.Voices) != len(req.BassLine) {
		t.Fatalf("Voices has %d entries, want %d", len(got.Voices), len(req.BassLine))
	}
	for i, v := range got.Voices {
		if v.B != req.BassLine[i] {
			t.Errorf("voicing %d bass = %d, want %d", i, v.B, req.BassLine[i])
		}
	}
	if got.Explanations == "" {
		t.Error("expected non-empty explanations")
	}
}

func TestHarmonizeMelodyEmpty(t *testing.T) {
	got := HarmonizeMelody(nil, nil)
	if got.Success {
		t.Fatal("expected failure for an empty melody")
	}
	if !errors.Is(got.Err, ErrInputEmpty) {
		t.Errorf("Err = %v, want wrapping ErrInputEmpty", got.Err)
	}
}

func TestCounterpointUnsupportedSpecies(t *testing.T) {
	got := Counterpoint([]music.Pitch{60, 62, 60}, true, 2)
	if got.Success {
		t.Fatal("expected failure for an unimplemented species")
	}
	if !errors.Is(got.Err, ErrInvalidSpec) {
		t.Errorf("Err = %v, want wrapping ErrInvalidSpec", got.Err)
	}
}

func TestCounterpointSpecies1(t *testing.T) {
	got := Counterpoint([]music.Pitch{60, 62, 64, 62, 60}, true, 1)
	if !got.Success {
		t.Fatalf("Counterpoint() failed: %v", got.Err)
	}
	if len(got.Voices) != 5 {
		t.Fatalf("Voices has %d entries, want 5", len(got.Voices))
	}
}

func TestCheckErrorsClampsRange(t *testing.T) {
	progression := []music.Voicing{{S: 50, A: 64, T: 60, B: 48}}
	report := CheckErrors(progression)
	if len(report.Errors) == 0 {
		t.Fatal("expected at least one error for an out-of-range soprano")
	}
	if report.Corrected[0].S != music.Ranges[music.Soprano].Low {
		t.Errorf("corrected soprano = %d, want %d", report.Corrected[0].S, music.Ranges[music.Soprano].Low)
	}
}
