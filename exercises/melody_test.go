package exercises

import (
	"testing"

	"go-four-part-harmony/music"
	"go-four-part-harmony/rules"
)

func TestHarmonizeMelodyProducesOneVoicingPerNote(t *testing.T) {
	melody := []music.Pitch{72, 71, 69, 67}
	got := HarmonizeMelody(melody, nil)
	if len(got) != len(melody) {
		t.Fatalf("HarmonizeMelody() returned %d voicings, want %d", len(got), len(melody))
	}
	for i, v := range got {
		if v.S != melody[i] {
			t.Errorf("voicing %d soprano = %d, want melody note %d", i, v.S, melody[i])
		}
	}
}

func TestHarmonizeMelodyVoicingsAreInternallyLegal(t *testing.T) {
	melody := []music.Pitch{67, 65, 64, 62, 60}
	got := HarmonizeMelody(melody, nil)
	for i, v := range got {
		violations := rules.CheckPerVoicing(v)
		for _, violation := range violations {
			t.Errorf("voicing %d (%v) has a per-voicing violation: %v", i, v, violation)
		}
	}
}

func TestHarmonizeMelodyUsesGivenChordTypes(t *testing.T) {
	melody := []music.Pitch{67}
	got := HarmonizeMelody(melody, []music.ChordQuality{music.Minor})
	if len(got) != 1 {
		t.Fatalf("HarmonizeMelody() returned %d voicings, want 1", len(got))
	}
	v := got[0]
	rootPC := v.B.Class()
	allowed := music.ChordTones(music.Pitch(int(rootPC)), music.Minor)
	for _, p := range []music.Pitch{v.S, v.A, v.T, v.B} {
		if !music.HasPitchClass(allowed, p.Class()) {
			t.Errorf("voice %d (pc %d) is not a tone of the requested minor triad on root %d", p, p.Class(), rootPC)
		}
	}
}
