package music

import "testing"

func TestChordTones(t *testing.T) {
	tests := []struct {
		name    string
		root    Pitch
		quality ChordQuality
		want    []PitchClass
	}{
		{"C major triad", 48, Major, []PitchClass{0, 4, 7}},
		{"C minor triad", 48, Minor, []PitchClass{0, 3, 7}},
		{"G dominant7", 55, Dominant7, []PitchClass{2, 5, 7, 11}},
		{"unknown quality falls back to major", 48, ChordQuality("bogus"), []PitchClass{0, 4, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChordTones(tt.root, tt.quality)
			if len(got) != len(tt.want) {
				t.Fatalf("ChordTones() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ChordTones() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestChordInversion(t *testing.T) {
	tests := []struct {
		name    string
		bass    Pitch
		root    Pitch
		quality ChordQuality
		want    int
	}{
		{"root in bass", 48, 48, Major, 0},
		{"third in bass (first inversion)", 52, 48, Major, 1},
		{"fifth in bass (second inversion)", 55, 48, Major, 2},
		{"seventh in bass (third inversion)", 58, 48, Dominant7, 3},
		{"non-chord-tone bass assumes root position", 49, 48, Major, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChordInversion(tt.bass, tt.root, tt.quality); got != tt.want {
				t.Errorf("ChordInversion() = %v, want %v", got, tt.want)
			}
		})
	}
}
