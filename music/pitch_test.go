package music

import (
	"testing"

	"github.com/go-test/deep"
)

func TestPitchClass(t *testing.T) {
	tests := []struct {
		name string
		p    Pitch
		want PitchClass
	}{
		{"middle C", 60, 0},
		{"C#4", 61, 1},
		{"bass floor", 40, 4},
		{"negative-safe wraparound", -1, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Class(); got != tt.want {
				t.Errorf("Class() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPitchName(t *testing.T) {
	tests := []struct {
		name string
		p    Pitch
		want string
	}{
		{"middle C", 60, "C4"},
		{"C3", 48, "C3"},
		{"A4 440hz reference octave", 69, "A4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Name(); got != tt.want {
				t.Errorf("Name() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPerfectFifth(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Pitch
		expect bool
	}{
		{"C4-G4 up a fifth", 60, 67, true},
		{"C4-G3 down a fourth (class 5, not a fifth)", 60, 55, false},
		{"C4-F4 fourth, not a fifth", 60, 65, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPerfectFifth(tt.a, tt.b); got != tt.expect {
				t.Errorf("IsPerfectFifth(%d,%d) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
		})
	}
}

func TestIsPerfectOctave(t *testing.T) {
	if !IsPerfectOctave(60, 60) {
		t.Error("unison should satisfy the octave-class predicate")
	}
	if !IsPerfectOctave(60, 72) {
		t.Error("an octave above should satisfy the octave-class predicate")
	}
	if IsPerfectOctave(60, 67) {
		t.Error("a fifth should not satisfy the octave-class predicate")
	}
}

func TestIntervalClassName(t *testing.T) {
	tests := []struct {
		a, b Pitch
		want string
	}{
		{60, 67, "P5"},
		{60, 72, "P1"},
		{60, 63, "m3"},
		{60, 66, "TT"},
	}
	for _, tt := range tests {
		got := IntervalClassName(tt.a, tt.b)
		if diff := deep.Equal(got, tt.want); diff != nil {
			t.Errorf("IntervalClassName(%d,%d): %v", tt.a, tt.b, diff)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(60, 64) != 1 {
		t.Error("ascending motion should have sign 1")
	}
	if Sign(64, 60) != -1 {
		t.Error("descending motion should have sign -1")
	}
	if Sign(60, 60) != 0 {
		t.Error("no motion should have sign 0")
	}
}
