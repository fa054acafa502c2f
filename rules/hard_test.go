package rules

import "go-four-part-harmony/music"

import "testing"

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name     string
		v        music.Voicing
		wantHard int
	}{
		{"all in range", music.Voicing{S: 67, A: 64, T: 60, B: 48}, 0},
		{"soprano too low", music.Voicing{S: 50, A: 64, T: 60, B: 48}, 1},
		{"bass too high", music.Voicing{S: 72, A: 67, T: 64, B: 65}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRange(tt.v)
			if len(got) != tt.wantHard {
				t.Fatalf("CheckRange(%v) = %v, want %d violations", tt.v, got, tt.wantHard)
			}
			for _, v := range got {
				if v.Severity != Hard {
					t.Errorf("range violation should be hard, got %v", v.Severity)
				}
			}
		})
	}
}

func TestCheckOrder(t *testing.T) {
	ok := music.Voicing{S: 72, A: 67, T: 60, B: 48}
	if len(CheckOrder(ok)) != 0 {
		t.Errorf("expected no crossing violations for %v", ok)
	}
	crossed := music.Voicing{S: 67, A: 72, T: 60, B: 48}
	if len(CheckOrder(crossed)) != 1 {
		t.Errorf("expected one crossing violation for S<A, got %v", CheckOrder(crossed))
	}
}

func TestCheckSpacing(t *testing.T) {
	ok := music.Voicing{S: 72, A: 64, T: 60, B: 48}
	if len(CheckSpacing(ok)) != 0 {
		t.Errorf("expected no spacing violations for %v", ok)
	}
	tooWide := music.Voicing{S: 79, A: 64, T: 60, B: 48}
	if len(CheckSpacing(tooWide)) != 1 {
		t.Errorf("expected one spacing violation, got %v", CheckSpacing(tooWide))
	}
}

func TestCheckParallelFifths(t *testing.T) {
	prev := music.Voicing{S: 67, A: 60, T: 55, B: 48}
	curr := music.Voicing{S: 69, A: 62, T: 57, B: 50}
	got := CheckParallelFifths(prev, curr)
	if len(got) == 0 {
		t.Fatalf("expected parallel fifths between S and B, got none")
	}
}

func TestCheckParallelOctaves(t *testing.T) {
	prev := music.Voicing{S: 72, A: 64, T: 60, B: 48}
	curr := music.Voicing{S: 74, A: 65, T: 62, B: 50}
	got := CheckParallelOctaves(prev, curr)
	if len(got) == 0 {
		t.Fatalf("expected parallel octaves between S and B, got none")
	}
}

func TestCheckSeventhResolution(t *testing.T) {
	prev := music.Voicing{S: 77, A: 65, T: 60, B: 43}
	rootPC := music.PitchClass(7)
	okCurr := music.Voicing{S: 76, A: 64, T: 60, B: 48}
	if got := CheckSeventhResolution(prev, rootPC, okCurr); len(got) != 0 {
		t.Errorf("expected seventh resolved by descending step, got %v", got)
	}
	badCurr := music.Voicing{S: 79, A: 64, T: 60, B: 48}
	if got := CheckSeventhResolution(prev, rootPC, badCurr); len(got) != 1 {
		t.Errorf("expected seventh-resolution violation for upward leap, got %v", got)
	}
}

func TestCheckLeadingToneResolution(t *testing.T) {
	leadingTone := music.PitchClass(11)
	prev := music.Voicing{S: 71, A: 64, T: 60, B: 48}
	ascends := music.Voicing{S: 72, A: 64, T: 60, B: 48}
	if got := CheckLeadingToneResolution(prev, leadingTone, ascends); len(got) != 0 {
		t.Errorf("ascending leading tone should not be a hard violation, got %v", got)
	}
	stays := music.Voicing{S: 71, A: 64, T: 60, B: 48}
	if got := CheckLeadingToneResolution(prev, leadingTone, stays); len(got) != 1 {
		t.Errorf("non-ascending leading tone should be a hard violation, got %v", got)
	}
}

func TestHasHard(t *testing.T) {
	if HasHard(nil) {
		t.Error("empty violation list should report no hard violations")
	}
	if !HasHard([]Violation{{Rule: "r", Severity: Hard}}) {
		t.Error("a hard violation should be detected")
	}
	if HasHard([]Violation{{Rule: "r", Severity: Soft}}) {
		t.Error("a soft-only violation list should not report hard")
	}
}
