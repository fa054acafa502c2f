package render

import (
	"strings"
	"testing"

	"go-four-part-harmony/music"
)

func TestTextEmptyProgression(t *testing.T) {
	if _, err := Text(nil); err == nil {
		t.Error("expected an error for an empty progression")
	}
}

func TestTextContainsEveryVoice(t *testing.T) {
	progression := []music.Voicing{
		{S: 72, A: 67, T: 64, B: 48},
		{S: 71, A: 67, T: 62, B: 43},
	}
	out, err := Text(progression)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	for _, label := range []string{"S |", "A |", "T |", "B |"} {
		if !strings.Contains(out, label) {
			t.Errorf("Text() output missing row %q:\n%s", label, out)
		}
	}
	if !strings.Contains(out, "C5") {
		t.Errorf("Text() output missing rendered pitch name C5:\n%s", out)
	}
}
