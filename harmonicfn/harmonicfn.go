// Package harmonicfn models the richer harmonic-function driver described
// in SPEC_FULL.md §3.1: a textual grammar for describing a chord by
// function (tonic, subdominant, dominant, Neapolitan, chromatic) rather
// than by explicit root and quality, with inversion, added tones,
// alterations and relational flags, interpreted against a tonal key pitch
// class. Grounded on harmonic_functions.py's parse_harmonic_function and
// parse_harmonic_sequence, with one deliberate fix: sequence parsing is
// brace-aware, splitting only on top-level semicolons, where the reference
// implementation splits naively on every semicolon -- including the ones
// that separate a function's own params -- and so breaks on exactly the
// multi-param symbols the grammar is meant to support.
package harmonicfn

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go-four-part-harmony/music"
)

// Type is the function letter: tonic, subdominant, dominant, Neapolitan or
// a bare chromatic chord.
type Type string

const (
	Tonic       Type = "T"
	Subdominant Type = "S"
	Dominant    Type = "D"
	Neapolitan  Type = "N"
	Chromatic   Type = "Ch"
)

// degreeSemitones gives the semitone offset from the key root at which each
// function type's root sits: T on the key itself, S a fourth above, D a
// fifth above, N a semitone above (the flat supertonic). Ch's root is the
// key itself, like T.
var degreeSemitones = map[Type]int{
	Tonic:       0,
	Subdominant: 5,
	Dominant:    7,
	Neapolitan:  1,
	Chromatic:   0,
}

// HarmonicFunction is one function symbol in a progression, already
// resolved against a key.
type HarmonicFunction struct {
	Type               Type
	RootPC             music.PitchClass
	Position           int            // inversion, 0-3; 0 means root position (absent in the text form)
	Extra              []int          // added-tone degrees drawn from {7, 9}
	Alterations        map[int]string // semitone offset from root -> "<" (lower) or ">" (raise)
	IsRelatedBackwards bool
	IsRelatedForwards  bool
	IsMinor            bool
	OmitFifth          bool // set by CorrectSequence for an unspecified chromatic chord, per the Chopin cadence convention
}

// ChordTones returns the pitch classes implied by f: a triad or seventh
// built on RootPC, widened by Extra and shifted by Alterations.
func (f HarmonicFunction) ChordTones() []music.PitchClass {
	var tones []music.PitchClass

	switch f.Type {
	case Chromatic:
		// The Chopin chord: always a dominant-seventh shape on its own root,
		// regardless of Extra.
		tones = music.ChordTones(music.Pitch(int(f.RootPC)), music.Dominant7)
	case Dominant:
		quality := music.Major
		if hasExtra(f.Extra, 7) {
			quality = music.Dominant7
		}
		tones = music.ChordTones(music.Pitch(int(f.RootPC)), quality)
		if hasExtra(f.Extra, 9) {
			ninthPC := music.PitchClass((int(f.RootPC) + 2) % 12)
			if !music.HasPitchClass(tones, ninthPC) {
				tones = append(tones, ninthPC)
			}
		}
	default:
		quality := music.Major
		if f.IsMinor {
			quality = music.Minor
		}
		if hasExtra(f.Extra, 7) {
			if f.IsMinor {
				quality = music.Minor7
			} else {
				quality = music.Major7
			}
		}
		tones = music.ChordTones(music.Pitch(int(f.RootPC)), quality)
		if hasExtra(f.Extra, 9) {
			ninthPC := music.PitchClass((int(f.RootPC) + 2) % 12)
			if !music.HasPitchClass(tones, ninthPC) {
				tones = append(tones, ninthPC)
			}
		}
	}

	for offset, op := range f.Alterations {
		target := music.PitchClass((int(f.RootPC) + offset) % 12)
		shift := 1
		if op == "<" {
			shift = -1
		}
		for i, pc := range tones {
			if pc == target {
				tones[i] = music.PitchClass(((int(pc)+shift)%12 + 12) % 12)
			}
		}
	}

	if f.OmitFifth {
		fifthPC := music.PitchClass((int(f.RootPC) + 7) % 12)
		filtered := tones[:0]
		for _, pc := range tones {
			if pc != fifthPC {
				filtered = append(filtered, pc)
			}
		}
		tones = filtered
	}

	return tones
}

// BassPitchClass returns the pitch class that belongs in the bass given
// f's inversion. Position 0 is root position; 1, 2, 3 pick the third,
// fifth and seventh, matching the chord-inversion convention used
// throughout the music package. ChordTones is ordered by pitch class, so
// its tones are first reordered by degree above RootPC, with a ninth last.
func (f HarmonicFunction) BassPitchClass() music.PitchClass {
	tones := f.ChordTones()
	degree := func(pc music.PitchClass) int {
		off := ((int(pc)-int(f.RootPC))%12 + 12) % 12
		if off > 0 && off < 3 {
			off += 12
		}
		return off
	}
	sort.Slice(tones, func(i, j int) bool { return degree(tones[i]) < degree(tones[j]) })
	if f.Position <= 0 || f.Position >= len(tones) {
		return tones[0]
	}
	return tones[f.Position]
}

// String renders f back into the grammar ParseFunction accepts, in the
// same "key: value; key: value" shape spec.md's own examples use (e.g.
// "D{extra: 7}", "S{position: 3}").
func (f HarmonicFunction) String() string {
	var parts []string
	if f.Position != 0 {
		parts = append(parts, fmt.Sprintf("position: %d", f.Position))
	}
	if len(f.Extra) > 0 {
		strs := make([]string, len(f.Extra))
		for i, e := range f.Extra {
			strs[i] = strconv.Itoa(e)
		}
		parts = append(parts, "extra: "+strings.Join(strs, ", "))
	}
	if len(f.Alterations) > 0 {
		var alts []string
		for offset, op := range f.Alterations {
			alts = append(alts, fmt.Sprintf("%d: %s", offset, op))
		}
		parts = append(parts, "alterations: "+strings.Join(alts, ", "))
	}
	if f.IsRelatedBackwards {
		parts = append(parts, "isRelatedBackwards")
	}
	if f.IsRelatedForwards {
		parts = append(parts, "isRelatedForwards")
	}
	if f.IsMinor {
		parts = append(parts, "minor")
	}
	return fmt.Sprintf("%s{%s}", f.Type, strings.Join(parts, "; "))
}

// ParseFunction parses one "Type{params}" symbol against a tonal key pitch
// class: T's root is the key itself, S a fourth above, D a fifth above, N
// a semitone above (flat supertonic), Ch the key itself.
func ParseFunction(s string, keyPC music.PitchClass) (HarmonicFunction, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '{')
	if open < 0 || !strings.HasSuffix(s, "}") {
		return HarmonicFunction{}, fmt.Errorf("harmonicfn: malformed symbol %q", s)
	}
	typeStr := Type(s[:open])
	body := s[open+1 : len(s)-1]

	offset, ok := degreeSemitones[typeStr]
	if !ok {
		return HarmonicFunction{}, fmt.Errorf("harmonicfn: unrecognized function type %q in %q", typeStr, s)
	}
	f := HarmonicFunction{Type: typeStr, RootPC: music.PitchClass(((int(keyPC) + offset) % 12))}

	body = strings.TrimSpace(body)
	if body == "" {
		return f, nil
	}

	for _, part := range splitTopLevel(body, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if !hasValue {
			switch key {
			case "isRelatedBackwards":
				f.IsRelatedBackwards = true
			case "isRelatedForwards":
				f.IsRelatedForwards = true
			case "minor":
				f.IsMinor = true
			default:
				return HarmonicFunction{}, fmt.Errorf("harmonicfn: unrecognized flag %q in %q", key, s)
			}
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "position":
			n, err := strconv.Atoi(value)
			if err != nil {
				return HarmonicFunction{}, fmt.Errorf("harmonicfn: bad position in %q: %w", s, err)
			}
			f.Position = n
		case "extra":
			for _, e := range strings.Split(value, ",") {
				e = strings.TrimSpace(e)
				if e == "" {
					continue
				}
				n, err := strconv.Atoi(e)
				if err != nil {
					return HarmonicFunction{}, fmt.Errorf("harmonicfn: bad extra in %q: %w", s, err)
				}
				f.Extra = append(f.Extra, n)
			}
		case "alterations":
			if f.Alterations == nil {
				f.Alterations = map[int]string{}
			}
			for _, a := range strings.Split(value, ",") {
				a = strings.TrimSpace(a)
				if a == "" {
					continue
				}
				pcStr, op, hasOp := strings.Cut(a, ":")
				if !hasOp {
					return HarmonicFunction{}, fmt.Errorf("harmonicfn: bad alteration %q in %q", a, s)
				}
				pc, err := strconv.Atoi(strings.TrimSpace(pcStr))
				if err != nil {
					return HarmonicFunction{}, fmt.Errorf("harmonicfn: bad alteration pitch class in %q: %w", s, err)
				}
				op = strings.TrimSpace(op)
				if op != "<" && op != ">" {
					return HarmonicFunction{}, fmt.Errorf("harmonicfn: bad alteration operator %q in %q", op, s)
				}
				f.Alterations[pc] = op
			}
		default:
			return HarmonicFunction{}, fmt.Errorf("harmonicfn: unrecognized key %q in %q", key, s)
		}
	}
	return f, nil
}

// ParseSequence splits s on top-level semicolons -- those outside any
// {...} group -- and parses each resulting symbol against keyPC. This is
// the brace-aware fix described in the package doc comment: a naive
// strings.Split(s, ";") would also cut through a symbol's own "position: 1;
// extra: 7" parameter list.
func ParseSequence(s string, keyPC music.PitchClass) ([]HarmonicFunction, error) {
	out := make([]HarmonicFunction, 0)
	for _, sym := range splitTopLevel(s, ';') {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		f, err := ParseFunction(sym, keyPC)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// splitTopLevel splits s on sep, ignoring any occurrence nested inside a
// {...} group.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		default:
			if r == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func hasExtra(extra []int, want int) bool {
	for _, e := range extra {
		if e == want {
			return true
		}
	}
	return false
}
