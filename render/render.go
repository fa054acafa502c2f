// Package render turns a solved progression into plain text for terminal
// display. MusicXML export is out of scope (spec.md's non-goals exclude
// notation-layout output); this package keeps the teacher's
// measure-by-measure document-building shape from musicxml_generator.go
// but targets a column-aligned text score instead of an XML document.
package render

import (
	"errors"
	"fmt"
	"strings"

	"go-four-part-harmony/music"
)

// Text renders a progression as one line per voice, one column per step,
// in S/A/T/B order from top to bottom, each pitch shown by name.
func Text(progression []music.Voicing) (string, error) {
	if len(progression) == 0 {
		return "", errors.New("render: cannot render an empty progression")
	}

	rows := map[music.Voice][]string{}
	for _, v := range music.AllVoices {
		rows[v] = make([]string, len(progression))
	}

	for step, v := range progression {
		v.Each(func(voice music.Voice, p music.Pitch) {
			rows[voice][step] = p.Name()
		})
	}

	widths := make([]int, len(progression))
	for step := range progression {
		for _, v := range music.AllVoices {
			if w := len(rows[v][step]); w > widths[step] {
				widths[step] = w
			}
		}
	}

	var b strings.Builder
	for _, v := range music.AllVoices {
		fmt.Fprintf(&b, "%s |", v)
		for step, cell := range rows[v] {
			fmt.Fprintf(&b, " %-*s |", widths[step], cell)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}
