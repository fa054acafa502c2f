package exercises

import (
	"math/rand"

	"go-four-part-harmony/cantusgen"
	"go-four-part-harmony/music"
)

// GenerateCantusFirmus produces up to count candidate cantus firmi, each a
// walk of length semitone moves from start (length+1 notes) that returns to
// start, drawn from cantusgen's contour generator and
// sampled down with reservoir sampling. This is not named in spec.md; it
// supplements the species-1 exercise with the means to produce a cantus
// firmus to write counterpoint against, adapted from the teacher's own
// cantus-generation CLI flow.
func GenerateCantusFirmus(start music.Pitch, length, count int) [][]music.Pitch {
	contours := cantusgen.GenerateContours(length)
	if len(contours) == 0 {
		return nil
	}

	sampled := selectRandomItems(contours, count)
	out := make([][]music.Pitch, 0, len(sampled))
	for _, contour := range sampled {
		line := make([]music.Pitch, 0, length+1)
		curr := start
		line = append(line, curr)
		for _, step := range contour {
			curr += music.Pitch(step)
			line = append(line, curr)
		}
		out = append(out, line)
	}
	return out
}

// selectRandomItems selects count random items from items using reservoir
// sampling. Folded in from the teacher's internal/utils package, which
// offered the same generic helper for sampling cantus candidates.
func selectRandomItems[T any](items []T, count int) []T {
	if count <= 0 || len(items) == 0 {
		return nil
	}
	if count >= len(items) {
		result := make([]T, len(items))
		copy(result, items)
		return result
	}

	result := make([]T, count)
	copy(result, items[:count])

	for i := count; i < len(items); i++ {
		j := rand.Intn(i + 1)
		if j < count {
			result[j] = items[i]
		}
	}

	return result
}
