// Package lexical implements fuzzy string comparison used as an input signal
// for matching, mainly to decide whether a candidate and a job share a location.
package lexical

import (
	"github.com/agnivade/levenshtein"

	"github.com/spigell/hr-matcher/internal/utils"
)

// DefaultLocationThreshold is the partial ratio a pair of locations must reach to be considered the same place.
const DefaultLocationThreshold = 70.0

// Ratio returns the normalized Levenshtein similarity of a and b in [0,100].
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(distance)/float64(longest))
}

// PartialRatio compares the shorter string against every window of the same
// length in the longer one and returns the best Ratio. Comparison is case and
// accent insensitive. An empty side yields 0.
func PartialRatio(a, b string) float64 {
	a, b = utils.Fold(a), utils.Fold(b)
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == len(long) {
		return Ratio(a, b)
	}

	needle := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		score := Ratio(needle, string(long[i:i+len(short)]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}

	return best
}

// MatchLocations reports whether any candidate location fuzzily matches any job location.
func MatchLocations(candidate, job []string, threshold float64) bool {
	for _, c := range candidate {
		for _, j := range job {
			if c == "" || j == "" {
				continue
			}
			if PartialRatio(c, j) >= threshold {
				return true
			}
		}
	}
	return false
}
