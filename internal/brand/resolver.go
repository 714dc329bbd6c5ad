package brand

import (
	"strings"

	"github.com/brandclash/brandclash-backend/internal/match"
)

const (
	ConfidenceExact = "exact"
	ConfidenceFuzzy = "fuzzy"
	ConfidenceNone  = "none"
)

// Match - the resolver's verdict for one candidate word.
type Match struct {
	Confidence string
	Brand      string
	Distance   int
}

// Resolver - looks up candidate words in the dictionary with tiered
// confidence: exact match first, then a fuzzy pass bounded by a
// length-proportional edit-distance threshold.
type Resolver struct {
	dictionary  *Dictionary
	maxDistance int
}

func NewResolver(dictionary *Dictionary, maxDistance int) *Resolver {
	return &Resolver{
		dictionary:  dictionary,
		maxDistance: maxDistance,
	}
}

// Resolve - matches word against the dictionary. An exact hit always wins
// over a fuzzy one, so a perfectly valid brand is never "corrected" into a
// near neighbour. Dictionary order breaks ties in both passes.
func (that *Resolver) Resolve(word string) Match {
	candidate := strings.TrimSpace(word)
	if candidate == "" {
		return Match{Confidence: ConfidenceNone}
	}

	for _, entry := range that.dictionary.Brands() {
		if entry.Equals(candidate) {
			return Match{Confidence: ConfidenceExact, Brand: entry.Name}
		}
	}

	threshold := match.Threshold(candidate, that.maxDistance)

	best := Match{Confidence: ConfidenceNone}
	for _, entry := range that.dictionary.Brands() {
		distance := match.Distance(candidate, entry.Name)
		if distance > threshold {
			continue
		}

		if best.Confidence == ConfidenceNone || distance < best.Distance {
			best = Match{Confidence: ConfidenceFuzzy, Brand: entry.Name, Distance: distance}
		}
	}

	return best
}
