package relevance

import "strings"

// Scoring constants. Changing any of them changes result order.
const (
	// FuzzyThreshold is the minimum word similarity that contributes to a score.
	FuzzyThreshold = 0.6
	// NearExactThreshold is the similarity a fuzzy word must exceed to be highlighted.
	NearExactThreshold = 0.8
	// ExactMultiplier scales the weight of a literal substring match.
	ExactMultiplier = 2
)

// FieldScore is the contribution of one field to a listing's score.
type FieldScore struct {
	Score      float64
	Highlights []string
}

// ScoreField scores one field value against the query terms. Terms are expected
// lower-cased (see request.Tokenize).
//
// A term found as a literal substring adds weight*2 and is highlighted. Otherwise
// the first whitespace-delimited word with similarity >= 0.6 adds
// weight*similarity, and is highlighted only above 0.8. Later words are not
// considered for that term even if they would score higher.
func ScoreField(value string, terms []string, weight float64) FieldScore {
	if value == "" {
		return FieldScore{}
	}

	lower := strings.ToLower(value)
	var words []string

	var fs FieldScore
	for _, term := range terms {
		if strings.Contains(lower, term) {
			fs.Score += weight * ExactMultiplier
			fs.addHighlight(term)
			continue
		}

		if words == nil {
			words = strings.Fields(lower)
		}
		for _, word := range words {
			sim := Similarity(word, term)
			if sim < FuzzyThreshold {
				continue
			}
			fs.Score += weight * sim
			if sim > NearExactThreshold {
				fs.addHighlight(word)
			}
			break
		}
	}
	return fs
}

func (fs *FieldScore) addHighlight(h string) {
	for _, existing := range fs.Highlights {
		if existing == h {
			return
		}
	}
	fs.Highlights = append(fs.Highlights, h)
}
