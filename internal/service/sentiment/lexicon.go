// internal/service/sentiment/lexicon.go

package sentiment

import (
	"math"
	"strings"

	"mediawatch/internal/domain/monitor"
	domain "mediawatch/internal/domain/sentiment"
)

// positiveWords and negativeWords form the fixed scoring lexicon. Matching
// is substring-based, so entries are kept long enough to avoid accidental
// hits inside unrelated words.
var positiveWords = []string{
	"happy", "great", "excellent", "success", "winning", "growth", "praise", "improved",
}

var negativeWords = []string{
	"disappointed", "terrible", "failure", "crisis", "losing", "scandal", "conflict", "outbreak",
}

// Lexicon is a deterministic keyword-weighted sentiment scorer. It has no
// failure modes and serves both as the classifier fallback and for
// bootstrapping.
type Lexicon struct{}

// NewLexicon creates a lexical scorer
func NewLexicon() Lexicon {
	return Lexicon{}
}

// Score rates a text by counting lexicon hits: +0.2 per positive word
// present, -0.2 per negative word, clamped to [-1, 1]
func (Lexicon) Score(text string) domain.Result {
	lower := strings.ToLower(text)

	score := 0.0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			score += 0.2
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			score -= 0.2
		}
	}

	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}

	label := monitor.SentimentNeutral
	if score > 0.15 {
		label = monitor.SentimentPositive
	} else if score < -0.15 {
		label = monitor.SentimentNegative
	}

	return domain.Result{
		Label:     label,
		Score:     round2(score),
		Confident: math.Abs(score) > 0.3,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
