// internal/service/sentiment/model.go

package sentiment

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// trainingExample is one labeled text used to fit the model
type trainingExample struct {
	Text     string
	Positive bool
}

// seedCorpus is the fixed labeled corpus the model is bootstrapped from the
// first time it is needed. Retraining always mixes it back in so both
// classes stay represented.
var seedCorpus = []trainingExample{
	{Text: "I am very happy with this result", Positive: true},
	{Text: "This is a great product, excellent quality", Positive: true},
	{Text: "Amazing launch, a clear success for the team", Positive: true},
	{Text: "Strong growth and winning results this quarter", Positive: true},
	{Text: "I am disappointed with this product", Positive: false},
	{Text: "A terrible experience from start to finish", Positive: false},
	{Text: "The launch was a complete failure", Positive: false},
	{Text: "The conflict keeps escalating into a crisis", Positive: false},
}

// bayesModel is a multinomial naive Bayes text classifier over word
// tokens. Fields are exported for JSON persistence only; the model is
// immutable once fitted.
type bayesModel struct {
	PositiveDocs   int            `json:"positive_docs"`
	NegativeDocs   int            `json:"negative_docs"`
	PositiveTokens int            `json:"positive_tokens"`
	NegativeTokens int            `json:"negative_tokens"`
	PositiveCounts map[string]int `json:"positive_counts"`
	NegativeCounts map[string]int `json:"negative_counts"`
	VocabSize      int            `json:"vocab_size"`
}

// fitModel trains a naive Bayes model from labeled examples. It fails when
// either class is unrepresented, since a binary prior cannot be estimated.
func fitModel(examples []trainingExample) (*bayesModel, error) {
	m := &bayesModel{
		PositiveCounts: make(map[string]int),
		NegativeCounts: make(map[string]int),
	}

	vocab := make(map[string]struct{})
	for _, ex := range examples {
		tokens := tokenize(ex.Text)
		if len(tokens) == 0 {
			continue
		}
		if ex.Positive {
			m.PositiveDocs++
		} else {
			m.NegativeDocs++
		}
		for _, tok := range tokens {
			vocab[tok] = struct{}{}
			if ex.Positive {
				m.PositiveCounts[tok]++
				m.PositiveTokens++
			} else {
				m.NegativeCounts[tok]++
				m.NegativeTokens++
			}
		}
	}
	m.VocabSize = len(vocab)

	if m.PositiveDocs == 0 || m.NegativeDocs == 0 {
		return nil, fmt.Errorf("training corpus must contain both classes (got %d positive, %d negative)",
			m.PositiveDocs, m.NegativeDocs)
	}

	return m, nil
}

// probabilityPositive returns P(positive | text) using Laplace-smoothed
// token likelihoods
func (m *bayesModel) probabilityPositive(text string) (float64, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, fmt.Errorf("no scorable tokens in text")
	}

	totalDocs := float64(m.PositiveDocs + m.NegativeDocs)
	logPos := math.Log(float64(m.PositiveDocs) / totalDocs)
	logNeg := math.Log(float64(m.NegativeDocs) / totalDocs)

	for _, tok := range tokens {
		logPos += math.Log(float64(m.PositiveCounts[tok]+1) / float64(m.PositiveTokens+m.VocabSize))
		logNeg += math.Log(float64(m.NegativeCounts[tok]+1) / float64(m.NegativeTokens+m.VocabSize))
	}

	// 1 / (1 + e^(logNeg-logPos)) without overflowing either direction
	diff := logNeg - logPos
	if diff > 700 {
		return 0, nil
	}
	if diff < -700 {
		return 1, nil
	}
	return 1 / (1 + math.Exp(diff)), nil
}

// loadModel reads a previously persisted model from disk
func loadModel(path string) (*bayesModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var m bayesModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model file: %w", err)
	}
	if m.PositiveDocs == 0 || m.NegativeDocs == 0 {
		return nil, fmt.Errorf("persisted model is missing a class")
	}
	if m.PositiveCounts == nil {
		m.PositiveCounts = make(map[string]int)
	}
	if m.NegativeCounts == nil {
		m.NegativeCounts = make(map[string]int)
	}

	return &m, nil
}

// saveModel persists a model to disk, creating parent directories as needed
func saveModel(m *bayesModel, path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating model directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}

	return nil
}

// tokenize lower-cases a text and splits it into word tokens
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
