package keywords

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Token is a word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Tagger tokenizes text and assigns part-of-speech tags.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// ProseTagger tags text with the averaged perceptron model bundled in prose.
// The model is loaded once and only read afterwards, so a tagger is safe for
// concurrent use.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger loads the prose model. Entity extraction and sentence
// segmentation are not needed and stay disabled when tagging.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{model: prose.ModelFromData("en")}
}

func (t *ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := t.document(text)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	tokens := doc.Tokens()
	result := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return result, nil
}

func (t *ProseTagger) document(text string) (*prose.Document, error) {
	return prose.NewDocument(text,
		prose.UsingModel(t.model),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
}

func isNounTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	default:
		return false
	}
}

func isAdjectiveTag(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS":
		return true
	default:
		return false
	}
}
