// Package keywords turns free text into sets of candidate skill keywords.
package keywords

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

const minTokenLength = 3

// Extractor collects noun phrases, nouns and known technology terms from text.
// It is safe for concurrent use as long as the tagger is.
type Extractor struct {
	tagger  Tagger
	lexicon *Lexicon
	logger  *zap.Logger
}

func NewExtractor(tagger Tagger, lexicon *Lexicon, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		tagger:  tagger,
		lexicon: lexicon,
		logger:  logger,
	}
}

// Extract returns the keyword set found in text. It never fails: empty text or a
// tagging error produce an empty set.
func (e *Extractor) Extract(text string) Set {
	result := make(Set)

	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return result
	}

	tokens, err := e.tagger.Tag(text)
	if err != nil {
		e.logger.Warn("keyword extraction failed", zap.Error(err))
		return result
	}

	candidates := make(Set)
	for _, chunk := range nounChunks(tokens) {
		candidates.Add(chunk)
	}

	for _, tok := range tokens {
		if isNounTag(tok.Tag) && len(tok.Text) >= minTokenLength && !e.lexicon.IsStopWord(tok.Text) && isAlpha(tok.Text) {
			candidates.Add(tok.Text)
		}
		if e.lexicon.IsAllowed(tok.Text) {
			candidates.Add(tok.Text)
		}
	}

	for candidate := range candidates {
		if e.keep(candidate) {
			result.Add(candidate)
		}
	}

	e.logger.Debug("keywords extracted",
		zap.Int("tokens", len(tokens)),
		zap.Int("candidates", candidates.Len()),
		zap.Int("keywords", result.Len()),
	)

	return result
}

func (e *Extractor) keep(candidate string) bool {
	if len(candidate) <= 1 {
		return false
	}
	if e.lexicon.IsDenied(candidate) {
		return false
	}
	return !strings.ContainsFunc(candidate, unicode.IsDigit)
}

// nounChunks groups maximal runs of adjectives and nouns that end with a noun.
func nounChunks(tokens []Token) []string {
	var chunks []string
	var run []Token

	flush := func() {
		end := len(run)
		for end > 0 && !isNounTag(run[end-1].Tag) {
			end--
		}
		if end > 0 {
			words := make([]string, 0, end)
			for _, tok := range run[:end] {
				words = append(words, tok.Text)
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if isNounTag(tok.Tag) || isAdjectiveTag(tok.Tag) {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()

	return chunks
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
