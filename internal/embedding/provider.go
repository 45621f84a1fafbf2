// Package embedding maps keyword lists to vectors for semantic comparison.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Provider names accepted by configuration.
const (
	ProviderGemini = "gemini"
	ProviderHash   = "hash"
	ProviderNone   = "none"
)

// ErrUnavailable is returned by providers that could not be initialized.
var ErrUnavailable = errors.New("embedding provider is unavailable")

// Provider embeds texts in batch. Implementations must preserve input order and
// return an empty result for empty input.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Name() string
	Model() string
}

// Unavailable stands in for a provider that failed to load. Every call fails with
// ErrUnavailable.
type Unavailable struct {
	Reason string
}

func (u *Unavailable) Embed(context.Context, []string) ([][]float32, error) {
	if u.Reason == "" {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

func (u *Unavailable) Name() string { return ProviderNone }

func (u *Unavailable) Model() string { return "" }

// Available reports whether p can produce embeddings.
func Available(p Provider) bool {
	if p == nil {
		return false
	}
	if l, ok := p.(*Limited); ok {
		return Available(l.next)
	}
	_, unavailable := p.(*Unavailable)
	return !unavailable
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector has
// zero magnitude or the dimensions differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
