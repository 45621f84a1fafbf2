package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const defaultHashDimensions = 256

// Hash is an offline provider that projects character trigrams of each text into a
// fixed number of buckets. Texts sharing spelling share direction, which is enough
// to pair "postgres" with "postgresql" but not "car" with "automobile".
type Hash struct {
	dims int
}

func NewHash(dimensions int) *Hash {
	if dimensions <= 0 {
		dimensions = defaultHashDimensions
	}
	return &Hash{dims: dimensions}
}

func (h *Hash) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors = append(vectors, h.vector(text))
	}
	return vectors, nil
}

func (h *Hash) vector(text string) []float32 {
	vec := make([]float32, h.dims)

	padded := []rune(" " + strings.ToLower(strings.TrimSpace(text)) + " ")
	for i := 0; i+3 <= len(padded); i++ {
		hasher := fnv.New32a()
		_, _ = hasher.Write([]byte(string(padded[i : i+3])))
		vec[hasher.Sum32()%uint32(h.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func (h *Hash) Name() string { return ProviderHash }

func (h *Hash) Model() string { return fmt.Sprintf("trigram-%d", h.dims) }
