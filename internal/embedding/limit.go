package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Limited bounds the number of in-flight Embed calls on the wrapped provider.
type Limited struct {
	next Provider
	sem  *semaphore.Weighted
}

// Limit wraps p so that at most n calls run concurrently. n <= 0 returns p unchanged.
func Limit(p Provider, n int) Provider {
	if n <= 0 {
		return p
	}
	return &Limited{next: p, sem: semaphore.NewWeighted(int64(n))}
}

func (l *Limited) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for embedding slot: %w", err)
	}
	defer l.sem.Release(1)

	return l.next.Embed(ctx, texts)
}

func (l *Limited) Name() string { return l.next.Name() }

func (l *Limited) Model() string { return l.next.Model() }
