package mealdb

import "context"

// RandomPolicy bounds the loop that gathers distinct random recipes. Each
// attempt draws a batch concurrently; duplicates are discarded by ID.
type RandomPolicy struct {
	MaxAttempts int
	Overfetch   int
	MaxBatch    int
}

// DefaultRandomPolicy asks for a few more than needed per attempt, never more
// than nine at once, and gives up after fifty attempts.
var DefaultRandomPolicy = RandomPolicy{MaxAttempts: 50, Overfetch: 3, MaxBatch: 9}

// BatchSize is the number of draws for the next attempt.
func (p RandomPolicy) BatchSize(have, want int) int {
	n := want - have + p.Overfetch
	if p.MaxBatch > 0 && n > p.MaxBatch {
		n = p.MaxBatch
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Done reports whether the loop should stop.
func (p RandomPolicy) Done(have, want, attempts int) bool {
	return have >= want || attempts >= p.MaxAttempts
}

// DrawFunc fetches n random recipes.
type DrawFunc func(ctx context.Context, n int) ([]Recipe, error)

// Collect calls draw until want distinct recipes are held or attempts run out.
// Order of first appearance is kept and the result is capped at want. A draw
// error aborts the loop.
func (p RandomPolicy) Collect(ctx context.Context, want int, draw DrawFunc) ([]Recipe, error) {
	if want <= 0 {
		return []Recipe{}, nil
	}

	seen := make(map[string]struct{}, want)
	out := make([]Recipe, 0, want)

	for attempts := 0; !p.Done(len(out), want, attempts); attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := draw(ctx, p.BatchSize(len(out), want))
		if err != nil {
			return nil, err
		}
		for _, r := range batch {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}

	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}
