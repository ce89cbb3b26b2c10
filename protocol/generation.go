package protocol

import (
	"context"
	"sync/atomic"
)

// Generation tracks fetch generations for one piece of display state. When
// the triggering identity changes (the active account, the selected pair),
// the caller starts a new generation; results tagged with a superseded
// generation are discarded on arrival. The network call itself is not
// cancelled, only its result is dropped.
type Generation struct {
	current atomic.Uint64
}

// Token marks one fetch with the generation that started it.
type Token struct {
	gen *Generation
	id  uint64
}

// Next starts a new generation, implicitly superseding every fetch that is
// still in flight.
func (g *Generation) Next() Token {
	return Token{gen: g, id: g.current.Add(1)}
}

// Stale reports whether this fetch has been superseded by a newer one.
func (t Token) Stale() bool {
	return t.gen.current.Load() != t.id
}

// Fetch runs fn inside a fresh generation. If the generation was superseded
// while fn was in flight, the result (value or error) is silently discarded
// and ok is false. Stale results are not errors.
func Fetch[T any](ctx context.Context, g *Generation, fn func(context.Context) (T, error)) (value T, ok bool, err error) {
	token := g.Next()
	v, err := fn(ctx)
	if token.Stale() {
		var zero T
		return zero, false, nil
	}
	return v, true, err
}
