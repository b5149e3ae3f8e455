// Package llm defines the completion provider abstraction and its OpenAI
// implementation. The chat service depends only on the Client interface, so
// tests (and future providers) can swap in anything that completes a
// conversation.
package llm

import (
	"context"

	"github.com/voyago/trip-planner/backend/internal/memory"
)

// Client produces the next assistant turn for an ordered conversation
// context. Implementations must return an error rather than a partial or
// empty turn when the provider call fails — the caller treats any error as
// "no turn was produced".
type Client interface {
	Complete(ctx context.Context, turns []memory.Turn) (memory.Turn, error)
}
