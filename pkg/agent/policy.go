// Package agent provides action-selection policies for driving episodes.
package agent

import (
	"context"
	"math/rand"

	"github.com/agentsim/thorgym/pkg/core"
)

// Policy maps the latest observation and step diagnostics to the next
// action index.
type Policy interface {
	Act(ctx context.Context, obs core.Observation, info core.StepInfo) (int, error)
}

// CompletionClient is the minimal LLM surface a policy needs.
type CompletionClient interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

// RandomPolicy samples uniformly from the action space.
type RandomPolicy struct {
	n   int
	rng *rand.Rand
}

// NewRandomPolicy creates a seeded uniform policy over n actions.
func NewRandomPolicy(n int, seed int64) *RandomPolicy {
	return &RandomPolicy{
		n:   n,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Act returns a uniformly sampled action index.
func (p *RandomPolicy) Act(ctx context.Context, obs core.Observation, info core.StepInfo) (int, error) {
	return p.rng.Intn(p.n), nil
}
