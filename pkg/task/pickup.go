package task

import (
	"fmt"
	"slices"

	"github.com/agentsim/thorgym/pkg/config"
	"github.com/agentsim/thorgym/pkg/core"
)

func init() {
	Register("PickUp", NewPickUp)
}

// PickUp rewards the first appearance of the target object type in the
// agent's inventory and ends the episode there. With MaxEpisodeSteps > 0
// the episode also ends with reward 0 once the step limit is reached.
type PickUp struct {
	target   string
	maxSteps int
	stepN    int
}

// NewPickUp validates the goal parameters against the episode's pickupable
// whitelist: a target that can never be picked up is a configuration error,
// not a silently unreachable goal.
func NewPickUp(cfg *config.Config) (Task, error) {
	target := cfg.Task.TargetObject
	if target == "" {
		return nil, fmt.Errorf("%w: PickUp requires a target_object", ErrInvalidTaskParams)
	}
	if cfg.Env.Interaction && !slices.Contains(cfg.Env.PickupObjects, target) {
		return nil, fmt.Errorf("%w: target %q is not in pickup_objects", ErrInvalidTaskParams, target)
	}
	return &PickUp{
		target:   target,
		maxSteps: cfg.Task.MaxEpisodeSteps,
	}, nil
}

// Reset clears the step counter for a new episode.
func (t *PickUp) Reset() {
	t.stepN = 0
}

// TransitionReward returns (1, true) when the new snapshot's inventory
// holds the target type, (0, true) on step-limit timeout, (0, false)
// otherwise.
func (t *PickUp) TransitionReward(prev, cur *core.Snapshot) (float64, bool) {
	t.stepN++
	for _, obj := range cur.Inventory {
		if obj.Type == t.target {
			return 1, true
		}
	}
	if t.maxSteps > 0 && t.stepN >= t.maxSteps {
		return 0, true
	}
	return 0, false
}
