package core

import (
	"context"
)

// Simulator is the household simulator collaborator. It is a single
// exclusive resource: implementations serialize commands so at most one is
// outstanding at a time. Every call blocks until the simulator replies.
type Simulator interface {
	// Reset loads the target scene and returns the initial snapshot.
	Reset(ctx context.Context, sceneID string) (*Snapshot, error)
	// Step executes one primitive command and returns the new snapshot.
	Step(ctx context.Context, cmd Command) (*Snapshot, error)
	// Close releases the simulator connection.
	Close() error
}

// Environment is the discrete-action, image-observation surface exposed to
// training loops.
type Environment interface {
	// Reset starts a new episode and returns the initial observation.
	Reset(ctx context.Context) (Observation, error)
	// Step executes one action index and advances the episode.
	Step(ctx context.Context, action int) (Observation, float64, bool, StepInfo, error)
	// ActionCount returns N, the size of the discrete action space.
	ActionCount() int
}
