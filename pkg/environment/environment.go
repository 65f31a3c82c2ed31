// Package environment adapts the household simulator into a discrete-action,
// image-observation environment: it resolves high-level actions against the
// visible object metadata, issues primitive simulator commands and drives
// the per-episode task state machine.
package environment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/agentsim/thorgym/pkg/config"
	"github.com/agentsim/thorgym/pkg/core"
	"github.com/agentsim/thorgym/pkg/messaging"
	"github.com/agentsim/thorgym/pkg/task"
)

// Simulator Initialize parameters used on every reset.
const (
	initializeAction = "Initialize"
	initGridSize     = 0.25
)

var (
	// ErrInvalidAction indicates an action index outside [0, N) or an
	// unrecognized action name at dispatch time. The step is aborted with
	// no simulator command issued and no state mutated.
	ErrInvalidAction = errors.New("invalid action")

	// ErrEpisodeDone indicates Step was called after the episode
	// terminated. Callers must Reset first; the environment never
	// auto-resets.
	ErrEpisodeDone = errors.New("episode is done")

	// ErrNotReady indicates Step was called before the first Reset.
	ErrNotReady = errors.New("environment has not been reset")
)

// episode lifecycle states
type lifecycle int

const (
	uninitialized lifecycle = iota
	ready
	terminated
)

// Env is the episode controller. It exclusively owns the current snapshot
// and task; snapshots are never aliased across steps. All methods are
// strictly sequential: one Env drives one simulator connection.
type Env struct {
	id       string
	sim      core.Simulator
	cfg      *config.Config
	task     task.Task
	actions  *ActionSpace
	eligible EligibilitySet
	imager   *Imager
	bus      messaging.Bus
	rng      *rand.Rand

	state    lifecycle
	snapshot *core.Snapshot
	stepN    int
}

// Option configures an Env.
type Option func(*Env)

// WithBus attaches a diagnostics bus. Interaction reports are published
// there instead of being dropped.
func WithBus(bus messaging.Bus) Option {
	return func(e *Env) {
		e.bus = bus
	}
}

// WithSeed seeds the environment's random source. The adapter itself is
// deterministic; the seed only feeds through to callers that ask for it.
func WithSeed(seed int64) Option {
	return func(e *Env) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates an environment over the given simulator. The task variant is
// constructed from configuration here; an unknown task name fails
// immediately with task.ErrUnknownTask.
func New(sim core.Simulator, cfg *config.Config, opts ...Option) (*Env, error) {
	t, err := task.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating environment: %w", err)
	}

	e := &Env{
		id:       uuid.NewString(),
		sim:      sim,
		cfg:      cfg,
		task:     t,
		actions:  NewActionSpace(cfg.Env.Interaction),
		eligible: NewEligibilitySet(cfg.Env),
		imager:   NewImager(cfg.Env.Resolution[0], cfg.Env.Resolution[1], cfg.Env.Grayscale),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		state:    uninitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ID returns the environment's unique identifier.
func (e *Env) ID() string {
	return e.id
}

// ActionCount returns N, the size of the discrete action space.
func (e *Env) ActionCount() int {
	return e.actions.N()
}

// ActionSpace returns the declared action space.
func (e *Env) ActionSpace() *ActionSpace {
	return e.actions
}

// Rand returns the environment's seeded random source.
func (e *Env) Rand() *rand.Rand {
	return e.rng
}

// Reset starts a new episode: reloads the scene, reinitializes the
// simulator, resets the task and the step counter, and returns the initial
// processed observation.
func (e *Env) Reset(ctx context.Context) (core.Observation, error) {
	log.Printf("env %s: resetting environment and starting new episode", e.id)

	if _, err := e.sim.Reset(ctx, e.cfg.Env.SceneID); err != nil {
		return core.Observation{}, fmt.Errorf("resetting scene %s: %w", e.cfg.Env.SceneID, err)
	}
	snap, err := e.sim.Step(ctx, core.Command{
		Action:            initializeAction,
		GridSize:          initGridSize,
		RenderDepthImage:  true,
		RenderClassImage:  true,
		RenderObjectImage: true,
	})
	if err != nil {
		return core.Observation{}, fmt.Errorf("initializing scene %s: %w", e.cfg.Env.SceneID, err)
	}

	e.snapshot = snap
	e.task.Reset()
	e.stepN = 0
	e.state = ready
	return e.imager.Observation(snap.Frame), nil
}

// Step executes one discrete action. It validates the index, retains the
// previous snapshot, dispatches the action, advances the step counter and
// asks the task for (reward, done). A done transition moves the episode to
// Terminated; further Step calls fail with ErrEpisodeDone until Reset.
func (e *Env) Step(ctx context.Context, action int) (core.Observation, float64, bool, core.StepInfo, error) {
	switch e.state {
	case uninitialized:
		return core.Observation{}, 0, false, core.StepInfo{}, ErrNotReady
	case terminated:
		return core.Observation{}, 0, false, core.StepInfo{}, ErrEpisodeDone
	}
	if !e.actions.Contains(action) {
		return core.Observation{}, 0, false, core.StepInfo{},
			fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidAction, action, e.actions.N())
	}

	prev := e.snapshot.Clone()
	name := e.actions.Name(action)

	snap, report, err := e.dispatch(ctx, name)
	if err != nil {
		return core.Observation{}, 0, false, core.StepInfo{}, err
	}
	e.snapshot = snap
	e.stepN++

	reward, done := e.task.TransitionReward(prev, snap)
	if done {
		e.state = terminated
	}

	info := core.StepInfo{
		StepN:           e.stepN,
		ActionName:      name,
		VisibleObjects:  visibleNames(snap),
		InventoryReport: report,
	}
	if report != nil {
		info.TargetObjectID = report.ObjectID
	}
	return e.imager.Observation(snap.Frame), reward, done, info, nil
}

// dispatch resolves one action name into at most one primitive simulator
// command. Movement/look/rotate actions are issued unconditionally.
// Interaction actions resolve a target through the object selector; when no
// eligible target exists or a precondition fails, no command is issued and
// the current snapshot is returned unchanged.
func (e *Env) dispatch(ctx context.Context, name string) (*core.Snapshot, *core.InventoryReport, error) {
	if !IsInteraction(name) {
		snap, err := e.sim.Step(ctx, core.Command{Action: name})
		if err != nil {
			return nil, nil, fmt.Errorf("dispatching %s: %w", name, err)
		}
		return snap, nil, nil
	}

	visible := e.snapshot.VisibleObjects()
	inventoryBefore := e.snapshot.InventoryType()

	var cmd *core.Command
	var target *core.ObjectInfo
	switch name {
	case "PickupObject":
		// Single-carry: can only pick up with an empty inventory.
		if len(e.snapshot.Inventory) == 0 {
			if target = closestEligible(visible, pickupable, e.eligible.Pickupables); target != nil {
				cmd = &core.Command{Action: name, ObjectID: target.ID}
			}
		}
	case "PutObject":
		if len(e.snapshot.Inventory) > 0 {
			if target = closestEligible(visible, receptive, e.eligible.Receptacles); target != nil {
				cmd = &core.Command{
					Action:             name,
					ObjectID:           e.snapshot.Inventory[0].ID,
					ReceptacleObjectID: target.ID,
				}
			}
		}
	case "OpenObject":
		if target = closestEligible(visible, openable, e.eligible.Openables); target != nil {
			cmd = &core.Command{Action: name, ObjectID: target.ID}
		}
	case "CloseObject":
		if target = closestEligible(visible, closeable, e.eligible.Openables); target != nil {
			cmd = &core.Command{Action: name, ObjectID: target.ID}
		}
	default:
		return nil, nil, fmt.Errorf("%w: unrecognized interaction %q", ErrInvalidAction, name)
	}

	if cmd == nil {
		// No eligible target: a no-op step, not a failure.
		return e.snapshot, nil, nil
	}

	snap, err := e.sim.Step(ctx, *cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("dispatching %s on %s: %w", name, target.ID, err)
	}

	report := &core.InventoryReport{
		Action:     name,
		ObjectID:   target.ID,
		ObjectName: target.Name,
		Before:     inventoryBefore,
		After:      snap.InventoryType(),
	}
	e.publish(messaging.TopicInteraction, *report)
	return snap, report, nil
}

func (e *Env) publish(topic string, payload any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(messaging.Event{
		Source:    e.id,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("env %s: %v", e.id, err)
	}
}

func visibleNames(s *core.Snapshot) []string {
	var names []string
	for _, obj := range s.VisibleObjects() {
		names = append(names, obj.Name)
	}
	return names
}
