package task

import (
	"errors"
	"testing"

	"github.com/agentsim/thorgym/pkg/config"
	"github.com/agentsim/thorgym/pkg/core"
)

func pickupConfig(target string, maxSteps int) *config.Config {
	cfg := config.Default()
	cfg.Task.TargetObject = target
	cfg.Task.MaxEpisodeSteps = maxSteps
	return cfg
}

func withInventory(types ...string) *core.Snapshot {
	snap := &core.Snapshot{}
	for _, typ := range types {
		snap.Inventory = append(snap.Inventory, core.ObjectInfo{ID: typ + "|1", Type: typ})
	}
	return snap
}

func TestRegistry(t *testing.T) {
	t.Run("known task constructs", func(t *testing.T) {
		if _, err := New(pickupConfig("Mug", 0)); err != nil {
			t.Fatalf("New: %v", err)
		}
	})

	t.Run("unknown task name fails fast", func(t *testing.T) {
		cfg := pickupConfig("Mug", 0)
		cfg.Task.TaskName = "MakeCoffee"
		_, err := New(cfg)
		if !errors.Is(err, ErrUnknownTask) {
			t.Errorf("expected ErrUnknownTask, got %v", err)
		}
	})

	t.Run("missing target is invalid params", func(t *testing.T) {
		_, err := New(pickupConfig("", 0))
		if !errors.Is(err, ErrInvalidTaskParams) {
			t.Errorf("expected ErrInvalidTaskParams, got %v", err)
		}
	})

	t.Run("target outside pickupables is invalid params", func(t *testing.T) {
		_, err := New(pickupConfig("Television", 0))
		if !errors.Is(err, ErrInvalidTaskParams) {
			t.Errorf("expected ErrInvalidTaskParams, got %v", err)
		}
	})
}

func TestPickUpTransitionReward(t *testing.T) {
	t.Run("target in inventory terminates with reward 1", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 0))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		reward, done := task.TransitionReward(withInventory(), withInventory("Mug"))
		if reward != 1 || !done {
			t.Errorf("got (%v, %v), want (1, true)", reward, done)
		}
	})

	t.Run("non-target pickup continues with reward 0", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 0))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		reward, done := task.TransitionReward(withInventory(), withInventory("Apple"))
		if reward != 0 || done {
			t.Errorf("got (%v, %v), want (0, false)", reward, done)
		}
	})

	t.Run("deterministic for identical arguments", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 0))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		prev, cur := withInventory(), withInventory("Mug")
		r1, d1 := task.TransitionReward(prev, cur)
		r2, d2 := task.TransitionReward(prev, cur)
		if r1 != r2 || d1 != d2 {
			t.Errorf("repeated call diverged: (%v,%v) vs (%v,%v)", r1, d1, r2, d2)
		}
	})

	t.Run("does not mutate its snapshot arguments", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 0))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		prev, cur := withInventory("Apple"), withInventory("Mug")
		task.TransitionReward(prev, cur)
		if prev.Inventory[0].Type != "Apple" || cur.Inventory[0].Type != "Mug" {
			t.Error("TransitionReward mutated a snapshot argument")
		}
	})

	t.Run("step limit terminates with reward 0", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 3))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		empty := withInventory()
		for i := 0; i < 2; i++ {
			if _, done := task.TransitionReward(empty, empty); done {
				t.Fatalf("done after %d steps, limit is 3", i+1)
			}
		}
		reward, done := task.TransitionReward(empty, empty)
		if reward != 0 || !done {
			t.Errorf("at limit got (%v, %v), want (0, true)", reward, done)
		}
	})

	t.Run("reset rearms the step limit", func(t *testing.T) {
		task, err := New(pickupConfig("Mug", 1))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		empty := withInventory()
		if _, done := task.TransitionReward(empty, empty); !done {
			t.Fatal("expected done at limit 1")
		}
		task.Reset()
		if _, done := task.TransitionReward(empty, empty); !done {
			t.Fatal("expected done again after reset")
		}
	})
}
