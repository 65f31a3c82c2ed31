// Package experiment drives a policy against an environment for a number
// of episodes and records the results.
package experiment

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/agentsim/thorgym/pkg/agent"
	"github.com/agentsim/thorgym/pkg/core"
	"github.com/agentsim/thorgym/pkg/memory"
)

// Runner executes episodes sequentially: reset, then step until the task
// signals done or the step cap is hit.
type Runner struct {
	env       core.Environment
	policy    agent.Policy
	episodes  int
	maxSteps  int
	statsFile *os.File

	trajectories []*memory.Trajectory
}

// RunnerParams collects construction parameters.
type RunnerParams struct {
	Episodes  int
	MaxSteps  int
	StatsPath string // "" disables the CSV stats file
}

// NewRunner creates a runner. When StatsPath is set, per-episode stats are
// appended there as CSV.
func NewRunner(env core.Environment, policy agent.Policy, params RunnerParams) (*Runner, error) {
	if params.Episodes <= 0 {
		params.Episodes = 1
	}
	if params.MaxSteps <= 0 {
		params.MaxSteps = 1000
	}

	var statsFile *os.File
	if params.StatsPath != "" {
		f, err := os.Create(params.StatsPath)
		if err != nil {
			return nil, fmt.Errorf("creating stats file: %w", err)
		}
		f.WriteString("Episode,Steps,Return,Done,Duration\n")
		statsFile = f
	}

	return &Runner{
		env:       env,
		policy:    policy,
		episodes:  params.Episodes,
		maxSteps:  params.MaxSteps,
		statsFile: statsFile,
	}, nil
}

// Run executes all episodes. The context aborts between steps; an
// in-flight simulator command is never interrupted.
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		if r.statsFile != nil {
			r.statsFile.Close()
		}
	}()

	for ep := 1; ep <= r.episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runEpisode(ctx, ep); err != nil {
			return fmt.Errorf("episode %d: %w", ep, err)
		}
	}
	return nil
}

// Trajectories returns the recorded episode trajectories.
func (r *Runner) Trajectories() []*memory.Trajectory {
	return r.trajectories
}

func (r *Runner) runEpisode(ctx context.Context, ep int) error {
	start := time.Now()

	obs, err := r.env.Reset(ctx)
	if err != nil {
		return err
	}

	traj := memory.NewTrajectory(r.maxSteps)
	var info core.StepInfo
	var done bool
	steps := 0

	for steps < r.maxSteps && !done {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := r.policy.Act(ctx, obs, info)
		if err != nil {
			return err
		}

		var reward float64
		obs, reward, done, info, err = r.env.Step(ctx, action)
		if err != nil {
			return err
		}
		steps++
		traj.Append(memory.StepRecord{
			Action:     action,
			ActionName: info.ActionName,
			Reward:     reward,
			Done:       done,
		})
	}

	r.trajectories = append(r.trajectories, traj)
	ret := traj.Return()
	dur := time.Since(start)
	log.Printf("episode %d finished: steps=%d return=%.1f done=%t in %s", ep, steps, ret, done, dur)

	if r.statsFile != nil {
		fmt.Fprintf(r.statsFile, "%d,%d,%.2f,%t,%s\n", ep, steps, ret, done, dur)
	}
	return nil
}
