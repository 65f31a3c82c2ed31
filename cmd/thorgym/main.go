package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agentsim/thorgym/pkg/agent"
	"github.com/agentsim/thorgym/pkg/config"
	"github.com/agentsim/thorgym/pkg/core"
	"github.com/agentsim/thorgym/pkg/environment"
	"github.com/agentsim/thorgym/pkg/experiment"
	"github.com/agentsim/thorgym/pkg/messaging"
	"github.com/agentsim/thorgym/pkg/providers"
	"github.com/agentsim/thorgym/pkg/simulator"
)

type runFlags struct {
	configPath string
	simAddr    string
	scene      string
	policy     string
	model      string
	episodes   int
	maxSteps   int
	seed       int64
	statsPath  string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "thorgym",
		Short: "thorgym exposes a 3D household simulator as a discrete-action, image-observation environment.",
	}

	flags := &runFlags{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run episodes against the simulator with the chosen policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}
	runCmd.Flags().StringVar(&flags.configPath, "config", "config_files/config_example.yaml", "path to the environment config file")
	runCmd.Flags().StringVar(&flags.simAddr, "sim", "ws://localhost:9200/session", "simulator websocket URL")
	runCmd.Flags().StringVar(&flags.scene, "scene", "", "override the target scene")
	runCmd.Flags().StringVar(&flags.policy, "policy", "random", "policy: random, openai or gemini")
	runCmd.Flags().StringVar(&flags.model, "model", "gpt-4o-mini", "completion model for LLM policies")
	runCmd.Flags().IntVar(&flags.episodes, "episodes", 1, "number of episodes to run")
	runCmd.Flags().IntVar(&flags.maxSteps, "max-steps", 1000, "step cap per episode")
	runCmd.Flags().Int64Var(&flags.seed, "seed", 1, "seed for the random policy")
	runCmd.Flags().StringVar(&flags.statsPath, "stats", "", "CSV stats file path (empty disables)")

	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.Execute()
}

func run(flags *runFlags) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	var overrides []config.Override
	if flags.scene != "" {
		overrides = append(overrides, config.WithSceneID(flags.scene))
	}
	cfg, err := config.Load(flags.configPath, overrides...)
	if err != nil {
		return err
	}

	sim, err := simulator.Dial(ctx, flags.simAddr)
	if err != nil {
		return err
	}
	defer sim.Close()

	bus := messaging.NewBus()
	defer bus.Reset()
	startDiagnosticsLogger(ctx, bus)

	env, err := environment.New(sim, cfg,
		environment.WithBus(bus),
		environment.WithSeed(flags.seed),
	)
	if err != nil {
		return err
	}

	policy, err := buildPolicy(ctx, flags, env)
	if err != nil {
		return err
	}

	runner, err := experiment.NewRunner(env, policy, experiment.RunnerParams{
		Episodes:  flags.episodes,
		MaxSteps:  flags.maxSteps,
		StatsPath: flags.statsPath,
	})
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}

func buildPolicy(ctx context.Context, flags *runFlags, env *environment.Env) (agent.Policy, error) {
	switch flags.policy {
	case "random":
		return agent.NewRandomPolicy(env.ActionCount(), flags.seed), nil
	case "openai":
		return agent.NewLLMPolicy(env.ActionSpace().Names(),
			agent.WithModel(flags.model),
			agent.WithClient(providers.OpenAi(ctx)),
		)
	case "gemini":
		gemini, err := providers.Gemini(ctx)
		if err != nil {
			return nil, err
		}
		return agent.NewLLMPolicy(env.ActionSpace().Names(),
			agent.WithModel(flags.model),
			agent.WithClient(gemini),
		)
	default:
		return nil, fmt.Errorf("unknown policy %q", flags.policy)
	}
}

// startDiagnosticsLogger subscribes to the bus and logs interaction
// reports.
func startDiagnosticsLogger(ctx context.Context, bus messaging.Bus) {
	ch := make(chan messaging.Event, 64)
	if err := bus.Subscribe("cli-logger", ch); err != nil {
		log.Printf("diagnostics logger: %v", err)
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				if report, ok := ev.Payload.(core.InventoryReport); ok {
					log.Printf("%s: %s. Inventory before/after: %q/%q",
						report.Action, report.ObjectName, report.Before, report.After)
				}
			}
		}
	}()
}
