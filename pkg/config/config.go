package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfigMissing indicates the configuration source is absent or
// unreadable. Fatal at environment construction.
var ErrConfigMissing = errors.New("config file missing")

// Config is the full environment configuration, consumed read-only.
type Config struct {
	Env  EnvConfig  `yaml:"env"`
	Task TaskConfig `yaml:"task"`
}

// EnvConfig controls the action space, object eligibility and observation
// processing for an episode.
type EnvConfig struct {
	Interaction           bool     `yaml:"interaction"`
	PickupObjects         []string `yaml:"pickup_objects"`
	AcceptableReceptacles []string `yaml:"acceptable_receptacles"`
	OpenableObjects       []string `yaml:"openable_objects"`
	SceneID               string   `yaml:"scene_id"`
	Grayscale             bool     `yaml:"grayscale"`
	Resolution            [2]int   `yaml:"resolution"` // height, width
}

// TaskConfig selects the task variant and its goal parameters.
type TaskConfig struct {
	TaskName        string `yaml:"task_name"`
	TargetObject    string `yaml:"target_object"`
	MaxEpisodeSteps int    `yaml:"max_episode_steps"`
}

// Override mutates specific fields of a loaded config after the file has
// been parsed.
type Override func(*Config)

// WithSceneID overrides the target scene.
func WithSceneID(scene string) Override {
	return func(c *Config) {
		c.Env.SceneID = scene
	}
}

// WithTask overrides the task name and target object.
func WithTask(name, target string) Override {
	return func(c *Config) {
		c.Task.TaskName = name
		c.Task.TargetObject = target
	}
}

// WithResolution overrides the processed observation resolution.
func WithResolution(height, width int) Override {
	return func(c *Config) {
		c.Env.Resolution = [2]int{height, width}
	}
}

// Default returns the example configuration: a kitchen scene with a small
// set of interactable objects and the PickUp task.
func Default() *Config {
	return &Config{
		Env: EnvConfig{
			Interaction:           true,
			PickupObjects:         []string{"Mug", "Apple", "Book"},
			AcceptableReceptacles: []string{"CounterTop", "TableTop", "Sink"},
			OpenableObjects:       []string{"Microwave"},
			SceneID:               "FloorPlan28",
			Grayscale:             true,
			Resolution:            [2]int{300, 300},
		},
		Task: TaskConfig{
			TaskName:     "PickUp",
			TargetObject: "Mug",
		},
	}
}

// Load parses the YAML config at path and applies overrides on top. A
// missing or unreadable file fails with ErrConfigMissing.
func Load(path string, overrides ...Override) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %v", path, err)
	}

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Env.SceneID == "" {
		return fmt.Errorf("config: scene_id must be set")
	}
	if c.Env.Resolution[0] <= 0 || c.Env.Resolution[1] <= 0 {
		return fmt.Errorf("config: resolution must be positive, got %v", c.Env.Resolution)
	}
	return nil
}
