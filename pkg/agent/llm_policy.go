package agent

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentsim/thorgym/internal/client"
	"github.com/agentsim/thorgym/pkg/core"
)

// LLMPolicy asks a completion model to choose the next action by name,
// given the action menu and the currently visible objects. Unparsable
// replies fall back to a uniform random action so an episode never stalls
// on a chatty model.
type LLMPolicy struct {
	id       string
	model    string
	client   CompletionClient
	actions  []string
	fallback *rand.Rand
}

// LLMPolicyParams collects construction parameters.
type LLMPolicyParams struct {
	ID     string
	Model  string
	Client CompletionClient
}

// LLMPolicyOption mutates construction parameters.
type LLMPolicyOption func(*LLMPolicyParams)

// WithPolicyID sets a fixed policy ID instead of a generated one.
func WithPolicyID(id string) LLMPolicyOption {
	return func(p *LLMPolicyParams) {
		p.ID = id
	}
}

// WithModel selects the completion model.
func WithModel(model string) LLMPolicyOption {
	return func(p *LLMPolicyParams) {
		p.Model = model
	}
}

// WithClient sets the completion backend. Defaults to the shared OpenAI
// client.
func WithClient(c CompletionClient) LLMPolicyOption {
	return func(p *LLMPolicyParams) {
		p.Client = c
	}
}

// NewLLMPolicy creates a policy over the given ordered action names.
func NewLLMPolicy(actionNames []string, opts ...LLMPolicyOption) (*LLMPolicy, error) {
	if len(actionNames) == 0 {
		return nil, fmt.Errorf("llm policy needs a non-empty action set")
	}

	params := &LLMPolicyParams{}
	for _, opt := range opts {
		opt(params)
	}
	if params.ID == "" {
		params.ID = fmt.Sprintf("llm-policy-%s", uuid.NewString())
	}
	if params.Model == "" {
		params.Model = "gpt-4o-mini"
	}
	if params.Client == nil {
		params.Client = client.GetOpenAiClient("", "")
	}

	names := make([]string, len(actionNames))
	copy(names, actionNames)
	return &LLMPolicy{
		id:       params.ID,
		model:    params.Model,
		client:   params.Client,
		actions:  names,
		fallback: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// GetID returns the policy's identifier.
func (p *LLMPolicy) GetID() string {
	return p.id
}

// Act prompts the model and parses the chosen action name.
func (p *LLMPolicy) Act(ctx context.Context, obs core.Observation, info core.StepInfo) (int, error) {
	reply, err := p.client.Complete(ctx, p.model, p.prompt(info))
	if err != nil {
		return 0, fmt.Errorf("llm policy %s: %w", p.id, err)
	}
	if idx, ok := p.parse(reply); ok {
		return idx, nil
	}
	idx := p.fallback.Intn(len(p.actions))
	log.Printf("llm policy %s: unparsable reply %q, falling back to %s", p.id, reply, p.actions[idx])
	return idx, nil
}

func (p *LLMPolicy) prompt(info core.StepInfo) string {
	var sb strings.Builder
	sb.WriteString("You control a robot in a household scene. Choose the single best next action.\n")
	sb.WriteString("Available actions:\n")
	for _, name := range p.actions {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	if len(info.VisibleObjects) > 0 {
		fmt.Fprintf(&sb, "Visible objects: %s\n", strings.Join(info.VisibleObjects, ", "))
	} else {
		sb.WriteString("No objects are currently visible.\n")
	}
	if info.InventoryReport != nil && info.InventoryReport.After != "" {
		fmt.Fprintf(&sb, "You are holding: %s\n", info.InventoryReport.After)
	}
	sb.WriteString("Reply with exactly one action name.")
	return sb.String()
}

// parse finds the first action name mentioned in the reply,
// case-insensitively, preferring an exact match of the trimmed reply.
func (p *LLMPolicy) parse(reply string) (int, bool) {
	trimmed := strings.TrimSpace(reply)
	for i, name := range p.actions {
		if strings.EqualFold(trimmed, name) {
			return i, true
		}
	}
	lower := strings.ToLower(reply)
	for i, name := range p.actions {
		if strings.Contains(lower, strings.ToLower(name)) {
			return i, true
		}
	}
	return 0, false
}
