package environment

import (
	"strings"

	"github.com/agentsim/thorgym/pkg/config"
)

// interactionSuffix marks actions that need a resolved target object.
const interactionSuffix = "Object"

// allActionNames is the fixed, ordered action set. Index <-> name defines
// the discrete action space. Teleport actions are deliberately excluded.
var allActionNames = []string{
	"MoveAhead",
	"MoveBack",
	"MoveRight",
	"MoveLeft",
	"LookUp",
	"LookDown",
	"RotateRight",
	"RotateLeft",
	"OpenObject",
	"CloseObject",
	"PickupObject",
	"PutObject",
}

// ActionSpace is the declared discrete action set for an episode.
type ActionSpace struct {
	names []string
}

// NewActionSpace returns the full 12-action space when interaction is
// enabled, otherwise the 8 movement/look/rotate actions.
func NewActionSpace(interaction bool) *ActionSpace {
	if interaction {
		names := make([]string, len(allActionNames))
		copy(names, allActionNames)
		return &ActionSpace{names: names}
	}
	var names []string
	for _, name := range allActionNames {
		if !IsInteraction(name) {
			names = append(names, name)
		}
	}
	return &ActionSpace{names: names}
}

// N returns the number of actions.
func (a *ActionSpace) N() int {
	return len(a.names)
}

// Contains reports whether idx is inside [0, N).
func (a *ActionSpace) Contains(idx int) bool {
	return idx >= 0 && idx < len(a.names)
}

// Name returns the action name for a valid index.
func (a *ActionSpace) Name(idx int) string {
	return a.names[idx]
}

// Names returns a copy of the ordered action names.
func (a *ActionSpace) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Index returns the index of the named action, or -1 if absent.
func (a *ActionSpace) Index(name string) int {
	for i, n := range a.names {
		if n == name {
			return i
		}
	}
	return -1
}

// IsInteraction reports whether the named action requires target
// resolution, as opposed to a movement/look/rotate primitive.
func IsInteraction(name string) bool {
	return strings.HasSuffix(name, interactionSuffix)
}

// StringSet is a membership set of object type/name strings.
type StringSet map[string]struct{}

// NewStringSet creates a set with the given strings.
func NewStringSet(s ...string) StringSet {
	res := StringSet{}
	for _, str := range s {
		res[str] = struct{}{}
	}
	return res
}

// Contains checks if a string is in the set.
func (s StringSet) Contains(elem string) bool {
	_, ok := s[elem]
	return ok
}

// EligibilitySet is the per-episode whitelist of object identities allowed
// to participate in each interaction kind. Immutable for the episode.
type EligibilitySet struct {
	Pickupables StringSet
	Receptacles StringSet
	Openables   StringSet
}

// NewEligibilitySet derives the eligibility whitelist from configuration.
func NewEligibilitySet(cfg config.EnvConfig) EligibilitySet {
	return EligibilitySet{
		Pickupables: NewStringSet(cfg.PickupObjects...),
		Receptacles: NewStringSet(cfg.AcceptableReceptacles...),
		Openables:   NewStringSet(cfg.OpenableObjects...),
	}
}
