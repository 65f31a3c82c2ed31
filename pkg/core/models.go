package core

import (
	"image"
)

// ObjectInfo is the per-object metadata reported by the simulator for a
// single timestep. Fields are validated once at the simulator boundary.
type ObjectInfo struct {
	ID                  string // simulator object identifier, e.g. "Mug|+00.25|+00.90|-01.10"
	Type                string // object type, e.g. "Mug"
	Name                string // unique instance name
	Visible             bool
	Distance            float64 // meters from the agent, >= 0
	Pickupable          bool
	Receptacle          bool
	Openable            bool
	IsOpen              bool
	ReceptacleObjectIDs []string // IDs of objects currently inside this receptacle
	ReceptacleCapacity  int      // max objects this receptacle can hold
}

// Snapshot is one timestep's full observable world state. The episode
// controller owns exactly one Snapshot at a time; the previous one is
// retained only transiently for reward computation.
type Snapshot struct {
	Frame     image.Image // raw RGB frame as decoded at the wire boundary
	Objects   []ObjectInfo
	Inventory []ObjectInfo // single-carry: length 0 or 1
}

// Clone returns a copy of the snapshot with independent metadata slices.
// Frames are never mutated after decoding, so the image is shared.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := &Snapshot{Frame: s.Frame}
	c.Objects = make([]ObjectInfo, len(s.Objects))
	copy(c.Objects, s.Objects)
	c.Inventory = make([]ObjectInfo, len(s.Inventory))
	copy(c.Inventory, s.Inventory)
	return c
}

// VisibleObjects returns the objects with the visible flag set, in the
// simulator's enumeration order.
func (s *Snapshot) VisibleObjects() []ObjectInfo {
	var visible []ObjectInfo
	for _, obj := range s.Objects {
		if obj.Visible {
			visible = append(visible, obj)
		}
	}
	return visible
}

// InventoryType returns the type of the held object, or "" when empty.
func (s *Snapshot) InventoryType() string {
	if len(s.Inventory) == 0 {
		return ""
	}
	return s.Inventory[0].Type
}

// Command is a primitive simulator command: an action name plus named
// parameters. Zero-valued fields are omitted on the wire.
type Command struct {
	Action             string  `json:"action"`
	ObjectID           string  `json:"objectId,omitempty"`
	ReceptacleObjectID string  `json:"receptacleObjectId,omitempty"`
	SceneID            string  `json:"sceneId,omitempty"`
	GridSize           float64 `json:"gridSize,omitempty"`
	RenderDepthImage   bool    `json:"renderDepthImage,omitempty"`
	RenderClassImage   bool    `json:"renderClassImage,omitempty"`
	RenderObjectImage  bool    `json:"renderObjectImage,omitempty"`
}

// Observation is the processed image handed to the caller: row-major
// height x width x channels, pixel values in [0, 255].
type Observation struct {
	Height   int
	Width    int
	Channels int // 1 if grayscale, 3 otherwise
	Pixels   []uint8
}

// StepInfo carries per-step diagnostics. Observability only: nothing in it
// feeds back into control flow or reward.
type StepInfo struct {
	StepN           int
	ActionName      string
	TargetObjectID  string   // resolved interaction target, "" for movement or no-op
	VisibleObjects  []string // names of currently visible objects
	InventoryReport *InventoryReport
}

// InventoryReport records inventory contents around an interaction.
type InventoryReport struct {
	Action     string
	ObjectID   string
	ObjectName string
	Before     string
	After      string
}
