package simulator

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/agentsim/thorgym/pkg/core"
)

// event is the simulator's reply to a command. Field names follow the
// simulator's metadata schema.
type event struct {
	Frame             string       `json:"frame"` // base64-encoded PNG
	Objects           []wireObject `json:"objects"`
	InventoryObjects  []wireObject `json:"inventoryObjects"`
	LastActionSuccess bool         `json:"lastActionSuccess"`
}

type wireObject struct {
	ObjectID            string   `json:"objectId"`
	ObjectType          string   `json:"objectType"`
	Name                string   `json:"name"`
	Visible             bool     `json:"visible"`
	Distance            float64  `json:"distance"`
	Pickupable          bool     `json:"pickupable"`
	Receptacle          bool     `json:"receptacle"`
	Openable            bool     `json:"openable"`
	IsOpen              bool     `json:"isopen"`
	ReceptacleObjectIDs []string `json:"receptacleObjectIds"`
	ReceptacleCount     int      `json:"receptacleCount"`
}

// snapshot validates and converts one wire event into a typed Snapshot.
// This is the single place where simulator metadata is checked; downstream
// code can rely on the invariants unconditionally.
func (ev *event) snapshot() (*core.Snapshot, error) {
	if ev.Frame == "" {
		return nil, fmt.Errorf("event has no frame")
	}
	raw, err := base64.StdEncoding.DecodeString(ev.Frame)
	if err != nil {
		return nil, fmt.Errorf("frame is not valid base64: %v", err)
	}
	frame, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("frame is not a valid PNG: %v", err)
	}

	if len(ev.InventoryObjects) > 1 {
		return nil, fmt.Errorf("inventory has %d objects, single-carry allows at most 1", len(ev.InventoryObjects))
	}

	snap := &core.Snapshot{Frame: frame}
	snap.Objects = make([]core.ObjectInfo, 0, len(ev.Objects))
	for i, obj := range ev.Objects {
		info, err := obj.objectInfo()
		if err != nil {
			return nil, fmt.Errorf("object %d: %v", i, err)
		}
		snap.Objects = append(snap.Objects, info)
	}
	for i, obj := range ev.InventoryObjects {
		info, err := obj.objectInfo()
		if err != nil {
			return nil, fmt.Errorf("inventory object %d: %v", i, err)
		}
		snap.Inventory = append(snap.Inventory, info)
	}
	return snap, nil
}

func (o *wireObject) objectInfo() (core.ObjectInfo, error) {
	if o.ObjectID == "" {
		return core.ObjectInfo{}, fmt.Errorf("missing objectId")
	}
	if o.Distance < 0 {
		return core.ObjectInfo{}, fmt.Errorf("%s: negative distance %v", o.ObjectID, o.Distance)
	}
	if o.ReceptacleCount < 0 {
		return core.ObjectInfo{}, fmt.Errorf("%s: negative receptacleCount %d", o.ObjectID, o.ReceptacleCount)
	}
	return core.ObjectInfo{
		ID:                  o.ObjectID,
		Type:                o.ObjectType,
		Name:                o.Name,
		Visible:             o.Visible,
		Distance:            o.Distance,
		Pickupable:          o.Pickupable,
		Receptacle:          o.Receptacle,
		Openable:            o.Openable,
		IsOpen:              o.IsOpen,
		ReceptacleObjectIDs: o.ReceptacleObjectIDs,
		ReceptacleCapacity:  o.ReceptacleCount,
	}, nil
}
