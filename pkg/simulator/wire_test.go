package simulator

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
)

func encodedFrame(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding frame: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestEventSnapshot(t *testing.T) {
	t.Run("valid event decodes", func(t *testing.T) {
		ev := event{
			Frame: encodedFrame(t, 8, 6),
			Objects: []wireObject{
				{ObjectID: "Mug|1", ObjectType: "Mug", Name: "Mug_1", Visible: true, Distance: 1.5, Pickupable: true},
				{ObjectID: "Sink|1", ObjectType: "Sink", Name: "Sink_1", Receptacle: true, ReceptacleCount: 4},
			},
			InventoryObjects: []wireObject{
				{ObjectID: "Book|1", ObjectType: "Book", Name: "Book_1"},
			},
		}
		snap, err := ev.snapshot()
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if got := snap.Frame.Bounds(); got.Dx() != 8 || got.Dy() != 6 {
			t.Errorf("frame bounds = %v, want 8x6", got)
		}
		if len(snap.Objects) != 2 || snap.Objects[0].Type != "Mug" {
			t.Errorf("objects = %+v", snap.Objects)
		}
		if snap.InventoryType() != "Book" {
			t.Errorf("InventoryType = %q, want Book", snap.InventoryType())
		}
		if snap.Objects[1].ReceptacleCapacity != 4 {
			t.Errorf("ReceptacleCapacity = %d, want 4", snap.Objects[1].ReceptacleCapacity)
		}
	})

	t.Run("missing frame rejected", func(t *testing.T) {
		ev := event{}
		if _, err := ev.snapshot(); err == nil {
			t.Error("expected error for missing frame")
		}
	})

	t.Run("garbage frame rejected", func(t *testing.T) {
		ev := event{Frame: base64.StdEncoding.EncodeToString([]byte("not a png"))}
		if _, err := ev.snapshot(); err == nil {
			t.Error("expected error for non-PNG frame")
		}
	})

	t.Run("oversized inventory violates single-carry", func(t *testing.T) {
		ev := event{
			Frame: encodedFrame(t, 2, 2),
			InventoryObjects: []wireObject{
				{ObjectID: "Mug|1"},
				{ObjectID: "Book|1"},
			},
		}
		if _, err := ev.snapshot(); err == nil {
			t.Error("expected error for two inventory objects")
		}
	})

	t.Run("object without id rejected", func(t *testing.T) {
		ev := event{
			Frame:   encodedFrame(t, 2, 2),
			Objects: []wireObject{{ObjectType: "Mug"}},
		}
		if _, err := ev.snapshot(); err == nil {
			t.Error("expected error for missing objectId")
		}
	})

	t.Run("negative distance rejected", func(t *testing.T) {
		ev := event{
			Frame:   encodedFrame(t, 2, 2),
			Objects: []wireObject{{ObjectID: "Mug|1", Distance: -0.5}},
		}
		if _, err := ev.snapshot(); err == nil {
			t.Error("expected error for negative distance")
		}
	})
}
