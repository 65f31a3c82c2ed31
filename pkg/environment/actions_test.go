package environment

import (
	"testing"
)

func TestActionSpace(t *testing.T) {
	t.Run("interaction enabled has 12 actions", func(t *testing.T) {
		space := NewActionSpace(true)
		if got := space.N(); got != 12 {
			t.Errorf("N() = %d, want 12", got)
		}
		if got := space.Name(11); got != "PutObject" {
			t.Errorf("Name(11) = %q, want PutObject", got)
		}
	})

	t.Run("interaction disabled has 8 actions", func(t *testing.T) {
		space := NewActionSpace(false)
		if got := space.N(); got != 8 {
			t.Errorf("N() = %d, want 8", got)
		}
		for _, name := range space.Names() {
			if IsInteraction(name) {
				t.Errorf("interaction action %q in movement-only space", name)
			}
		}
	})

	t.Run("contains covers exactly the declared range", func(t *testing.T) {
		space := NewActionSpace(true)
		for _, idx := range []int{-1, 12, 100} {
			if space.Contains(idx) {
				t.Errorf("Contains(%d) = true, want false", idx)
			}
		}
		for idx := 0; idx < space.N(); idx++ {
			if !space.Contains(idx) {
				t.Errorf("Contains(%d) = false, want true", idx)
			}
		}
	})

	t.Run("index is the inverse of name", func(t *testing.T) {
		space := NewActionSpace(true)
		for i, name := range space.Names() {
			if got := space.Index(name); got != i {
				t.Errorf("Index(%q) = %d, want %d", name, got, i)
			}
		}
		if got := space.Index("Teleport"); got != -1 {
			t.Errorf("Index(Teleport) = %d, want -1", got)
		}
	})

	t.Run("interaction suffix", func(t *testing.T) {
		if !IsInteraction("PickupObject") {
			t.Error("PickupObject should be an interaction")
		}
		if IsInteraction("MoveAhead") {
			t.Error("MoveAhead should not be an interaction")
		}
	})
}
