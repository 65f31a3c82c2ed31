package environment

import (
	"github.com/agentsim/thorgym/pkg/core"
)

// capability is the per-action predicate an interaction target must satisfy
// before distance is considered.
type capability func(core.ObjectInfo) bool

var (
	pickupable capability = func(o core.ObjectInfo) bool { return o.Pickupable }
	openable   capability = func(o core.ObjectInfo) bool { return o.Openable && !o.IsOpen }
	closeable  capability = func(o core.ObjectInfo) bool { return o.Openable && o.IsOpen }

	// A receptacle can only take another object while it has spare capacity.
	receptive capability = func(o core.ObjectInfo) bool {
		return o.Receptacle && len(o.ReceptacleObjectIDs) < o.ReceptacleCapacity
	}
)

// eligible matches an object against the capability whitelist by type or
// instance name.
func eligible(obj core.ObjectInfo, set StringSet) bool {
	return set.Contains(obj.Type) || set.Contains(obj.Name)
}

// closestEligible scans the given objects and returns the nearest one that
// is visible, satisfies the capability predicate and is in the eligibility
// set. On exact distance ties the first-seen candidate wins (the scan order
// is the simulator's enumeration order). Returns nil when nothing matches;
// that is normal flow, not an error.
func closestEligible(objects []core.ObjectInfo, pred capability, set StringSet) *core.ObjectInfo {
	var closest *core.ObjectInfo
	for i := range objects {
		obj := &objects[i]
		if !obj.Visible || !pred(*obj) || !eligible(*obj, set) {
			continue
		}
		if closest == nil || obj.Distance < closest.Distance {
			closest = obj
		}
	}
	if closest == nil {
		return nil
	}
	target := *closest
	return &target
}
