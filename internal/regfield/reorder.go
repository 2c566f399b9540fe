package regfield

import (
	"errors"
)

// PlanReorder validates a requested id ordering against the current one.
// The requested sequence must be a permutation of the current ids; a
// request identical to the current order reports changed=false so the
// caller can skip the write entirely.
func PlanReorder(current []uint, requested []uint) (changed bool, err error) {
	if len(requested) != len(current) {
		return false, errors.New("ordering must include every field exactly once")
	}

	seen := make(map[uint]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range requested {
		if !seen[id] {
			return false, errors.New("ordering contains an unknown or duplicate field id")
		}
		delete(seen, id)
	}
	if len(seen) != 0 {
		return false, errors.New("ordering contains an unknown or duplicate field id")
	}

	for i := range current {
		if current[i] != requested[i] {
			return true, nil
		}
	}
	return false, nil
}
