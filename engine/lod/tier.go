package lod

import "fmt"

// Tier is a discrete detail level an object can occupy. Tiers are ordered so that a
// larger value always means less detail.
type Tier int

const (
	// TierUnset is the tier of an object that has not received its first update.
	TierUnset Tier = iota - 1
	// TierFull renders the original detailed resource set with shadows.
	TierFull
	// TierReduced keeps the original resources but drops expensive shading features and shadows.
	TierReduced
	// TierVertexOnly swaps to the lightweight substitute appearance.
	TierVertexOnly
	// TierDisabled turns rendering off and unloads non-essential resources.
	// Only reachable with a 3-entry threshold array.
	TierDisabled
)

func (t Tier) String() string {
	switch t {
	case TierUnset:
		return "unset"
	case TierFull:
		return "full"
	case TierReduced:
		return "reduced"
	case TierVertexOnly:
		return "vertex-only"
	case TierDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Thresholds is an ascending array of squared distances marking the tier boundaries.
// Two entries give the 3-tier machine (Full, Reduced, VertexOnly), three entries add
// the terminal Disabled tier.
type Thresholds []float32

// Validate reports whether the thresholds form a usable configuration.
//
// Returns:
//   - error: one of the threshold sentinel errors, or nil
func (th Thresholds) Validate() error {
	if len(th) == 0 {
		return ErrEmptyThresholds
	}
	if len(th) < 2 || len(th) > 3 {
		return fmt.Errorf("%w: got %d", ErrThresholdCount, len(th))
	}
	for i, v := range th {
		if !(v > 0) {
			return fmt.Errorf("%w: index %d is %v", ErrNonPositiveThreshold, i, v)
		}
		if i > 0 && v <= th[i-1] {
			return fmt.Errorf("%w: index %d (%v) <= index %d (%v)", ErrThresholdOrder, i, v, i-1, th[i-1])
		}
	}
	return nil
}

// Select maps a squared distance to a tier. It is a pure function of its inputs and
// never returns a lower-detail tier for a smaller distance. The thresholds must be valid.
//
// Parameters:
//   - distSqr: squared planar distance from the observer
//
// Returns:
//   - Tier: the tier the distance falls into
func (th Thresholds) Select(distSqr float32) Tier {
	switch {
	case distSqr <= th[0]:
		return TierFull
	case distSqr <= th[1]:
		return TierReduced
	case len(th) < 3 || distSqr <= th[2]:
		return TierVertexOnly
	default:
		return TierDisabled
	}
}

// Clone returns a copy that does not alias the caller's slice.
func (th Thresholds) Clone() Thresholds {
	return append(Thresholds(nil), th...)
}
