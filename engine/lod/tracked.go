package lod

import "log"

// TrackedObject is the per-object LOD state machine. It owns the tier decision and
// the transition side effects for one host Object.
type TrackedObject struct {
	obj        Object
	thresholds Thresholds
	enabled    bool

	tier    Tier
	visible bool // far-clip gate, only meaningful while the tier is VertexOnly

	lastDistSqr float32
}

// newTrackedObject builds a TrackedObject. thresholds must already be validated.
func newTrackedObject(obj Object, thresholds Thresholds, enabled bool) *TrackedObject {
	return &TrackedObject{
		obj:        obj,
		thresholds: thresholds.Clone(),
		enabled:    enabled,
		tier:       TierUnset,
	}
}

// Object returns the host handle.
func (t *TrackedObject) Object() Object {
	return t.obj
}

// Tier returns the current tier, or TierUnset before the first update.
func (t *TrackedObject) Tier() Tier {
	return t.tier
}

// Thresholds returns a copy of the object's squared-distance thresholds.
func (t *TrackedObject) Thresholds() Thresholds {
	return t.thresholds.Clone()
}

// Enabled reports whether LOD switching is enabled for this object.
func (t *TrackedObject) Enabled() bool {
	return t.enabled
}

// LastDistSqr returns the squared distance seen by the last update.
func (t *TrackedObject) LastDistSqr() float32 {
	return t.lastDistSqr
}

// UpdateLOD recomputes the tier for a squared distance and fires the transition side
// effects only if the tier changed. farClipSqr gates renderer visibility while the
// object sits in the VertexOnly tier; it never affects tier selection.
//
// Parameters:
//   - distSqr: squared planar distance from the observer
//   - farClipSqr: squared far clip distance, <= 0 to disable gating
//
// Returns:
//   - from: the tier before the update
//   - changed: true if a tier transition fired
func (t *TrackedObject) UpdateLOD(distSqr, farClipSqr float32) (from Tier, changed bool) {
	from = t.tier
	if !t.enabled || t.obj == nil || !t.obj.Alive() {
		return from, false
	}
	t.lastDistSqr = distSqr

	next := t.thresholds.Select(distSqr)
	if next != t.tier {
		t.transition(next)
		changed = true
	}
	if t.tier == TierVertexOnly {
		t.gateVisibility(distSqr, farClipSqr, changed)
	}
	return from, changed
}

// transition applies the side effects of entering the given tier.
func (t *TrackedObject) transition(next Tier) {
	switch next {
	case TierFull:
		t.loadResources()
		t.obj.SetRenderingEnabled(true)
		t.obj.SetAppearance(AppearanceDetailed)
		t.obj.SetShadowCasting(t.obj.CastsShadows())
	case TierReduced:
		t.loadResources()
		t.obj.SetRenderingEnabled(true)
		t.obj.SetAppearance(AppearanceReduced)
		t.obj.SetShadowCasting(false)
	case TierVertexOnly:
		t.loadResources()
		t.obj.SetAppearance(AppearanceLightweight)
		t.obj.SetShadowCasting(false)
	case TierDisabled:
		t.obj.SetRenderingEnabled(false)
		t.obj.SetShadowCasting(false)
		if rs := t.obj.Resources(); rs != nil {
			rs.Unload()
		}
	}
	t.tier = next
	t.visible = next != TierDisabled
}

// gateVisibility toggles the renderer by far clip range. force re-applies the gate
// right after entering the tier.
func (t *TrackedObject) gateVisibility(distSqr, farClipSqr float32, force bool) {
	visible := farClipSqr <= 0 || distSqr <= farClipSqr
	if visible == t.visible && !force {
		return
	}
	t.visible = visible
	t.obj.SetRenderingEnabled(visible)
}

func (t *TrackedObject) loadResources() {
	rs := t.obj.Resources()
	if rs == nil || rs.Loaded() {
		return
	}
	if err := rs.Load(); err != nil {
		log.Printf("[LOD] failed to reload resources for %T: %v", t.obj, err)
	}
}
