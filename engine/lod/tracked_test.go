package lod

import "testing"

func TestUpdateLODFiresOnlyOnCrossing(t *testing.T) {
	obj := newFake(0, 0)
	tr := newTrackedObject(obj, Thresholds{100, 900}, true)

	steps := []struct {
		distSqr     float32
		wantTier    Tier
		wantChanged bool
		wantCalls   int // cumulative SetAppearance calls
	}{
		{50, TierFull, true, 1},
		{50, TierFull, false, 1},
		{500, TierReduced, true, 2},
		{1000, TierVertexOnly, true, 3},
		{1200, TierVertexOnly, false, 3},
		{1200, TierVertexOnly, false, 3},
	}
	for i, s := range steps {
		_, changed := tr.UpdateLOD(s.distSqr, 0)
		if changed != s.wantChanged {
			t.Fatalf("step %d: changed = %v, want %v", i, changed, s.wantChanged)
		}
		if tr.Tier() != s.wantTier {
			t.Fatalf("step %d: tier = %v, want %v", i, tr.Tier(), s.wantTier)
		}
		if obj.appearanceCalls != s.wantCalls {
			t.Fatalf("step %d: appearance calls = %d, want %d", i, obj.appearanceCalls, s.wantCalls)
		}
	}
}

func TestUpdateLODSideEffects(t *testing.T) {
	obj := newFake(0, 0)
	tr := newTrackedObject(obj, Thresholds{100, 900, 2500}, true)

	tr.UpdateLOD(10, 0)
	if obj.appearance != AppearanceDetailed || !obj.casting || !obj.rendering {
		t.Fatalf("full: appearance=%v casting=%v rendering=%v", obj.appearance, obj.casting, obj.rendering)
	}

	tr.UpdateLOD(500, 0)
	if obj.appearance != AppearanceReduced || obj.casting || !obj.rendering {
		t.Fatalf("reduced: appearance=%v casting=%v rendering=%v", obj.appearance, obj.casting, obj.rendering)
	}

	tr.UpdateLOD(2000, 0)
	if obj.appearance != AppearanceLightweight || obj.casting || !obj.rendering {
		t.Fatalf("vertex-only: appearance=%v casting=%v rendering=%v", obj.appearance, obj.casting, obj.rendering)
	}

	tr.UpdateLOD(3000, 0)
	if obj.rendering || obj.casting || obj.res.loaded || obj.res.unloads != 1 {
		t.Fatalf("disabled: rendering=%v casting=%v loaded=%v unloads=%d", obj.rendering, obj.casting, obj.res.loaded, obj.res.unloads)
	}

	tr.UpdateLOD(10, 0)
	if !obj.rendering || !obj.res.loaded || obj.res.loads != 1 || obj.appearance != AppearanceDetailed {
		t.Fatalf("back to full: rendering=%v loaded=%v loads=%d appearance=%v", obj.rendering, obj.res.loaded, obj.res.loads, obj.appearance)
	}
}

func TestUpdateLODRestoresOriginalShadowCapability(t *testing.T) {
	obj := newFake(0, 0)
	obj.shadows = false
	tr := newTrackedObject(obj, Thresholds{100, 900}, true)

	tr.UpdateLOD(500, 0)
	tr.UpdateLOD(10, 0)
	if obj.casting {
		t.Fatalf("object without shadow capability started casting shadows")
	}
}

func TestUpdateLODFarClipGatesVisibilityOnly(t *testing.T) {
	obj := newFake(0, 0)
	tr := newTrackedObject(obj, Thresholds{100, 900}, true)
	farClipSqr := float32(1500)

	tr.UpdateLOD(1000, farClipSqr)
	if tr.Tier() != TierVertexOnly || !obj.rendering {
		t.Fatalf("inside far clip: tier=%v rendering=%v", tr.Tier(), obj.rendering)
	}

	_, changed := tr.UpdateLOD(2000, farClipSqr)
	if changed || tr.Tier() != TierVertexOnly {
		t.Fatalf("far clip changed the tier: changed=%v tier=%v", changed, tr.Tier())
	}
	if obj.rendering {
		t.Fatalf("renderer still enabled beyond the far clip")
	}

	calls := obj.renderingCalls
	tr.UpdateLOD(2100, farClipSqr)
	if obj.renderingCalls != calls {
		t.Fatalf("visibility gate re-fired without a change")
	}

	tr.UpdateLOD(1100, farClipSqr)
	if !obj.rendering {
		t.Fatalf("renderer not re-enabled back inside the far clip")
	}
}

func TestUpdateLODDisabledFeatureIsNoop(t *testing.T) {
	obj := newFake(0, 0)
	tr := newTrackedObject(obj, Thresholds{100, 900}, false)

	if _, changed := tr.UpdateLOD(5000, 0); changed {
		t.Fatalf("disabled object changed tier")
	}
	if tr.Tier() != TierUnset || obj.appearanceCalls != 0 || obj.renderingCalls != 0 {
		t.Fatalf("disabled object received side effects")
	}
}

func TestUpdateLODSkipsDeadObject(t *testing.T) {
	obj := newFake(0, 0)
	obj.dead = true
	tr := newTrackedObject(obj, Thresholds{100, 900}, true)

	if _, changed := tr.UpdateLOD(5000, 0); changed {
		t.Fatalf("dead object changed tier")
	}
	if obj.appearanceCalls != 0 {
		t.Fatalf("dead object received side effects")
	}
}

func TestUpdateLODWithoutResources(t *testing.T) {
	obj := newFake(0, 0)
	obj.res = nil
	tr := newTrackedObject(obj, Thresholds{100, 900, 2500}, true)

	tr.UpdateLOD(5000, 0)
	tr.UpdateLOD(10, 0)
	if tr.Tier() != TierFull {
		t.Fatalf("tier = %v, want full", tr.Tier())
	}
}
