package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lod/engine/game_object"
	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestControllerOrbitMovesObserver(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(cam, WithRadius(100), WithElevation(0), WithAzimuth(0))

	if x, y, z := cam.Position(); !near(x, 0) || !near(y, 0) || !near(z, 100) {
		t.Fatalf("initial position = %v %v %v, want 0 0 100", x, y, z)
	}

	cc.Orbit(math.Pi / 2)
	if x, _, z := cam.Position(); !near(x, 100) || !near(z, 0) {
		t.Fatalf("after Orbit position x=%v z=%v, want 100 0", x, z)
	}

	cc.SetTarget(10, 0, 10)
	if x, _, z := cam.Position(); !near(x, 110) || !near(z, 10) {
		t.Fatalf("after SetTarget position x=%v z=%v, want 110 10", x, z)
	}
}

func TestControllerPanAndZoom(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(cam,
		WithRadius(100),
		WithElevation(0),
		WithRadiusBounds(10, 200),
	)

	cc.PanForward(10)
	cc.PanRight(5)
	if x, y, z := cc.Target(); !near(x, 5) || !near(y, 0) || !near(z, -10) {
		t.Fatalf("Target = %v %v %v, want 5 0 -10", x, y, z)
	}
	if x, _, z := cam.Position(); !near(x, 5) || !near(z, 90) {
		t.Fatalf("position after pan x=%v z=%v, want 5 90", x, z)
	}

	cc.Zoom(100)
	if cc.Radius() != 10 {
		t.Fatalf("Radius after zoom in = %v, want clamped 10", cc.Radius())
	}
	cc.SetRadius(1e6)
	if cc.Radius() != 200 {
		t.Fatalf("Radius = %v, want clamped 200", cc.Radius())
	}

	cc.SetElevation(10)
	if cc.Elevation() >= math.Pi/2 {
		t.Fatalf("Elevation = %v, want clamped below pi/2", cc.Elevation())
	}
}

func TestControllerDrivesLODManager(t *testing.T) {
	cam := NewCamera()
	cc := NewCameraController(cam, WithRadius(100), WithElevation(0))
	m := lod.NewManager(cam,
		lod.WithParallelMap(lod.SerialMap{}),
		lod.WithPipelining(false),
	)

	obj := game_object.NewGameObject(game_object.WithPosition(100, 0, 0))
	if err := m.Register(obj, lod.Thresholds{100, 2500, 10000}, true); err != nil {
		t.Fatalf("register: %v", err)
	}

	m.Tick()
	if got := m.Tier(obj); got != lod.TierDisabled {
		t.Fatalf("tier at azimuth 0 = %v, want %v", got, lod.TierDisabled)
	}

	cc.Orbit(math.Pi / 2)
	m.Tick()
	if got := m.Tier(obj); got != lod.TierFull {
		t.Fatalf("tier above the object = %v, want %v", got, lod.TierFull)
	}
}

func TestNewCameraControllerPanicsOnNilCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewCameraController(nil)
}
