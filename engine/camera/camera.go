package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lod/engine/lod"
	"github.com/go-gl/mathgl/mgl32"
)

// Default clip planes.
const (
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000
)

type cameraImpl struct {
	mu *sync.RWMutex

	position mgl32.Vec3
	near     float32
	far      float32
}

// Camera is the observer LOD distances are measured from. It carries the world
// position and the clip planes; the far plane gates visibility of vertex-only objects.
// Thread-safe for concurrent access.
type Camera interface {
	lod.Observer

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetPosition moves the camera in world space.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Translate moves the camera by a world-space offset.
	//
	// Parameters:
	//   - dx, dy, dz: offset components
	Translate(dx, dy, dz float32)

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin with default clip planes.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:   &sync.RWMutex{},
		near: DefaultNear,
		far:  DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position.Elem()
}

func (c *cameraImpl) Near() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.far
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) Translate(dx, dy, dz float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(mgl32.Vec3{dx, dy, dz})
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}
