package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraController moves a Camera around a pivot using spherical coordinates
// (radius, azimuth, elevation). Every change recomputes the position and writes it
// to the driven Camera, so the LOD observer follows the controller.
// Thread-safe for concurrent access.
type CameraController interface {
	// Camera returns the camera this controller drives.
	//
	// Returns:
	//   - Camera: the driven camera
	Camera() Camera

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - x, y, z: world-space pivot position
	Target() (x, y, z float32)

	// SetTarget moves the orbit pivot and repositions the camera around it.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Orbit rotates the camera around the pivot's vertical axis.
	//
	// Parameters:
	//   - delta: azimuth change in radians
	Orbit(delta float32)

	// OrbitLeft rotates the camera left by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera up by one orbit speed step, clamped to the max elevation.
	OrbitUp()

	// OrbitDown tilts the camera down by one orbit speed step, clamped to the min elevation.
	OrbitDown()

	// Zoom changes the orbit radius. Positive delta moves toward the pivot.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// PanRight slides the pivot and camera along the camera's right axis on the ground plane.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanRight(delta float32)

	// PanForward slides the pivot and camera toward the pivot on the ground plane.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanForward(delta float32)

	// Radius returns the distance from the pivot.
	Radius() float32

	// SetRadius sets the distance from the pivot, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from the pivot
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	//
	// Parameters:
	//   - azimuth: angle, 0 places the camera on the pivot's +Z side
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the ground plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: angle in radians
	SetElevation(elevation float32)
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	target mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
	panSpeed   float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller that drives the given camera. The camera
// is moved onto the orbit immediately. Panics if cam is nil.
//
// Parameters:
//   - cam: the camera to drive (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	if cam == nil {
		panic("camera: NewCameraController requires a non-nil Camera")
	}

	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		camera: cam,

		radius:    250.0,
		elevation: float32(math.Pi / 6),

		minRadius:    1.0,
		maxRadius:    2000.0,
		minElevation: 0,
		maxElevation: float32(math.Pi/2 - 0.1),

		orbitSpeed: 0.03,
		zoomSpeed:  15.0,
		panSpeed:   1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from the spherical coordinates and
// pushes it to the camera. Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinAzim, cosAzim := math.Sincos(float64(cc.azimuth))
	sinElev, cosElev := math.Sincos(float64(cc.elevation))

	offset := mgl32.Vec3{
		float32(cosElev * sinAzim),
		float32(sinElev),
		float32(cosElev * cosAzim),
	}.Mul(cc.radius)
	p := cc.target.Add(offset)
	cc.camera.SetPosition(p.Elem())
}

// groundAxes returns the camera's right and forward axes projected onto the XZ plane.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) groundAxes() (right, forward mgl32.Vec3) {
	sinAzim, cosAzim := math.Sincos(float64(cc.azimuth))
	right = mgl32.Vec3{float32(cosAzim), 0, float32(-sinAzim)}
	forward = mgl32.Vec3{float32(-sinAzim), 0, float32(-cosAzim)}
	return right, forward
}

func (cc *cameraControllerImpl) clampRadius() {
	cc.radius = mgl32.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) clampElevation() {
	cc.elevation = mgl32.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target.Elem()
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = float32(math.Mod(float64(cc.azimuth+delta), 2*math.Pi))
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.Orbit(-cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.Orbit(cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation += cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation -= cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _ := cc.groundAxes()
	cc.target = cc.target.Add(right.Mul(delta * cc.panSpeed))
	cc.updatePosition()
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, forward := cc.groundAxes()
	cc.target = cc.target.Add(forward.Mul(delta * cc.panSpeed))
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = elevation
	cc.clampElevation()
	cc.updatePosition()
}
