package lod

import "sync"

// fakeObject records every rendering primitive the state machine drives.
type fakeObject struct {
	mu sync.Mutex

	x, y, z float32
	dead    bool
	shadows bool

	rendering  bool
	appearance Appearance
	casting    bool

	renderingCalls  int
	appearanceCalls int
	shadowCalls     int

	res *fakeResources
}

func newFake(x, z float32) *fakeObject {
	return &fakeObject{x: x, z: z, shadows: true, rendering: true, casting: true, res: &fakeResources{loaded: true}}
}

func (f *fakeObject) Position() (float32, float32, float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.x, f.y, f.z
}

func (f *fakeObject) move(x, z float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.x, f.z = x, z
}

func (f *fakeObject) Alive() bool        { return !f.dead }
func (f *fakeObject) CastsShadows() bool { return f.shadows }

func (f *fakeObject) SetRenderingEnabled(enabled bool) {
	f.rendering = enabled
	f.renderingCalls++
}

func (f *fakeObject) SetAppearance(a Appearance) {
	f.appearance = a
	f.appearanceCalls++
}

func (f *fakeObject) SetShadowCasting(enabled bool) {
	f.casting = enabled
	f.shadowCalls++
}

func (f *fakeObject) Resources() ResourceSet {
	if f.res == nil {
		return nil
	}
	return f.res
}

type fakeResources struct {
	loaded  bool
	loads   int
	unloads int
}

func (r *fakeResources) Loaded() bool { return r.loaded }

func (r *fakeResources) Load() error {
	r.loaded = true
	r.loads++
	return nil
}

func (r *fakeResources) Unload() {
	r.loaded = false
	r.unloads++
}

type fakeObserver struct {
	x, y, z float32
	far     float32
}

func (o *fakeObserver) Position() (float32, float32, float32) { return o.x, o.y, o.z }
func (o *fakeObserver) Far() float32                          { return o.far }

type countingHost struct {
	mu    sync.Mutex
	calls int
}

func (h *countingHost) ReclaimUnused() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
}

func (h *countingHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}
