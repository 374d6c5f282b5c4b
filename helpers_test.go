package guibridge_test

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/guibridge"
)

// fakeBuffer records uploads instead of talking to a GPU.
type fakeBuffer struct {
	kind     guibridge.BufferKind
	size     int
	uploads  [][]byte
	released bool
}

func (b *fakeBuffer) Upload(data []byte) {
	b.uploads = append(b.uploads, append([]byte(nil), data...))
}

func (b *fakeBuffer) Release() { b.released = true }

type fakeTexture struct {
	name     string
	w, h     int
	released bool
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }
func (t *fakeTexture) Release()         { t.released = true }
func (t *fakeTexture) Released() bool   { return t.released }

type drawCall struct {
	tex        guibridge.Texture
	scissor    guibridge.Rect
	baseVertex int
	firstIndex int
	count      int
}

// fakeDevice is a Device that records every state change and draw call.
type fakeDevice struct {
	screenW, screenH int

	bound    *fakeTexture
	viewport guibridge.Rect
	scissor  guibridge.Rect

	buffers    []*fakeBuffer
	textures   []*fakeTexture
	targets    []*fakeTexture
	draws      []drawCall
	composited []guibridge.RenderTarget

	scissorSets  int
	textureBinds int
	clears       int
	clearColor   [4]float32
	targetSets   int
	projection   mgl32.Mat4
	geometryOpen bool
	boundTexture guibridge.Texture

	failBuffers bool
	failTargets bool
}

func newFakeDevice(w, h int) *fakeDevice {
	return &fakeDevice{
		screenW:  w,
		screenH:  h,
		viewport: guibridge.Rect{X: 1, Y: 2, W: 3, H: 4},
		scissor:  guibridge.Rect{X: 5, Y: 6, W: 7, H: 8},
	}
}

var errOutOfMemory = errors.New("out of video memory")

func (d *fakeDevice) NewBuffer(kind guibridge.BufferKind, size int) (guibridge.Buffer, error) {
	if d.failBuffers {
		return nil, errOutOfMemory
	}
	b := &fakeBuffer{kind: kind, size: size}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *fakeDevice) NewTexture(w, h int, rgba []byte) (guibridge.OwnedTexture, error) {
	t := &fakeTexture{name: "atlas", w: w, h: h}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) NewRenderTarget(w, h int) (guibridge.RenderTarget, error) {
	if d.failTargets {
		return nil, errOutOfMemory
	}
	t := &fakeTexture{name: "target", w: w, h: h}
	d.targets = append(d.targets, t)
	return t, nil
}

func (d *fakeDevice) ScreenSize() (int, int) { return d.screenW, d.screenH }

func (d *fakeDevice) TargetSize() (int, int) {
	if d.bound != nil {
		return d.bound.w, d.bound.h
	}
	return d.screenW, d.screenH
}

func (d *fakeDevice) SetRenderTarget(rt guibridge.RenderTarget) {
	d.targetSets++
	if rt == nil {
		d.bound = nil
		return
	}
	d.bound = rt.(*fakeTexture)
}

func (d *fakeDevice) Clear(r, g, b, a float32) {
	d.clears++
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *fakeDevice) Viewport() guibridge.Rect     { return d.viewport }
func (d *fakeDevice) SetViewport(r guibridge.Rect) { d.viewport = r }
func (d *fakeDevice) Scissor() guibridge.Rect      { return d.scissor }

func (d *fakeDevice) SetScissor(r guibridge.Rect) {
	d.scissorSets++
	d.scissor = r
}

func (d *fakeDevice) BeginGeometry(vertices, indices guibridge.Buffer, projection mgl32.Mat4) {
	d.geometryOpen = true
	d.projection = projection
}

func (d *fakeDevice) BindTexture(tex guibridge.Texture) {
	d.textureBinds++
	d.boundTexture = tex
}

func (d *fakeDevice) DrawIndexed(baseVertex, firstIndex, count int) {
	d.draws = append(d.draws, drawCall{
		tex:        d.boundTexture,
		scissor:    d.scissor,
		baseVertex: baseVertex,
		firstIndex: firstIndex,
		count:      count,
	})
}

func (d *fakeDevice) EndGeometry() { d.geometryOpen = false }

func (d *fakeDevice) Composite(rt guibridge.RenderTarget) {
	d.composited = append(d.composited, rt)
}

// uploadCount returns the total number of buffer uploads.
func (d *fakeDevice) uploadCount() int {
	n := 0
	for _, b := range d.buffers {
		n += len(b.uploads)
	}
	return n
}

// fakeFrontend returns a canned frame and records what the bridge fed it.
type fakeFrontend struct {
	frame        *guibridge.FrameDrawData
	wantKeyboard bool
	wantMouse    bool

	inputs       []guibridge.InputSnapshot
	displaySizes []guibridge.Vec2
	dts          []float32
	rendered     int
}

func (f *fakeFrontend) NewFrame(in guibridge.InputSnapshot, displaySize, scale guibridge.Vec2, dt float32) {
	in.Chars = append([]rune(nil), in.Chars...)
	f.inputs = append(f.inputs, in)
	f.displaySizes = append(f.displaySizes, displaySize)
	f.dts = append(f.dts, dt)
}

func (f *fakeFrontend) Render() *guibridge.FrameDrawData {
	f.rendered++
	return f.frame
}

func (f *fakeFrontend) WantCaptureKeyboard() bool { return f.wantKeyboard }
func (f *fakeFrontend) WantCaptureMouse() bool    { return f.wantMouse }

// fontFrontend adds a font atlas to fakeFrontend.
type fontFrontend struct {
	fakeFrontend
	fontHandles []guibridge.TextureHandle
}

func (f *fontFrontend) FontAtlas() (int, int, []byte) {
	return 2, 2, make([]byte, 2*2*4)
}

func (f *fontFrontend) SetFontTexture(h guibridge.TextureHandle) {
	f.fontHandles = append(f.fontHandles, h)
}

// fakeInput is an InputSource with settable state.
type fakeInput struct {
	focused  bool
	mouse    guibridge.MouseState
	keyboard guibridge.KeyboardState
	keys     guibridge.KeyMap
}

func (in *fakeInput) Poll() (bool, guibridge.MouseState, guibridge.KeyboardState) {
	return in.focused, in.mouse, in.keyboard
}

func (in *fakeInput) KeyMap() guibridge.KeyMap { return in.keys }

// Physical key codes used by tests.
const (
	pkA guibridge.PhysicalKey = iota + 100
	pkTab
	pkLeftShift
	pkRightShift
	pkLeftCtrl
	pkRightCtrl
	pkMediaPlay
)

func testKeyMap() guibridge.KeyMap {
	return guibridge.KeyMap{
		pkA:          guibridge.KeyA,
		pkTab:        guibridge.KeyTab,
		pkLeftShift:  guibridge.KeyModShift,
		pkRightShift: guibridge.KeyModShift,
		pkLeftCtrl:   guibridge.KeyModCtrl,
		pkRightCtrl:  guibridge.KeyModCtrl,
	}
}

// quadList returns a draw list with one quad (4 vertices, 6 indices) per
// command, all referencing tex.
func quadList(tex guibridge.TextureHandle, clip [4]float32, quads int) guibridge.DrawList {
	var vertices []guibridge.Vertex
	var indices []uint16
	var cmds []guibridge.DrawCommand
	for q := 0; q < quads; q++ {
		base := uint16(len(vertices))
		vertices = append(vertices,
			guibridge.Vertex{Pos: [2]float32{0, 0}, Color: guibridge.RGBA(255, 255, 255, 255)},
			guibridge.Vertex{Pos: [2]float32{10, 0}, Color: guibridge.RGBA(255, 255, 255, 255)},
			guibridge.Vertex{Pos: [2]float32{10, 10}, Color: guibridge.RGBA(255, 255, 255, 255)},
			guibridge.Vertex{Pos: [2]float32{0, 10}, Color: guibridge.RGBA(255, 255, 255, 255)},
		)
		cmds = append(cmds, guibridge.DrawCommand{
			Texture:     tex,
			ClipRect:    clip,
			ElemCount:   6,
			IndexOffset: uint32(len(indices)),
		})
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return guibridge.NewDrawList(vertices, indices, cmds...)
}
