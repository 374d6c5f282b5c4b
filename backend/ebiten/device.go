// Package ebiten provides a guibridge Device and InputSource on top of
// Ebitengine.
//
// Ebitengine does not expose GPU buffers, so geometry buffers live in CPU
// memory and every draw command becomes one DrawTriangles call on a
// sub-image of the bound target. Sub-images clip drawing to their bounds,
// which implements the scissor rectangle.
package ebiten

import (
	"image"
	"image/color"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/guibridge"
)

// Texture wraps an ebiten image for use in draw commands.
type Texture struct {
	img *ebiten.Image
}

// WrapImage wraps a host image. The caller keeps ownership.
func WrapImage(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the underlying image, nil after Release.
func (t *Texture) Image() *ebiten.Image { return t.img }

func (t *Texture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Release deallocates the image.
func (t *Texture) Release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

type renderTarget struct {
	Texture
}

func (rt *renderTarget) Released() bool { return rt.img == nil }

type buffer struct {
	data []byte
}

func (b *buffer) Upload(data []byte) { copy(b.data, data) }
func (b *buffer) Release()           { b.data = nil }

// Device implements guibridge.Device. Call SetScreen with the screen image
// at the start of every Draw before using the bridge.
type Device struct {
	screen *ebiten.Image
	target *renderTarget
	white  *ebiten.Image

	viewport guibridge.Rect
	scissor  guibridge.Rect

	vertices   []guibridge.Vertex
	indices    []uint16
	projection mgl32.Mat4
	texture    *ebiten.Image

	batchVertices []ebiten.Vertex
	batchIndices  []uint16
}

// NewDevice creates a device. The screen is set per frame with SetScreen.
func NewDevice() *Device {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Device{
		// The inner pixel avoids bleeding from the image edge.
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetScreen sets the default framebuffer for this frame.
func (d *Device) SetScreen(screen *ebiten.Image) {
	d.screen = screen
}

func (d *Device) NewBuffer(kind guibridge.BufferKind, size int) (guibridge.Buffer, error) {
	return &buffer{data: make([]byte, size)}, nil
}

// NewTexture uploads straight-alpha RGBA8 pixels. Ebitengine expects
// premultiplied alpha, so the pixels are converted on upload.
func (d *Device) NewTexture(width, height int, rgba []byte) (guibridge.OwnedTexture, error) {
	img := ebiten.NewImage(width, height)
	if len(rgba) > 0 {
		img.WritePixels(premultiply(rgba))
	}
	return &Texture{img: img}, nil
}

func premultiply(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	for i := 0; i+3 < len(rgba); i += 4 {
		a := uint16(rgba[i+3])
		out[i] = byte(uint16(rgba[i]) * a / 255)
		out[i+1] = byte(uint16(rgba[i+1]) * a / 255)
		out[i+2] = byte(uint16(rgba[i+2]) * a / 255)
		out[i+3] = rgba[i+3]
	}
	return out
}

func (d *Device) NewRenderTarget(width, height int) (guibridge.RenderTarget, error) {
	return &renderTarget{Texture{img: ebiten.NewImage(width, height)}}, nil
}

func (d *Device) ScreenSize() (int, int) {
	if d.screen == nil {
		return 0, 0
	}
	b := d.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (d *Device) TargetSize() (int, int) {
	if d.target != nil {
		return d.target.Size()
	}
	return d.ScreenSize()
}

func (d *Device) SetRenderTarget(rt guibridge.RenderTarget) {
	if rt == nil {
		d.target = nil
		return
	}
	d.target = rt.(*renderTarget)
}

func (d *Device) dst() *ebiten.Image {
	if d.target != nil {
		return d.target.img
	}
	return d.screen
}

func (d *Device) Clear(r, g, b, a float32) {
	dst := d.dst()
	if dst == nil {
		return
	}
	if a <= 0 {
		dst.Clear()
		return
	}
	dst.Fill(color.RGBA{
		R: uint8(r * a * 255),
		G: uint8(g * a * 255),
		B: uint8(b * a * 255),
		A: uint8(a * 255),
	})
}

func (d *Device) Viewport() guibridge.Rect     { return d.viewport }
func (d *Device) SetViewport(r guibridge.Rect) { d.viewport = r }
func (d *Device) Scissor() guibridge.Rect      { return d.scissor }
func (d *Device) SetScissor(r guibridge.Rect)  { d.scissor = r }

func (d *Device) BeginGeometry(vertices, indices guibridge.Buffer, projection mgl32.Mat4) {
	d.vertices = asVertices(vertices.(*buffer).data)
	d.indices = asIndices(indices.(*buffer).data)
	d.projection = projection
}

func asVertices(b []byte) []guibridge.Vertex {
	if len(b) < guibridge.VertexSize {
		return nil
	}
	return unsafe.Slice((*guibridge.Vertex)(unsafe.Pointer(&b[0])), len(b)/guibridge.VertexSize)
}

func asIndices(b []byte) []uint16 {
	if len(b) < guibridge.IndexSize {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), len(b)/guibridge.IndexSize)
}

func (d *Device) BindTexture(tex guibridge.Texture) {
	d.texture = nil
	switch t := tex.(type) {
	case *Texture:
		d.texture = t.img
	case *renderTarget:
		d.texture = t.img
	}
}

// DrawIndexed rebases the referenced vertex range, projects it into target
// pixels and draws it on the scissored sub-image.
func (d *Device) DrawIndexed(baseVertex, firstIndex, indexCount int) {
	dst := d.dst()
	if dst == nil || indexCount <= 0 || firstIndex+indexCount > len(d.indices) {
		return
	}
	idx := d.indices[firstIndex : firstIndex+indexCount]

	lo, hi := int(idx[0]), int(idx[0])
	for _, i := range idx {
		lo = min(lo, int(i))
		hi = max(hi, int(i))
	}
	if baseVertex+hi >= len(d.vertices) {
		return
	}

	src := d.texture
	if src == nil {
		src = d.white
	}
	srcBounds := src.Bounds()
	sw, sh := float32(srcBounds.Dx()), float32(srcBounds.Dy())
	fbW, fbH := d.TargetSize()

	d.batchVertices = d.batchVertices[:0]
	for _, v := range d.vertices[baseVertex+lo : baseVertex+hi+1] {
		clip := d.projection.Mul4x1(mgl32.Vec4{v.Pos[0], v.Pos[1], 0, 1})
		r, g, b, a := guibridge.UnpackRGBA(v.Color)
		d.batchVertices = append(d.batchVertices, ebiten.Vertex{
			DstX:   (clip.X() + 1) / 2 * float32(fbW),
			DstY:   (1 - clip.Y()) / 2 * float32(fbH),
			SrcX:   float32(srcBounds.Min.X) + v.UV[0]*sw,
			SrcY:   float32(srcBounds.Min.Y) + v.UV[1]*sh,
			ColorR: float32(r) / 255,
			ColorG: float32(g) / 255,
			ColorB: float32(b) / 255,
			ColorA: float32(a) / 255,
		})
	}

	d.batchIndices = d.batchIndices[:0]
	for _, i := range idx {
		d.batchIndices = append(d.batchIndices, i-uint16(lo))
	}

	s := d.scissor
	clipped := dst.SubImage(image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)).(*ebiten.Image)
	clipped.DrawTriangles(d.batchVertices, d.batchIndices, src, &ebiten.DrawTrianglesOptions{
		Filter: ebiten.FilterLinear,
	})
}

func (d *Device) EndGeometry() {
	d.vertices = nil
	d.indices = nil
	d.texture = nil
}

// Composite draws rt over the screen.
func (d *Device) Composite(rt guibridge.RenderTarget) {
	target, ok := rt.(*renderTarget)
	if !ok || target.Released() || d.screen == nil {
		return
	}
	d.screen.DrawImage(target.img, nil)
}
