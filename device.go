package guibridge

import "github.com/go-gl/mathgl/mgl32"

// BufferKind selects the binding point of a GPU buffer.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	default:
		return "unknown"
	}
}

// Buffer is a fixed-size GPU buffer.
type Buffer interface {
	// Upload writes data to the start of the buffer.
	// len(data) never exceeds the size the buffer was created with.
	Upload(data []byte)
	Release()
}

// Texture is a native GPU texture.
// Textures handed to TextureRegistry.Bind stay owned by the caller.
type Texture interface {
	Size() (width, height int)
}

// OwnedTexture is a texture created through a Device whose lifetime the
// creator manages.
type OwnedTexture interface {
	Texture
	Release()
}

// RenderTarget is an offscreen color target that can also be sampled.
type RenderTarget interface {
	OwnedTexture
	// Released reports whether the target was destroyed, either by Release
	// or by the backend (e.g. device loss).
	Released() bool
}

// Device is the retained-mode GPU surface the bridge draws through.
// All rectangles use a top-left origin in framebuffer pixels; backends
// convert to their native convention.
//
// A Device is used from the render thread only.
type Device interface {
	NewBuffer(kind BufferKind, size int) (Buffer, error)
	NewTexture(width, height int, rgba []byte) (OwnedTexture, error)
	NewRenderTarget(width, height int) (RenderTarget, error)

	// ScreenSize returns the size of the default (window) framebuffer.
	ScreenSize() (width, height int)
	// TargetSize returns the size of the currently bound framebuffer.
	TargetSize() (width, height int)
	// SetRenderTarget redirects drawing; nil selects the default framebuffer.
	SetRenderTarget(rt RenderTarget)
	Clear(r, g, b, a float32)

	Viewport() Rect
	SetViewport(r Rect)
	Scissor() Rect
	SetScissor(r Rect)

	// BeginGeometry binds the frame's geometry buffers and the pipeline
	// state for GUI drawing (alpha blending, no depth test, no culling,
	// scissor test on). EndGeometry restores whatever it changed.
	BeginGeometry(vertices, indices Buffer, projection mgl32.Mat4)
	BindTexture(tex Texture)
	// DrawIndexed issues one indexed triangle-list draw.
	DrawIndexed(baseVertex, firstIndex, indexCount int)
	EndGeometry()

	// Composite alpha-blends rt over the full default framebuffer.
	Composite(rt RenderTarget)
}
