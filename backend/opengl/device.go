// Package opengl provides an OpenGL 4.1 Device and a GLFW InputSource for
// the guibridge package.
package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/guibridge"
)

// ErrIncompleteFramebuffer is returned when a render target cannot be
// assembled by the driver.
var ErrIncompleteFramebuffer = errors.New("incomplete framebuffer")

// Texture is a GL texture usable in draw commands. Hosts wrap their own
// textures with WrapTexture before binding them in a TextureRegistry.
type Texture struct {
	id     uint32
	width  int
	height int
}

// WrapTexture wraps an existing GL texture. The caller keeps ownership.
func WrapTexture(id uint32, width, height int) *Texture {
	return &Texture{id: id, width: width, height: height}
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Size() (int, int) { return t.width, t.height }

// Release deletes the GL texture.
func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// renderTarget is a color texture attached to a framebuffer object with a
// depth/stencil renderbuffer.
type renderTarget struct {
	Texture
	fbo   uint32
	depth uint32
}

func (rt *renderTarget) Release() {
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	if rt.depth != 0 {
		gl.DeleteRenderbuffers(1, &rt.depth)
		rt.depth = 0
	}
	rt.Texture.Release()
}

func (rt *renderTarget) Released() bool { return rt.fbo == 0 }

type buffer struct {
	id   uint32
	kind guibridge.BufferKind
	size int
}

func (b *buffer) Upload(data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferSubData(gl.COPY_WRITE_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
}

func (b *buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// savedState is the GL state the GUI pass changes.
type savedState struct {
	program        int32
	vao            int32
	arrayBuffer    int32
	activeTexture  int32
	texture        int32
	blendSrcRGB    int32
	blendDstRGB    int32
	blendSrcAlpha  int32
	blendDstAlpha  int32
	blendEnabled   bool
	depthEnabled   bool
	cullEnabled    bool
	scissorEnabled bool
}

func saveState() savedState {
	var s savedState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &s.arrayBuffer)
	gl.GetIntegerv(gl.ACTIVE_TEXTURE, &s.activeTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.blendSrcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.blendDstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDstAlpha)
	s.blendEnabled = gl.IsEnabled(gl.BLEND)
	s.depthEnabled = gl.IsEnabled(gl.DEPTH_TEST)
	s.cullEnabled = gl.IsEnabled(gl.CULL_FACE)
	s.scissorEnabled = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s savedState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	gl.ActiveTexture(uint32(s.activeTexture))
	gl.BindVertexArray(uint32(s.vao))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(s.arrayBuffer))
	gl.BlendFuncSeparate(uint32(s.blendSrcRGB), uint32(s.blendDstRGB), uint32(s.blendSrcAlpha), uint32(s.blendDstAlpha))
	setEnabled(gl.BLEND, s.blendEnabled)
	setEnabled(gl.DEPTH_TEST, s.depthEnabled)
	setEnabled(gl.CULL_FACE, s.cullEnabled)
	setEnabled(gl.SCISSOR_TEST, s.scissorEnabled)
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Device implements guibridge.Device on an OpenGL 4.1 core context.
// The context must be current on the calling thread.
type Device struct {
	window *glfw.Window

	program uint32
	projLoc int32
	texLoc  int32
	vao     uint32

	compositeProgram uint32
	compositeTexLoc  int32
	compositeVAO     uint32

	target *renderTarget
	saved  savedState
}

// NewDevice compiles the GUI shaders and creates the vertex array object.
// The window's context must be current.
func NewDevice(window *glfw.Window) (*Device, error) {
	d := &Device{window: window}

	var err error
	d.program, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	d.projLoc = gl.GetUniformLocation(d.program, gl.Str("projection\x00"))
	d.texLoc = gl.GetUniformLocation(d.program, gl.Str("guiTexture\x00"))

	d.compositeProgram, err = createShaderProgram(compositeVertexShaderSource, compositeFragmentShaderSource)
	if err != nil {
		gl.DeleteProgram(d.program)
		return nil, fmt.Errorf("failed to create composite shader: %w", err)
	}
	d.compositeTexLoc = gl.GetUniformLocation(d.compositeProgram, gl.Str("target\x00"))

	gl.GenVertexArrays(1, &d.vao)
	gl.GenVertexArrays(1, &d.compositeVAO)

	return d, nil
}

func (d *Device) NewBuffer(kind guibridge.BufferKind, size int) (guibridge.Buffer, error) {
	b := &buffer{kind: kind, size: size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferData(gl.COPY_WRITE_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)

	if err := glError(); err != nil {
		b.Release()
		return nil, fmt.Errorf("allocate %d byte %s buffer: %w", size, kind, err)
	}
	return b, nil
}

func (d *Device) NewTexture(width, height int, rgba []byte) (guibridge.OwnedTexture, error) {
	t := &Texture{width: width, height: height}
	if err := allocTexture(t, rgba); err != nil {
		return nil, fmt.Errorf("create %dx%d texture: %w", width, height, err)
	}
	return t, nil
}

func (d *Device) NewRenderTarget(width, height int) (guibridge.RenderTarget, error) {
	rt := &renderTarget{Texture: Texture{width: width, height: height}}
	if err := allocTexture(&rt.Texture, nil); err != nil {
		return nil, fmt.Errorf("create %dx%d render target: %w", width, height, err)
	}

	var lastFBO, lastRBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &lastFBO)
	gl.GetIntegerv(gl.RENDERBUFFER_BINDING, &lastRBO)
	defer func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(lastFBO))
		gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(lastRBO))
	}()

	gl.GenRenderbuffers(1, &rt.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.id, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		rt.Release()
		return nil, fmt.Errorf("create %dx%d render target: %w (status 0x%x)", width, height, ErrIncompleteFramebuffer, status)
	}
	return rt, nil
}

func allocTexture(t *Texture, rgba []byte) error {
	var pixels unsafe.Pointer
	if len(rgba) > 0 {
		pixels = gl.Ptr(rgba)
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.width), int32(t.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	if err := glError(); err != nil {
		t.Release()
		return err
	}
	return nil
}

func (d *Device) ScreenSize() (int, int) {
	return d.window.GetFramebufferSize()
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
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	d.target = rt.(*renderTarget)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.target.fbo)
}

func (d *Device) Clear(r, g, b, a float32) {
	scissor := gl.IsEnabled(gl.SCISSOR_TEST)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	setEnabled(gl.SCISSOR_TEST, scissor)
}

func (d *Device) Viewport() guibridge.Rect {
	var box [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &box[0])
	return d.fromGL(box)
}

func (d *Device) SetViewport(r guibridge.Rect) {
	x, y, w, h := d.toGL(r)
	gl.Viewport(x, y, w, h)
}

func (d *Device) Scissor() guibridge.Rect {
	var box [4]int32
	gl.GetIntegerv(gl.SCISSOR_BOX, &box[0])
	return d.fromGL(box)
}

func (d *Device) SetScissor(r guibridge.Rect) {
	x, y, w, h := d.toGL(r)
	gl.Scissor(x, y, w, h)
}

// toGL converts a top-left rectangle to GL's bottom-left convention in the
// bound framebuffer.
func (d *Device) toGL(r guibridge.Rect) (x, y, w, h int32) {
	_, fbH := d.TargetSize()
	return int32(r.X), int32(fbH - (r.Y + r.H)), int32(r.W), int32(r.H)
}

func (d *Device) fromGL(box [4]int32) guibridge.Rect {
	_, fbH := d.TargetSize()
	return guibridge.Rect{
		X: int(box[0]),
		Y: fbH - int(box[1]) - int(box[3]),
		W: int(box[2]),
		H: int(box[3]),
	}
}

// BeginGeometry sets up the GUI pipeline. Color is blended straight, alpha
// accumulates coverage, so a target cleared to transparent ends up holding
// premultiplied color for Composite.
func (d *Device) BeginGeometry(vertices, indices guibridge.Buffer, projection mgl32.Mat4) {
	d.saved = saveState()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.projLoc, 1, false, &projection[0])
	gl.Uniform1i(d.texLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vertices.(*buffer).id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices.(*buffer).id)

	// Vertex layout: Pos (2 floats) + UV (2 floats) + Color (RGBA8)
	stride := int32(guibridge.VertexSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, unsafe.Offsetof(guibridge.Vertex{}.Pos))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(guibridge.Vertex{}.UV))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(guibridge.Vertex{}.Color))
}

func (d *Device) BindTexture(tex guibridge.Texture) {
	var id uint32
	switch t := tex.(type) {
	case *Texture:
		id = t.id
	case *renderTarget:
		id = t.id
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *Device) DrawIndexed(baseVertex, firstIndex, indexCount int) {
	gl.DrawElementsBaseVertexWithOffset(
		gl.TRIANGLES,
		int32(indexCount),
		gl.UNSIGNED_SHORT,
		uintptr(firstIndex*guibridge.IndexSize),
		int32(baseVertex),
	)
}

func (d *Device) EndGeometry() {
	d.saved.restore()
}

// Composite draws rt over the whole default framebuffer with premultiplied
// alpha blending.
func (d *Device) Composite(rt guibridge.RenderTarget) {
	target, ok := rt.(*renderTarget)
	if !ok || target.Released() {
		return
	}

	saved := saveState()
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])

	w, h := d.ScreenSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)

	gl.UseProgram(d.compositeProgram)
	gl.Uniform1i(d.compositeTexLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, target.id)
	gl.BindVertexArray(d.compositeVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.Viewport(viewport[0], viewport[1], viewport[2], viewport[3])
	saved.restore()
}

// Release deletes the shaders and vertex arrays.
func (d *Device) Release() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.compositeVAO != 0 {
		gl.DeleteVertexArrays(1, &d.compositeVAO)
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
	if d.compositeProgram != 0 {
		gl.DeleteProgram(d.compositeProgram)
	}
}

// glError drains the GL error queue and returns the first error, if any.
// GL_OUT_OF_MEMORY is reported as guibridge.ErrResourceExhausted.
func glError() error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	switch first {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("GL_OUT_OF_MEMORY: %w", guibridge.ErrResourceExhausted)
	default:
		return fmt.Errorf("GL error 0x%x", first)
	}
}
