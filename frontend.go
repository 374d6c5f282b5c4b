package guibridge

// Frontend is the immediate-mode GUI library as seen by the bridge: a pure
// function from declared widgets to draw data plus capture flags.
type Frontend interface {
	// NewFrame starts a frame. Widgets may be declared until Render.
	NewFrame(input InputSnapshot, displaySize, framebufferScale Vec2, dt float32)
	// Render finalizes the frame. The returned data is only valid until the
	// next NewFrame.
	Render() *FrameDrawData

	WantCaptureKeyboard() bool
	WantCaptureMouse() bool
}

// FontAtlasSource is implemented by frontends that rasterize their own font
// atlas and need it uploaded and bound.
type FontAtlasSource interface {
	// FontAtlas returns the atlas as tightly packed RGBA8 pixels.
	FontAtlas() (width, height int, rgba []byte)
	// SetFontTexture tells the frontend which handle its draw commands must
	// reference for font glyphs.
	SetFontTexture(h TextureHandle)
}
