package guibridge

import (
	"fmt"
	"log/slog"
)

type frameState int

const (
	stateIdle frameState = iota
	stateFrameOpen
)

// Bridge connects an immediate-mode GUI frontend to a GPU device and a host
// input source. The host calls BeginFrame, RenderHandlers and EndFrame once
// per render tick (or Frame, which does all three), Composite inside its own
// render pass, and UpdateHandlers once per simulation tick.
//
// The GUI is drawn into an offscreen target owned by the bridge. All methods
// must be called from the render thread.
type Bridge struct {
	dev      Device
	frontend Frontend
	input    InputSource

	textures   *TextureRegistry
	geometry   *GeometryBuffers
	translator *InputTranslator
	replayer   *Replayer
	handlers   *HandlerRegistry

	target     RenderTarget
	fontAtlas  OwnedTexture
	fontHandle TextureHandle

	state        frameState
	wantKeyboard bool
	wantMouse    bool

	displayScale Vec2
	clearColor   [4]float32
	keyMap       KeyMap
	logger       *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger. The default logs to stderr at Info level,
// see SetVerbose.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithDisplayScale sets the number of framebuffer pixels per GUI unit.
// The GUI is laid out at screen size divided by scale.
func WithDisplayScale(x, y float32) Option {
	return func(b *Bridge) { b.displayScale = Vec2{X: x, Y: y} }
}

// WithClearColor sets the color the offscreen target is cleared to before
// the GUI is drawn. The default is fully transparent.
func WithClearColor(r, g, b, a float32) Option {
	return func(br *Bridge) { br.clearColor = [4]float32{r, g, b, a} }
}

// WithKeyMap overrides the input source's default key translation.
func WithKeyMap(keys KeyMap) Option {
	return func(b *Bridge) { b.keyMap = keys }
}

// New creates a bridge. If the frontend implements FontAtlasSource its atlas
// is uploaded and bound immediately.
func New(dev Device, frontend Frontend, input InputSource, opts ...Option) (*Bridge, error) {
	b := &Bridge{
		dev:          dev,
		frontend:     frontend,
		input:        input,
		textures:     NewTextureRegistry(),
		handlers:     &HandlerRegistry{},
		displayScale: Vec2{X: 1, Y: 1},
		logger:       defaultLogger,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.keyMap == nil {
		b.keyMap = input.KeyMap()
	}

	b.geometry = NewGeometryBuffers(dev)
	b.geometry.logger = b.logger
	b.translator = NewInputTranslator(b.keyMap)
	b.replayer = NewReplayer(dev, b.textures, b.geometry)

	if err := b.RebuildFontAtlas(); err != nil {
		return nil, err
	}

	return b, nil
}

// BeginFrame reallocates the offscreen target if needed, translates this
// frame's input and starts a GUI frame. Calling it twice without EndFrame
// panics.
func (b *Bridge) BeginFrame(dt float32) error {
	if b.state != stateIdle {
		panic("guibridge: BeginFrame called while a frame is open")
	}

	if err := b.ensureTarget(); err != nil {
		return err
	}

	focused, mouse, keyboard := b.input.Poll()
	snap := b.translator.Update(focused, mouse, keyboard)

	w, h := b.dev.ScreenSize()
	displaySize := Vec2{X: float32(w) / b.displayScale.X, Y: float32(h) / b.displayScale.Y}
	b.frontend.NewFrame(snap, displaySize, b.displayScale, dt)

	b.state = stateFrameOpen
	return nil
}

// RenderHandlers lets every visible handler declare its widgets.
// It must be called between BeginFrame and EndFrame.
func (b *Bridge) RenderHandlers() {
	if b.state != stateFrameOpen {
		panic("guibridge: RenderHandlers called outside a frame")
	}
	b.handlers.RenderVisible()
}

// EndFrame finalizes the GUI frame, replays it into the offscreen target and
// latches the capture flags. The bridge is back to idle afterwards even when
// an error is returned, so the next BeginFrame proceeds normally.
func (b *Bridge) EndFrame() error {
	if b.state != stateFrameOpen {
		panic("guibridge: EndFrame called without BeginFrame")
	}
	b.state = stateIdle

	frame := b.frontend.Render()
	b.wantKeyboard = b.frontend.WantCaptureKeyboard()
	b.wantMouse = b.frontend.WantCaptureMouse()

	if b.target == nil {
		return nil
	}

	b.dev.SetRenderTarget(b.target)
	b.dev.Clear(b.clearColor[0], b.clearColor[1], b.clearColor[2], b.clearColor[3])
	err := b.replayer.Replay(frame, b.displayScale)
	b.dev.SetRenderTarget(nil)

	if err != nil {
		b.logger.Warn("gui frame aborted", "err", err)
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

// Frame runs a full GUI frame: BeginFrame, RenderHandlers, EndFrame.
func (b *Bridge) Frame(dt float32) error {
	if err := b.BeginFrame(dt); err != nil {
		return err
	}
	b.RenderHandlers()
	return b.EndFrame()
}

// Composite draws the offscreen target over the default framebuffer.
// Call it from the host's render pass after EndFrame.
func (b *Bridge) Composite() {
	if b.target == nil || b.target.Released() {
		return
	}
	b.dev.Composite(b.target)
}

// UpdateHandlers runs every active handler's Update.
func (b *Bridge) UpdateHandlers(dt float32) {
	b.handlers.UpdateActive(dt)
}

// WantsKeyboardCapture reports whether the GUI consumed keyboard input in
// the last completed frame. Hosts suppress their own keyboard handling while
// it is true.
func (b *Bridge) WantsKeyboardCapture() bool {
	return b.wantKeyboard
}

// WantsMouseCapture reports whether the GUI consumed mouse input in the last
// completed frame.
func (b *Bridge) WantsMouseCapture() bool {
	return b.wantMouse
}

// Textures returns the texture registry used to resolve draw commands.
func (b *Bridge) Textures() *TextureRegistry {
	return b.textures
}

// Handlers returns the handler registry.
func (b *Bridge) Handlers() *HandlerRegistry {
	return b.handlers
}

// Target returns the offscreen target, or nil before the first frame.
func (b *Bridge) Target() RenderTarget {
	return b.target
}

// RebuildFontAtlas uploads the frontend's font atlas, binds it and hands the
// handle to the frontend. A previously built atlas is unbound and released.
// Frontends without a FontAtlasSource are left alone.
func (b *Bridge) RebuildFontAtlas() error {
	src, ok := b.frontend.(FontAtlasSource)
	if !ok {
		return nil
	}

	w, h, pixels := src.FontAtlas()
	tex, err := b.dev.NewTexture(w, h, pixels)
	if err != nil {
		return fmt.Errorf("upload font atlas %dx%d: %w: %w", w, h, ErrResourceExhausted, err)
	}

	b.releaseFontAtlas()
	b.fontAtlas = tex
	b.fontHandle = b.textures.Bind(tex)
	src.SetFontTexture(b.fontHandle)

	b.logger.Debug("font atlas rebuilt", "width", w, "height", h, "handle", b.fontHandle)
	return nil
}

// Close releases every GPU resource the bridge created. Textures bound by
// callers are not touched.
func (b *Bridge) Close() {
	b.geometry.Release()
	if b.target != nil && !b.target.Released() {
		b.target.Release()
	}
	b.target = nil
	b.releaseFontAtlas()
}

func (b *Bridge) releaseFontAtlas() {
	if b.fontAtlas == nil {
		return
	}
	b.textures.Unbind(b.fontHandle)
	b.fontAtlas.Release()
	b.fontAtlas = nil
}

// ensureTarget (re)allocates the offscreen target when the screen size
// changed or the target was destroyed. A zero-sized screen (minimized
// window) keeps the current target.
func (b *Bridge) ensureTarget() error {
	w, h := b.dev.ScreenSize()
	if w <= 0 || h <= 0 {
		return nil
	}

	if b.target != nil && !b.target.Released() {
		tw, th := b.target.Size()
		if tw == w && th == h {
			return nil
		}
	}

	if b.target != nil && !b.target.Released() {
		b.target.Release()
	}
	b.target = nil

	target, err := b.dev.NewRenderTarget(w, h)
	if err != nil {
		return fmt.Errorf("allocate %dx%d render target: %w: %w", w, h, ErrResourceExhausted, err)
	}
	b.target = target

	b.logger.Debug("render target allocated", "width", w, "height", h)
	return nil
}
