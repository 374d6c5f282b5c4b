// Example hosts Dear ImGui in a GLFW/OpenGL window through guibridge.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Settings are read from example.yml (see Config). The host draws a plain
// scene, the GUI is composited on top, and Escape closes the window unless
// a GUI text field owns the keyboard.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/go-theft-auto/guibridge"
	"github.com/go-theft-auto/guibridge/backend/opengl"
	imguifront "github.com/go-theft-auto/guibridge/frontend/imgui"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "example.yml", "path to the YAML settings file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	guibridge.SetVerbose(cfg.Verbose)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	dev, err := opengl.NewDevice(window)
	if err != nil {
		return fmt.Errorf("gui device: %w", err)
	}
	defer dev.Release()

	frontend, err := imguifront.New()
	if err != nil {
		return fmt.Errorf("imgui: %w", err)
	}
	defer frontend.Close()

	input := opengl.NewGLFWInput(window)

	// Cursor coordinates are in window units, the framebuffer may be denser.
	fbW, fbH := window.GetFramebufferSize()
	winW, winH := window.GetSize()
	bridge, err := guibridge.New(dev, frontend, input,
		guibridge.WithDisplayScale(float32(fbW)/float32(winW), float32(fbH)/float32(winH)),
	)
	if err != nil {
		return fmt.Errorf("gui bridge: %w", err)
	}
	defer bridge.Close()

	demo := imguifront.NewDemoWindow()
	demo.SetOpen(cfg.ShowDemo)

	cursor := newCursorToggle(window, input.KeyMap(), cfg)
	overlay := &overlay{bridge: bridge, demo: demo}
	overlay.install()

	last := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		// Host input runs only when the GUI does not own the keyboard.
		if !bridge.WantsKeyboardCapture() {
			if window.GetKey(glfw.KeyEscape) == glfw.Press {
				window.SetShouldClose(true)
			}
			cursor.update()
		}

		bridge.UpdateHandlers(dt)
		if err := bridge.Frame(dt); err != nil {
			slog.Warn("gui frame dropped", "err", err)
		}
		if overlay.rebuildFonts {
			overlay.rebuildFonts = false
			if err := bridge.RebuildFontAtlas(); err != nil {
				slog.Warn("font atlas rebuild failed", "err", err)
			}
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		bridge.Composite()
		window.SwapBuffers()
	}

	return nil
}

// cursorToggle shows or hides the OS cursor on a configured key.
type cursorToggle struct {
	window  *glfw.Window
	key     glfw.Key
	enabled bool
	visible bool
	wasDown bool
}

func newCursorToggle(window *glfw.Window, keys guibridge.KeyMap, cfg Config) *cursorToggle {
	c := &cursorToggle{window: window, visible: cfg.ShowCursorOnStartup}
	if pk, ok := physicalKeyByName(keys, cfg.ToggleCursorKey); ok {
		c.key = glfw.Key(pk)
		c.enabled = true
	} else if cfg.ToggleCursorKey != "" {
		slog.Warn("unknown cursor toggle key", "key", cfg.ToggleCursorKey)
	}
	c.apply()
	return c
}

func (c *cursorToggle) update() {
	if !c.enabled {
		return
	}
	down := c.window.GetKey(c.key) == glfw.Press
	if down && !c.wasDown {
		c.visible = !c.visible
		c.apply()
	}
	c.wasDown = down
}

func (c *cursorToggle) apply() {
	mode := glfw.CursorHidden
	if c.visible {
		mode = glfw.CursorNormal
	}
	c.window.SetInputMode(glfw.CursorMode, mode)
}

// overlay is the host's own GUI: frame stats and handler management.
type overlay struct {
	bridge *guibridge.Bridge
	demo   *imguifront.DemoWindow
	self   *guibridge.FuncHandler

	frameTime    float32
	rebuildFonts bool
}

func (o *overlay) install() {
	o.self = &guibridge.FuncHandler{
		RenderFunc: o.render,
		UpdateFunc: func(dt float32) { o.frameTime = dt },
	}
	o.bridge.Handlers().Add(o.self)
	o.bridge.Handlers().Add(o.demo)
}

func (o *overlay) render() {
	imgui.Begin("guibridge")
	imgui.Text(fmt.Sprintf("frame %.2f ms", o.frameTime*1000))
	visible := 0
	o.bridge.Handlers().Each(func(h guibridge.Handler) {
		if h.Visible() {
			visible++
		}
	})
	imgui.Text(fmt.Sprintf("handlers: %d (%d visible)  textures: %d",
		o.bridge.Handlers().Len(), visible, o.bridge.Textures().Len()))

	open := o.demo.Visible()
	if imgui.Checkbox("Demo window", &open) {
		o.demo.SetOpen(open)
	}
	if imgui.Button("Clear handlers") {
		// Everything but this window goes; reinstalling keeps the overlay usable.
		o.bridge.Handlers().Clear()
		o.bridge.Handlers().Add(o.self)
	}
	if imgui.Button("Restore demo") {
		if o.bridge.Handlers().Find(func(h guibridge.Handler) bool { return h == o.demo }) == nil {
			o.bridge.Handlers().Add(o.demo)
		}
		o.demo.SetOpen(true)
	}
	// The atlas is swapped between frames; this frame still references it.
	if imgui.Button("Rebuild font atlas") {
		o.rebuildFonts = true
	}
	imgui.End()
}
