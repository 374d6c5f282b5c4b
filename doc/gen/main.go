// Command gen renders sample Dear ImGui frames through the bridge, captures
// the composited framebuffer and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/go-theft-auto/guibridge"
	"github.com/go-theft-auto/guibridge/backend/opengl"
	imguifront "github.com/go-theft-auto/guibridge/frontend/imgui"
)

const (
	fbWidth  = 800
	fbHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name   string // filename without extension
	width  int    // cropped from the top-left of the framebuffer
	height int
	draw   func()
	frames int // frames to render before capture (0 = default 3)
}

// stubInput reports an unfocused host so no stray input reaches the GUI.
type stubInput struct{}

func (stubInput) Poll() (bool, guibridge.MouseState, guibridge.KeyboardState) {
	return false, guibridge.MouseState{}, guibridge.KeyboardState{}
}

func (stubInput) KeyMap() guibridge.KeyMap { return opengl.GLFWKeyMap() }

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(fbWidth, fbHeight, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

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

	bridge, err := guibridge.New(dev, frontend, stubInput{})
	if err != nil {
		return fmt.Errorf("gui bridge: %w", err)
	}
	defer bridge.Close()

	checker, err := dev.NewTexture(64, 64, checkerboard(64, 8))
	if err != nil {
		return fmt.Errorf("checker texture: %w", err)
	}
	defer checker.Release()
	checkerHandle := bridge.Textures().Bind(checker)
	defer bridge.Textures().Unbind(checkerHandle)

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots(checkerHandle)

	for _, s := range shots {
		if err := capture(window, bridge, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(window *glfw.Window, bridge *guibridge.Bridge, s screenshot, outDir string) error {
	bridge.Handlers().Clear()
	bridge.Handlers().Add(&guibridge.FuncHandler{RenderFunc: s.draw})

	frames := 3
	if s.frames > 0 {
		frames = s.frames
	}

	_, fbH := window.GetFramebufferSize()
	for i := 0; i < frames; i++ {
		if err := bridge.Frame(1.0 / 60.0); err != nil {
			return err
		}

		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, fbWidth, fbHeight)
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		bridge.Composite()
	}

	// Read the top-left region (OpenGL origin is bottom-left).
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, int32(fbH-s.height), int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// checkerboard returns size x size RGBA pixels in cell x cell squares.
func checkerboard(size, cell int) []byte {
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := byte(0x40)
			if (x/cell+y/cell)%2 == 0 {
				v = 0xd0
			}
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, 0xff
		}
	}
	return pixels
}

func placeWindow(w, h float32) {
	imgui.SetNextWindowPos(imgui.Vec2{X: 8, Y: 8})
	imgui.SetNextWindowSize(imgui.Vec2{X: w, Y: h})
}

// buildScreenshots returns the captures to generate.
func buildScreenshots(checker guibridge.TextureHandle) []screenshot {
	var (
		checked = true
		slider  = float32(0.65)
		text    = "Hello, world!"
		modes   = []string{"Windowed", "Borderless", "Fullscreen"}
		combo   = 1
		open    = true
	)

	return []screenshot{
		{
			name: "widgets", width: 420, height: 260,
			draw: func() {
				placeWindow(400, 240)
				imgui.Begin("Widgets")
				imgui.Text("Drawn offscreen and composited")
				imgui.Checkbox("Enabled feature", &checked)
				imgui.SliderFloat("Volume", &slider, 0, 1)
				imgui.InputText("Name", &text)
				if imgui.BeginCombo("Mode", modes[combo]) {
					for i, m := range modes {
						if imgui.Selectable(m) {
							combo = i
						}
					}
					imgui.EndCombo()
				}
				imgui.Button("Apply")
				imgui.End()
			},
		},
		{
			name: "texture", width: 300, height: 220,
			draw: func() {
				placeWindow(280, 200)
				imgui.Begin("Host texture")
				imgui.Text(fmt.Sprintf("handle %d", checker))
				imgui.Image(imgui.TextureID(checker), imgui.Vec2{X: 128, Y: 128})
				imgui.End()
			},
		},
		{
			name: "demo", width: fbWidth, height: fbHeight, frames: 4,
			draw: func() {
				placeWindow(560, 560)
				imgui.ShowDemoWindow(&open)
			},
		},
	}
}
