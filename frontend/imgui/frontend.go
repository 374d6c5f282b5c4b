// Package imgui adapts Dear ImGui (through inkyblackness/imgui-go) to the
// guibridge.Frontend interface.
package imgui

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/go-theft-auto/guibridge"
)

// ErrLayoutMismatch is returned when Dear ImGui was built with a vertex or
// index layout the bridge cannot replay byte-for-byte.
var ErrLayoutMismatch = errors.New("imgui buffer layout does not match guibridge")

const defaultDeltaTime = 1.0 / 60.0

// Frontend owns a Dear ImGui context. Only one Frontend should be active at
// a time; Dear ImGui keeps its current context in a global.
type Frontend struct {
	context *imgui.Context
	io      imgui.IO

	frame       guibridge.FrameDrawData
	lists       []guibridge.DrawList
	displaySize guibridge.Vec2
	scale       guibridge.Vec2
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithIniFile makes Dear ImGui persist window layout to path. By default
// nothing is written to disk.
func WithIniFile(path string) Option {
	return func(f *Frontend) { f.io.SetIniFilename(path) }
}

// New creates a Dear ImGui context and maps the GUI key set into it.
func New(opts ...Option) (*Frontend, error) {
	if err := checkLayout(); err != nil {
		return nil, err
	}

	f := &Frontend{context: imgui.CreateContext(nil)}
	f.io = imgui.CurrentIO()
	f.io.SetIniFilename("")

	for _, opt := range opts {
		opt(f)
	}

	for imguiKey, key := range keyMap {
		f.io.KeyMap(imguiKey, int(key))
	}

	return f, nil
}

func checkLayout() error {
	entrySize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	if entrySize != guibridge.VertexSize ||
		posOffset != int(unsafe.Offsetof(guibridge.Vertex{}.Pos)) ||
		uvOffset != int(unsafe.Offsetof(guibridge.Vertex{}.UV)) ||
		colOffset != int(unsafe.Offsetof(guibridge.Vertex{}.Color)) {
		return fmt.Errorf("%w: vertex size %d offsets %d/%d/%d", ErrLayoutMismatch, entrySize, posOffset, uvOffset, colOffset)
	}
	if size := imgui.IndexBufferLayout(); size != guibridge.IndexSize {
		return fmt.Errorf("%w: index size %d", ErrLayoutMismatch, size)
	}
	return nil
}

// keyMap assigns each Dear ImGui navigation key the GUI key that drives it.
// KeysDown is indexed by guibridge.Key.
var keyMap = map[int]guibridge.Key{
	imgui.KeyTab:        guibridge.KeyTab,
	imgui.KeyLeftArrow:  guibridge.KeyLeft,
	imgui.KeyRightArrow: guibridge.KeyRight,
	imgui.KeyUpArrow:    guibridge.KeyUp,
	imgui.KeyDownArrow:  guibridge.KeyDown,
	imgui.KeyPageUp:     guibridge.KeyPageUp,
	imgui.KeyPageDown:   guibridge.KeyPageDown,
	imgui.KeyHome:       guibridge.KeyHome,
	imgui.KeyEnd:        guibridge.KeyEnd,
	imgui.KeyInsert:     guibridge.KeyInsert,
	imgui.KeyDelete:     guibridge.KeyDelete,
	imgui.KeyBackspace:  guibridge.KeyBackspace,
	imgui.KeySpace:      guibridge.KeySpace,
	imgui.KeyEnter:      guibridge.KeyEnter,
	imgui.KeyEscape:     guibridge.KeyEscape,
	imgui.KeyA:          guibridge.KeyA,
	imgui.KeyC:          guibridge.KeyC,
	imgui.KeyV:          guibridge.KeyV,
	imgui.KeyX:          guibridge.KeyX,
	imgui.KeyY:          guibridge.KeyY,
	imgui.KeyZ:          guibridge.KeyZ,
}

// NewFrame feeds the snapshot into Dear ImGui's IO and starts a frame.
func (f *Frontend) NewFrame(in guibridge.InputSnapshot, displaySize, framebufferScale guibridge.Vec2, dt float32) {
	f.displaySize = displaySize
	f.scale = framebufferScale

	f.io.SetDisplaySize(imgui.Vec2{X: displaySize.X, Y: displaySize.Y})
	f.io.SetDisplayFrameBufferScale(imgui.Vec2{X: framebufferScale.X, Y: framebufferScale.Y})
	if dt <= 0 {
		dt = defaultDeltaTime
	}
	f.io.SetDeltaTime(dt)

	f.io.SetMousePosition(imgui.Vec2{X: in.MousePos.X, Y: in.MousePos.Y})
	for i, down := range in.MouseDown {
		f.io.SetMouseButtonDown(i, down)
	}
	if in.Wheel != 0 {
		f.io.AddMouseWheelDelta(0, in.Wheel)
	}

	for k := guibridge.KeyNone + 1; k < guibridge.KeyCount; k++ {
		if in.Keys[k] {
			f.io.KeyPress(int(k))
		} else {
			f.io.KeyRelease(int(k))
		}
	}
	f.io.KeyCtrl(int(guibridge.KeyModCtrl), int(guibridge.KeyModCtrl))
	f.io.KeyShift(int(guibridge.KeyModShift), int(guibridge.KeyModShift))
	f.io.KeyAlt(int(guibridge.KeyModAlt), int(guibridge.KeyModAlt))
	f.io.KeySuper(int(guibridge.KeyModSuper), int(guibridge.KeyModSuper))

	if len(in.Chars) > 0 {
		f.io.AddInputCharacters(string(in.Chars))
	}

	imgui.NewFrame()
}

// Render ends the frame and exposes Dear ImGui's draw data without copying.
// The result is valid until the next NewFrame.
func (f *Frontend) Render() *guibridge.FrameDrawData {
	imgui.Render()
	drawData := imgui.RenderedDrawData()
	if !drawData.Valid() {
		return nil
	}

	f.lists = f.lists[:0]
	f.frame = guibridge.FrameDrawData{
		DisplaySize:      f.displaySize,
		FramebufferScale: f.scale,
	}

	for _, list := range drawData.CommandLists() {
		vtxPtr, vtxSize := list.VertexBuffer()
		idxPtr, idxSize := list.IndexBuffer()

		dl := guibridge.DrawList{
			VtxBuffer: unsafe.Slice((*byte)(vtxPtr), vtxSize),
			IdxBuffer: unsafe.Slice((*byte)(idxPtr), idxSize),
		}

		var indexOffset uint32
		for _, cmd := range list.Commands() {
			count := uint32(cmd.ElementCount())
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				indexOffset += count
				continue
			}
			clip := cmd.ClipRect()
			dl.Commands = append(dl.Commands, guibridge.DrawCommand{
				Texture:     guibridge.TextureHandle(cmd.TextureID()),
				ClipRect:    [4]float32{clip.X, clip.Y, clip.Z, clip.W},
				ElemCount:   count,
				IndexOffset: indexOffset,
			})
			indexOffset += count
		}

		f.frame.TotalVertexCount += dl.VertexCount()
		f.frame.TotalIndexCount += dl.IndexCount()
		f.lists = append(f.lists, dl)
	}
	f.frame.Lists = f.lists

	return &f.frame
}

func (f *Frontend) WantCaptureKeyboard() bool { return f.io.WantCaptureKeyboard() }
func (f *Frontend) WantCaptureMouse() bool    { return f.io.WantCaptureMouse() }

// FontAtlas rasterizes the font atlas as RGBA8.
func (f *Frontend) FontAtlas() (int, int, []byte) {
	image := f.io.Fonts().TextureDataRGBA32()
	pixels := unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4)
	return image.Width, image.Height, pixels
}

// SetFontTexture stores the handle Dear ImGui puts in font draw commands.
func (f *Frontend) SetFontTexture(h guibridge.TextureHandle) {
	f.io.Fonts().SetTextureID(imgui.TextureID(h))
}

// Close destroys the Dear ImGui context.
func (f *Frontend) Close() {
	if f.context != nil {
		f.context.Destroy()
		f.context = nil
	}
}
