package imgui

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/go-theft-auto/guibridge"
)

func newTestFrontend(t *testing.T) *Frontend {
	t.Helper()
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

func TestFontAtlas(t *testing.T) {
	f := newTestFrontend(t)

	w, h, pixels := f.FontAtlas()
	if w <= 0 || h <= 0 {
		t.Fatalf("atlas is %dx%d", w, h)
	}
	if len(pixels) != w*h*4 {
		t.Errorf("atlas has %d bytes, want %d", len(pixels), w*h*4)
	}
}

func TestRenderConvertsDrawData(t *testing.T) {
	f := newTestFrontend(t)
	f.FontAtlas()
	f.SetFontTexture(7)

	display := guibridge.Vec2{X: 800, Y: 600}
	// A new window stays hidden on its first frame.
	var frame *guibridge.FrameDrawData
	for i := 0; i < 2; i++ {
		f.NewFrame(guibridge.InputSnapshot{MousePos: guibridge.OffSurface}, display, guibridge.Vec2{X: 1, Y: 1}, 1.0/60)
		imgui.Begin("test")
		imgui.Text("hello")
		imgui.End()
		frame = f.Render()
	}

	if frame == nil || frame.TotalVertexCount == 0 || frame.TotalIndexCount == 0 {
		t.Fatalf("expected geometry, got %+v", frame)
	}
	if frame.DisplaySize != display {
		t.Errorf("display size %v, want %v", frame.DisplaySize, display)
	}

	vertices, indices := 0, 0
	for i, list := range frame.Lists {
		if len(list.VtxBuffer)%guibridge.VertexSize != 0 {
			t.Errorf("list %d vertex bytes %d not a multiple of the vertex size", i, len(list.VtxBuffer))
		}
		vertices += list.VertexCount()
		indices += list.IndexCount()

		var offset uint32
		for j, cmd := range list.Commands {
			if cmd.IndexOffset != offset {
				t.Errorf("list %d command %d index offset %d, want %d", i, j, cmd.IndexOffset, offset)
			}
			offset += cmd.ElemCount
			if cmd.Texture != 7 {
				t.Errorf("list %d command %d references texture %d, want the font handle", i, j, cmd.Texture)
			}
		}
		if int(offset) != list.IndexCount() {
			t.Errorf("list %d commands cover %d indices, list has %d", i, offset, list.IndexCount())
		}
	}
	if vertices != frame.TotalVertexCount || indices != frame.TotalIndexCount {
		t.Errorf("totals (%d, %d) do not match lists (%d, %d)",
			frame.TotalVertexCount, frame.TotalIndexCount, vertices, indices)
	}
}

func TestKeyboardFocusCapture(t *testing.T) {
	f := newTestFrontend(t)
	f.FontAtlas()

	display := guibridge.Vec2{X: 800, Y: 600}
	scale := guibridge.Vec2{X: 1, Y: 1}

	f.NewFrame(guibridge.InputSnapshot{}, display, scale, 0)
	f.Render()
	if f.WantCaptureKeyboard() {
		t.Error("empty GUI captured the keyboard")
	}

	text := ""
	for i := 0; i < 4; i++ {
		f.NewFrame(guibridge.InputSnapshot{}, display, scale, 1.0/60)
		imgui.Begin("input")
		imgui.SetKeyboardFocusHere()
		imgui.InputText("field", &text)
		imgui.End()
		f.Render()
	}
	if !f.WantCaptureKeyboard() {
		t.Error("focused text field did not capture the keyboard")
	}
}

func TestDemoWindowToggle(t *testing.T) {
	d := NewDemoWindow()
	if d.Visible() {
		t.Error("demo window should start hidden")
	}
	d.Toggle()
	if !d.Visible() {
		t.Error("Toggle did not show the demo window")
	}
	d.SetOpen(false)
	if d.Visible() {
		t.Error("SetOpen(false) did not hide the demo window")
	}
}
