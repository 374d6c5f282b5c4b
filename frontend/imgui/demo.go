package imgui

import "github.com/inkyblackness/imgui-go/v4"

// DemoWindow is a handler showing Dear ImGui's built-in demo window.
// Closing the window from its title bar hides the handler.
type DemoWindow struct {
	open bool
}

// NewDemoWindow returns a demo handler, initially hidden.
func NewDemoWindow() *DemoWindow {
	return &DemoWindow{}
}

func (d *DemoWindow) Render()         { imgui.ShowDemoWindow(&d.open) }
func (d *DemoWindow) Update(float32)  {}
func (d *DemoWindow) Visible() bool   { return d.open }
func (d *DemoWindow) Active() bool    { return false }
func (d *DemoWindow) Toggle()         { d.open = !d.open }
func (d *DemoWindow) SetOpen(on bool) { d.open = on }
