// Ebiten hosts Dear ImGui inside an Ebitengine game through guibridge.
//
//	go run ./example/ebiten/
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/go-theft-auto/guibridge"
	ebitenbackend "github.com/go-theft-auto/guibridge/backend/ebiten"
	imguifront "github.com/go-theft-auto/guibridge/frontend/imgui"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

type game struct {
	dev    *ebitenbackend.Device
	input  *ebitenbackend.Input
	bridge *guibridge.Bridge

	lastUpdate time.Time
	lastDraw   time.Time

	clicks int
	speed  float32
}

// elapsed returns the seconds since *last and moves *last to now. The first
// call reports one tick.
func elapsed(last *time.Time) float32 {
	now := time.Now()
	dt := 1 / float32(ebiten.TPS())
	if !last.IsZero() {
		dt = float32(now.Sub(*last).Seconds())
	}
	*last = now
	return dt
}

func (g *game) Update() error {
	g.input.Update()
	g.bridge.UpdateHandlers(elapsed(&g.lastUpdate))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff})

	g.dev.SetScreen(screen)
	if err := g.bridge.Frame(elapsed(&g.lastDraw)); err != nil {
		slog.Warn("gui frame dropped", "err", err)
	}
	g.bridge.Composite()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *game) render() {
	imgui.Begin("ebiten")
	imgui.Text(fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	if imgui.Button(fmt.Sprintf("Clicked %d times", g.clicks)) {
		g.clicks++
	}
	imgui.SliderFloat("speed", &g.speed, 0, 10)
	imgui.End()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	frontend, err := imguifront.New()
	if err != nil {
		return fmt.Errorf("imgui: %w", err)
	}
	defer frontend.Close()

	g := &game{
		dev:   ebitenbackend.NewDevice(),
		input: ebitenbackend.NewInput(),
		speed: 1,
	}
	g.bridge, err = guibridge.New(g.dev, frontend, g.input)
	if err != nil {
		return fmt.Errorf("gui bridge: %w", err)
	}
	defer g.bridge.Close()

	g.bridge.Handlers().Add(&guibridge.FuncHandler{RenderFunc: g.render})

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("guibridge ebiten example")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
