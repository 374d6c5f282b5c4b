package ebiten

import (
	"bytes"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/guibridge"
)

func TestPremultiply(t *testing.T) {
	in := []byte{
		255, 255, 255, 255,
		255, 255, 255, 0,
		200, 100, 50, 128,
	}
	want := []byte{
		255, 255, 255, 255,
		0, 0, 0, 0,
		100, 50, 25, 128,
	}

	got := premultiply(in)
	if !bytes.Equal(got, want) {
		t.Errorf("premultiply = %v, want %v", got, want)
	}
	if in[4] != 255 {
		t.Error("premultiply modified its input")
	}
}

func TestEbitenKeyMap(t *testing.T) {
	keys := EbitenKeyMap()

	tests := []struct {
		key  ebiten.Key
		want guibridge.Key
	}{
		{ebiten.KeyA, guibridge.KeyA},
		{ebiten.KeyM, guibridge.KeyM},
		{ebiten.KeyZ, guibridge.KeyZ},
		{ebiten.KeyDigit7, guibridge.Key7},
		{ebiten.KeyNumpad3, guibridge.KeyKeypad3},
		{ebiten.KeyF10, guibridge.KeyF10},
		{ebiten.KeyArrowLeft, guibridge.KeyLeft},
		{ebiten.KeyShiftLeft, guibridge.KeyModShift},
		{ebiten.KeyShiftRight, guibridge.KeyModShift},
		{ebiten.KeyMetaRight, guibridge.KeyModSuper},
	}
	for _, tt := range tests {
		if got := keys[ek(tt.key)]; got != tt.want {
			t.Errorf("%s maps to %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestDrawIndexedIgnoresOutOfRange(t *testing.T) {
	d := &Device{}
	vb := &buffer{data: guibridge.VertexBytes(make([]guibridge.Vertex, 4))}
	ib := &buffer{data: guibridge.IndexBytes([]uint16{0, 1, 2, 0, 2, 9})}

	d.BeginGeometry(vb, ib, [16]float32{})
	defer d.EndGeometry()

	// No screen is set and the second triangle references vertex 9; neither
	// may panic.
	d.DrawIndexed(0, 0, 6)
	d.DrawIndexed(0, 3, 6)
}
