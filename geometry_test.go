package guibridge_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-theft-auto/guibridge"
)

func TestEnsureCapacityGrowth(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)

	steps := []struct {
		vertices, indices int
		wantVtx, wantIdx  int
	}{
		{10, 20, 15, 30},
		{10, 20, 15, 30},   // satisfied, unchanged
		{15, 30, 15, 30},   // exactly at capacity, unchanged
		{16, 30, 24, 30},   // vertex buffer grows from the request, not the old capacity
		{16, 31, 24, 47},   // ceil(46.5)
		{101, 31, 152, 47}, // ceil(151.5)
		{101, 999, 152, 1499},
	}

	for i, s := range steps {
		if err := geo.EnsureCapacity(s.vertices, s.indices); err != nil {
			t.Fatalf("step %d: EnsureCapacity: %v", i, err)
		}
		if geo.VertexCapacity() < s.vertices || geo.IndexCapacity() < s.indices {
			t.Fatalf("step %d: capacity (%d, %d) below request (%d, %d)",
				i, geo.VertexCapacity(), geo.IndexCapacity(), s.vertices, s.indices)
		}
		if geo.VertexCapacity() != s.wantVtx || geo.IndexCapacity() != s.wantIdx {
			t.Errorf("step %d: capacity (%d, %d), want (%d, %d)",
				i, geo.VertexCapacity(), geo.IndexCapacity(), s.wantVtx, s.wantIdx)
		}
	}
}

func TestEnsureCapacityReleasesOldBuffer(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)

	_ = geo.EnsureCapacity(4, 6)
	_ = geo.EnsureCapacity(40, 6)

	if len(dev.buffers) != 3 {
		t.Fatalf("expected 3 allocations (vertex, index, vertex), got %d", len(dev.buffers))
	}
	if !dev.buffers[0].released {
		t.Error("old vertex buffer was not released")
	}
	if dev.buffers[1].released {
		t.Error("index buffer released although it did not grow")
	}
	if want := 60 * guibridge.VertexSize; dev.buffers[2].size != want {
		t.Errorf("new vertex buffer has %d bytes, want %d", dev.buffers[2].size, want)
	}
}

func TestEnsureCapacityAllocationFailure(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)
	_ = geo.EnsureCapacity(4, 6)

	dev.failBuffers = true
	err := geo.EnsureCapacity(400, 6)
	if !errors.Is(err, guibridge.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}
	if !errors.Is(err, errOutOfMemory) {
		t.Errorf("device error should stay in the chain, got %v", err)
	}
	if geo.VertexCapacity() != 6 {
		t.Errorf("failed growth changed capacity to %d", geo.VertexCapacity())
	}
	if dev.buffers[0].released {
		t.Error("failed growth released the previous buffer")
	}
}

func TestUploadFrameSingleTransferPerBuffer(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)

	lists := []guibridge.DrawList{
		quadList(0, [4]float32{0, 0, 100, 100}, 1),
		quadList(0, [4]float32{0, 0, 100, 100}, 2),
		quadList(0, [4]float32{0, 0, 100, 100}, 3),
	}
	frame := guibridge.NewFrameDrawData(guibridge.Vec2{X: 800, Y: 600}, lists...)

	if err := geo.UploadFrame(frame); err != nil {
		t.Fatalf("UploadFrame: %v", err)
	}

	if got := dev.uploadCount(); got != 2 {
		t.Fatalf("expected 2 uploads, got %d", got)
	}

	var wantVtx, wantIdx []byte
	for _, l := range lists {
		wantVtx = append(wantVtx, l.VtxBuffer...)
		wantIdx = append(wantIdx, l.IdxBuffer...)
	}
	vb, ib := geo.Buffers()
	if got := vb.(*fakeBuffer).uploads[0]; !bytes.Equal(got, wantVtx) {
		t.Errorf("vertex upload is %d bytes, want the %d concatenated list bytes", len(got), len(wantVtx))
	}
	if got := ib.(*fakeBuffer).uploads[0]; !bytes.Equal(got, wantIdx) {
		t.Errorf("index upload is %d bytes, want the %d concatenated list bytes", len(got), len(wantIdx))
	}
}

func TestUploadFrameEmptyTouchesNothing(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)

	frame := guibridge.NewFrameDrawData(guibridge.Vec2{X: 800, Y: 600}, guibridge.DrawList{})
	if err := geo.UploadFrame(frame); err != nil {
		t.Fatalf("UploadFrame: %v", err)
	}

	if len(dev.buffers) != 0 {
		t.Errorf("empty frame allocated %d buffers", len(dev.buffers))
	}
	if vb, ib := geo.Buffers(); vb != nil || ib != nil {
		t.Error("empty frame created native buffers")
	}
}

func TestGeometryRelease(t *testing.T) {
	dev := newFakeDevice(800, 600)
	geo := guibridge.NewGeometryBuffers(dev)
	_ = geo.EnsureCapacity(4, 6)

	geo.Release()

	for i, b := range dev.buffers {
		if !b.released {
			t.Errorf("buffer %d not released", i)
		}
	}
	if geo.VertexCapacity() != 0 || geo.IndexCapacity() != 0 {
		t.Error("capacity should reset after Release")
	}
}
