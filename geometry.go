package guibridge

import (
	"fmt"
	"log/slog"
)

// growthFactor numerator/denominator: buffers grow to 1.5x the request.
const (
	growthNum = 3
	growthDen = 2
)

// grownCapacity returns ceil(1.5 * required).
func grownCapacity(required int) int {
	return (required*growthNum + growthDen - 1) / growthDen
}

// geometryBuffer pairs a native GPU buffer with its CPU staging scratch.
type geometryBuffer struct {
	kind     BufferKind
	stride   int // bytes per element
	capacity int // elements
	native   Buffer
	scratch  []byte
}

func (b *geometryBuffer) ensure(dev Device, required int, logger *slog.Logger) error {
	if required <= b.capacity {
		return nil
	}

	capacity := grownCapacity(required)
	native, err := dev.NewBuffer(b.kind, capacity*b.stride)
	if err != nil {
		return fmt.Errorf("grow %s buffer to %d elements: %w: %w", b.kind, capacity, ErrResourceExhausted, err)
	}

	if b.native != nil {
		b.native.Release()
	}
	logger.Debug("geometry buffer grown",
		"kind", b.kind, "required", required, "from", b.capacity, "to", capacity)

	b.native = native
	b.capacity = capacity
	b.scratch = make([]byte, capacity*b.stride)
	return nil
}

func (b *geometryBuffer) release() {
	if b.native != nil {
		b.native.Release()
		b.native = nil
	}
	b.capacity = 0
	b.scratch = nil
}

// GeometryBuffers owns the growable vertex and index buffers a frame's
// geometry is staged into. Capacity grows, never shrinks.
type GeometryBuffers struct {
	dev      Device
	vertices geometryBuffer
	indices  geometryBuffer
	logger   *slog.Logger
}

// NewGeometryBuffers creates empty buffers; nothing is allocated until the
// first non-empty frame.
func NewGeometryBuffers(dev Device) *GeometryBuffers {
	return &GeometryBuffers{
		dev:      dev,
		vertices: geometryBuffer{kind: VertexBuffer, stride: VertexSize},
		indices:  geometryBuffer{kind: IndexBuffer, stride: IndexSize},
		logger:   defaultLogger,
	}
}

// EnsureCapacity reallocates any buffer smaller than required at 1.5x the
// requested element count. On failure the previous buffer stays in place.
func (g *GeometryBuffers) EnsureCapacity(vertexCount, indexCount int) error {
	if err := g.vertices.ensure(g.dev, vertexCount, g.logger); err != nil {
		return err
	}
	return g.indices.ensure(g.dev, indexCount, g.logger)
}

// UploadFrame copies every draw list's geometry into staging at accumulated
// offsets and transfers the populated prefix of each buffer in one upload.
// A frame without vertices touches nothing.
func (g *GeometryBuffers) UploadFrame(frame *FrameDrawData) error {
	if frame == nil || frame.TotalVertexCount == 0 {
		return nil
	}
	if err := g.EnsureCapacity(frame.TotalVertexCount, frame.TotalIndexCount); err != nil {
		return err
	}

	vtxBytes, idxBytes := 0, 0
	for i := range frame.Lists {
		list := &frame.Lists[i]
		vtxBytes += copy(g.vertices.scratch[vtxBytes:], list.VtxBuffer)
		idxBytes += copy(g.indices.scratch[idxBytes:], list.IdxBuffer)
	}

	g.vertices.native.Upload(g.vertices.scratch[:vtxBytes])
	if idxBytes > 0 {
		g.indices.native.Upload(g.indices.scratch[:idxBytes])
	}
	return nil
}

// VertexCapacity returns the vertex buffer capacity in vertices.
func (g *GeometryBuffers) VertexCapacity() int { return g.vertices.capacity }

// IndexCapacity returns the index buffer capacity in indices.
func (g *GeometryBuffers) IndexCapacity() int { return g.indices.capacity }

// Buffers returns the native buffers; either is nil before first growth.
func (g *GeometryBuffers) Buffers() (vertices, indices Buffer) {
	return g.vertices.native, g.indices.native
}

// Release frees both native buffers. The manager can be reused afterwards.
func (g *GeometryBuffers) Release() {
	g.vertices.release()
	g.indices.release()
}
