package guibridge

import "unsafe"

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Mul returns the vector scaled component-wise by other.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

// Rect is an integer pixel rectangle with a top-left origin.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of two rectangles.
// The result is the zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.W, other.X+other.W)
	y2 := min(r.Y+r.H, other.Y+other.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Vertex is one GUI vertex.
// Memory layout matches Dear ImGui's ImDrawVert and the OpenGL vertex
// attribute setup byte for byte: geometry is copied as raw bytes.
type Vertex struct {
	Pos   [2]float32 // Position (x, y)
	UV    [2]float32 // Texture coordinates (u, v)
	Color uint32     // RGBA packed color (0xAABBGGRR)
}

const (
	// VertexSize is the stride of one Vertex in bytes.
	VertexSize = int(unsafe.Sizeof(Vertex{}))
	// IndexSize is the size of one index in bytes (uint16 indices).
	IndexSize = 2
)

// DrawCommand is one textured, indexed, scissor-clipped triangle batch.
// Offsets are relative to the owning DrawList's buffers.
type DrawCommand struct {
	Texture      TextureHandle // Texture to sample
	ClipRect     [4]float32    // Clip rectangle (x1, y1, x2, y2) in display coordinates
	ElemCount    uint32        // Number of indices to draw
	IndexOffset  uint32        // First index within the list
	VertexOffset uint32        // Base vertex within the list
}

// DrawList is a batch of draw commands sharing one contiguous vertex range
// and one contiguous index range.
//
// The buffers hold raw bytes in Vertex / uint16 layout so they can alias
// memory owned by the GUI library without re-encoding.
type DrawList struct {
	VtxBuffer []byte
	IdxBuffer []byte
	Commands  []DrawCommand
}

// NewDrawList builds a DrawList from typed geometry.
func NewDrawList(vertices []Vertex, indices []uint16, cmds ...DrawCommand) DrawList {
	return DrawList{
		VtxBuffer: VertexBytes(vertices),
		IdxBuffer: IndexBytes(indices),
		Commands:  cmds,
	}
}

// VertexCount returns the number of vertices in the list.
func (dl *DrawList) VertexCount() int {
	return len(dl.VtxBuffer) / VertexSize
}

// IndexCount returns the number of indices in the list.
func (dl *DrawList) IndexCount() int {
	return len(dl.IdxBuffer) / IndexSize
}

// FrameDrawData is everything the GUI library produced for one frame.
// It is built fresh each frame, consumed synchronously by the Replayer and
// must not be retained afterwards.
type FrameDrawData struct {
	Lists            []DrawList
	TotalVertexCount int
	TotalIndexCount  int

	DisplayPos       Vec2 // Top-left of the display area in GUI coordinates
	DisplaySize      Vec2 // Size of the display area in GUI coordinates
	FramebufferScale Vec2 // Framebuffer pixels per GUI unit
}

// NewFrameDrawData assembles frame data from draw lists and computes the totals.
func NewFrameDrawData(displaySize Vec2, lists ...DrawList) *FrameDrawData {
	fd := &FrameDrawData{
		Lists:            lists,
		DisplaySize:      displaySize,
		FramebufferScale: Vec2{X: 1, Y: 1},
	}
	for i := range lists {
		fd.TotalVertexCount += lists[i].VertexCount()
		fd.TotalIndexCount += lists[i].IndexCount()
	}
	return fd
}

// VertexBytes reinterprets a vertex slice as its raw bytes without copying.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*VertexSize)
}

// IndexBytes reinterprets an index slice as its raw bytes without copying.
func IndexBytes(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*IndexSize)
}

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}
