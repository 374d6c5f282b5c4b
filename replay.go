package guibridge

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Replayer turns one frame's draw data into device draw calls.
type Replayer struct {
	dev      Device
	textures *TextureRegistry
	geometry *GeometryBuffers

	// resolved holds one texture per non-empty command, in draw order.
	resolved []Texture
}

// NewReplayer creates a replayer drawing through dev.
func NewReplayer(dev Device, textures *TextureRegistry, geometry *GeometryBuffers) *Replayer {
	return &Replayer{
		dev:      dev,
		textures: textures,
		geometry: geometry,
		resolved: make([]Texture, 0, 64),
	}
}

// Replay draws frame into the currently bound framebuffer.
//
// Textures of all non-empty commands are resolved before anything else, so a
// missing binding aborts the frame without touching the device or the
// geometry buffers. Clip rectangles are mapped to framebuffer pixels with
// displayScale. Viewport and scissor are restored before returning.
func (r *Replayer) Replay(frame *FrameDrawData, displayScale Vec2) error {
	if frame == nil || frame.TotalVertexCount == 0 || frame.TotalIndexCount == 0 {
		return nil
	}

	// Caller textures are only referenced while the frame is drawn.
	defer func() { clear(r.resolved) }()

	if err := r.resolveTextures(frame); err != nil {
		return err
	}

	lastViewport := r.dev.Viewport()
	lastScissor := r.dev.Scissor()
	defer func() {
		r.dev.SetViewport(lastViewport)
		r.dev.SetScissor(lastScissor)
	}()

	fbW, fbH := r.dev.TargetSize()
	bounds := Rect{W: fbW, H: fbH}
	r.dev.SetViewport(bounds)

	if err := r.geometry.UploadFrame(frame); err != nil {
		return fmt.Errorf("upload frame geometry: %w", err)
	}

	vertices, indices := r.geometry.Buffers()
	r.dev.BeginGeometry(vertices, indices, projection(frame, displayScale, fbW, fbH))
	defer r.dev.EndGeometry()

	vtxBase, idxBase := 0, 0
	next := 0
	for i := range frame.Lists {
		list := &frame.Lists[i]

		for _, cmd := range list.Commands {
			if cmd.ElemCount == 0 {
				continue
			}
			tex := r.resolved[next]
			next++

			scissor := clipToScissor(cmd.ClipRect, frame.DisplayPos, displayScale).Intersect(bounds)
			if scissor.Empty() {
				continue
			}

			r.dev.SetScissor(scissor)
			r.dev.BindTexture(tex)
			r.dev.DrawIndexed(
				vtxBase+int(cmd.VertexOffset),
				idxBase+int(cmd.IndexOffset),
				int(cmd.ElemCount),
			)
		}

		vtxBase += list.VertexCount()
		idxBase += list.IndexCount()
	}

	return nil
}

func (r *Replayer) resolveTextures(frame *FrameDrawData) error {
	r.resolved = r.resolved[:0]
	for i := range frame.Lists {
		for j, cmd := range frame.Lists[i].Commands {
			if cmd.ElemCount == 0 {
				continue
			}
			tex, err := r.textures.Resolve(cmd.Texture)
			if err != nil {
				return fmt.Errorf("draw list %d command %d: %w", i, j, err)
			}
			r.resolved = append(r.resolved, tex)
		}
	}
	return nil
}

// clipToScissor maps a display-space clip rectangle (x1, y1, x2, y2) to
// framebuffer pixels.
func clipToScissor(clip [4]float32, origin, scale Vec2) Rect {
	x1 := (clip[0] - origin.X) * scale.X
	y1 := (clip[1] - origin.Y) * scale.Y
	x2 := (clip[2] - origin.X) * scale.X
	y2 := (clip[3] - origin.Y) * scale.Y
	return Rect{X: int(x1), Y: int(y1), W: int(x2 - x1), H: int(y2 - y1)}
}

// projection builds the orthographic projection for the frame's display
// area. It is recomputed every frame so window resizes never leave a stale
// transform behind.
func projection(frame *FrameDrawData, scale Vec2, fbW, fbH int) mgl32.Mat4 {
	size := frame.DisplaySize
	if size.X <= 0 || size.Y <= 0 {
		size = Vec2{X: float32(fbW), Y: float32(fbH)}
		if scale.X > 0 && scale.Y > 0 {
			size = Vec2{X: size.X / scale.X, Y: size.Y / scale.Y}
		}
	}
	left := frame.DisplayPos.X
	top := frame.DisplayPos.Y
	return mgl32.Ortho(left, left+size.X, top+size.Y, top, -1, 1)
}
