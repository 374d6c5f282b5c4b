package guibridge

// TextureHandle is an opaque key GUI code uses to reference a texture.
// Handles are minted in increasing order and never reused.
type TextureHandle uint64

// TextureRegistry maps opaque handles to native textures.
// It only holds references: callers release their textures after Unbind.
type TextureRegistry struct {
	textures map[TextureHandle]Texture
	next     TextureHandle
}

// NewTextureRegistry creates an empty registry whose first handle is 0.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{textures: make(map[TextureHandle]Texture)}
}

// Bind stores tex under a freshly minted handle.
// Binding the same texture twice yields two distinct handles.
func (r *TextureRegistry) Bind(tex Texture) TextureHandle {
	h := r.next
	r.next++
	r.textures[h] = tex
	return h
}

// Unbind removes the mapping for h. Unknown handles are ignored.
func (r *TextureRegistry) Unbind(h TextureHandle) {
	delete(r.textures, h)
}

// Resolve returns the texture bound to h, or a *MissingTextureError.
func (r *TextureRegistry) Resolve(h TextureHandle) (Texture, error) {
	tex, ok := r.textures[h]
	if !ok {
		return nil, &MissingTextureError{Handle: h}
	}
	return tex, nil
}

// Len returns the number of live bindings.
func (r *TextureRegistry) Len() int {
	return len(r.textures)
}
