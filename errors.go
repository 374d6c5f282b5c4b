package guibridge

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTextureBinding is matched by every error reporting a draw
	// command or lookup that references an unbound texture handle.
	ErrMissingTextureBinding = errors.New("missing texture binding")

	// ErrResourceExhausted wraps GPU allocation failures.
	ErrResourceExhausted = errors.New("gpu resource exhausted")
)

// MissingTextureError reports a texture handle with no registry entry.
// It usually means a texture was unbound while the GUI still referenced it.
type MissingTextureError struct {
	Handle TextureHandle
}

func (e *MissingTextureError) Error() string {
	return fmt.Sprintf("could not find a texture with handle %d, check your bindings", e.Handle)
}

// Is reports whether target is ErrMissingTextureBinding.
func (e *MissingTextureError) Is(target error) bool {
	return target == ErrMissingTextureBinding
}
