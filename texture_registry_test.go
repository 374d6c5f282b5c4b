package guibridge_test

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/guibridge"
)

func TestTextureRegistryBindResolve(t *testing.T) {
	reg := guibridge.NewTextureRegistry()
	tex := &fakeTexture{name: "t1", w: 4, h: 4}

	h := reg.Bind(tex)
	if h != 0 {
		t.Errorf("expected first handle 0, got %d", h)
	}

	got, err := reg.Resolve(h)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != tex {
		t.Errorf("Resolve returned %v, want the bound texture", got)
	}
}

func TestTextureRegistryUnbind(t *testing.T) {
	reg := guibridge.NewTextureRegistry()
	h := reg.Bind(&fakeTexture{name: "t1"})

	reg.Unbind(h)

	_, err := reg.Resolve(h)
	if !errors.Is(err, guibridge.ErrMissingTextureBinding) {
		t.Fatalf("expected ErrMissingTextureBinding, got %v", err)
	}
	var missing *guibridge.MissingTextureError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingTextureError, got %T", err)
	}
	if missing.Handle != h {
		t.Errorf("error reports handle %d, want %d", missing.Handle, h)
	}
}

func TestTextureRegistryUnbindUnknownIsNoop(t *testing.T) {
	reg := guibridge.NewTextureRegistry()
	h := reg.Bind(&fakeTexture{name: "t1"})

	reg.Unbind(42)
	reg.Unbind(h)
	reg.Unbind(h)

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
}

func TestTextureRegistryHandlesNeverReused(t *testing.T) {
	reg := guibridge.NewTextureRegistry()
	seen := make(map[guibridge.TextureHandle]bool)

	for i := 0; i < 50; i++ {
		h := reg.Bind(&fakeTexture{})
		if seen[h] {
			t.Fatalf("handle %d minted twice", h)
		}
		seen[h] = true
		if i%3 == 0 {
			reg.Unbind(h)
		}
	}

	if len(seen) != 50 {
		t.Errorf("expected 50 distinct handles, got %d", len(seen))
	}
}

func TestTextureRegistryDuplicateBind(t *testing.T) {
	reg := guibridge.NewTextureRegistry()
	tex := &fakeTexture{name: "shared"}

	h1 := reg.Bind(tex)
	h2 := reg.Bind(tex)
	if h1 == h2 {
		t.Fatal("binding the same texture twice must mint two handles")
	}

	reg.Unbind(h1)
	if got, err := reg.Resolve(h2); err != nil || got != tex {
		t.Errorf("second handle should survive unbinding the first, got %v, %v", got, err)
	}
}
