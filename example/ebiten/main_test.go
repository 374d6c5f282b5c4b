package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestElapsedMeasuresWallTime(t *testing.T) {
	var last time.Time
	if dt := elapsed(&last); dt != 1/float32(ebiten.TPS()) {
		t.Errorf("first step %v, want one tick", dt)
	}
	if last.IsZero() {
		t.Fatal("elapsed did not record the call time")
	}

	last = time.Now().Add(-50 * time.Millisecond)
	if dt := elapsed(&last); dt < 0.05 || dt > 1 {
		t.Errorf("step %v, want about 50ms", dt)
	}
}
