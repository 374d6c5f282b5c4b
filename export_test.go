package guibridge

// RetainedTextures counts the texture references r still holds.
func RetainedTextures(r *Replayer) int {
	n := 0
	for _, tex := range r.resolved[:cap(r.resolved)] {
		if tex != nil {
			n++
		}
	}
	return n
}
