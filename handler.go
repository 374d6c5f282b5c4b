package guibridge

// Handler is a unit of GUI code owned by the host's mod surface.
// Render declares widgets and is called for visible handlers inside a frame;
// Update runs for active handlers once per host update tick.
type Handler interface {
	Render()
	Update(dt float32)
	Visible() bool
	Active() bool
}

// FuncHandler adapts plain functions to Handler. Nil funcs are skipped.
type FuncHandler struct {
	RenderFunc func()
	UpdateFunc func(dt float32)

	Hidden   bool // Excluded from render passes
	Disabled bool // Excluded from update passes
}

func (h *FuncHandler) Render() {
	if h.RenderFunc != nil {
		h.RenderFunc()
	}
}

func (h *FuncHandler) Update(dt float32) {
	if h.UpdateFunc != nil {
		h.UpdateFunc(dt)
	}
}

func (h *FuncHandler) Visible() bool { return !h.Hidden }
func (h *FuncHandler) Active() bool  { return !h.Disabled }

// HandlerRegistry is an ordered collection of handlers.
//
// Handlers may add or remove handlers while being called; the running pass
// keeps iterating the list it started with.
type HandlerRegistry struct {
	handlers []Handler
}

// Add appends h. Adding the same handler twice runs it twice.
func (r *HandlerRegistry) Add(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Remove drops the first occurrence of h and reports whether it was found.
func (r *HandlerRegistry) Remove(h Handler) bool {
	for i, existing := range r.handlers {
		if existing != h {
			continue
		}
		next := make([]Handler, 0, len(r.handlers)-1)
		next = append(next, r.handlers[:i]...)
		r.handlers = append(next, r.handlers[i+1:]...)
		return true
	}
	return false
}

// Clear removes every handler.
func (r *HandlerRegistry) Clear() {
	r.handlers = nil
}

// Len returns the number of registered handlers.
func (r *HandlerRegistry) Len() int {
	return len(r.handlers)
}

// Each calls fn for every handler in order.
func (r *HandlerRegistry) Each(fn func(Handler)) {
	for _, h := range r.handlers {
		fn(h)
	}
}

// Find returns the first handler for which match returns true, or nil.
func (r *HandlerRegistry) Find(match func(Handler) bool) Handler {
	for _, h := range r.handlers {
		if match(h) {
			return h
		}
	}
	return nil
}

// RenderVisible calls Render on every visible handler, in order.
func (r *HandlerRegistry) RenderVisible() {
	for _, h := range r.handlers {
		if h.Visible() {
			h.Render()
		}
	}
}

// UpdateActive calls Update on every active handler, in order.
func (r *HandlerRegistry) UpdateActive(dt float32) {
	for _, h := range r.handlers {
		if h.Active() {
			h.Update(dt)
		}
	}
}
