package engine

// System is one stage of the per-token pipeline. Systems run in
// registration order; custom state fields persist between frames.
type System interface {
	Execute(frame *Frame) error
}

// resetter is implemented by systems whose state must be cleared between
// independent runs.
type resetter interface {
	Reset()
}
