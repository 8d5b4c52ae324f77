package stt

import "sync/atomic"

// Holder is the process-wide model handle. It is empty until the startup load
// finishes and immutable afterwards.
type Holder struct {
	ref atomic.Pointer[modelRef]
}

type modelRef struct {
	model Model
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set publishes the loaded model. Only the first call has an effect.
func (h *Holder) Set(m Model) bool {
	return h.ref.CompareAndSwap(nil, &modelRef{model: m})
}

// Get returns the model once it is loaded.
func (h *Holder) Get() (Model, bool) {
	r := h.ref.Load()
	if r == nil {
		return nil, false
	}
	return r.model, true
}
