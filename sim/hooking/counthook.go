package hooking

import (
	"sync"
)

// CountHook counts how many times each hook position is triggered.
type CountHook struct {
	lock sync.Mutex

	posNames []string
	count    map[string]uint64
}

// NewCountHook creates a new CountHook.
func NewCountHook() *CountHook {
	return &CountHook{
		count: make(map[string]uint64),
	}
}

// Func counts the position of the invocation.
func (h *CountHook) Func(ctx HookCtx) {
	h.lock.Lock()
	defer h.lock.Unlock()

	_, ok := h.count[ctx.Pos.Name]
	if !ok {
		h.posNames = append(h.posNames, ctx.Pos.Name)
	}

	h.count[ctx.Pos.Name]++
}

// PosNames returns the names of the positions seen so far, in the order they
// were first seen.
func (h *CountHook) PosNames() []string {
	h.lock.Lock()
	defer h.lock.Unlock()

	names := make([]string, len(h.posNames))
	copy(names, h.posNames)

	return names
}

// Count returns the number of invocations at a position.
func (h *CountHook) Count(pos *HookPos) uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.count[pos.Name]
}
