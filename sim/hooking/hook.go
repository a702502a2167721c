// Package hooking lets observers attach to the kernel's data structures.
//
// Lists, queues and the scheduler invoke their hooks on every mutation. Hooks
// are fire-and-forget: they cannot change the outcome of the operation, and a
// structure without hooks behaves exactly like one with hooks.
package hooking

// HookPos names a point in an operation where hooks run, such as a note
// entering a list or an item leaving a queue. Positions are compared by
// pointer, so each one is declared once as a package-level variable.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation.
type HookCtx struct {
	// Domain is the structure that was mutated.
	Domain Hookable
	Pos    *HookPos

	// Item is the note, occupant or event involved.
	Item interface{}

	// Detail carries position-specific data, for example the index a note
	// was inserted at.
	Detail interface{}
}

// Hookable is implemented by every list, queue and scheduler.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Hook observes mutations. Func runs synchronously inside the operation and
// must not mutate the structure that invoked it.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase implements Hookable. Structures embed it and call InvokeHook
// after each mutation.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns how many hooks are attached.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns the attached hooks in the order they were accepted.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook attaches a hook. Attaching the same hook value twice panics.
// HookFunc values cannot be compared and are always accepted.
func (h *HookableBase) AcceptHook(hook Hook) {
	if _, isFunc := hook.(HookFunc); !isFunc && h.isAttached(hook) {
		panic("duplicated hook")
	}

	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) isAttached(hook Hook) bool {
	for _, attached := range h.hookList {
		if attached == hook {
			return true
		}
	}

	return false
}

// InvokeHook runs every attached hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
