// Package callback is the observer protocol through which solvers expose
// their internals: an ordered registry of lifecycle hooks that receive an
// immutable per-iteration state snapshot, without the solver ever knowing
// who is listening.
//
// 🚀 What is it for?
//
//	Recording convergence history, plotting weight evolution, early manual
//	abort, debugging a misbehaving operator — anything that wants to watch a
//	solve happen without patching solver code.
//
// ✨ Contract:
//   - Hooks run synchronously, in registration order, on the solver's
//     goroutine; there is no isolation between hooks and solver control flow.
//   - A hook returning a non-nil error aborts the enclosing solve
//     immediately and the error propagates unmodified: hooks are trusted
//     in-process instrumentation, not sandboxed plugins.
//   - The State passed to hooks is read access only. Hooks must not mutate
//     the slices; a hook that wants to keep data across iterations copies it.
//
// ⚙️ Usage:
//
//	type history struct {
//	    callback.BaseCallbacks
//	    xs [][]float64
//	}
//
//	func (h *history) OnStepEnd(s callback.State) error {
//	    h.xs = append(h.xs, append([]float64(nil), s.X...))
//	    return nil
//	}
//
//	reg := callback.NewRegistry(&history{})
//	// pass reg to lsqr.Options.Callbacks or irls.Options.Callbacks
//
// Embed BaseCallbacks to implement only the hooks you care about.
package callback
