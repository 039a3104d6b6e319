package callback

// State is the snapshot a solver hands to hooks at each lifecycle point.
//
// The slices alias solver-owned storage for the duration of the call: hooks
// receive read access only and must copy anything they keep. A State is
// never shared across concurrent solves.
type State struct {
	// Iter is the current iteration (inner solver) or round (outer loop)
	// index, starting at 0.
	Iter int

	// X is the current solution estimate.
	X []float64

	// Residual is the current residual vector A·x − y, when the solver
	// tracks one explicitly; nil otherwise.
	Residual []float64

	// Weights is the weight vector in effect for this iteration, when the
	// solver is a reweighting scheme; nil otherwise. At round 0 of IRLS
	// this is the initial all-ones vector.
	Weights []float64

	// Converged reports whether the solver's convergence criterion held at
	// this point.
	Converged bool
}

// Callbacks is the full set of lifecycle hooks a subscriber may implement.
// Each hook may return a non-nil error to abort the enclosing solve; the
// error propagates to the solve's caller unmodified.
//
// Embed BaseCallbacks to get no-op defaults and override selectively.
type Callbacks interface {
	// OnStepBegin fires before an iteration or round starts.
	OnStepBegin(s State) error

	// OnStepEnd fires after an iteration or round completes.
	OnStepEnd(s State) error

	// OnConverged fires once, when the solver's convergence criterion is
	// met (it does not fire on budget exhaustion).
	OnConverged(s State) error
}

// BaseCallbacks implements Callbacks with no-ops. Embed it so subscriber
// types only spell out the hooks they actually use.
type BaseCallbacks struct{}

// OnStepBegin is a no-op.
func (BaseCallbacks) OnStepBegin(State) error { return nil }

// OnStepEnd is a no-op.
func (BaseCallbacks) OnStepEnd(State) error { return nil }

// OnConverged is a no-op.
func (BaseCallbacks) OnConverged(State) error { return nil }

// Registry is an ordered list of subscribers. Insertion order determines
// invocation order; the registry holds no reference to any solver or
// operator, only to its subscribers.
//
// The zero value is ready to use. A nil *Registry is valid and broadcasts
// to nobody, so solvers can invoke it unconditionally.
type Registry struct {
	subs []Callbacks
}

// NewRegistry builds a Registry over the given subscribers, preserving
// their order. Nil subscribers are skipped.
func NewRegistry(subs ...Callbacks) *Registry {
	r := &Registry{}
	for _, cb := range subs {
		r.Register(cb)
	}

	return r
}

// Register appends a subscriber. Nil subscribers are ignored.
func (r *Registry) Register(cb Callbacks) {
	if cb == nil {
		return
	}
	r.subs = append(r.subs, cb)
}

// Len reports the number of registered subscribers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.subs)
}

// StepBegin broadcasts OnStepBegin in registration order, stopping at the
// first hook error.
func (r *Registry) StepBegin(s State) error {
	if r == nil {
		return nil
	}
	for _, cb := range r.subs {
		if err := cb.OnStepBegin(s); err != nil {
			return err
		}
	}

	return nil
}

// StepEnd broadcasts OnStepEnd in registration order, stopping at the first
// hook error.
func (r *Registry) StepEnd(s State) error {
	if r == nil {
		return nil
	}
	for _, cb := range r.subs {
		if err := cb.OnStepEnd(s); err != nil {
			return err
		}
	}

	return nil
}

// Converged broadcasts OnConverged in registration order, stopping at the
// first hook error.
func (r *Registry) Converged(s State) error {
	if r == nil {
		return nil
	}
	for _, cb := range r.subs {
		if err := cb.OnConverged(s); err != nil {
			return err
		}
	}

	return nil
}
