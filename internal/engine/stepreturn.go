package engine

import "context"

// StepReturn is the normalized, closed-sum-type shape of whatever a Step's
// Request function hands back: a bare pass/fail value, a (value, context)
// pair, or a Future yielding either of those. A dynamically-typed return
// value is normalized here into tagged variants rather than threaded
// through the engine as interface{}.
type StepReturn struct {
	ok     bool
	ctx    Context
	hasCtx bool
	future *Future
}

// Result builds an immediate pass/fail StepReturn that leaves the context
// unchanged.
func Result(ok bool) StepReturn {
	return StepReturn{ok: ok}
}

// ResultWithContext builds an immediate StepReturn that also replaces the
// context for subsequent steps.
func ResultWithContext(ok bool, ctx Context) StepReturn {
	return StepReturn{ok: ok, ctx: ctx, hasCtx: true}
}

// Pending builds a StepReturn whose real value isn't known yet; the
// executor awaits fut before normalizing.
func Pending(fut *Future) StepReturn {
	return StepReturn{future: fut}
}

func (s StepReturn) isPending() bool {
	return s.future != nil
}

// Future represents a value that will be available asynchronously. It
// mirrors the run/await shape user step functions may return when their
// request is naturally asynchronous (e.g. backed by a channel-returning
// HTTP client). Grounded on the pack's asyncx.Future[T] pattern
// (run goroutine immediately, Await blocks on a buffered channel).
type Future struct {
	ch chan StepReturn
}

// RunAsync starts fn in its own goroutine and returns a Future for its
// eventual StepReturn.
func RunAsync(fn func() StepReturn) *Future {
	f := &Future{ch: make(chan StepReturn, 1)}
	go func() {
		f.ch <- fn()
	}()
	return f
}

// Await blocks until the future resolves or ctx is done, whichever first.
func (f *Future) Await(ctx context.Context) (StepReturn, error) {
	select {
	case v := <-f.ch:
		return v, nil
	case <-ctx.Done():
		return StepReturn{}, ctx.Err()
	}
}
