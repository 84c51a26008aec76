package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Execute runs one step against one context with a deadline. It never
// lets a panic escape: exceptions are captured into the record and
// forwarded to sink.
//
// The request invocation always runs in its own goroutine, whether the
// step is naturally synchronous or returns a Pending future. That is what
// lets the deadline race work uniformly for both: a synchronous callable
// that ignores cancellation still can't block the executor past timeout,
// and its eventual completion is simply ignored, which also means the
// goroutine is never forcibly killed.
func Execute(ctx context.Context, step *Step, in Context, userID string, timeout time.Duration, state *SharedState, sink ErrorSink, scenarioName string) (RequestRecord, Context) {
	var sleepErr error
	if step.SleepBefore != nil {
		d := func() time.Duration {
			defer func() {
				if r := recover(); r != nil {
					sleepErr = fmt.Errorf("step %q sleep-before panicked: %v", step.Name, r)
				}
			}()
			return step.SleepBefore(in)
		}()
		if d > 0 {
			timer := time.NewTimer(d)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}
	}

	state.IncrSent()

	ctxBefore := in.With("id", userID)
	start := time.Now()

	if sleepErr != nil {
		recordException(sink, scenarioName, step.Name, userID, sleepErr)
		return RequestRecord{Name: step.Name, UserID: userID, Start: start, End: start, ContextBefore: ctxBefore, ContextAfter: in, Exception: sleepErr}, in
	}

	type outcome struct {
		ret StepReturn
		err error
	}
	resultCh := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- outcome{err: fmt.Errorf("step %q panicked: %v", step.Name, r)}
			}
		}()

		sr := step.Request(in)
		for sr.isPending() {
			awaited, err := sr.future.Await(ctx)
			if err != nil {
				resultCh <- outcome{err: fmt.Errorf("step %q future: %w", step.Name, err)}
				return
			}
			sr = awaited
		}
		resultCh <- outcome{ret: sr}
	}()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	rec := RequestRecord{
		Name:          step.Name,
		UserID:        userID,
		Start:         start,
		ContextBefore: ctxBefore,
	}

	select {
	case o := <-resultCh:
		rec.End = time.Now()
		if o.err != nil {
			rec.Result = false
			rec.Exception = o.err
			rec.ContextAfter = in
			recordException(sink, scenarioName, step.Name, userID, o.err)
		} else {
			rec.Result = o.ret.ok
			if o.ret.hasCtx {
				rec.ContextAfter = o.ret.ctx
			} else {
				rec.ContextAfter = in
			}
		}
	case <-deadline.C:
		rec.End = time.Now()
		rec.Result = false
		rec.ContextAfter = in
	}

	return rec, rec.ContextAfter
}

func recordException(sink ErrorSink, scenarioName, stepName, userID string, err error) {
	log.Error().
		Str("scenario", scenarioName).
		Str("step", stepName).
		Str("user_id", userID).
		Err(err).
		Msg("step exception")

	if sink != nil {
		sink.Record(scenarioName, stepName, userID, err)
	}
}
