// Package steplib provides a small library of built-in Steps for
// scenarios that don't need a custom RequestFunc: plain HTTP calls and a
// fixed sleep. It exists for cmd/simcore's run/init scaffolding, not as
// the HTTP client a real scenario author is expected to bring -- the
// engine itself is transport-agnostic.
package steplib

import (
	"io"
	"net/http"
	"time"

	"github.com/sentra-lab/simcore/internal/engine"
)

// httpClient is shared across steps built by this package; callers that
// need custom transport behavior (TLS config, proxies, retries) should
// write their own RequestFunc instead of using steplib.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Get builds a Step that issues a GET request to url and succeeds on any
// 2xx response. The response context key "status" carries the numeric
// status code for downstream steps.
func Get(name, url string) engine.Step {
	return engine.Step{
		Name: name,
		Request: func(ctx engine.Context) engine.StepReturn {
			resp, err := httpClient.Get(url)
			if err != nil {
				return engine.Result(false)
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)

			out := ctx.With("status", resp.StatusCode)
			return engine.ResultWithContext(resp.StatusCode >= 200 && resp.StatusCode < 300, out)
		},
	}
}

// Post builds a Step that POSTs body (read fresh from bodyFn on every
// invocation, since a virtual user may repeat the scenario) to url.
func Post(name, url, contentType string, bodyFn func(ctx engine.Context) io.Reader) engine.Step {
	return engine.Step{
		Name: name,
		Request: func(ctx engine.Context) engine.StepReturn {
			resp, err := httpClient.Post(url, contentType, bodyFn(ctx))
			if err != nil {
				return engine.Result(false)
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)

			out := ctx.With("status", resp.StatusCode)
			return engine.ResultWithContext(resp.StatusCode >= 200 && resp.StatusCode < 300, out)
		},
	}
}

// Sleep builds a Step whose request body does nothing but succeed; the
// actual delay happens via the Step's SleepBefore hook so it's counted as
// wait time rather than as request latency in any reporter that splits
// the two.
func Sleep(name string, d time.Duration) engine.Step {
	return engine.Step{
		Name:        name,
		SleepBefore: func(engine.Context) time.Duration { return d },
		Request: func(ctx engine.Context) engine.StepReturn {
			return engine.Result(true)
		},
	}
}

// Check builds a Step that fails (without issuing any request) unless
// pred holds against the current context. Useful for asserting on a
// value a prior step placed in context, e.g. the "status" key Get/Post
// leave behind.
func Check(name string, pred func(ctx engine.Context) bool) engine.Step {
	return engine.Step{
		Name: name,
		Request: func(ctx engine.Context) engine.StepReturn {
			return engine.Result(pred(ctx))
		},
	}
}

// StatusEquals is a Check predicate helper for the "status" key Get/Post
// leave in context.
func StatusEquals(want int) func(engine.Context) bool {
	return func(ctx engine.Context) bool {
		got, ok := ctx["status"].(int)
		return ok && got == want
	}
}
