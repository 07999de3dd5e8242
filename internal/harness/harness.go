// Package harness is the test-execution framework the exercise scripts
// register into. Registration is global to a Harness and accumulates: there
// is no way to remove a test once registered, so callers that need a clean
// registry build a new Harness.
package harness

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"evalclient/internal/logging"
)

// DefaultTestTimeout matches the per-test budget learners know from mocha.
const DefaultTestTimeout = 2 * time.Second

// Result is the outcome of one registered test.
type Result struct {
	Title    string
	Passed   bool
	Message  string // first line of the failure text; empty on success
	Duration time.Duration
}

// Report is the outcome of one run.
type Report struct {
	Results []Result
	Passed  int
	Failed  int
}

// OK reports whether every test passed.
func (r Report) OK() bool { return r.Failed == 0 }

type entry struct {
	title   string
	body    func(*T)
	loadErr error
}

// Harness holds the registered tests and runs them.
type Harness struct {
	mu          sync.Mutex
	tests       []entry
	testTimeout time.Duration
	runs        int
}

// Option customizes a Harness.
type Option func(*Harness)

// WithTestTimeout bounds each test body. Zero disables the bound.
func WithTestTimeout(d time.Duration) Option {
	return func(h *Harness) { h.testTimeout = d }
}

// New creates an empty harness.
func New(opts ...Option) *Harness {
	h := &Harness{testTimeout: DefaultTestTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds a named test.
func (h *Harness) Register(title string, body func(*T)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tests = append(h.tests, entry{title: title, body: body})
}

// ReportFailure records an entry that fails with err when the harness runs.
// It is how a script that could not be loaded shows up in the results.
func (h *Harness) ReportFailure(title string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tests = append(h.tests, entry{title: title, loadErr: err})
}

// Len returns the number of registered entries.
func (h *Harness) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tests)
}

// Runs returns how many times Run was invoked.
func (h *Harness) Runs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.runs
}

// Registrar returns the registration capability handed to one script.
func (h *Harness) Registrar() *Registrar {
	return &Registrar{h: h}
}

// Run executes every registered test in registration order.
func (h *Harness) Run(ctx context.Context) Report {
	h.mu.Lock()
	tests := make([]entry, len(h.tests))
	copy(tests, h.tests)
	h.runs++
	timeout := h.testTimeout
	h.mu.Unlock()

	report := Report{Results: make([]Result, 0, len(tests))}
	for _, e := range tests {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Title: e.title, Message: "run cancelled"}
		} else {
			res = runOne(e, timeout)
		}
		if res.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	logging.Harness("run complete: %d passing, %d failing", report.Passed, report.Failed)
	return report
}

func runOne(e entry, timeout time.Duration) Result {
	start := time.Now()
	if e.loadErr != nil {
		return Result{Title: e.title, Message: FirstLine(e.loadErr.Error())}
	}

	t := &T{title: e.title}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil && !t.stopped {
				t.fail(fmt.Sprint(r))
			}
		}()
		e.body(t)
	}()

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			// The body keeps running in the background; its result is ignored.
			logging.Get(logging.CategoryHarness).Warn("test %q exceeded %s", e.title, timeout)
			return Result{
				Title:    e.title,
				Message:  fmt.Sprintf("Error: Timeout of %dms exceeded.", timeout.Milliseconds()),
				Duration: time.Since(start),
			}
		}
	} else {
		<-done
	}

	res := Result{Title: e.title, Passed: !t.Failed(), Duration: time.Since(start)}
	if !res.Passed {
		res.Message = FirstLine(t.message())
	}
	return res
}

// FirstLine keeps only the first line of a failure text, dropping stack
// trace detail.
func FirstLine(s string) string {
	return strings.Split(s, "\n")[0]
}
