package app

import (
	"context"

	"evalclient/internal/harness"
	"evalclient/internal/logging"
	"evalclient/internal/session"
	"evalclient/internal/types"
)

// SuiteClient is the evaluation service.
type SuiteClient interface {
	FetchTestSuite(ctx context.Context, token string) (types.Suite, error)
	SubmitSolution(ctx context.Context, token string, payload map[string]string) (types.SubmissionAck, error)
}

// TestLoader registers a suite into a harness and runs it.
type TestLoader interface {
	Load(ctx context.Context, suite types.Suite) harness.Report
}

// Task is blocking work issued by the Controller. It runs off the
// controller's goroutine and its Msg is handed back to Apply.
type Task func(ctx context.Context) Msg

// Deps are the Controller's collaborators.
type Deps struct {
	Store  session.Store
	Client SuiteClient
	// NewLoader builds the loader for a fresh generation. The harness a
	// loader registers into cannot be reset, so every full reload asks for
	// a new one.
	NewLoader func() TestLoader
	// Student reads the solution attached to submissions. Optional.
	Student    func() (string, error)
	Submission SubmissionOptions
}

// Controller owns the State. Its methods must be called from a single
// goroutine; Tasks they return may run anywhere.
type Controller struct {
	deps Deps

	state  State
	gen    int
	loader TestLoader
	view   View

	// per generation: the harness runs at most once
	testsStarted bool
	report       *harness.Report
}

// NewController creates a controller in its initial generation. Call
// Start to run session detection.
func NewController(deps Deps) *Controller {
	c := &Controller{deps: deps}
	c.reconstruct()
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state.Clone() }

// View returns the current view.
func (c *Controller) View() View { return c.view }

// Generation returns the number of reconstructions so far, starting at 1.
func (c *Controller) Generation() int { return c.gen }

func (c *Controller) reconstruct() {
	c.gen++
	c.state = State{}
	c.view = View{}
	c.loader = c.deps.NewLoader()
	c.testsStarted = false
	c.report = nil
	logging.Session("generation %d", c.gen)
}

// Start detects a persisted session. With a token, the suite is fetched
// before anything is rendered; without one, the passphrase view is shown.
func (c *Controller) Start(ctx context.Context) []Task {
	token, ok, err := c.deps.Store.Read(ctx)
	if err != nil {
		logging.Get(logging.CategorySession).Error("read token: %v", err)
		ok = false
	}
	if !ok {
		logging.Session("no persisted session")
		return c.render(ctx)
	}

	logging.Session("restoring persisted session")
	Reduce(&c.state, SessionDetected{Token: token})
	c.view = View{Kind: ViewRestoring}

	gen, client := c.gen, c.deps.Client
	return []Task{func(ctx context.Context) Msg {
		suite, err := client.FetchTestSuite(ctx, token)
		if err != nil {
			return Msg{gen: gen, action: SessionRestoreFailed{Err: err}}
		}
		return Msg{gen: gen, action: SessionRestored{Suite: suite}}
	}}
}

// Reload discards the state and starts over from the persisted session.
func (c *Controller) Reload(ctx context.Context) []Task {
	logging.Session("full reload")
	c.reconstruct()
	return c.Start(ctx)
}

// SubmitPassphrase starts an authentication attempt. It is ignored while
// one is in flight or a session is present.
func (c *Controller) SubmitPassphrase(ctx context.Context, passphrase string) []Task {
	if c.state.TokenFetchInFlight || c.state.Session.Present {
		return nil
	}

	Reduce(&c.state, PassphraseSubmitted{})
	tasks := c.render(ctx)

	gen, client := c.gen, c.deps.Client
	return append(tasks, func(ctx context.Context) Msg {
		suite, err := client.FetchTestSuite(ctx, passphrase)
		if err != nil {
			return Msg{gen: gen, action: SuiteFetchFailed{Err: err}}
		}
		return Msg{gen: gen, action: SuiteFetched{Token: passphrase, Suite: suite}}
	})
}

// ResetPassphrase forgets the session.
func (c *Controller) ResetPassphrase(ctx context.Context) []Task {
	if err := c.deps.Store.Clear(ctx); err != nil {
		logging.Get(logging.CategorySession).Error("clear token: %v", err)
	}
	logging.Session("passphrase reset")
	Reduce(&c.state, SessionCleared{})
	return c.render(ctx)
}

// OpenSubmission opens the submission modal. It needs a session.
func (c *Controller) OpenSubmission(ctx context.Context) []Task {
	if !c.state.Session.Present || c.state.SubmissionModalOpen {
		return nil
	}
	logging.Submission("modal opened")
	Reduce(&c.state, SubmissionOpened{})
	return c.render(ctx)
}

// SubmitSolution sends the submission form. It is ignored unless the
// modal is open and no submission was sent yet.
func (c *Controller) SubmitSolution(ctx context.Context, form Form) []Task {
	if !c.state.SubmissionModalOpen || c.state.SubmissionInFlight || c.state.SubmissionResult != nil {
		return nil
	}

	payload := form.Payload(c.deps.Submission, c.deps.Student)
	Reduce(&c.state, SubmissionStarted{})
	tasks := c.render(ctx)

	gen, client, token := c.gen, c.deps.Client, c.state.Session.Token
	return append(tasks, func(ctx context.Context) Msg {
		ack, err := client.SubmitSolution(ctx, token, payload)
		if err != nil {
			return Msg{gen: gen, action: SubmissionFailed{Err: err}}
		}
		return Msg{gen: gen, action: SubmissionSucceeded{Ack: ack}}
	})
}

// CancelSubmission closes the modal. The modal and the harness share no
// teardown, so closing is a full reload.
func (c *Controller) CancelSubmission(ctx context.Context) []Task {
	logging.Submission("modal closed")
	return c.Reload(ctx)
}

// Apply reduces the result of a Task. Results issued before the latest
// reload are dropped.
func (c *Controller) Apply(ctx context.Context, m Msg) []Task {
	if m.gen != c.gen {
		logging.SessionDebug("dropping %s from generation %d (current %d)", m.action.actionName(), m.gen, c.gen)
		return nil
	}

	switch a := m.action.(type) {
	case SuiteFetched:
		if err := c.deps.Store.Write(ctx, a.Token); err != nil {
			logging.Get(logging.CategorySession).Error("persist token: %v", err)
		}
		logging.Session("passphrase accepted, %d test cases", len(a.Suite))

	case SuiteFetchFailed:
		if e := ClassifyFetchError(a.Err); e.Kind == UnknownError {
			logging.Get(logging.CategoryAPI).Error("fetch test suite: %v", a.Err)
		}

	case SessionRestoreFailed:
		logging.Get(logging.CategorySession).Error("restore session: %v", a.Err)

	case SubmissionSucceeded:
		logging.Submission("accepted with status %d", a.Ack.StatusCode)

	case SubmissionFailed:
		logging.Get(logging.CategorySubmission).Warn("rejected: %v", a.Err)

	case TestsFinished:
		report := a.Report
		c.report = &report
		c.fillTests()
		return nil
	}

	Reduce(&c.state, m.action)
	return c.render(ctx)
}

func (c *Controller) render(ctx context.Context) []Task {
	v := Render(c.state)
	logging.Render("gen=%d kind=%s reload=%v error=%q", c.gen, v.Kind, v.Reload, v.Error)

	if v.Reload {
		return c.Reload(ctx)
	}

	if v.Kind == ViewSubmissionResult {
		c.view.ModalOpen = true
		c.view.Submitting = false
		c.view.Panel = v.Panel
		c.view.Error = v.Error
		return nil
	}

	c.view = v
	if !v.RunTests {
		return nil
	}
	return c.runTests()
}

// runTests loads the suite on the first instructions render of a
// generation; later renders show the same report.
func (c *Controller) runTests() []Task {
	if c.testsStarted {
		c.fillTests()
		return nil
	}
	c.testsStarted = true
	c.view.Tests = TestsView{Running: true}

	gen, loader, suite := c.gen, c.loader, c.state.TestSuite.Clone()
	return []Task{func(ctx context.Context) Msg {
		return Msg{gen: gen, action: TestsFinished{Report: loader.Load(ctx, suite)}}
	}}
}

func (c *Controller) fillTests() {
	if c.report == nil {
		c.view.Tests = TestsView{Running: c.testsStarted}
		return
	}
	c.view.Tests = TestsView{
		Results: c.report.Results,
		Passed:  c.report.Passed,
		Failed:  c.report.Failed,
	}
}

// Settle runs tasks and everything they lead to on the calling
// goroutine, until no work is left. It is how headless callers drive
// the Controller.
func (c *Controller) Settle(ctx context.Context, tasks []Task) {
	for len(tasks) > 0 {
		t := tasks[0]
		tasks = append(tasks[1:], c.Apply(ctx, t(ctx))...)
	}
}
