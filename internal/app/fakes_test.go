package app

import (
	"context"
	"sync"

	"evalclient/internal/api"
	"evalclient/internal/harness"
	"evalclient/internal/session"
	"evalclient/internal/types"
)

type fakeClient struct {
	mu        sync.Mutex
	fetch     func(token string) (types.Suite, error)
	submit    func(token string, payload map[string]string) (types.SubmissionAck, error)
	fetched   []string
	submitted []map[string]string
}

func (f *fakeClient) FetchTestSuite(ctx context.Context, token string) (types.Suite, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, token)
	f.mu.Unlock()
	return f.fetch(token)
}

func (f *fakeClient) SubmitSolution(ctx context.Context, token string, payload map[string]string) (types.SubmissionAck, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, payload)
	f.mu.Unlock()
	if f.submit == nil {
		return types.SubmissionAck{StatusCode: 201}, nil
	}
	return f.submit(token, payload)
}

// acceptToken serves suite for want and rejects every other token with 401.
func acceptToken(want string, suite types.Suite) func(string) (types.Suite, error) {
	return func(token string) (types.Suite, error) {
		if token != want {
			return nil, &api.StatusError{StatusCode: 401}
		}
		return suite, nil
	}
}

func failWith(code int) func(string) (types.Suite, error) {
	return func(string) (types.Suite, error) {
		return nil, &api.StatusError{StatusCode: code}
	}
}

type fakeLoader struct {
	mu    sync.Mutex
	loads []types.Suite
}

func (l *fakeLoader) Load(ctx context.Context, suite types.Suite) harness.Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads = append(l.loads, suite)
	results := make([]harness.Result, 0, len(suite))
	for i := range suite {
		results = append(results, harness.Result{Title: suite[i].InstructionsMarkup, Passed: true})
	}
	return harness.Report{Results: results, Passed: len(results)}
}

type fixture struct {
	store   *session.MemoryStore
	client  *fakeClient
	loaders []*fakeLoader
	ctrl    *Controller
}

func newFixture(store *session.MemoryStore, client *fakeClient) *fixture {
	f := &fixture{store: store, client: client}
	f.ctrl = NewController(Deps{
		Store:  store,
		Client: client,
		NewLoader: func() TestLoader {
			l := &fakeLoader{}
			f.loaders = append(f.loaders, l)
			return l
		},
		Student: func() (string, error) { return "package main\n", nil },
		Submission: SubmissionOptions{
			Fields:    []string{"name", "repo"},
			CodeField: "code",
		},
	})
	return f
}

func (f *fixture) currentLoader() *fakeLoader {
	return f.loaders[len(f.loaders)-1]
}

var sampleSuite = types.Suite{
	{InstructionsMarkup: "<p>one</p>", ExecutableScript: "func Register(r *exercise.Registrar) {}"},
	{InstructionsMarkup: "<p>two</p>", ExecutableScript: "func Register(r *exercise.Registrar) {}"},
}
