package screen

import (
	"context"
	"testing"

	"evalclient/cmd/evalclient/ui"
	"evalclient/internal/api"
	"evalclient/internal/app"
	"evalclient/internal/harness"
	"evalclient/internal/session"
	"evalclient/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainRenderer struct{}

func (plainRenderer) Render(fragment string) string { return fragment }

type stubClient struct {
	token     string
	submitted []map[string]string
}

func (c *stubClient) FetchTestSuite(ctx context.Context, token string) (types.Suite, error) {
	if token != c.token {
		return nil, &api.StatusError{StatusCode: 401}
	}
	return types.Suite{{InstructionsMarkup: "<p>Write Sum</p>", ExecutableScript: "x"}}, nil
}

func (c *stubClient) SubmitSolution(ctx context.Context, token string, payload map[string]string) (types.SubmissionAck, error) {
	c.submitted = append(c.submitted, payload)
	if payload["repo"] == "" {
		return types.SubmissionAck{}, &api.StatusError{StatusCode: 422, Message: "Missing field: repo"}
	}
	return types.SubmissionAck{StatusCode: 201}, nil
}

type stubLoader struct{}

func (stubLoader) Load(ctx context.Context, suite types.Suite) harness.Report {
	return harness.Report{
		Results: []harness.Result{
			{Title: "Sum adds", Passed: true},
			{Title: "Sum is off by one", Message: "AssertionError: expected 3 to equal 4"},
		},
		Passed: 1,
		Failed: 1,
	}
}

func newTestModel(store session.Store, client *stubClient) Model {
	ctrl := app.NewController(app.Deps{
		Store:      store,
		Client:     client,
		NewLoader:  func() app.TestLoader { return stubLoader{} },
		Submission: app.SubmissionOptions{Fields: []string{"name", "repo"}},
	})
	return New(context.Background(), Options{
		Controller:  ctrl,
		Styles:      ui.NewStyles(ui.LightTheme()),
		Renderer:    plainRenderer{},
		StudentFile: "student.go",
		Fields:      []string{"name", "repo"},
	})
}

// drive feeds the results of controller tasks back into the model until
// no task is left. Widget commands (blink, ticks) are not run.
func drive(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case app.Msg, startMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func press(m tea.Model, k tea.KeyType) tea.Model {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return drive(next, cmd)
}

func typeText(m tea.Model, s string) tea.Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next
}

func start(m tea.Model) tea.Model {
	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 200})
	next, cmd := m.Update(startMsg{})
	return drive(next, cmd)
}

func TestPassphraseFlow(t *testing.T) {
	store := session.NewMemoryStore()
	var m tea.Model = newTestModel(store, &stubClient{token: "secret"})

	m = start(m)
	assert.Contains(t, m.View(), "Start Test")

	m = typeText(m, "wrong")
	m = press(m, tea.KeyEnter)
	assert.Contains(t, m.View(), "Incorrect passphrase")

	mm := m.(Model)
	mm.passphrase.SetValue("secret")
	m = press(mm, tea.KeyEnter)

	view := m.View()
	assert.Contains(t, view, "Instructions")
	assert.Contains(t, view, "<p>Write Sum</p>")
	assert.Contains(t, view, "Sum is off by one")
	assert.Contains(t, view, "AssertionError: expected 3 to equal 4")
	assert.Contains(t, view, "1 passing")

	token, ok, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret", token)
}

func TestSubmissionModal(t *testing.T) {
	client := &stubClient{token: "secret"}
	var m tea.Model = newTestModel(session.NewMemoryStore("secret"), client)
	m = start(m)
	require.Contains(t, m.View(), "Sum adds")

	m = press(m, tea.KeyCtrlS)
	assert.Contains(t, m.View(), "Submit your solution")

	m = typeText(m, "Ada")
	m = press(m, tea.KeyEnter) // next field
	m = press(m, tea.KeyEnter) // submit with an empty repo

	assert.Contains(t, m.View(), "Missing field: repo")
	require.Len(t, client.submitted, 1)
	assert.Equal(t, "Ada", client.submitted[0]["name"])

	m = press(m, tea.KeyEsc)
	assert.NotContains(t, m.View(), "Submit your solution", "closing reloads with the modal closed")
	assert.Contains(t, m.View(), "Sum adds")
	assert.Equal(t, 2, m.(Model).ctrl.Generation())
}

func TestResetPassphraseKey(t *testing.T) {
	store := session.NewMemoryStore("secret")
	var m tea.Model = newTestModel(store, &stubClient{token: "secret"})
	m = start(m)

	m = press(m, tea.KeyCtrlR)

	assert.Contains(t, m.View(), "Start Test")
	_, ok, _ := store.Read(context.Background())
	assert.False(t, ok)
}

func TestFileChangeReloads(t *testing.T) {
	var m tea.Model = newTestModel(session.NewMemoryStore("secret"), &stubClient{token: "secret"})
	m = start(m)
	require.Equal(t, 1, m.(Model).ctrl.Generation())

	next, cmd := m.Update(FileChangedMsg{})
	m = drive(next, cmd)

	assert.Equal(t, 2, m.(Model).ctrl.Generation())
	assert.Contains(t, m.View(), "Sum adds")
}
