// Package screen is the interactive presenter: a bubbletea program that
// forwards key presses to the app.Controller, runs the Tasks it returns
// and draws the controller's current View.
package screen

import (
	"context"
	"strings"

	"evalclient/cmd/evalclient/ui"
	"evalclient/internal/app"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Renderer renders an instructions fragment for the terminal.
type Renderer interface {
	Render(fragment string) string
}

// FileChangedMsg reports an edit of the solution file.
type FileChangedMsg struct{}

// Options configures a Model.
type Options struct {
	Controller *app.Controller
	Styles     ui.Styles
	Renderer   Renderer
	// StudentFile is named in the instructions header.
	StudentFile string
	// Fields are the submission form inputs.
	Fields []string
	// Changes, when set, delivers solution edits; each one is a reload.
	Changes <-chan struct{}
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	ctrl   *app.Controller
	styles ui.Styles
	md     Renderer

	studentFile string
	changes     <-chan struct{}

	passphrase textinput.Model
	fieldNames []string
	fields     []textinput.Model
	focus      int

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	// content is the rendered instructions body for the current view
	content string
	gen     int
	started bool
}

// New creates the model. ctx bounds every Task the controller issues.
func New(ctx context.Context, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "passphrase"
	ti.Prompt = "> "
	ti.PromptStyle = opts.Styles.Prompt
	ti.Focus()

	fields := make([]textinput.Model, len(opts.Fields))
	for i, name := range opts.Fields {
		f := textinput.New()
		f.Placeholder = name
		f.Prompt = name + ": "
		f.PromptStyle = opts.Styles.Prompt
		fields[i] = f
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	vp := viewport.New(80, 20)
	vp.Style = opts.Styles.Content

	return Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		styles:      opts.Styles,
		md:          opts.Renderer,
		studentFile: opts.StudentFile,
		changes:     opts.Changes,
		passphrase:  ti,
		fieldNames:  opts.Fields,
		fields:      fields,
		spinner:     sp,
		viewport:    vp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		textinput.Blink,
		m.spinner.Tick,
		m.waitForChange(),
	)
}

type startMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		if m.started {
			return m, nil
		}
		m.started = true
		return m.after(m.ctrl.Start(m.ctx))

	case app.Msg:
		return m.after(m.ctrl.Apply(m.ctx, msg))

	case FileChangedMsg:
		next, cmd := m.after(m.ctrl.Reload(m.ctx))
		return next, tea.Batch(cmd, m.waitForChange())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 6
		m.passphrase.Width = msg.Width - 6
		m.ready = true
		m.viewport.SetContent(m.content)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	v := m.ctrl.View()
	switch {
	case v.ModalOpen:
		return m.handleModalKey(msg, v)
	case v.Kind == app.ViewPassphrase:
		return m.handlePassphraseKey(msg, v)
	case v.Kind == app.ViewInstructions:
		return m.handleInstructionsKey(msg)
	}
	return m, nil
}

func (m Model) handlePassphraseKey(msg tea.KeyMsg, v app.View) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v.Passphrase.SubmitDisabled {
			return m, nil
		}
		return m.after(m.ctrl.SubmitPassphrase(m.ctx, m.passphrase.Value()))
	case tea.KeyEsc:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.passphrase, cmd = m.passphrase.Update(msg)
	return m, cmd
}

func (m Model) handleInstructionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlR:
		return m.after(m.ctrl.ResetPassphrase(m.ctx))
	case tea.KeyCtrlS:
		return m.after(m.ctrl.OpenSubmission(m.ctx))
	case tea.KeyCtrlL:
		return m.after(m.ctrl.Reload(m.ctx))
	case tea.KeyEsc:
		return m, tea.Quit
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg, v app.View) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || (v.Panel != nil && msg.Type == tea.KeyEnter) {
		return m.after(m.ctrl.CancelSubmission(m.ctx))
	}
	if v.Panel != nil || v.Submitting {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyEnter:
		if m.focus < len(m.fields)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.after(m.ctrl.SubmitSolution(m.ctx, m.form()))
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	i = (i + len(m.fields)) % len(m.fields)
	m.fields[m.focus].Blur()
	m.focus = i
	m.fields[m.focus].Focus()
}

func (m Model) form() app.Form {
	form := make(app.Form, len(m.fields))
	for i, f := range m.fields {
		form[m.fieldNames[i]] = strings.TrimSpace(f.Value())
	}
	return form
}

// after syncs the widgets with the controller's view and schedules tasks.
func (m Model) after(tasks []app.Task) (tea.Model, tea.Cmd) {
	v := m.ctrl.View()

	if gen := m.ctrl.Generation(); gen != m.gen {
		m.gen = gen
		m.resetInputs()
	}
	if v.ModalOpen && len(m.fields) > 0 && !m.fields[m.focus].Focused() {
		m.setFocus(m.focus)
	}
	if v.Kind == app.ViewPassphrase && !v.Passphrase.SubmitDisabled && !m.passphrase.Focused() {
		m.passphrase.Focus()
	}

	m.content = m.renderContent(v)
	m.viewport.SetContent(m.content)

	return m, m.commands(tasks)
}

func (m *Model) resetInputs() {
	m.passphrase.Reset()
	m.passphrase.Focus()
	for i := range m.fields {
		m.fields[i].Reset()
		m.fields[i].Blur()
	}
	m.focus = 0
	m.viewport.GotoTop()
}

func (m Model) commands(tasks []app.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(tasks))
	for _, t := range tasks {
		t := t
		cmds = append(cmds, func() tea.Msg { return t(m.ctx) })
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}
