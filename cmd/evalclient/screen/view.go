package screen

import (
	"fmt"
	"strings"

	"evalclient/internal/app"

	"github.com/charmbracelet/lipgloss"
)

const introFragment = `<h2>Instructions</h2>
<p>In the <code>%s</code> file, complete the functions as described below. If you write them correctly, the tests below the instructions will pass.</p>
<ul>
<li>Save the file and press ctrl+l to run the tests again</li>
<li>You are encouraged to use online documentation and resources to look up functions, but not to find solutions.</li>
<li>Talk through your thought process so your evaluator can understand how you are solving the problem.</li>
</ul>`

func (m Model) View() string {
	v := m.ctrl.View()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("evalclient"))
	b.WriteString("\n")

	switch v.Kind {
	case app.ViewRestoring, app.ViewBlank:
		fmt.Fprintf(&b, "\n%s Restoring session...\n", m.spinner.View())

	case app.ViewPassphrase:
		b.WriteString(m.passphraseView(v))

	default:
		if v.ModalOpen {
			b.WriteString(m.modalView(v))
		} else {
			b.WriteString(m.viewport.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help(v)))
	return b.String()
}

func (m Model) passphraseView(v app.View) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Start Test"))
	b.WriteString("\n")
	b.WriteString(m.styles.Body.Render("To begin, enter the passphrase provided by your instructor."))
	b.WriteString("\n\n")
	b.WriteString(m.passphrase.View())
	b.WriteString("\n")
	if v.Passphrase.Status != "" {
		fmt.Fprintf(&b, "\n%s %s\n", m.spinner.View(), m.styles.Muted.Render(v.Passphrase.Status))
	}
	if v.Error != "" {
		fmt.Fprintf(&b, "\n%s\n", m.styles.Error.Render(v.Error))
	}
	return b.String()
}

func (m Model) modalView(v app.View) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Submit your solution"))
	b.WriteString("\n")

	switch {
	case v.Panel != nil && v.Panel.Success:
		b.WriteString(m.styles.Pass.Render(v.Panel.Message))
		b.WriteString("\n")
	case v.Panel != nil:
		b.WriteString(m.styles.Error.Render(v.Panel.Message))
		b.WriteString("\n")
	default:
		for _, f := range m.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
		if v.Submitting {
			fmt.Fprintf(&b, "\n%s %s\n", m.spinner.View(), m.styles.Muted.Render("Submitting..."))
		}
	}

	box := m.styles.Modal
	if m.width > 8 {
		box = box.Width(m.width - 8)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(box.Render(strings.TrimRight(b.String(), "\n")))
}

// renderContent builds the scrollable instructions body.
func (m Model) renderContent(v app.View) string {
	if v.Kind != app.ViewInstructions {
		return ""
	}

	var b strings.Builder
	if v.Error != "" {
		b.WriteString(m.styles.Error.Render(v.Error))
		b.WriteString("\n\n")
	}

	b.WriteString(m.md.Render(fmt.Sprintf(introFragment, m.studentFile)))
	b.WriteString("\n")
	for _, fragment := range v.Instructions {
		b.WriteString(m.styles.RenderDivider(m.dividerWidth()))
		b.WriteString("\n")
		b.WriteString(m.md.Render(fragment))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Tests"))
	b.WriteString("\n")
	b.WriteString(m.testsView(v.Tests))
	return b.String()
}

func (m Model) testsView(t app.TestsView) string {
	if t.Running {
		return m.styles.Muted.Render("Running tests...")
	}
	if len(t.Results) == 0 {
		return m.styles.Muted.Render("No tests.")
	}

	var b strings.Builder
	for _, r := range t.Results {
		fmt.Fprintf(&b, "%s %s\n", m.styles.Check(r.Passed), r.Title)
		if !r.Passed && r.Message != "" {
			fmt.Fprintf(&b, "    %s\n", m.styles.Fail.Render(r.Message))
		}
	}
	fmt.Fprintf(&b, "\n%s, %s",
		m.styles.Pass.Render(fmt.Sprintf("%d passing", t.Passed)),
		m.styles.Fail.Render(fmt.Sprintf("%d failing", t.Failed)))
	return b.String()
}

func (m Model) dividerWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return 40
}

func (m Model) help(v app.View) string {
	switch {
	case v.ModalOpen && v.Panel != nil:
		return "enter/esc: close"
	case v.ModalOpen:
		return "tab: next field • enter: submit • esc: cancel"
	case v.Kind == app.ViewPassphrase:
		return "enter: start • esc: quit"
	case v.Kind == app.ViewInstructions:
		return "ctrl+s: submit solution • ctrl+l: reload • ctrl+r: reset passphrase • q: quit"
	default:
		return "ctrl+c: quit"
	}
}
