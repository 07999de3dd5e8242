package app

import "evalclient/internal/harness"

// ViewKind selects what the presenter draws.
type ViewKind int

const (
	ViewBlank ViewKind = iota
	// ViewRestoring is shown while a persisted session is checked at startup.
	ViewRestoring
	ViewPassphrase
	ViewInstructions
	// ViewSubmissionResult only replaces the submission panel; the rest of
	// the previous view stays as it was.
	ViewSubmissionResult
)

func (k ViewKind) String() string {
	switch k {
	case ViewRestoring:
		return "restoring"
	case ViewPassphrase:
		return "passphrase"
	case ViewInstructions:
		return "instructions"
	case ViewSubmissionResult:
		return "submission_result"
	default:
		return "blank"
	}
}

// StatusContacting is shown while a passphrase is being checked.
const StatusContacting = "Contacting server..."

// SubmissionAccepted is shown when the service accepts a solution.
const SubmissionAccepted = "Thank you! Your solution was submitted for review."

// View is the declarative description of what to draw.
type View struct {
	Kind ViewKind
	// Reload asks for a full reload; nothing else in the view is meaningful.
	Reload bool

	Passphrase PassphraseView

	// Instructions holds each test case's markup in suite order.
	Instructions []string
	// RunTests asks the controller to load the suite into the harness.
	RunTests bool

	ModalOpen  bool
	Submitting bool
	Panel      *SubmissionPanel

	// Error is the inline error slot; empty clears it.
	Error string

	// Tests is filled by the Controller once the harness has run.
	Tests TestsView
}

// PassphraseView describes the passphrase form.
type PassphraseView struct {
	SubmitDisabled bool
	Status         string
}

// SubmissionPanel is the result panel inside the submission modal.
type SubmissionPanel struct {
	Success bool
	Message string
}

// TestsView carries the harness output for the instructions view.
type TestsView struct {
	Running bool
	Results []harness.Result
	Passed  int
	Failed  int
}

// Render describes the view for s. It is pure: equal states give equal
// views.
func Render(s State) View {
	var v View

	switch {
	case s.SessionJustChanged:
		return View{Reload: true}

	case s.SubmissionModalOpen && s.SubmissionResult != nil:
		v.Kind = ViewSubmissionResult
		v.ModalOpen = true
		v.Panel = &SubmissionPanel{Success: s.SubmissionResult.Succeeded(), Message: s.SubmissionResult.Message}
		if v.Panel.Success {
			v.Panel.Message = SubmissionAccepted
		}

	case s.Session.Present:
		v.Kind = ViewInstructions
		v.Instructions = make([]string, 0, len(s.TestSuite))
		for _, tc := range s.TestSuite {
			v.Instructions = append(v.Instructions, tc.InstructionsMarkup)
		}
		v.RunTests = true
		v.ModalOpen = s.SubmissionModalOpen
		v.Submitting = s.SubmissionInFlight

	default:
		v.Kind = ViewPassphrase
		if s.TokenFetchInFlight {
			v.Passphrase = PassphraseView{SubmitDisabled: true, Status: StatusContacting}
		}
	}

	if s.Error != nil {
		v.Error = s.Error.Message
	}
	return v
}
