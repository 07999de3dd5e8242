package app

import (
	"evalclient/internal/harness"
	"evalclient/internal/types"
)

// Action is a named state transition.
type Action interface {
	actionName() string
}

type (
	// PassphraseSubmitted starts an authentication attempt.
	PassphraseSubmitted struct{}
	// SuiteFetched completes an authentication attempt. The token has
	// been persisted by the time it is reduced.
	SuiteFetched struct {
		Token string
		Suite types.Suite
	}
	// SuiteFetchFailed ends an authentication attempt with an error.
	SuiteFetchFailed struct{ Err error }

	// SessionDetected mirrors a persisted token found at startup.
	SessionDetected struct{ Token string }
	// SessionRestored delivers the suite for a detected session.
	SessionRestored struct{ Suite types.Suite }
	// SessionRestoreFailed ends startup detection with an error.
	SessionRestoreFailed struct{ Err error }
	// SessionCleared follows a passphrase reset.
	SessionCleared struct{}

	// SubmissionOpened opens the submission modal.
	SubmissionOpened struct{}
	// SubmissionStarted marks the form as sent.
	SubmissionStarted struct{}
	// SubmissionSucceeded carries the service's acceptance.
	SubmissionSucceeded struct{ Ack types.SubmissionAck }
	// SubmissionFailed carries a rejected submission.
	SubmissionFailed struct{ Err error }

	// TestsFinished delivers a harness report. It changes no state.
	TestsFinished struct{ Report harness.Report }
)

func (PassphraseSubmitted) actionName() string { return "passphrase_submitted" }
func (SuiteFetched) actionName() string { return "suite_fetched" }
func (SuiteFetchFailed) actionName() string { return "suite_fetch_failed" }
func (SessionDetected) actionName() string { return "session_detected" }
func (SessionRestored) actionName() string { return "session_restored" }
func (SessionRestoreFailed) actionName() string { return "session_restore_failed" }
func (SessionCleared) actionName() string { return "session_cleared" }
func (SubmissionOpened) actionName() string { return "submission_opened" }
func (SubmissionStarted) actionName() string { return "submission_started" }
func (SubmissionSucceeded) actionName() string { return "submission_succeeded" }
func (SubmissionFailed) actionName() string { return "submission_failed" }
func (TestsFinished) actionName() string { return "tests_finished" }

// Msg is the result of a Task, tagged with the generation that issued it.
type Msg struct {
	gen    int
	action Action
}

// Action returns the transition carried by m.
func (m Msg) Action() Action { return m.action }

// Generation returns the controller generation that issued m.
func (m Msg) Generation() int { return m.gen }
