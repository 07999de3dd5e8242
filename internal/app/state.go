// Package app holds the client's state machine: the State aggregate, the
// reducer that applies named transitions to it, the pure Render function
// and the Controller that wires user actions, network tasks and the
// full-reload policy together.
package app

import "evalclient/internal/types"

// Session mirrors the persisted token slot.
type Session struct {
	Token   string
	Present bool
}

// SubmissionResult is the outcome of the last solution submission.
type SubmissionResult struct {
	StatusCode int
	Message    string // server-provided message, empty when absent
}

// Succeeded reports whether the service accepted the submission.
func (r SubmissionResult) Succeeded() bool { return r.StatusCode == 201 }

// State is the single source of truth for one controller generation.
// It is discarded, never reset in place, on a full reload.
type State struct {
	Session             Session
	SessionJustChanged  bool
	TokenFetchInFlight  bool
	Error               *AppError
	TestSuite           types.Suite
	SubmissionModalOpen bool
	SubmissionResult    *SubmissionResult
	SubmissionInFlight  bool
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.TestSuite = s.TestSuite.Clone()
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	if s.SubmissionResult != nil {
		r := *s.SubmissionResult
		out.SubmissionResult = &r
	}
	return out
}
