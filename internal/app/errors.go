package app

import (
	"errors"

	"evalclient/internal/api"
)

// ErrorKind discriminates user-visible failures.
type ErrorKind int

const (
	AuthError ErrorKind = iota + 1
	ServerError
	UnknownError
	SubmissionError
	RestoreError
)

func (k ErrorKind) String() string {
	switch k {
	case AuthError:
		return "auth"
	case ServerError:
		return "server"
	case UnknownError:
		return "unknown"
	case SubmissionError:
		return "submission"
	case RestoreError:
		return "restore"
	default:
		return "none"
	}
}

// User-visible messages.
const (
	MsgIncorrectPassphrase = "Incorrect passphrase"
	MsgInternalServerError = "Internal Server Error"
	MsgUnknownError        = "Unknown error"
	MsgRestoreFailed       = "Server error"
)

// AppError is the value held in the inline error slot.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string { return e.Message }

// ClassifyFetchError maps a failed suite fetch to its user-visible error.
func ClassifyFetchError(err error) *AppError {
	switch {
	case api.IsUnauthorized(err):
		return &AppError{Kind: AuthError, Message: MsgIncorrectPassphrase}
	case api.IsServerFault(err):
		return &AppError{Kind: ServerError, Message: MsgInternalServerError}
	default:
		return &AppError{Kind: UnknownError, Message: MsgUnknownError}
	}
}

// ClassifySubmissionError maps a failed submission to its result. The
// server's message is kept verbatim; a failure without any response is
// reported as an unknown error.
func ClassifySubmissionError(err error) SubmissionResult {
	var se *api.StatusError
	if !errors.As(err, &se) {
		return SubmissionResult{Message: MsgUnknownError}
	}
	if se.StatusCode == 0 {
		return SubmissionResult{Message: MsgUnknownError}
	}
	return SubmissionResult{StatusCode: se.StatusCode, Message: se.Message}
}
