package app

// Reduce applies a to s.
func Reduce(s *State, a Action) {
	switch a := a.(type) {
	case PassphraseSubmitted:
		s.Error = nil
		s.TokenFetchInFlight = true

	case SuiteFetched:
		s.TokenFetchInFlight = false
		s.Error = nil
		s.Session = Session{Token: a.Token, Present: true}
		s.SessionJustChanged = true
		s.TestSuite = a.Suite.Clone()

	case SuiteFetchFailed:
		s.TokenFetchInFlight = false
		s.Error = ClassifyFetchError(a.Err)

	case SessionDetected:
		s.Session = Session{Token: a.Token, Present: true}

	case SessionRestored:
		s.Error = nil
		s.TestSuite = a.Suite.Clone()

	case SessionRestoreFailed:
		s.Error = &AppError{Kind: RestoreError, Message: MsgRestoreFailed}
		s.TestSuite = nil

	case SessionCleared:
		s.Session = Session{}
		s.TestSuite = nil
		s.Error = nil

	case SubmissionOpened:
		s.SubmissionModalOpen = true

	case SubmissionStarted:
		s.SubmissionInFlight = true

	case SubmissionSucceeded:
		s.SubmissionInFlight = false
		s.SubmissionResult = &SubmissionResult{StatusCode: a.Ack.StatusCode}

	case SubmissionFailed:
		s.SubmissionInFlight = false
		r := ClassifySubmissionError(a.Err)
		s.SubmissionResult = &r
	}
}
