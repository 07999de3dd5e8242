package app

import "evalclient/internal/logging"

// SubmissionOptions describes the submission form.
type SubmissionOptions struct {
	// Fields are the named inputs of the form, in display order.
	Fields []string
	// CodeField, when set, carries the solution source.
	CodeField string
}

// Form holds the values typed into the submission form, keyed by field
// name.
type Form map[string]string

// Payload serializes the form for the service: every configured field,
// empty when left blank, plus the solution source under CodeField.
func (f Form) Payload(opts SubmissionOptions, student func() (string, error)) map[string]string {
	payload := make(map[string]string, len(opts.Fields)+1)
	for _, name := range opts.Fields {
		payload[name] = f[name]
	}

	if opts.CodeField == "" || student == nil {
		return payload
	}
	src, err := student()
	if err != nil {
		logging.Get(logging.CategorySubmission).Warn("solution not attached: %v", err)
		return payload
	}
	payload[opts.CodeField] = src
	return payload
}
