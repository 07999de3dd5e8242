// Package types holds the domain values shared by the api, loader and app packages.
package types

import (
	"encoding/json"
	"fmt"
)

// TestCase is one exercise: the instructions shown to the learner and the
// script that registers its tests with the harness.
type TestCase struct {
	InstructionsMarkup string `json:"instructionsMarkup"`
	ExecutableScript   string `json:"executableScript"`
}

// UnmarshalJSON accepts the descriptive field names as well as the short
// ones the evaluation service emits ("instr", "script").
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	var raw struct {
		InstructionsMarkup *string `json:"instructionsMarkup"`
		ExecutableScript   *string `json:"executableScript"`
		Instr              *string `json:"instr"`
		Script             *string `json:"script"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.InstructionsMarkup != nil:
		tc.InstructionsMarkup = *raw.InstructionsMarkup
	case raw.Instr != nil:
		tc.InstructionsMarkup = *raw.Instr
	}

	switch {
	case raw.ExecutableScript != nil:
		tc.ExecutableScript = *raw.ExecutableScript
	case raw.Script != nil:
		tc.ExecutableScript = *raw.Script
	default:
		return fmt.Errorf("test case has no script")
	}
	return nil
}

// Suite is an ordered sequence of test cases. Display order is execution order.
type Suite []TestCase

// Clone returns a copy that shares no backing array with s.
func (s Suite) Clone() Suite {
	if s == nil {
		return nil
	}
	out := make(Suite, len(s))
	copy(out, s)
	return out
}

// SubmissionAck is the service's acceptance of a submitted solution.
type SubmissionAck struct {
	StatusCode int
}
