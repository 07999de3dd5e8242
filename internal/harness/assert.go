package harness

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// T is handed to every test body.
type T struct {
	title string

	mu      sync.Mutex
	failed  bool
	stopped bool
	msgs    []string
}

// stopTest unwinds a test body after a fatal assertion.
type stopTest struct{}

// Name returns the full title of the running test.
func (t *T) Name() string { return t.title }

func (t *T) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	t.msgs = append(t.msgs, msg)
}

func (t *T) message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.msgs, "\n")
}

// Errorf records a failure and lets the test continue.
func (t *T) Errorf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
}

// Fatalf records a failure and stops the test.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
	panic(stopTest{})
}

// Failed reports whether the test has failed so far.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Equal stops the test unless got deeply equals want.
func (t *T) Equal(got, want interface{}) {
	if reflect.DeepEqual(got, want) {
		return
	}
	msg := fmt.Sprintf("AssertionError: expected %#v to equal %#v", got, want)
	if d := diff(want, got); d != "" {
		msg += "\n" + d
	}
	t.Fatalf("%s", msg)
}

// NotEqual stops the test if got deeply equals want.
func (t *T) NotEqual(got, want interface{}) {
	if !reflect.DeepEqual(got, want) {
		return
	}
	t.Fatalf("AssertionError: expected %#v to not equal %#v", got, want)
}

// True stops the test unless cond holds.
func (t *T) True(cond bool, msg string) {
	if cond {
		return
	}
	if msg == "" {
		msg = "expected false to be true"
	}
	t.Fatalf("AssertionError: %s", msg)
}

// NoError stops the test if err is non-nil.
func (t *T) NoError(err error) {
	if err == nil {
		return
	}
	t.Fatalf("AssertionError: unexpected error: %v", err)
}

// diff renders a (-want +got) diff, or "" when the values cannot be compared.
func diff(want, got interface{}) (d string) {
	defer func() {
		if recover() != nil {
			d = ""
		}
	}()
	return cmp.Diff(want, got)
}
