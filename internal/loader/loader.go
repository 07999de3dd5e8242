// Package loader turns a test suite into registered harness tests. Every
// script runs in its own yaegi interpreter together with the learner's
// solution source and sees the harness only through the exercise package.
package loader

import (
	"context"
	"fmt"
	"time"

	"evalclient/internal/harness"
	"evalclient/internal/logging"
	"evalclient/internal/types"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// DefaultScriptTimeout bounds the evaluation of one script.
const DefaultScriptTimeout = 5 * time.Second

// SourceFunc returns the learner's solution source.
type SourceFunc func() (string, error)

// Options configures a Loader.
type Options struct {
	// Student supplies the solution evaluated ahead of every script. Nil
	// means scripts run without a solution.
	Student SourceFunc
	// AllowedImports lists the stdlib packages scripts may import in
	// addition to exercise.
	AllowedImports []string
	ScriptTimeout  time.Duration
}

// Loader compiles scripts into a single harness. The harness registry only
// grows: calling Load twice on one Loader registers every test twice.
type Loader struct {
	h       *harness.Harness
	student SourceFunc
	allowed map[string]bool
	timeout time.Duration
}

// New creates a loader registering into h.
func New(h *harness.Harness, opts Options) *Loader {
	if opts.ScriptTimeout <= 0 {
		opts.ScriptTimeout = DefaultScriptTimeout
	}
	l := &Loader{
		h:       h,
		student: opts.Student,
		allowed: allowSet(opts.AllowedImports),
		timeout: opts.ScriptTimeout,
	}
	logging.LoaderDebug("loader ready: timeout=%s imports=%v", l.timeout, sortedKeys(l.allowed))
	return l
}

// Harness returns the harness the loader registers into.
func (l *Loader) Harness() *harness.Harness { return l.h }

// Load executes every script of suite in order, then runs the harness once.
// A script that fails becomes a failing entry titled after its test case;
// the scripts after it are still loaded.
func (l *Loader) Load(ctx context.Context, suite types.Suite) harness.Report {
	student := l.studentSource()

	for i, tc := range suite {
		title := fmt.Sprintf("test case %d", i+1)
		before := l.h.Len()
		if err := l.loadScript(ctx, student, tc.ExecutableScript); err != nil {
			logging.Get(logging.CategoryLoader).Warn("%s failed to load: %v", title, err)
			l.h.ReportFailure(title, err)
			continue
		}
		logging.LoaderDebug("%s registered %d tests", title, l.h.Len()-before)
	}

	logging.Loader("loaded %d scripts, %d registered entries", len(suite), l.h.Len())
	return l.h.Run(ctx)
}

func (l *Loader) studentSource() string {
	if l.student == nil {
		return ""
	}
	src, err := l.student()
	if err != nil {
		logging.Get(logging.CategoryLoader).Warn("student source unavailable: %v", err)
		return ""
	}
	return src
}

func (l *Loader) loadScript(ctx context.Context, student, script string) error {
	script = wrapCode(script)
	if err := validateImports(script, l.allowed); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("failed to load stdlib: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return fmt.Errorf("failed to load exercise package: %w", err)
	}

	if student != "" {
		src, err := prepareSolution(student)
		if err != nil {
			return err
		}
		if _, err := i.EvalWithContext(ctx, src); err != nil {
			return fmt.Errorf("solution: %w", err)
		}
	}
	if _, err := i.EvalWithContext(ctx, script); err != nil {
		return err
	}

	v, err := i.Eval("main.Register")
	if err != nil {
		return fmt.Errorf("Register function not found: %w", err)
	}
	register, ok := v.Interface().(func(*harness.Registrar))
	if !ok {
		return fmt.Errorf("Register has incorrect signature (expected: func(*exercise.Registrar))")
	}

	return l.register(ctx, register)
}

// register calls the script's Register under the script timeout. Tests
// registered before a panic or timeout stay registered.
func (l *Loader) register(ctx context.Context, register func(*harness.Registrar)) error {
	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("%v", r)
			}
		}()
		register(l.h.Registrar())
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("script timed out: %w", ctx.Err())
	}
}
