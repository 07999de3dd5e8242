package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func resetForTest(t *testing.T) {
	t.Helper()
	CloseAll()
	optsMu.Lock()
	opts = Options{}
	logsDir = ""
	logLevel = LevelInfo
	optsMu.Unlock()
	t.Cleanup(CloseAll)
}

func readLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, date+"_"+string(cat)+".log"))
	if err != nil {
		t.Fatalf("Failed to read %s log: %v", cat, err)
	}
	return string(data)
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot,
		CategorySession,
		CategoryAPI,
		CategoryLoader,
		CategoryHarness,
		CategoryRender,
		CategorySubmission,
		CategoryWorkspace,
	}

	for _, cat := range categories {
		l := Get(cat)
		l.Info("info for %s", cat)
		l.Debug("debug for %s", cat)
		l.Warn("warn for %s", cat)
		l.Error("error for %s", cat)
	}

	for _, cat := range categories {
		content := readLog(t, dir, cat)
		for _, level := range []string{"[INFO]", "[DEBUG]", "[WARN]", "[ERROR]"} {
			if !strings.Contains(content, level) {
				t.Errorf("%s log missing %s entry", cat, level)
			}
		}
	}
}

func TestProductionModeWritesNothing(t *testing.T) {
	resetForTest(t)
	dir := filepath.Join(t.TempDir(), "logs")

	if err := Initialize(dir, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Session("should not be written")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected no logs directory in production mode, stat err = %v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()

	err := Initialize(dir, Options{
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api category should be disabled")
	}
	if !IsCategoryEnabled(CategoryLoader) {
		t.Error("unlisted categories default to enabled")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	l := Get(CategoryHarness)
	l.Info("hidden")
	l.Warn("shown")

	content := readLog(t, dir, CategoryHarness)
	if strings.Contains(content, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(content, "shown") {
		t.Error("warn message missing")
	}
}

func TestJSONFormat(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true, JSONFormat: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Get(CategoryAPI).StructuredLog("info", "GET /api/tests", map[string]interface{}{"request_id": "abc"})

	content := readLog(t, dir, CategoryAPI)
	if !strings.Contains(content, `"req":"abc"`) {
		t.Errorf("expected request id in JSON entry, got %s", content)
	}
	if !strings.Contains(content, `"cat":"api"`) {
		t.Errorf("expected category in JSON entry, got %s", content)
	}
}

func TestConcurrentGet(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()

	if err := Initialize(dir, Options{DebugMode: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Get(CategoryRender).Info("render %d", i)
		}(i)
	}
	wg.Wait()

	loggersMu.RLock()
	defer loggersMu.RUnlock()
	if _, ok := loggers[CategoryRender]; !ok {
		t.Error("expected a cached render logger")
	}
}

func TestInitializeRequiresDir(t *testing.T) {
	resetForTest(t)
	if err := Initialize("", Options{}); err == nil {
		t.Error("expected error for empty dir")
	}
}
