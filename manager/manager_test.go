package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cmtui/config"
	"cmtui/exec"
	"cmtui/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProjectsDir:    t.TempDir(),
		Command:        "cm",
		MaxConcurrent:  4,
		TimeoutSeconds: 5,
	}
}

func writeSessionLog(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	dir := cfg.SessionPath(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "session.jsonl"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const listOutput = `Claude Sessions:
  -Users-test-project (       5 sessions)
  -Users-other-project (       2 sessions)
  -Users-empty-project (       0 sessions)
Total: 7 sessions
`

func TestLoad(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{Stdout: []byte(listOutput)})

	writeSessionLog(t, cfg, "-Users-test-project",
		`{"cwd":"/Users/test/project","timestamp":"2025-04-01T09:00:00Z","message_count":42}`)

	m := NewWithExecutor(cfg, mock)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	sessions := m.Sessions()
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	first, ok := m.Get("-Users-test-project")
	if !ok {
		t.Fatal("session -Users-test-project not found")
	}
	if first.SessionCount != 5 {
		t.Errorf("SessionCount = %d, want 5", first.SessionCount)
	}
	if want := cfg.SessionPath("-Users-test-project"); first.Path != want {
		t.Errorf("Path = %q, want %q", first.Path, want)
	}
	if first.Metadata.WorkingDirectory != "/Users/test/project" {
		t.Errorf("WorkingDirectory = %q, want /Users/test/project", first.Metadata.WorkingDirectory)
	}
	if first.Metadata.TotalMessages != 42 {
		t.Errorf("TotalMessages = %d, want 42", first.Metadata.TotalMessages)
	}
}

func TestLoad_ZeroSessionCountKept(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{Stdout: []byte(listOutput)})

	m := NewWithExecutor(cfg, mock)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	empty, ok := m.Get("-Users-empty-project")
	if !ok {
		t.Fatal("zero-count session must still be included")
	}
	if empty.SessionCount != 0 {
		t.Errorf("SessionCount = %d, want 0", empty.SessionCount)
	}
}

func TestLoad_MissingMetadataIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{Stdout: []byte(listOutput)})

	// No session directories exist at all.
	m := NewWithExecutor(cfg, mock)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load should succeed without metadata: %v", err)
	}

	for _, s := range m.Sessions() {
		if s.CurrentCwd() != "" {
			t.Errorf("session %q should have empty metadata", s.Name)
		}
	}
}

func TestLoad_MalformedSessionLinesDropped(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	// The second line contains "sessions)" but fails the grammar: the name
	// and count are glued together without a parenthesized count.
	out := "  -Users-good (  1 sessions)\n  broken line sessions)\n"
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{Stdout: []byte(out)})

	m := NewWithExecutor(cfg, mock)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Len() != 1 {
		t.Errorf("expected 1 session after dropping malformed line, got %d", m.Len())
	}
}

func TestLoad_CommandFailure(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{
		Stderr: []byte("cm: store locked"),
		Err:    errors.New("exit status 1"),
	})

	m := NewWithExecutor(cfg, mock)
	err := m.Load(context.Background())
	if err == nil {
		t.Fatal("expected load failure")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("LoadError should wrap a *CommandError, got %v", err)
	}
	if cmdErr.Kind != ExecutionFailed {
		t.Errorf("Kind = %v, want ExecutionFailed", cmdErr.Kind)
	}
	if cmdErr.Stderr != "cm: store locked" {
		t.Errorf("Stderr = %q, want 'cm: store locked'", cmdErr.Stderr)
	}
}

func TestLoad_FailureKeepsPreviousSnapshot(t *testing.T) {
	cfg := testConfig(t)
	calls := 0
	scripted := executorFunc(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		calls++
		if calls == 1 {
			return []byte(listOutput), nil, nil
		}
		return nil, []byte("boom"), errors.New("exit status 1")
	})

	m := NewWithExecutor(cfg, scripted)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 sessions, got %d", m.Len())
	}

	if err := m.Load(context.Background()); err == nil {
		t.Fatal("second Load should fail")
	}
	if m.Len() != 3 {
		t.Errorf("failed reload must leave the previous snapshot untouched, got %d sessions", m.Len())
	}
}

func TestLoad_Timeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.TimeoutSeconds = 0.05

	m := NewWithExecutor(cfg, &exec.HangingExecutor{})

	start := time.Now()
	err := m.Load(context.Background())
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout failure")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("returned before the deadline: %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("timeout not enforced within a bounded margin: %v", elapsed)
	}
}

func TestLoad_ReplacesRegistryWholesale(t *testing.T) {
	cfg := testConfig(t)
	calls := 0
	scripted := executorFunc(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		calls++
		if calls == 1 {
			return []byte("  -Users-a (1 sessions)\n  -Users-b (2 sessions)\n"), nil, nil
		}
		return []byte("  -Users-c (3 sessions)\n"), nil, nil
	})

	m := NewWithExecutor(cfg, scripted)
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if m.Len() != 1 {
		t.Fatalf("expected 1 session after reload, got %d", m.Len())
	}
	if _, ok := m.Get("-Users-a"); ok {
		t.Error("stale session -Users-a should be gone after reload")
	}
	if _, ok := m.Get("-Users-c"); !ok {
		t.Error("session -Users-c should be present after reload")
	}
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)
	newDir := t.TempDir()

	writeSessionLog(t, cfg, "-Users-test-project",
		`{"cwd":"/Users/test/project","message_count":1}`)

	var migrateArgs []string
	scripted := executorFunc(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		if len(args) > 0 && args[0] == "migrate" {
			migrateArgs = args
			// The external tool rewrites the session log; simulate that so
			// the reload observes the new working directory.
			writeSessionLog(t, cfg, "-Users-test-project",
				fmt.Sprintf(`{"cwd":%q,"message_count":1}`, newDir))
			return nil, nil, nil
		}
		return []byte("  -Users-test-project (1 sessions)\n"), nil, nil
	})

	m := NewWithExecutor(cfg, scripted)
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	sess, _ := m.Get("-Users-test-project")

	result, err := m.Migrate(context.Background(), sess, newDir)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if result.ReloadErr != nil {
		t.Fatalf("reload after migrate: %v", result.ReloadErr)
	}

	want := []string{"migrate", "/Users/test/project", newDir, cfg.SessionPath("-Users-test-project")}
	if len(migrateArgs) != len(want) {
		t.Fatalf("migrate args = %v, want %v", migrateArgs, want)
	}
	for i := range want {
		if migrateArgs[i] != want[i] {
			t.Errorf("migrate arg[%d] = %q, want %q", i, migrateArgs[i], want[i])
		}
	}

	// The reloaded registry must reflect the move.
	reloaded, ok := m.Get("-Users-test-project")
	if !ok {
		t.Fatal("session missing after reload")
	}
	if reloaded.CurrentCwd() != newDir {
		t.Errorf("CurrentCwd after migrate = %q, want %q", reloaded.CurrentCwd(), newDir)
	}
}

func TestMigrate_InvalidDestination(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)

	m := NewWithExecutor(cfg, mock)
	sess, _ := m.Get("nope")

	_, err := m.Migrate(context.Background(), sess, "/definitely/not/a/real/dir")
	if err == nil {
		t.Fatal("expected migration failure for invalid destination")
	}
	var migErr *MigrationError
	if !errors.As(err, &migErr) {
		t.Fatalf("expected *MigrationError, got %T", err)
	}

	// The pre-check must reject before any command runs.
	if got := len(mock.GetCalls()); got != 0 {
		t.Errorf("no command should have been invoked, got %d calls", got)
	}
}

func TestMigrate_DestinationFileNotDir(t *testing.T) {
	cfg := testConfig(t)
	filePath := filepath.Join(t.TempDir(), "a-file")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewWithExecutor(cfg, exec.NewMockExecutor(nil))
	_, err := m.Migrate(context.Background(), mustSession(m), filePath)
	if err == nil {
		t.Error("a plain file must not validate as a destination directory")
	}
}

func TestMigrate_EmptyDestinationValid(t *testing.T) {
	if err := ValidateDestination(""); err != nil {
		t.Errorf("empty destination should validate (means no recorded cwd): %v", err)
	}
}

func TestMigrate_CommandFailure(t *testing.T) {
	cfg := testConfig(t)
	newDir := t.TempDir()
	mock := exec.NewMockExecutor(nil)
	mock.AddPrefixMatch("cm", []string{"migrate"}, exec.MockResponse{
		Stderr: []byte("no such session"),
		Err:    errors.New("exit status 2"),
	})

	m := NewWithExecutor(cfg, mock)
	_, err := m.Migrate(context.Background(), mustSession(m), newDir)
	if err == nil {
		t.Fatal("expected migration failure")
	}
	var migErr *MigrationError
	if !errors.As(err, &migErr) {
		t.Fatalf("expected *MigrationError, got %T", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("MigrationError should wrap a *CommandError")
	}
}

func TestMigrate_ReloadFailureReportedSeparately(t *testing.T) {
	cfg := testConfig(t)
	newDir := t.TempDir()
	scripted := executorFunc(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		if len(args) > 0 && args[0] == "migrate" {
			return nil, nil, nil
		}
		return nil, []byte("boom"), errors.New("exit status 1")
	})

	m := NewWithExecutor(cfg, scripted)
	result, err := m.Migrate(context.Background(), mustSession(m), newDir)
	if err != nil {
		t.Fatalf("migration itself succeeded and must not fail: %v", err)
	}
	if result.ReloadErr == nil {
		t.Error("reload failure should be surfaced on the result")
	}
}

func TestSearch_UsesCurrentSnapshot(t *testing.T) {
	cfg := testConfig(t)
	mock := exec.NewMockExecutor(nil)
	mock.AddExactMatch("cm", []string{"list"}, exec.MockResponse{
		Stdout: []byte("  -Users-test-widgets (1 sessions)\n"),
	})

	m := NewWithExecutor(cfg, mock)
	if results := m.Search("widgets"); len(results) != 0 {
		t.Errorf("empty registry should yield no results, got %d", len(results))
	}

	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if results := m.Search("widgets"); len(results) != 1 {
		t.Errorf("expected 1 result after load, got %d", len(results))
	}
}

// executorFunc adapts a function to exec.CommandExecutor for scripted tests.
type executorFunc func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

func (f executorFunc) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f(ctx, name, args...)
}

func (f executorFunc) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	stdout, _, err := f(ctx, name, args...)
	return stdout, err
}

// mustSession returns a throwaway session value for migrate tests that
// don't depend on registry state.
func mustSession(m *Manager) session.Session {
	return session.Session{
		Name: "-Users-x",
		Path: m.cfg.SessionPath("-Users-x"),
	}
}
