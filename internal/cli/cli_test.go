package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/ui"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// isolate clears TODO_* overrides, moves into an empty directory so no
// todo.toml is picked up, and uses the counter clock for stable heights.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"TODO_CONFIG", "TODO_BACKEND", "TODO_DATA_DIR", "TODO_AUTO_INIT", "TODO_CLOCK_START",
		"TODO_THEME", "TODO_FORMAT", "TODO_GROUP", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("TODO_CLOCK", "counter")
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() {
		ui.SetTheme("classic")
		ui.SetColorForcing(false, false)
	})
	return dir
}

func run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append(args, "--data-dir", dir, "--theme", "mono")
	code := Execute(context.Background(), "1.2.3", args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

type listed struct {
	Status string `json:"status"`
	Data   []struct {
		ID        int     `json:"id"`
		Title     string  `json:"title"`
		Done      bool    `json:"done"`
		CreatedAt uint64  `json:"created_at"`
		UpdatedAt *uint64 `json:"updated_at"`
	} `json:"data"`
}

func list(t *testing.T, dir string, extra ...string) listed {
	t.Helper()
	r := run(t, dir, append([]string{"ls", "--format", "json"}, extra...)...)
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	var l listed
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &l), r.stdout)
	require.Equal(t, "ok", l.Status)
	return l
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand("dev")
	require.NotNil(t, cmd)
	assert.Equal(t, "todo", cmd.Use)

	for _, name := range []string{"init", "add", "done", "rm", "ls", "tui", "exec", "query", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, flag := range []string{"config", "data-dir", "backend", "format", "theme", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestAddToggleList(t *testing.T) {
	dir := isolate(t)

	r := run(t, dir, "add", "buy", "milk")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "x added\n", r.stdout)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "call mom").code)

	r = run(t, dir, "done", "2")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "x toggled\n", r.stdout)

	l := list(t, dir)
	require.Len(t, l.Data, 2)
	assert.Equal(t, 1, l.Data[0].ID)
	assert.Equal(t, "buy milk", l.Data[0].Title)
	assert.False(t, l.Data[0].Done)
	assert.Equal(t, uint64(1), l.Data[0].CreatedAt)
	assert.Nil(t, l.Data[0].UpdatedAt)

	assert.Equal(t, 2, l.Data[1].ID)
	assert.True(t, l.Data[1].Done)
	assert.Equal(t, uint64(2), l.Data[1].CreatedAt)
	require.NotNil(t, l.Data[1].UpdatedAt)
	assert.Equal(t, uint64(3), *l.Data[1].UpdatedAt)

	// the document on disk omits updated_at for untouched tasks
	raw, err := os.ReadFile(filepath.Join(dir, "todolist.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(raw, []byte("updated_at")))
}

func TestRemoveRenumbers(t *testing.T) {
	dir := isolate(t)
	for _, title := range []string{"a", "b", "c"} {
		require.Equal(t, ExitSuccess, run(t, dir, "add", title).code)
	}

	r := run(t, dir, "rm", "1")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "x removed\n", r.stdout)

	l := list(t, dir)
	require.Len(t, l.Data, 2)
	assert.Equal(t, "b", l.Data[0].Title)
	assert.Equal(t, 1, l.Data[0].ID)
	assert.Equal(t, "c", l.Data[1].Title)
}

func TestExecAndQuery(t *testing.T) {
	dir := isolate(t)

	r := run(t, dir, "exec", `{"add":{"title":"a"}}`)
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "x executed add\n", r.stdout)

	require.Equal(t, ExitSuccess, run(t, dir, "exec", `{"add":{"title":"b"}}`).code)
	require.Equal(t, ExitSuccess, run(t, dir, "exec", `{"update":{"id":2}}`).code)
	require.Equal(t, ExitSuccess, run(t, dir, "exec", `{"remove":{"id":1}}`).code)

	r = run(t, dir, "query", `{"list":{}}`)
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.JSONEq(t, `[{"title":"b","done":true,"created_at":2,"updated_at":3}]`, r.stdout)
}

func TestExecResponseJSON(t *testing.T) {
	dir := isolate(t)
	r := run(t, dir, "exec", `{"add":{"title":"a"}}`, "--format", "json")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.JSONEq(t, `{"status":"ok","data":{"attributes":[{"key":"method","value":"add"}]}}`, r.stdout)
}

func TestNormalizesTitle(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "cafe\u0301").code)

	l := list(t, dir)
	require.Len(t, l.Data, 1)
	assert.Equal(t, "caf\u00e9", l.Data[0].Title)
}

func TestExitCodes(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "a").code)

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"zero id", []string{"done", "0"}, ExitUsage, "invalid_input"},
		{"past end", []string{"rm", "2"}, ExitUsage, "not_found"},
		{"not a number", []string{"done", "two"}, ExitUsage, "not a number: two"},
		{"id past 32 bits", []string{"rm", "99999999999"}, ExitUsage, "not_found: rm: not found: id 99999999999 out of range"},
		{"empty title", []string{"add", ""}, ExitUsage, "invalid_input"},
		{"missing arg", []string{"done"}, ExitUsage, "accepts 1 arg"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "unknown command"},
		{"unknown flag", []string{"ls", "--nope"}, ExitUsage, "unknown flag"},
		{"bad format", []string{"ls", "--format", "xml"}, ExitUsage, "invalid format"},
		{"bad message", []string{"exec", `{"bogus":{}}`}, ExitUsage, "invalid_input"},
		{"two variants", []string{"exec", `{"add":{"title":"x"},"remove":{"id":1}}`}, ExitUsage, "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, dir, tt.args...)
			assert.Equal(t, tt.code, r.code)
			assert.Contains(t, r.stderr, tt.stderr)
		})
	}

	// failures leave the list untouched
	l := list(t, dir)
	require.Len(t, l.Data, 1)
	assert.Equal(t, "a", l.Data[0].Title)
	assert.False(t, l.Data[0].Done)
}

func TestNotFoundHint(t *testing.T) {
	dir := isolate(t)
	r := run(t, dir, "done", "3")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, "not_found")
	assert.Contains(t, r.stderr, "todo ls")
}

func TestErrorJSON(t *testing.T) {
	dir := isolate(t)
	r := run(t, dir, "done", "7", "--format", "json")
	assert.Equal(t, ExitUsage, r.code)
	assert.Empty(t, r.stderr)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestAutoInitDisabled(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODO_AUTO_INIT", "false")

	r := run(t, dir, "ls")
	assert.Equal(t, ExitFailure, r.code)
	assert.Contains(t, r.stderr, "document_missing")
	assert.Contains(t, r.stderr, "todo init")

	r = run(t, dir, "init")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "x initialized\n", r.stdout)

	assert.Empty(t, list(t, dir).Data)
}

func TestInitResets(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "a").code)
	require.Equal(t, ExitSuccess, run(t, dir, "init").code)
	assert.Empty(t, list(t, dir).Data)
}

func TestMalformedDocument(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todolist.json"), []byte(`{"items":[{"title":""}]}`), 0o644))

	r := run(t, dir, "add", "x")
	assert.Equal(t, ExitFailure, r.code)
	assert.Contains(t, r.stderr, "storage_failure")
}

func TestVersion(t *testing.T) {
	dir := isolate(t)

	r := run(t, dir, "version")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "binary    1.2.3")
	assert.Contains(t, r.stdout, "(not initialized)")

	require.Equal(t, ExitSuccess, run(t, dir, "add", "a").code)
	r = run(t, dir, "version", "--format", "json")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.JSONEq(t, `{"status":"ok","data":{"binary":"1.2.3","contract":"todolist","version":"1.2.3"}}`, r.stdout)
}

func TestBackends(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		dir := isolate(t)
		require.Equal(t, ExitSuccess, run(t, dir, "add", "a", "--backend", "sqlite").code)
		require.Equal(t, ExitSuccess, run(t, dir, "add", "b", "--backend", "sqlite").code)

		l := list(t, dir, "--backend", "sqlite")
		require.Len(t, l.Data, 2)
		assert.Equal(t, "b", l.Data[1].Title)
		assert.FileExists(t, filepath.Join(dir, "todolist.db"))
		assert.NoFileExists(t, filepath.Join(dir, "todolist.json"))
	})

	t.Run("memory", func(t *testing.T) {
		dir := isolate(t)
		require.Equal(t, ExitSuccess, run(t, dir, "add", "a", "--backend", "memory").code)
		// nothing outlives the process
		assert.Empty(t, list(t, dir, "--backend", "memory").Data)
		assert.NoFileExists(t, filepath.Join(dir, "todolist.json"))
	})
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile("todo.toml", []byte("backend = \"sqlite\"\nformat = \"yaml\"\n"), 0o644))

	require.Equal(t, ExitSuccess, run(t, dir, "add", "a").code)
	assert.FileExists(t, filepath.Join(dir, "todolist.db"))

	r := run(t, dir, "ls")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "status: ok")
	assert.Contains(t, r.stdout, "id: 1")
	assert.Contains(t, r.stdout, "title: a")
	assert.NotContains(t, r.stdout, "updated_at")

	// flags win over the file
	r = run(t, dir, "ls", "--format", "text")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, " 1. [ ] a")
}

func TestConfigFileUnknownKey(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("colour = \"red\"\n"), 0o644))

	r := run(t, dir, "ls", "--config", path)
	assert.Equal(t, ExitFailure, r.code)
	assert.Contains(t, r.stderr, "colour")
}

func TestListText(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "a").code)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "b").code)
	require.Equal(t, ExitSuccess, run(t, dir, "done", "1").code)

	r := run(t, dir, "ls", "--group")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Todos  x 1  - 1  Total 2")
	assert.Contains(t, r.stdout, "Pending")
	assert.Contains(t, r.stdout, " 1. [x] a")
	assert.Contains(t, r.stdout, " 2. [ ] b")
}

func TestCounterResumesAboveStoredHeights(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODO_CLOCK_START", "99")

	require.Equal(t, ExitSuccess, run(t, dir, "add", "buy milk").code)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "call mom").code)

	l := list(t, dir)
	require.Len(t, l.Data, 2)
	assert.Equal(t, uint64(100), l.Data[0].CreatedAt)
	assert.Equal(t, uint64(101), l.Data[1].CreatedAt)
}

func TestUnixClockResumesAboveStoredHeights(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TODO_CLOCK", "unix")

	// stamped by a clock far ahead of this one
	const future = 1 << 40
	doc := `{"items":[{"title":"a","done":false,"created_at":1099511627776}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todolist.json"), []byte(doc), 0o644))

	r := run(t, dir, "done", "1")
	require.Equal(t, ExitSuccess, r.code, r.stderr)
	require.Equal(t, ExitSuccess, run(t, dir, "add", "b").code)

	l := list(t, dir)
	require.Len(t, l.Data, 2)
	require.NotNil(t, l.Data[0].UpdatedAt)
	assert.Equal(t, uint64(future), *l.Data[0].UpdatedAt)
	assert.Equal(t, uint64(future), l.Data[1].CreatedAt)
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir on Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
