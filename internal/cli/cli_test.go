package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/pimemory/internal/config"
	"github.com/lazypower/pimemory/internal/hooks"
)

type cliEnv struct {
	globalPath  string
	projectDir  string
	projectPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		globalPath: filepath.Join(dir, "home", ".pi", "memory.md"),
		projectDir: filepath.Join(dir, "repo"),
	}
	env.projectPath = filepath.Join(env.projectDir, ".pi", "memory.md")

	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv(config.EnvConfig, filepath.Join(dir, "absent.yaml"))
	t.Setenv(config.EnvGlobal, env.globalPath)
	t.Setenv(config.EnvProjectFile, "")
	t.Setenv(config.EnvLogLevel, "")
	return env
}

// run executes the command tree with args and returns stdout.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--cwd", e.projectDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRememberGlobal(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "remember", "--scope", "global", "--category", "Tools", "--date", "2024-06-01", "uses", "ripgrep")
	require.NoError(t, err)
	assert.Equal(t, "✓ Remembered in global memory under \"Tools\":\nuses ripgrep\n", out)

	content := env.read(t, env.globalPath)
	assert.Contains(t, content, "## Tools\n\n- uses ripgrep _(2024-06-01)_\n\n## Preferences")
}

func TestRememberProjectJSON(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "remember", "-s", "project", "-c", "Gotchas", "--date", "2024-06-01", "--json", "tests require network")
	require.NoError(t, err)

	var result rememberResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "project", result.Scope)
	assert.Equal(t, "Gotchas", result.Category)
	assert.Equal(t, "tests require network", result.Entry)
	assert.Equal(t, env.projectPath, result.File)
	assert.Equal(t, 1, result.Entries)
	assert.Empty(t, result.Error)

	assert.True(t, strings.HasSuffix(env.read(t, env.projectPath), "## Gotchas\n\n- tests require network _(2024-06-01)_\n"))
}

func TestRememberReportsStoredText(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "remember", "-s", "global", "-c", " Tools ", "--date", "2024-06-01", "--json", "  run `make  test`\n")
	require.NoError(t, err)

	var result rememberResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Tools", result.Category)
	assert.Equal(t, "run `make  test`", result.Entry)
	assert.Contains(t, env.read(t, env.globalPath), "- "+result.Entry+" _(2024-06-01)_\n")

	out, err = env.run(t, "", "remember", "-s", "global", "-c", "Tools", "--date", "2024-06-01", " second\tfact ")
	require.NoError(t, err)
	assert.Equal(t, "✓ Remembered in global memory under \"Tools\":\nsecond\tfact\n", out)
}

func TestRememberRejectsBadInput(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "", "remember", "--scope", "team", "--category", "Tools", "x")
	assert.Error(t, err)

	_, err = env.run(t, "", "remember", "--scope", "global", "--category", "Tools", "--date", "June 1", "x")
	assert.Error(t, err)

	_, err = env.run(t, "", "remember", "--scope", "global", "x")
	assert.Error(t, err, "category is required")

	_, err = os.Stat(env.globalPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRememberWriteFailureJSON(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "init", "--scope", "global")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(env.globalPath+".tmp", 0o755))

	out, err := env.run(t, "", "remember", "-s", "global", "-c", "Tools", "--json", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save memory")

	var result rememberResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.File)
}

func TestView(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "view")
	require.NoError(t, err)
	assert.Equal(t, "📝 No global memory found\n\n📝 No project memory found\n", out)

	_, err = env.run(t, "", "remember", "-s", "project", "-c", "Style", "--date", "2024-06-01", "short names")
	require.NoError(t, err)

	out, err = env.run(t, "", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "📝 Project Memory ("+env.projectPath+"):\n")
	assert.Contains(t, out, "## Style\n\n- short names _(2024-06-01)_\n")
}

func TestInit(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created global memory: "+env.globalPath)
	assert.Contains(t, out, "Created project memory: "+env.projectPath)
	first := env.read(t, env.globalPath)

	out, err = env.run(t, "", "init", "--scope", "global")
	require.NoError(t, err)
	assert.Equal(t, "Global memory already exists: "+env.globalPath+"\n", out)
	assert.Equal(t, first, env.read(t, env.globalPath))

	_, err = env.run(t, "", "init", "--scope", "nowhere")
	assert.Error(t, err)
}

func TestHookStart(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "", "remember", "-s", "global", "-c", "Tools", "--date", "2024-06-01", "uses jq")
	require.NoError(t, err)

	out, err := env.run(t, `{"session_id":"abc","cwd":"`+env.projectDir+`"}`, "hook", "start")
	require.NoError(t, err)

	var parsed hooks.SessionStartOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed.HookSpecificOutput.AdditionalContext, "=== GLOBAL MEMORY ("+env.globalPath+") ===")
	assert.Contains(t, parsed.HookSpecificOutput.AdditionalContext, "- uses jq _(2024-06-01)_")
	assert.Equal(t, "📝 Memory loaded: global", parsed.SystemMessage)
}

func TestHookStartSurvivesBrokenConfig(t *testing.T) {
	env := newCLIEnv(t)
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("memory: [unclosed"), 0o644))

	out, err := env.run(t, "", "--config", bad, "hook", "start")
	require.NoError(t, err)

	var parsed hooks.SessionStartOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "SessionStart", parsed.HookSpecificOutput.HookEventName)

	_, err = env.run(t, "", "--config", bad, "view")
	assert.Error(t, err, "regular commands report config errors")
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "pimemory dev (commit: unknown, built: unknown)\n", out)
}
