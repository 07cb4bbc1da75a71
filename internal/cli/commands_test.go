package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/rv/internal/cli"
	"github.com/hbjs97/rv/internal/store"
	"github.com/hbjs97/rv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv는 임시 설정, 데이터 디렉토리, rv.toml이 있는 프로젝트 디렉토리를 묶는다.
type testEnv struct {
	app          *cli.App
	settingsPath string
	dataDir      string
	project      string
	cwd          string
	vars         map[string]string
	forms        *testutil.FakeForms
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	settingsPath, dataDir := testutil.SetupSettings(t)
	e := &testEnv{
		settingsPath: settingsPath,
		dataDir:      dataDir,
		project:      testutil.TempProfileDir(t, testutil.SampleProfiles),
		vars:         map[string]string{"HOME": "/nonexistent-home"},
		forms:        testutil.NewFakeForms(""),
	}
	e.cwd = e.project
	e.app = &cli.App{
		SettingsPath: settingsPath,
		Getwd:        func() (string, error) { return e.cwd, nil },
		Environ:      e.environ,
		Forms:        e.forms,
		Logger:       zap.NewNop(),
	}
	return e
}

func (e *testEnv) environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	return out
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := e.app.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err)
	return out
}

func (e *testEnv) store(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Load(store.DefaultPath(e.dataDir))
	require.NoError(t, err)
	return s
}

// apply는 export 지시문을 테스트 환경에 반영한다 (셸의 eval 역할).
func (e *testEnv) apply(script string) {
	for _, line := range strings.Split(script, "\n") {
		rest, ok := strings.CutPrefix(line, "export ")
		if !ok {
			continue
		}
		k, v, _ := strings.Cut(rest, "=")
		e.vars[k] = strings.Trim(v, "'")
	}
}

// --- set ---

func TestSetCmd_RecordsProfile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out := e.mustRun(t, "set", "work")
	assert.Empty(t, out)

	rec, ok := e.store(t).Get(e.project)
	require.True(t, ok)
	assert.Equal(t, "work", rec.Profile)
	assert.False(t, rec.Resolved())
}

func TestSetCmd_UnknownProfile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "set", "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrProfileNotFound)
	assert.Equal(t, cli.ExitProfileNotFound, cli.MapExitCode(err))

	_, statErr := os.Stat(store.DefaultPath(e.dataDir))
	assert.True(t, os.IsNotExist(statErr), "store must not be written")
}

func TestSetCmd_NestedSelectorFailure(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "set", "work.prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prod")
}

func TestSetCmd_NoArgsUsesPicker(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.forms.Selected = "personal"

	e.mustRun(t, "set")

	assert.Equal(t, []string{"work", "work.staging", "personal"}, e.forms.Offered)
	rec, ok := e.store(t).Get(e.project)
	require.True(t, ok)
	assert.Equal(t, "personal", rec.Profile)
}

func TestSetCmd_PickerAborted(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "set")
	assert.ErrorIs(t, err, testutil.ErrFormAborted)
	assert.Empty(t, e.store(t).Keys())
}

func TestSetCmd_NoProfileFile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.cwd = t.TempDir()

	_, err := e.run(t, "set", "work")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrConfigUnavailable)
	assert.Equal(t, cli.ExitGeneral, cli.MapExitCode(err))
}

func TestSetCmd_SwitchingUnsetsPreviousProfile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "work")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	out := e.mustRun(t, "set", "personal", "--shell", "bash")

	assert.Contains(t, out, "rv ↓ ")
	assert.Contains(t, out, "unset TOKEN\n")
	assert.Contains(t, out, "unset HOST\n")
	rec, _ := e.store(t).Get(e.project)
	assert.Equal(t, "personal", rec.Profile)
	assert.False(t, rec.Resolved())
}

// --- precmd / chpwd ---

func TestPrecmdCmd_ExportsAfterSet(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "work")

	out := e.mustRun(t, "precmd", "--shell", "bash")

	assert.Contains(t, out, "export GLOBAL='g'\n")
	assert.Contains(t, out, "export TOKEN='work-token'\n")
	assert.Contains(t, out, "export REGION='eu-staging'\n")
	assert.Contains(t, out, "export HOST='staging.internal'\n")
	assert.NotContains(t, out, "RV_CHECK")

	// 요약이 지시문보다 먼저 나온다.
	assert.Less(t, strings.Index(out, "printf"), strings.Index(out, "export "))

	rec, _ := e.store(t).Get(e.project)
	assert.Equal(t, []string{"GLOBAL", "TOKEN", "REGION", "HOST"}, rec.Variables)
}

func TestPrecmdCmd_IdempotentOnceApplied(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd", "--shell", "zsh"))

	out := e.mustRun(t, "precmd", "--shell", "zsh")
	assert.Empty(t, out)
}

func TestPrecmdCmd_NoRecordIsSilent(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out := e.mustRun(t, "precmd")
	assert.Empty(t, out)
	_, statErr := os.Stat(store.DefaultPath(e.dataDir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrecmdCmd_LeavingDirectoryUnsets(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	e.cwd = t.TempDir()
	e.vars["RV_CHECK"] = "1"
	e.vars["OLDPWD"] = e.project

	out := e.mustRun(t, "precmd", "--shell", "bash")

	assert.Contains(t, out, "unset RV_CHECK\n")
	assert.Contains(t, out, "unset GLOBAL\n")
	assert.Contains(t, out, "unset TOKEN\n")
	assert.Less(t, strings.Index(out, "unset RV_CHECK"), strings.Index(out, "unset GLOBAL"))

	// exit은 기록을 지우지 않는다.
	rec, ok := e.store(t).Get(e.project)
	require.True(t, ok)
	assert.Equal(t, "personal", rec.Profile)
}

func TestPrecmdCmd_SharedKeySurvivesDirectoryChange(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "work")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	sibling := testutil.TempProfileDir(t, testutil.SampleProfiles)
	e.cwd = sibling
	e.mustRun(t, "set", "personal")

	e.vars["RV_CHECK"] = "1"
	e.vars["OLDPWD"] = e.project
	out := e.mustRun(t, "precmd", "--shell", "bash")

	// GLOBAL은 두 디렉토리가 같은 값으로 소유하므로 unset 후 다시 export된다.
	assert.Contains(t, out, "unset GLOBAL\n")
	assert.Contains(t, out, "export GLOBAL='g'\n")
	assert.Less(t, strings.Index(out, "unset GLOBAL"), strings.Index(out, "export GLOBAL"))
}

func TestPrecmdCmd_PreviousFlagOverridesOLDPWD(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	e.cwd = t.TempDir()
	e.vars["RV_CHECK"] = "1"
	e.vars["OLDPWD"] = "/somewhere/else"

	out := e.mustRun(t, "precmd", "--shell", "bash", "--previous", e.project)
	assert.Contains(t, out, "unset TOKEN\n")
}

func TestPrecmdCmd_WithoutCheckSkipsExit(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd"))

	e.cwd = t.TempDir()
	e.vars["OLDPWD"] = e.project

	out := e.mustRun(t, "precmd")
	assert.Empty(t, out)
}

func TestPrecmdCmd_ReturningReexports(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	other := t.TempDir()
	e.cwd = other
	e.vars["RV_CHECK"] = "1"
	e.vars["OLDPWD"] = e.project
	e.mustRun(t, "precmd", "--shell", "bash")
	delete(e.vars, "TOKEN")
	delete(e.vars, "GLOBAL")

	e.cwd = e.project
	e.vars["OLDPWD"] = other
	out := e.mustRun(t, "precmd", "--shell", "bash")
	assert.Contains(t, out, "export TOKEN='personal-token'\n")
}

func TestPrecmdCmd_Fish(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")

	out := e.mustRun(t, "precmd", "--shell", "fish")
	assert.Contains(t, out, "set -gx TOKEN 'personal-token'\n")
}

func TestPrecmdCmd_UnknownStoredProfileFails(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	s := store.New(store.DefaultPath(e.dataDir))
	s.Set(e.project, store.Record{Profile: "ghost"})
	require.NoError(t, s.Save())

	out, err := e.run(t, "precmd")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrProfileNotFound)
	assert.Empty(t, out)
}

func TestPrecmdCmd_CorruptStore(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	path := store.DefaultPath(e.dataDir)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	out, err := e.run(t, "precmd")
	require.Error(t, err)
	assert.Equal(t, cli.ExitStoreCorrupt, cli.MapExitCode(err))
	assert.Empty(t, out)
}

func TestChpwdCmd(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	assert.Equal(t, "export RV_CHECK='1'\n", e.mustRun(t, "chpwd", "--shell", "zsh"))
	assert.Equal(t, "set -gx RV_CHECK '1'\n", e.mustRun(t, "chpwd", "--shell", "fish"))
}

// --- clear ---

func TestClearCmd_UnsetsAndRemoves(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	e.apply(e.mustRun(t, "precmd", "--shell", "bash"))

	out := e.mustRun(t, "clear", "--shell", "bash")

	assert.Contains(t, out, "unset GLOBAL\nunset TOKEN\n")
	_, ok := e.store(t).Get(e.project)
	assert.False(t, ok)
}

func TestClearCmd_NoRecord(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out := e.mustRun(t, "clear")
	assert.Empty(t, out)
}

// --- show / list / get ---

func TestShowCmd(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")
	assert.Empty(t, e.mustRun(t, "show"), "nothing resolved yet")

	e.mustRun(t, "precmd")
	out := e.mustRun(t, "show")
	assert.Contains(t, out, "personal")
	assert.Contains(t, out, "GLOBAL TOKEN")
}

func TestListCmd_Formats(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default json", nil, "{\n  \"GLOBAL\": \"g\",\n  \"TOKEN\": \"personal-token\"\n}\n"},
		{"json", []string{"--json"}, "{\n  \"GLOBAL\": \"g\",\n  \"TOKEN\": \"personal-token\"\n}\n"},
		{"toml", []string{"--toml"}, "GLOBAL = \"g\"\nTOKEN = \"personal-token\"\n"},
		{"env", []string{"--env"}, "GLOBAL=g\nTOKEN=personal-token\n"},
		{"envrc", []string{"--envrc"}, "export GLOBAL='g'\nexport TOKEN='personal-token'\n"},
		{"mask", []string{"--env", "--mask"}, "GLOBAL=g\nTOKEN=pers****\n"},
		{"case", []string{"--env", "--case", "lower"}, "global=g\ntoken=personal-token\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.mustRun(t, append([]string{"list"}, tt.args...)...)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestListCmd_ExplicitProfile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out := e.mustRun(t, "list", "--env", "--profile", "work.staging")
	assert.Equal(t, "GLOBAL=g\nREGION=eu-staging\nHOST=staging.internal\n", out)
}

func TestListCmd_NoRecordPrintsNothing(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	assert.Empty(t, e.mustRun(t, "list"))
}

func TestListCmd_ExclusiveFormats(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "list", "--json", "--env")
	assert.Error(t, err)
}

func TestListCmd_InvalidCase(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "personal")

	_, err := e.run(t, "list", "--case", "sponge")
	assert.Error(t, err)
}

func TestGetCmd(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "work")

	assert.Equal(t, "work-token\n", e.mustRun(t, "get", "TOKEN"))
	assert.Equal(t, "g\n", e.mustRun(t, "get", "GLOBAL"))
	assert.Equal(t, "null\n", e.mustRun(t, "get", "MISSING"))
}

func TestGetCmd_NoRecord(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	assert.Equal(t, "null\n", e.mustRun(t, "get", "TOKEN"))
}

func TestGetCmd_RequiresKey(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "get")
	assert.Error(t, err)
}

// --- settings ---

func TestSettings_KeyCaseApplied(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	content := "data_dir = '" + e.dataDir + "'\nkey_case = 'lower'\n"
	require.NoError(t, os.WriteFile(e.settingsPath, []byte(content), 0600))
	e.mustRun(t, "set", "personal")

	out := e.mustRun(t, "precmd", "--shell", "bash")
	assert.Contains(t, out, "export token='personal-token'\n")
}

func TestSettings_InvalidFileIsConfigError(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(e.settingsPath, []byte("key_case = 'sponge'\n"), 0600))

	_, err := e.run(t, "precmd")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.MapExitCode(err))
}

func TestSettings_InvalidProfileFileIsConfigError(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	testutil.WriteProfileFile(t, e.project, "[[[ not toml")

	_, err := e.run(t, "set", "work")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.MapExitCode(err))
}

func TestSettings_CustomFileName(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	content := "data_dir = '" + e.dataDir + "'\nfile_name = '.rv.toml'\n"
	require.NoError(t, os.WriteFile(e.settingsPath, []byte(content), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(e.project, ".rv.toml"), []byte("[dev]\nMODE = 'dev'\n"), 0600))

	e.mustRun(t, "set", "dev")
	out := e.mustRun(t, "precmd", "--shell", "bash")
	assert.Contains(t, out, "export MODE='dev'\n")
}

// --- init ---

func TestInitCmd_PrintsSnippet(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	for _, sh := range []string{"zsh", "bash", "fish"} {
		out := e.mustRun(t, "init", sh)
		assert.Contains(t, out, "rv shell integration ("+sh+")")
	}
}

func TestInitCmd_UnsupportedShell(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "init", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcsh")
}

func TestInitCmd_Install(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ZDOTDIR", "")
	e := newTestEnv(t)

	out := e.mustRun(t, "init", "zsh", "--install")
	assert.Contains(t, out, "hook 설치 완료")

	again := e.mustRun(t, "init", "zsh", "--install")
	assert.Contains(t, again, "이미 설치")

	content, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "rv shell integration"))
}

// --- doctor ---

func TestDoctorCmd(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	e.mustRun(t, "set", "work")

	out := e.mustRun(t, "doctor")
	assert.Contains(t, out, "[OK] settings")
	assert.Contains(t, out, "[OK] store")
	assert.Contains(t, out, "[OK] profile_file")
	assert.Contains(t, out, "[OK] active_profile")
}

func TestDoctorCmd_ReportsCorruptStore(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(store.DefaultPath(e.dataDir), []byte("nope"), 0600))

	out := e.mustRun(t, "doctor")
	assert.Contains(t, out, "[FAIL] store")
	assert.Contains(t, out, "Fix: rm ")
}

// --- root ---

func TestRootCmd_VerboseFlag(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	_, err := e.run(t, "--verbose", "--help")
	require.NoError(t, err)
}

func TestRootCmd_ConfigFlag(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	other, dataDir := testutil.SetupSettings(t)

	e.mustRun(t, "--config", other, "set", "work")

	s, err := store.Load(store.DefaultPath(dataDir))
	require.NoError(t, err)
	_, ok := s.Get(e.project)
	assert.True(t, ok)
}

func TestRootCmd_HiddenCommands(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)

	out := e.mustRun(t, "--help")
	assert.NotContains(t, out, "precmd")
	assert.NotContains(t, out, "chpwd")
	assert.Contains(t, out, "set")
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	app := cli.NewApp()
	assert.NotNil(t, app)
	assert.NotNil(t, app.Forms)
	assert.NotEmpty(t, app.SettingsPath)
}
