package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/doctor"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/setup"
	"github.com/hbjs97/rv/internal/store"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(w io.Writer) error {
	cwd, err := a.Getwd()
	if err != nil {
		return fmt.Errorf("cli.doctor: %w", err)
	}

	// 설정이 깨져 있어도 나머지 진단은 기본값으로 진행한다.
	cfg, err := config.Load(a.SettingsPath)
	if err != nil {
		cfg = config.Default()
	}

	shellType := setup.DetectShell()
	results := doctor.RunAll(doctor.Input{
		SettingsPath: a.SettingsPath,
		StorePath:    store.DefaultPath(cfg.DataDir),
		Dir:          cwd,
		FileName:     cfg.FileName,
		Shell:        shellType,
		RCPath:       setup.ShellRCPath(shellType),
	})
	printDiagResults(w, results)

	if doctor.Failed(results) {
		fmt.Fprintf(w, "\n%s 파일과 위 Fix 안내를 확인하세요.\n", profile.DefaultFileName)
	}
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		icon := statusIcon(r.Status)
		fmt.Fprintf(w, "  [%s] %s: %s\n", icon, r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
