package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbjs97/rv/internal/setup"
	"github.com/hbjs97/rv/internal/shell"
)

func (a *App) newInitCmd() *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "init [shell]",
		Short: "셸 hook 스니펫을 출력하거나 RC 파일에 설치한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shellType := setup.DetectShell()
			if len(args) == 1 {
				shellType = args[0]
			}
			return a.runInit(cmd.OutOrStdout(), shellType, install)
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "RC 파일에 hook 설치")
	return cmd
}

func (a *App) runInit(w io.Writer, shellType string, install bool) error {
	if !slices.Contains(shell.Supported(), shellType) {
		return fmt.Errorf("cli.init: 지원하지 않는 셸 %q (가능: %s)", shellType, strings.Join(shell.Supported(), ", "))
	}

	if !install {
		fmt.Fprint(w, shell.HookSnippet(shellType))
		return nil
	}

	rcPath := setup.ShellRCPath(shellType)
	if setup.HookInstalled(rcPath) {
		fmt.Fprintf(w, "이미 설치되어 있습니다: %s\n", rcPath)
		return nil
	}
	if err := setup.InstallShellHook(shellType, rcPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "hook 설치 완료: %s\n", rcPath)
	fmt.Fprintln(w, "새 셸을 열거나 RC 파일을 다시 읽으세요.")
	return nil
}
