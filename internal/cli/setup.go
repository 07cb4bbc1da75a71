package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/setup"
	"github.com/hbjs97/rv/internal/shell"
)

func (a *App) newSetupCmd() *cobra.Command {
	var yes, force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "rv 초기 설정을 시작한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup(cmd.OutOrStdout(), yes, force)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "확인 없이 셸 hook 설치")
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일을 기본값으로 덮어쓰기")
	return cmd
}

// runSetup는 기본 설정 파일을 만들고 셸 hook 설치를 제안한다.
func (a *App) runSetup(w io.Writer, yes, force bool) error {
	if _, err := os.Stat(a.SettingsPath); err == nil && !force {
		fmt.Fprintf(w, "설정 파일이 이미 존재합니다: %s\n", a.SettingsPath)
	} else {
		if err := config.Save(a.SettingsPath, config.Default()); err != nil {
			return fmt.Errorf("cli.setup: 설정 파일 생성 실패: %w", err)
		}
		fmt.Fprintf(w, "설정 파일이 생성되었습니다: %s\n", a.SettingsPath)
	}

	shellType := setup.DetectShell()
	if !slices.Contains(shell.Supported(), shellType) {
		fmt.Fprintf(w, "셸 %q은 자동 설치를 지원하지 않습니다. rv init <shell> 출력을 RC 파일에 추가하세요.\n", shellType)
		return nil
	}
	rcPath := setup.ShellRCPath(shellType)
	if setup.HookInstalled(rcPath) {
		fmt.Fprintf(w, "셸 hook이 이미 설치되어 있습니다: %s\n", rcPath)
		return nil
	}

	if !yes {
		ok, err := a.Forms.RunConfirm(fmt.Sprintf("%s에 rv hook을 설치할까요?", rcPath))
		if err != nil {
			return fmt.Errorf("cli.setup: %w", err)
		}
		if !ok {
			fmt.Fprintln(w, "hook 설치를 건너뜁니다. 나중에 rv init --install로 설치할 수 있습니다.")
			return nil
		}
	}
	if err := setup.InstallShellHook(shellType, rcPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "hook 설치 완료: %s\n", rcPath)
	fmt.Fprintln(w, "rv.toml을 만든 뒤 rv set <profile>로 프로필을 지정하세요.")
	return nil
}
