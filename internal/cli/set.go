package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/shell"
	"github.com/hbjs97/rv/internal/theme"
	"github.com/hbjs97/rv/internal/transition"
)

func (a *App) newSetCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "set [profile]",
		Short: "현재 디렉토리에 프로필을 지정한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return a.runSet(cmd.OutOrStdout(), name, shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	return cmd
}

func (a *App) runSet(w io.Writer, name, shellType string) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	tree, err := s.tree()
	if err != nil {
		return err
	}

	if name == "" {
		name, err = a.Forms.RunProfileSelect(profile.Selectors(tree))
		if err != nil {
			return fmt.Errorf("cli.set: %w", err)
		}
	}

	// 존재하지 않는 선택자는 저장소를 건드리기 전에 거부한다.
	if _, err := profile.ResolveMerged(tree, name, s.keyCase); err != nil {
		return fmt.Errorf("cli.set: %w", err)
	}

	out, err := a.controller(s).Activate(s.dir, name)
	if err != nil {
		return err
	}
	if err := s.store.Save(); err != nil {
		return err
	}
	return a.emitOutcome(w, s, out, shellType)
}

func (a *App) newClearCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "현재 디렉토리의 프로필 지정을 해제한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClear(cmd.OutOrStdout(), shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	return cmd
}

func (a *App) runClear(w io.Writer, shellType string) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	if _, ok := s.store.Get(s.dir); !ok {
		return nil
	}

	out, err := a.controller(s).Deactivate(s.dir)
	if err != nil {
		return err
	}
	if err := s.store.Save(); err != nil {
		return err
	}
	return a.emitOutcome(w, s, out, shellType)
}

// emitOutcome은 해제 요약과 unset 지시문을 셸이 eval할 형태로 출력한다.
func (a *App) emitOutcome(w io.Writer, s *session, out transition.Outcome, shellType string) error {
	if out.Empty() {
		return nil
	}
	th, err := theme.New(theme.NewRenderer(w), s.cfg)
	if err != nil {
		return err
	}
	script := shell.Echo(th.Deactivation(out, s.home()), shellType) + shell.Render(out.Directives, shellType)
	if _, err := io.WriteString(w, script); err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	return nil
}
