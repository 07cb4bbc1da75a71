package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/rv/internal/shell"
	"github.com/hbjs97/rv/internal/theme"
)

func (a *App) newPrecmdCmd() *cobra.Command {
	var shellType string
	var previous string

	cmd := &cobra.Command{
		Use:    "precmd",
		Short:  "프롬프트마다 호출되어 환경변수를 맞춘다",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrecmd(cmd.OutOrStdout(), shellType, previous, cmd.Flags().Changed("previous"))
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	cmd.Flags().StringVar(&previous, "previous", "", "이전 디렉토리 (기본: $OLDPWD)")
	return cmd
}

func (a *App) runPrecmd(w io.Writer, shellType, previous string, previousSet bool) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	if !previousSet {
		previous = s.env["OLDPWD"]
	}
	_, checking := s.env[shell.CheckVar]

	tr, err := a.controller(s).Change(previous, s.dir, checking)
	if err != nil {
		return err
	}
	if tr.Exit.Profile != "" || tr.Enter.Profile != "" {
		if err := s.store.Save(); err != nil {
			return err
		}
	}

	th, err := theme.New(theme.NewRenderer(w), s.cfg)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, line := range th.Summary(tr, s.home()) {
		b.WriteString(shell.Echo(line, shellType))
	}
	if checking {
		b.WriteString(shell.Unset(shell.CheckVar, shellType))
	}
	b.WriteString(shell.Render(tr.Directives(), shellType))

	a.logger().Debug("precmd",
		zap.String("previous", previous),
		zap.String("dir", s.dir),
		zap.Bool("checking", checking),
		zap.Int("directives", len(tr.Directives())),
	)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("cli.precmd: %w", err)
	}
	return nil
}

func (a *App) newChpwdCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:    "chpwd",
		Short:  "디렉토리 변경을 다음 precmd에 알린다",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), shell.Export(shell.CheckVar, "1", shellType))
			return nil
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "zsh", "셸 유형 (bash, zsh, fish)")
	return cmd
}
