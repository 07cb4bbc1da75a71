package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/shell"
	"github.com/hbjs97/rv/internal/theme"
)

func (a *App) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "현재 디렉토리의 프로필과 적용된 변수를 표시한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd.OutOrStdout())
		},
	}
}

func (a *App) runShow(w io.Writer) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	rec, ok := s.store.Get(s.dir)
	if !ok || !rec.Resolved() {
		return nil
	}
	th, err := theme.New(theme.NewRenderer(w), s.cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, th.Show(rec.Profile, rec.Variables))
	return nil
}

type listOptions struct {
	profile string
	keyCase string
	json    bool
	toml    bool
	env     bool
	envrc   bool
	mask    bool
}

func (a *App) newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "현재 프로필의 변수를 출력한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd.OutOrStdout(), opts, cmd.Flags().Changed("case"))
		},
	}
	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "지정된 프로필 대신 사용할 선택자")
	cmd.Flags().StringVar(&opts.keyCase, "case", "", "키 변환 규칙 (설정의 key_case 대신)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "JSON으로 출력 (기본)")
	cmd.Flags().BoolVar(&opts.toml, "toml", false, "TOML로 출력")
	cmd.Flags().BoolVar(&opts.env, "env", false, "KEY=VALUE 형식으로 출력")
	cmd.Flags().BoolVar(&opts.envrc, "envrc", false, "export 문으로 출력")
	cmd.Flags().BoolVar(&opts.mask, "mask", false, "비밀값으로 보이는 값을 가린다")
	cmd.MarkFlagsMutuallyExclusive("json", "toml", "env", "envrc")
	return cmd
}

func (a *App) runList(w io.Writer, opts listOptions, caseSet bool) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	if caseSet {
		if s.keyCase, err = profile.ParseKeyCase(opts.keyCase); err != nil {
			return fmt.Errorf("cli.list: %w", err)
		}
	}

	vars, ok, err := a.resolveCurrent(s, opts.profile)
	if err != nil || !ok {
		return err
	}

	values := vars.Map()
	if opts.mask {
		for k, v := range values {
			values[k] = MaskValue(k, v)
		}
	}

	switch {
	case opts.toml:
		if err := toml.NewEncoder(w).Encode(values); err != nil {
			return fmt.Errorf("cli.list: %w", err)
		}
	case opts.env:
		for _, k := range vars.Keys() {
			fmt.Fprintf(w, "%s=%s\n", k, values[k])
		}
	case opts.envrc:
		for _, k := range vars.Keys() {
			fmt.Fprint(w, shell.Export(k, values[k], "sh"))
		}
	default:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("cli.list: %w", err)
		}
		fmt.Fprintln(w, string(data))
	}
	return nil
}

func (a *App) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "현재 프로필의 변수 하나를 출력한다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *App) runGet(w io.Writer, key string) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	vars, _, err := a.resolveCurrent(s, "")
	if err != nil {
		return err
	}
	value, ok := vars.Get(key)
	if !ok {
		value = "null"
	}
	fmt.Fprintln(w, value)
	return nil
}

// resolveCurrent는 selector(비어 있으면 현재 디렉토리에 지정된 프로필)를 해석한다.
// 지정된 프로필이나 rv.toml이 없으면 ok가 false다.
func (a *App) resolveCurrent(s *session, selector string) (profile.Vars, bool, error) {
	if selector == "" {
		rec, ok := s.store.Get(s.dir)
		if !ok {
			return profile.NewVars(), false, nil
		}
		selector = rec.Profile
	}

	tree, err := s.tree()
	if errors.Is(err, profile.ErrConfigUnavailable) {
		return profile.NewVars(), false, nil
	}
	if err != nil {
		return profile.Vars{}, false, err
	}

	vars, err := profile.ResolveMerged(tree, selector, s.keyCase)
	if err != nil {
		return profile.Vars{}, false, fmt.Errorf("cli: %w", err)
	}
	return vars, true, nil
}
