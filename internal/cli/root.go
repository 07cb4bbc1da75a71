package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/logging"
	"github.com/hbjs97/rv/internal/setup"
)

// App은 CLI 명령이 공유하는 의존성이다. 테스트에서는 필드를 교체한다.
type App struct {
	SettingsPath string
	Getwd        func() (string, error)
	Environ      func() []string
	Forms        setup.FormRunner
	Logger       *zap.Logger

	verbose bool
}

// NewApp은 실제 프로세스 환경을 쓰는 App을 생성한다.
func NewApp() *App {
	return &App{
		SettingsPath: config.DefaultPath(),
		Getwd:        os.Getwd,
		Environ:      os.Environ,
		Forms:        &setup.HuhFormRunner{},
	}
}

// NewRootCmd는 rv CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rv",
		Short:        "디렉토리별 환경변수 프로필 관리자",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.Logger == nil {
				a.Logger = logging.New(cmd.ErrOrStderr(), a.verbose)
			}
		},
	}

	if a.SettingsPath == "" {
		a.SettingsPath = config.DefaultPath()
	}
	cmd.PersistentFlags().StringVar(&a.SettingsPath, "config", a.SettingsPath, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "상세 출력")

	cmd.AddCommand(
		a.newSetCmd(),
		a.newShowCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newClearCmd(),
		a.newPrecmdCmd(),
		a.newChpwdCmd(),
		a.newInitCmd(),
		a.newSetupCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
