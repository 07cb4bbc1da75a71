package cli

import (
	"fmt"

	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/envdiff"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/store"
	"github.com/hbjs97/rv/internal/transition"
)

// session은 명령 하나가 쓰는 설정, 저장소, 현재 디렉토리 묶음이다.
type session struct {
	cfg     *config.Config
	store   *store.Store
	loader  profile.FileLoader
	keyCase profile.KeyCase
	dir     string
	env     envdiff.MapEnv
}

// openSession은 설정과 저장소를 읽는다. 저장소 파일이 없으면 빈 저장소로 시작한다.
func (a *App) openSession() (*session, error) {
	cfg, err := config.Load(a.SettingsPath)
	if err != nil {
		return nil, err
	}
	kc, err := cfg.ParsedKeyCase()
	if err != nil {
		return nil, err
	}

	cwd, err := a.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cli: 현재 디렉토리 확인 실패: %w", err)
	}
	dir, err := store.Key(cwd)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}

	s, err := store.Load(store.DefaultPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		store:   s,
		loader:  profile.FileLoader{FileName: cfg.FileName},
		keyCase: kc,
		dir:     dir,
		env:     envdiff.FromEnviron(a.Environ()),
	}, nil
}

func (a *App) controller(s *session) *transition.Controller {
	return transition.New(s.store, s.loader, s.env, s.keyCase, a.logger())
}

// home은 요약 라벨에서 ~로 줄일 홈 디렉토리다.
func (s *session) home() string {
	return s.env["HOME"]
}

// tree는 현재 디렉토리의 rv.toml을 읽는다.
func (s *session) tree() (*profile.Node, error) {
	tree, err := s.loader.Load(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cli: %s: %w", s.loader.Path(s.dir), err)
	}
	return tree, nil
}
