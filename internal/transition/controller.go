package transition

import (
	"errors"
	"fmt"

	"github.com/hbjs97/rv/internal/envdiff"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/store"
	"go.uber.org/zap"
)

// Loader는 디렉토리의 설정 트리를 읽는다. 설정 파일이 없으면 profile.ErrConfigUnavailable을 반환한다.
type Loader interface {
	Load(dir string) (*profile.Node, error)
}

// Outcome은 디렉토리 하나에 대한 전이 결과다.
type Outcome struct {
	Dir        string
	Profile    string
	Directives []envdiff.Directive
	Changes    []envdiff.Entry
}

// Empty는 내보낼 지시문이 없는지 반환한다.
func (o Outcome) Empty() bool { return len(o.Directives) == 0 }

func (o Outcome) keys() []string {
	keys := make([]string, len(o.Directives))
	for i, d := range o.Directives {
		keys[i] = d.Key
	}
	return keys
}

// Transition은 디렉토리 변경 이벤트 하나의 결과다 (이전 디렉토리 exit, 현재 디렉토리 enter).
type Transition struct {
	Exit  Outcome
	Enter Outcome
}

// Directives는 exit 지시문 뒤에 enter 지시문을 이어 붙여 반환한다.
func (t Transition) Directives() []envdiff.Directive {
	out := make([]envdiff.Directive, 0, len(t.Exit.Directives)+len(t.Enter.Directives))
	out = append(out, t.Exit.Directives...)
	return append(out, t.Enter.Directives...)
}

// Controller는 디렉토리 전이를 조율한다. 저장소는 호출자가 로드/저장한다.
type Controller struct {
	store   *store.Store
	loader  Loader
	env     envdiff.Env
	keyCase profile.KeyCase
	log     *zap.Logger
}

// New는 Controller를 생성한다. log가 nil이면 no-op 로거를 쓴다.
func New(s *store.Store, loader Loader, env envdiff.Env, kc profile.KeyCase, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{store: s, loader: loader, env: env, keyCase: kc, log: log}
}

// Activate는 dir에 프로필을 지정한다. 변수 목록은 다음 enter에서 해석된다.
// 이전 프로필이 내보낸 변수가 있으면 그 unset 지시문을 반환한다.
func (c *Controller) Activate(dir, profileName string) (Outcome, error) {
	key, err := store.Key(dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Activate: %w", err)
	}

	out := Outcome{Dir: key, Profile: profileName}
	if prev, ok := c.store.Get(key); ok && prev.Resolved() {
		res := envdiff.Exit(prev.Variables)
		out.Directives, out.Changes = res.Directives, res.Changes
	}

	c.store.Set(key, store.Record{Profile: profileName})
	c.log.Debug("프로필 지정", zap.String("dir", key), zap.String("profile", profileName))
	return out, nil
}

// Enter는 dir의 프로필을 해석해 현재 환경과 비교하고 export 지시문을 만든다.
// 기록이 없거나 설정 파일이 없으면 빈 결과를 반환한다.
func (c *Controller) Enter(dir string) (Outcome, error) {
	return c.enter(dir, c.env)
}

func (c *Controller) enter(dir string, live envdiff.Env) (Outcome, error) {
	key, err := store.Key(dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Enter: %w", err)
	}

	rec, ok := c.store.Get(key)
	if !ok {
		return Outcome{Dir: key}, nil
	}

	tree, err := c.loader.Load(key)
	if errors.Is(err, profile.ErrConfigUnavailable) {
		c.log.Debug("설정 파일 없음, 건너뜀", zap.String("dir", key))
		return Outcome{Dir: key, Profile: rec.Profile}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Enter: %w", err)
	}

	vars, err := profile.ResolveMerged(tree, rec.Profile, c.keyCase)
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Enter: %w", err)
	}

	res := envdiff.Enter(vars, live)
	rec.Variables = res.Owned
	c.store.Set(key, rec)

	c.log.Debug("프로필 적용",
		zap.String("dir", key),
		zap.String("profile", rec.Profile),
		zap.Int("added", res.Count(envdiff.Added)),
		zap.Int("changed", res.Count(envdiff.Changed)),
		zap.Int("unchanged", res.Count(envdiff.Unchanged)),
	)
	return Outcome{Dir: key, Profile: rec.Profile, Directives: res.Directives, Changes: res.Changes}, nil
}

// Exit는 dir이 내보냈던 변수의 unset 지시문을 만든다. 기록 자체는 유지된다.
func (c *Controller) Exit(dir string) (Outcome, error) {
	key, err := store.Key(dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Exit: %w", err)
	}

	rec, ok := c.store.Get(key)
	if !ok {
		return Outcome{Dir: key}, nil
	}
	out := Outcome{Dir: key, Profile: rec.Profile}
	if rec.Resolved() {
		res := envdiff.Exit(rec.Variables)
		out.Directives, out.Changes = res.Directives, res.Changes
	}
	c.log.Debug("디렉토리 떠남", zap.String("dir", key), zap.Int("unset", len(out.Directives)))
	return out, nil
}

// Deactivate는 dir의 변수를 unset하고 기록을 제거한다.
func (c *Controller) Deactivate(dir string) (Outcome, error) {
	out, err := c.Exit(dir)
	if err != nil {
		return Outcome{}, fmt.Errorf("transition.Deactivate: %w", err)
	}
	c.store.Remove(out.Dir)
	c.log.Debug("프로필 해제", zap.String("dir", out.Dir), zap.String("profile", out.Profile))
	return out, nil
}

// Change는 디렉토리 변경 이벤트를 처리한다.
// checking이 참이고 previous가 current와 다를 때만 previous를 exit한 뒤 current를 enter한다.
// exit에서 unset한 키는 enter에서 없는 것으로 보므로 두 디렉토리가 공유하는 키는 다시 export된다.
// 에러가 나면 지시문 없이 반환하며 저장소는 변경되지 않는다.
func (c *Controller) Change(previous, current string, checking bool) (Transition, error) {
	var t Transition

	if checking && previous != "" {
		prevKey, err := store.Key(previous)
		if err != nil {
			return Transition{}, fmt.Errorf("transition.Change: %w", err)
		}
		curKey, err := store.Key(current)
		if err != nil {
			return Transition{}, fmt.Errorf("transition.Change: %w", err)
		}
		if prevKey != curKey {
			if t.Exit, err = c.Exit(prevKey); err != nil {
				return Transition{}, fmt.Errorf("transition.Change: %w", err)
			}
		}
	}

	live := c.env
	if removed := t.Exit.keys(); len(removed) > 0 {
		live = envdiff.Without(c.env, removed)
	}
	enter, err := c.enter(current, live)
	if err != nil {
		return Transition{}, fmt.Errorf("transition.Change: %w", err)
	}
	t.Enter = enter
	return t, nil
}
