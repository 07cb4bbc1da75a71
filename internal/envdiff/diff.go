// Package envdiff는 해석된 프로필과 셸의 현재 환경을 비교해
// export/unset 지시문을 만든다.
//
// I/O를 하지 않고 실패하지 않는다. 소유 목록 저장은 호출자가 맡는다.
package envdiff

import (
	"strings"

	"github.com/hbjs97/rv/internal/profile"
)

// Env는 호출한 셸 환경의 읽기 전용 스냅샷이다.
type Env interface {
	Lookup(key string) (string, bool)
}

// MapEnv는 map 기반 Env다.
type MapEnv map[string]string

// Lookup은 Env를 구현한다.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// FromEnviron은 os.Environ 형식("KEY=VALUE")에서 MapEnv를 만든다.
func FromEnviron(environ []string) MapEnv {
	env := make(MapEnv, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Without은 keys가 없는 것처럼 보이는 env를 반환한다.
// 같은 전이에서 먼저 unset된 키를 enter가 다시 export하도록 할 때 쓴다.
func Without(env Env, keys []string) Env {
	hidden := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		hidden[k] = struct{}{}
	}
	return maskedEnv{env: env, hidden: hidden}
}

type maskedEnv struct {
	env    Env
	hidden map[string]struct{}
}

func (m maskedEnv) Lookup(key string) (string, bool) {
	if _, ok := m.hidden[key]; ok {
		return "", false
	}
	return m.env.Lookup(key)
}

// Change는 키 하나를 현재 환경과 비교한 분류다.
type Change int

const (
	// Unchanged는 현재 값과 같아 지시문이 필요 없는 키다.
	Unchanged Change = iota
	// Added는 현재 환경에 없던 키다.
	Added
	// Changed는 현재 값과 다른 키다.
	Changed
	// Removed는 exit에서 unset되는 키다.
	Removed
)

func (c Change) String() string {
	switch c {
	case Added:
		return "added"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Op는 Directive의 종류다.
type Op int

const (
	// OpExport는 변수를 설정한다.
	OpExport Op = iota
	// OpUnset은 변수를 제거한다.
	OpUnset
)

// Directive는 셸에 내리는 명령 하나다.
type Directive struct {
	Op    Op
	Key   string
	Value string
}

// Export는 export 지시문을 반환한다.
func Export(key, value string) Directive {
	return Directive{Op: OpExport, Key: key, Value: value}
}

// Unset은 unset 지시문을 반환한다.
func Unset(key string) Directive {
	return Directive{Op: OpUnset, Key: key}
}

// Entry는 분류된 키다.
type Entry struct {
	Key    string
	Change Change
}

// Result는 비교 한 번의 결과다.
type Result struct {
	Changes    []Entry
	Directives []Directive
	// Owned는 Enter 후 디렉토리가 소유하는 모든 키다 (Unchanged 포함).
	Owned []string
}

// Count는 분류가 c인 항목 수를 반환한다.
func (r Result) Count(c Change) int {
	n := 0
	for _, e := range r.Changes {
		if e.Change == c {
			n++
		}
	}
	return n
}

// Keys는 분류가 c인 키를 출력 순서대로 반환한다.
func (r Result) Keys(c Change) []string {
	var keys []string
	for _, e := range r.Changes {
		if e.Change == c {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Enter는 해석된 키를 live와 비교해 분류하고, Added와 Changed 키의 export를
// 해석 순서대로 만든다.
func Enter(resolved profile.Vars, live Env) Result {
	res := Result{Owned: make([]string, 0, resolved.Len())}
	for _, key := range resolved.Keys() {
		want, _ := resolved.Get(key)
		res.Owned = append(res.Owned, key)

		have, ok := live.Lookup(key)
		switch {
		case !ok:
			res.Changes = append(res.Changes, Entry{Key: key, Change: Added})
			res.Directives = append(res.Directives, Export(key, want))
		case have != want:
			res.Changes = append(res.Changes, Entry{Key: key, Change: Changed})
			res.Directives = append(res.Directives, Export(key, want))
		default:
			res.Changes = append(res.Changes, Entry{Key: key, Change: Unchanged})
		}
	}
	return res
}

// Exit는 이전에 소유한 키를 모두 unset한다. 현재 값은 보지 않으므로
// 사용자가 덮어쓴 값도 함께 unset된다.
func Exit(previous []string) Result {
	var res Result
	for _, key := range previous {
		res.Changes = append(res.Changes, Entry{Key: key, Change: Removed})
		res.Directives = append(res.Directives, Unset(key))
	}
	return res
}
