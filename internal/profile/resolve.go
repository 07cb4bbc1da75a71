package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProfileNotFound는 프로필 선택자의 세그먼트를 찾을 수 없을 때의 sentinel error다.
var ErrProfileNotFound = errors.New("프로필을 찾을 수 없음")

// NotFoundError는 선택자 해석 실패를 설명한다.
type NotFoundError struct {
	Selector string
	Segment  string
	Consumed string // 실패 직전까지 해석된 경로
}

func (e *NotFoundError) Error() string {
	if e.Consumed == "" {
		return fmt.Sprintf("%s: %q (선택자 %q)", ErrProfileNotFound, e.Segment, e.Selector)
	}
	return fmt.Sprintf("%s: %q 아래 %q (선택자 %q)", ErrProfileNotFound, e.Consumed, e.Segment, e.Selector)
}

// Is는 errors.Is(err, ErrProfileNotFound)를 지원한다.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}

// Vars는 삽입 순서를 유지하는 변수 맵이다.
type Vars struct {
	keys   []string
	values map[string]string
}

// NewVars는 빈 Vars를 생성한다.
func NewVars() Vars {
	return Vars{values: make(map[string]string)}
}

// Set은 변수를 추가한다. 기존 키를 덮어쓰면 원래 위치를 유지한다.
func (v *Vars) Set(key, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get은 key의 값을 반환한다.
func (v Vars) Get(key string) (string, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys는 삽입 순서의 키 목록을 반환한다.
func (v Vars) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len은 변수 개수다.
func (v Vars) Len() int { return len(v.keys) }

// Map은 일반 map 복사본을 반환한다.
func (v Vars) Map() map[string]string {
	out := make(map[string]string, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// Resolve는 트리에서 전역 변수와 선택자가 가리키는 프로필 변수를 추출한다.
//
// global은 최상위 문자열 리프, scoped는 선택자를 따라 내려간 테이블을 재귀적으로
// 평탄화한 결과다. 두 맵 모두 같은 KeyCase가 적용된다.
func Resolve(tree *Node, selector string, kc KeyCase) (global, scoped Vars, err error) {
	global, scoped = NewVars(), NewVars()
	if tree == nil {
		tree = Table()
	}

	for _, c := range tree.children {
		if c.Node.kind == KindString {
			global.Set(kc.Apply(c.Key), c.Node.value)
		}
	}

	if selector == "" {
		return global, scoped, nil
	}

	node := tree
	var consumed []string
	for _, seg := range strings.Split(selector, ".") {
		next, ok := node.Lookup(seg)
		if !ok || next.kind != KindTable {
			return Vars{}, Vars{}, fmt.Errorf("profile.Resolve: %w", &NotFoundError{
				Selector: selector,
				Segment:  seg,
				Consumed: strings.Join(consumed, "."),
			})
		}
		consumed = append(consumed, seg)
		node = next
	}

	flatten(node, kc, &scoped)
	return global, scoped, nil
}

// flatten은 테이블을 재귀적으로 내려가며 문자열 리프를 acc에 넣는다. 그 외 리프는 건너뛴다.
func flatten(n *Node, kc KeyCase, acc *Vars) {
	for _, c := range n.children {
		switch c.Node.kind {
		case KindTable:
			flatten(c.Node, kc, acc)
		case KindString:
			acc.Set(kc.Apply(c.Key), c.Node.value)
		}
	}
}

// Merge는 global 위에 scoped를 덮어쓴 결과를 반환한다.
func Merge(global, scoped Vars) Vars {
	out := NewVars()
	for _, k := range global.keys {
		out.Set(k, global.values[k])
	}
	for _, k := range scoped.keys {
		out.Set(k, scoped.values[k])
	}
	return out
}

// ResolveMerged는 Resolve 후 Merge한 결과를 반환한다.
func ResolveMerged(tree *Node, selector string, kc KeyCase) (Vars, error) {
	global, scoped, err := Resolve(tree, selector, kc)
	if err != nil {
		return Vars{}, err
	}
	return Merge(global, scoped), nil
}
