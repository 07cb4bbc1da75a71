package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFileName은 디렉토리별 설정 파일 이름이다.
const DefaultFileName = "rv.toml"

// ErrConfigUnavailable는 디렉토리에 설정 파일이 없을 때 반환된다. 에러가 아니라 no-op 신호다.
var ErrConfigUnavailable = errors.New("설정 파일 없음")

// ErrInvalidConfig는 설정 파일이 올바른 TOML이 아닐 때 반환된다.
var ErrInvalidConfig = errors.New("설정 파일 파싱 실패")

// Kind는 Node의 종류다.
type Kind int

const (
	// KindTable은 하위 키를 가진 테이블이다.
	KindTable Kind = iota
	// KindString은 환경변수로 내보낼 수 있는 문자열 값이다.
	KindString
	// KindOther는 숫자, 불리언, 배열 등 무시되는 값이다.
	KindOther
)

// Child는 테이블의 (키, 노드) 쌍이다.
type Child struct {
	Key  string
	Node *Node
}

// Node는 설정 트리의 노드다. Table | String | Other 중 하나다.
type Node struct {
	kind     Kind
	value    string
	children []Child
}

// Table은 주어진 순서의 자식을 가진 테이블 노드를 생성한다.
func Table(children ...Child) *Node {
	return &Node{kind: KindTable, children: children}
}

// String은 문자열 리프 노드를 생성한다.
func String(value string) *Node {
	return &Node{kind: KindString, value: value}
}

// Other는 무시되는 리프 노드를 생성한다.
func Other() *Node {
	return &Node{kind: KindOther}
}

// Kind는 노드 종류를 반환한다.
func (n *Node) Kind() Kind { return n.kind }

// Value는 문자열 리프의 값을 반환한다.
func (n *Node) Value() string { return n.value }

// Children은 테이블의 자식을 문서 순서대로 반환한다.
func (n *Node) Children() []Child { return n.children }

// Lookup은 테이블에서 key에 해당하는 자식을 찾는다.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.kind != KindTable {
		return nil, false
	}
	for _, c := range n.children {
		if c.Key == key {
			return c.Node, true
		}
	}
	return nil, false
}

// Parse는 TOML 문서를 설정 트리로 변환한다.
// 자식 순서는 toml.MetaData.Keys()의 정의 순서를 따른다.
func Parse(data []byte) (*Node, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("profile.Parse: %w: %v", ErrInvalidConfig, err)
	}

	order := make(map[string]int)
	for i, k := range md.Keys() {
		key := strings.Join(k, "\x00")
		if _, ok := order[key]; !ok {
			order[key] = i
		}
	}
	return build(nil, raw, order), nil
}

func build(path []string, table map[string]interface{}, order map[string]int) *Node {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	pos := func(k string) int {
		if i, ok := order[strings.Join(append(append([]string{}, path...), k), "\x00")]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := pos(keys[i]), pos(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	children := make([]Child, 0, len(keys))
	for _, k := range keys {
		var node *Node
		switch v := table[k].(type) {
		case map[string]interface{}:
			node = build(append(append([]string{}, path...), k), v, order)
		case string:
			node = String(v)
		default:
			node = Other()
		}
		children = append(children, Child{Key: k, Node: node})
	}
	return Table(children...)
}

// LoadFile은 설정 파일을 읽어 트리로 변환한다. 파일이 없으면 ErrConfigUnavailable을 반환한다.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("profile.LoadFile: %w", ErrConfigUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: %w", err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: %s: %w", path, err)
	}
	return tree, nil
}

// FileLoader는 디렉토리의 설정 파일을 읽는다.
type FileLoader struct {
	FileName string
}

// Path는 dir의 설정 파일 경로를 반환한다.
func (l FileLoader) Path(dir string) string {
	name := l.FileName
	if name == "" {
		name = DefaultFileName
	}
	return filepath.Join(dir, name)
}

// Load는 dir의 설정 파일을 트리로 읽는다.
func (l FileLoader) Load(dir string) (*Node, error) {
	return LoadFile(l.Path(dir))
}

// Selectors는 트리 안의 모든 테이블 경로를 점 구분 문자열로 반환한다.
func Selectors(tree *Node) []string {
	var out []string
	var walk func(prefix string, n *Node)
	walk = func(prefix string, n *Node) {
		for _, c := range n.children {
			if c.Node.kind != KindTable {
				continue
			}
			sel := c.Key
			if prefix != "" {
				sel = prefix + "." + c.Key
			}
			out = append(out, sel)
			walk(sel, c.Node)
		}
	}
	if tree != nil {
		walk("", tree)
	}
	return out
}
