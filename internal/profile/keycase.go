package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stoewer/go-strcase"
)

// KeyCase는 변수 키 변환 함수다. 제로 값은 키를 그대로 둔다.
type KeyCase struct {
	name string
	fn   func(string) string
}

var keyCases = map[string]func(string) string{
	"lower":           func(s string) string { return words(s, false) },
	"upper":           func(s string) string { return words(s, true) },
	"camel":           strcase.LowerCamelCase,
	"pascal":          strcase.UpperCamelCase,
	"snake":           strcase.SnakeCase,
	"screaming-snake": strcase.UpperSnakeCase,
	"kebab":           strcase.KebabCase,
	"screaming-kebab": strcase.UpperKebabCase,
	"flat":            func(s string) string { return strings.ReplaceAll(strcase.SnakeCase(s), "_", "") },
	"upper-flat":      func(s string) string { return strings.ReplaceAll(strcase.UpperSnakeCase(s), "_", "") },
}

var keyCaseAliases = map[string]string{
	"upper-snake": "screaming-snake",
	"upper-kebab": "screaming-kebab",
	"cobol":       "screaming-kebab",
	"upper-camel": "pascal",
}

func words(s string, upper bool) string {
	w := strings.ReplaceAll(strcase.SnakeCase(s), "_", " ")
	if upper {
		return strings.ToUpper(w)
	}
	return w
}

// ParseKeyCase는 이름으로 KeyCase를 찾는다. 빈 문자열과 "none"은 변환 없음이다.
func ParseKeyCase(name string) (KeyCase, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return KeyCase{}, nil
	}
	if alias, ok := keyCaseAliases[name]; ok {
		name = alias
	}
	fn, ok := keyCases[name]
	if !ok {
		return KeyCase{}, fmt.Errorf("profile.ParseKeyCase: 지원하지 않는 케이스 %q (가능: %s)", name, strings.Join(KeyCaseNames(), ", "))
	}
	return KeyCase{name: name, fn: fn}, nil
}

// KeyCaseNames는 지원하는 케이스 이름 목록이다.
func KeyCaseNames() []string {
	names := make([]string, 0, len(keyCases))
	for n := range keyCases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name은 케이스 이름이다. 변환이 없으면 빈 문자열이다.
func (k KeyCase) Name() string { return k.name }

// Apply는 key를 변환한다.
func (k KeyCase) Apply(key string) string {
	if k.fn == nil {
		return key
	}
	return k.fn(key)
}
