package shell

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hbjs97/rv/internal/envdiff"
)

// CheckVar는 디렉토리 변경을 알리는 환경변수다. chpwd가 설정하고 precmd가 소비한다.
const CheckVar = "RV_CHECK"

// HookMarker는 RC 파일에 hook이 설치되었는지 판별하는 표식이다.
const HookMarker = "rv shell integration"

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Supported는 지원하는 셸 유형 목록이다.
func Supported() []string {
	return []string{"bash", "zsh", "fish"}
}

// ValidName은 key가 셸 변수 이름으로 쓸 수 있는지 반환한다.
func ValidName(key string) bool {
	return validName.MatchString(key)
}

// Quote는 값을 셸 유형에 맞게 작은따옴표로 감싼다.
func Quote(value, shellType string) string {
	if shellType == "fish" {
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(value) + "'"
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// Render는 지시문을 셸 명령으로 변환한다.
// 셸 변수 이름으로 쓸 수 없는 키는 주석으로 남기고 건너뛴다.
func Render(directives []envdiff.Directive, shellType string) string {
	var b strings.Builder
	for _, d := range directives {
		if !ValidName(d.Key) {
			fmt.Fprintf(&b, "# rv: 잘못된 변수 이름 건너뜀: %s\n", Quote(d.Key, "sh"))
			continue
		}
		switch d.Op {
		case envdiff.OpExport:
			b.WriteString(Export(d.Key, d.Value, shellType))
		case envdiff.OpUnset:
			b.WriteString(Unset(d.Key, shellType))
		}
	}
	return b.String()
}

// Export는 변수 하나의 export 명령을 생성한다.
func Export(key, value, shellType string) string {
	switch shellType {
	case "fish":
		return fmt.Sprintf("set -gx %s %s\n", key, Quote(value, shellType))
	default: // bash, zsh, sh
		return fmt.Sprintf("export %s=%s\n", key, Quote(value, shellType))
	}
}

// Unset은 변수 하나의 unset 명령을 생성한다.
func Unset(key, shellType string) string {
	switch shellType {
	case "fish":
		return fmt.Sprintf("set -e %s\n", key)
	default:
		return fmt.Sprintf("unset %s\n", key)
	}
}

// Echo는 사람이 읽는 한 줄을 hook의 eval 결과로 출력하는 명령을 생성한다.
func Echo(line, shellType string) string {
	return fmt.Sprintf("printf '%%s\\n' %s\n", Quote(line, shellType))
}

// HookSnippet는 셸 hook 스니펫을 반환한다.
// rv set / rv clear의 출력도 eval되도록 rv 함수를 함께 정의한다.
func HookSnippet(shellType string) string {
	switch shellType {
	case "zsh":
		return `# rv shell integration (zsh)
_rv_chpwd() {
  eval "$(command rv chpwd --shell zsh)"
}
_rv_precmd() {
  eval "$(command rv precmd --shell zsh)"
}
rv() {
  case "$1" in
    set|clear) eval "$(command rv "$@" --shell zsh)" ;;
    *) command rv "$@" ;;
  esac
}
typeset -ga chpwd_functions precmd_functions
chpwd_functions+=(_rv_chpwd)
precmd_functions+=(_rv_precmd)
`
	case "bash":
		return `# rv shell integration (bash)
_rv_prompt_command() {
  if [[ "${_RV_PWD:-}" != "$PWD" ]]; then
    eval "$(command rv chpwd --shell bash)"
  fi
  eval "$(command rv precmd --shell bash --previous "${_RV_PWD:-$PWD}")"
  _RV_PWD="$PWD"
}
rv() {
  case "$1" in
    set|clear) eval "$(command rv "$@" --shell bash)" ;;
    *) command rv "$@" ;;
  esac
}
PROMPT_COMMAND="_rv_prompt_command;${PROMPT_COMMAND}"
`
	case "fish":
		return `# rv shell integration (fish)
function _rv_chpwd --on-variable PWD
  command rv chpwd --shell fish | source
end
function _rv_precmd --on-event fish_prompt
  command rv precmd --shell fish --previous "$dirprev[-1]" | source
end
function rv
  switch $argv[1]
    case set clear
      command rv $argv --shell fish | source
    case '*'
      command rv $argv
  end
end
`
	default:
		return ""
	}
}
