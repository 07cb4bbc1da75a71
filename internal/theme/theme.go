// Package theme은 활성화 요약 줄을 lipgloss로 그린다.
//
// 요약은 hook의 eval 안에서 출력되므로 stdout은 TTY가 아니다.
// 렌더러는 터미널 감지 대신 ANSI 색상 프로필로 고정하고, NO_COLOR가 있으면 스타일을 끈다.
package theme

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/hbjs97/rv/internal/config"
)

var namedColors = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"purple":       "5",
	"magenta":      "5",
	"cyan":         "6",
	"lightgray":    "7",
	"darkgray":     "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightpurple":  "13",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"white":        "15",
}

// NewRenderer는 색상 프로필이 고정된 lipgloss 렌더러를 만든다.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// ParseStyle은 "bold green", "208 underline", "255,128,0 italic" 같은 문자열을 스타일로 변환한다.
// 첫 토큰이 색상(default는 색 없음), 나머지는 속성이다. 알 수 없는 속성은 무시한다.
func ParseStyle(r *lipgloss.Renderer, spec string) (lipgloss.Style, error) {
	style := r.NewStyle()
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		return style, nil
	}

	color, attrs := tokens[0], tokens[1:]
	if isAttr(color) {
		// 색상 없이 속성만 준 경우
		color, attrs = "default", tokens
	}
	c, err := parseColor(color)
	if err != nil {
		return style, fmt.Errorf("theme.ParseStyle: %q: %w", spec, err)
	}
	if c != nil {
		style = style.Foreground(c)
	}

	for _, a := range attrs {
		switch a {
		case "bold":
			style = style.Bold(true)
		case "dimmed":
			style = style.Faint(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "blink":
			style = style.Blink(true)
		case "reverse":
			style = style.Reverse(true)
		case "strikethrough":
			style = style.Strikethrough(true)
		}
	}
	return style, nil
}

func isAttr(s string) bool {
	switch s {
	case "bold", "dimmed", "italic", "underline", "blink", "reverse", "hidden", "strikethrough":
		return true
	}
	return false
}

func parseColor(s string) (lipgloss.TerminalColor, error) {
	if s == "default" {
		return nil, nil
	}
	if n, ok := namedColors[s]; ok {
		return lipgloss.Color(n), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("색상 번호 범위 초과: %d", n)
		}
		return lipgloss.Color(s), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) == 3 {
		var rgb [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return nil, fmt.Errorf("잘못된 RGB 색상: %s", s)
			}
			rgb[i] = v
		}
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])), nil
	}
	return nil, fmt.Errorf("알 수 없는 색상: %s", s)
}

// Format은 기호와 스타일을 묶은 출력 조각이다.
type Format struct {
	Symbol string
	Style  lipgloss.Style
}

// Paint는 기호와 s에 스타일을 입혀 반환한다.
func (f Format) Paint(s string) string {
	var out string
	if f.Symbol != "" {
		out = f.Style.Render(f.Symbol)
	}
	if s != "" {
		out += f.Style.Render(s)
	}
	return out
}

// Theme은 요약 출력에 쓰는 Format 모음이다.
type Theme struct {
	Activated      Format
	ActivatedDir   Format
	Deactivated    Format
	DeactivatedDir Format
	Added          Format
	Removed        Format
	Changed        Format
}

// New는 설정에서 Theme을 만든다.
func New(r *lipgloss.Renderer, cfg *config.Config) (*Theme, error) {
	t := &Theme{}
	pairs := []struct {
		dst *Format
		src config.Format
	}{
		{&t.Activated, cfg.Activated},
		{&t.ActivatedDir, cfg.ActivatedDir},
		{&t.Deactivated, cfg.Deactivated},
		{&t.DeactivatedDir, cfg.DeactivatedDir},
		{&t.Added, cfg.Added},
		{&t.Removed, cfg.Removed},
		{&t.Changed, cfg.Changed},
	}
	for _, p := range pairs {
		style, err := ParseStyle(r, p.src.Style)
		if err != nil {
			return nil, fmt.Errorf("theme.New: %w: %v", config.ErrConfig, err)
		}
		*p.dst = Format{Symbol: p.src.Symbol, Style: style}
	}
	return t, nil
}
