package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hbjs97/rv/internal/envdiff"
	"github.com/hbjs97/rv/internal/transition"
)

// Label은 "~/project:work" 형태의 디렉토리 라벨을 만든다.
func Label(dir, profileName, home string) string {
	if home != "" && (dir == home || strings.HasPrefix(dir, home+"/")) {
		dir = "~" + strings.TrimPrefix(dir, home)
	}
	return dir + ":" + profileName
}

// Summary는 디렉토리 전이의 요약 줄을 반환한다. 변경이 없는 쪽은 생략한다.
// 두 줄의 변수 목록이 같은 열에서 시작하도록 짧은 라벨 뒤에 공백을 채운다.
func (t *Theme) Summary(tr transition.Transition, home string) []string {
	exitLabel := Label(tr.Exit.Dir, tr.Exit.Profile, home)
	enterLabel := Label(tr.Enter.Dir, tr.Enter.Profile, home)

	exitPad, enterPad := 0, 0
	if w1, w2 := lipgloss.Width(exitLabel), lipgloss.Width(enterLabel); w1 > w2 {
		enterPad = w1 - w2
	} else {
		exitPad = w2 - w1
	}

	var lines []string
	if !tr.Exit.Empty() {
		lines = append(lines, t.Deactivated.Paint("")+
			t.DeactivatedDir.Paint(exitLabel)+
			strings.Repeat(" ", exitPad)+
			t.changes(tr.Exit.Changes))
	}
	if !tr.Enter.Empty() {
		lines = append(lines, t.Activated.Paint("")+
			t.ActivatedDir.Paint(enterLabel)+
			strings.Repeat(" ", enterPad)+
			t.changes(tr.Enter.Changes))
	}
	return lines
}

// Deactivation은 rv clear / 프로필 전환 시의 요약 줄이다. 지시문이 없으면 빈 문자열이다.
func (t *Theme) Deactivation(out transition.Outcome, home string) string {
	if out.Empty() {
		return ""
	}
	return t.Deactivated.Paint("") + t.DeactivatedDir.Paint(Label(out.Dir, out.Profile, home)) + t.changes(out.Changes)
}

// Show는 rv show의 출력 줄이다.
func (t *Theme) Show(profileName string, keys []string) string {
	return t.Activated.Paint("") + t.ActivatedDir.Paint(profileName) + " " + t.Added.Style.Render(strings.Join(keys, " "))
}

func (t *Theme) changes(entries []envdiff.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Change {
		case envdiff.Added:
			b.WriteString(t.Added.Paint(e.Key))
		case envdiff.Changed:
			b.WriteString(t.Changed.Paint(e.Key))
		case envdiff.Removed:
			b.WriteString(t.Removed.Paint(e.Key))
		}
	}
	return b.String()
}
