package setup

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrNoProfiles는 선택할 프로필이 없을 때 반환된다.
var ErrNoProfiles = errors.New("선택할 프로필이 없습니다")

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
// stdout은 셸의 eval이 가져가므로 폼은 stderr에 그린다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

// RunProfileSelect는 프로필 선택 UI를 표시한다.
func (h *HuhFormRunner) RunProfileSelect(selectors []string) (string, error) {
	if len(selectors) == 0 {
		return "", fmt.Errorf("setup.RunProfileSelect: %w", ErrNoProfiles)
	}

	selected := selectors[0]
	options := make([]huh.Option[string], len(selectors))
	for i, name := range selectors {
		options[i] = huh.NewOption(name, name)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("프로필을 선택하세요").
			Options(options...).
			Value(&selected),
	)).WithOutput(os.Stderr)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunProfileSelect: %w", err)
	}
	return selected, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	)).WithOutput(os.Stderr)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
