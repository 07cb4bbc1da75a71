package doctor

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/setup"
	"github.com/hbjs97/rv/internal/shell"
	"github.com/hbjs97/rv/internal/store"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Input은 진단에 필요한 경로와 환경 정보다.
type Input struct {
	SettingsPath string
	StorePath    string
	Dir          string
	FileName     string
	Shell        string
	RCPath       string
}

// CheckSettings는 사용자 설정 파일을 검증한다.
func CheckSettings(path string) DiagResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DiagResult{
			Name:    "settings",
			Status:  StatusOK,
			Message: "설정 파일 없음, 기본값 사용",
		}
	}
	if _, err := config.Load(path); err != nil {
		return DiagResult{
			Name:    "settings",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 수정", path),
		}
	}
	return DiagResult{
		Name:    "settings",
		Status:  StatusOK,
		Message: fmt.Sprintf("설정 파일 정상: %s", path),
	}
}

// CheckStore는 메타데이터 저장소를 읽을 수 있는지 확인한다.
func CheckStore(path string) DiagResult {
	s, err := store.Load(path)
	if err != nil {
		fix := fmt.Sprintf("%s 권한 확인", path)
		if errors.Is(err, store.ErrStoreCorrupt) {
			fix = fmt.Sprintf("rm %s 후 rv set 재실행", path)
		}
		return DiagResult{
			Name:    "store",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fix,
		}
	}
	return DiagResult{
		Name:    "store",
		Status:  StatusOK,
		Message: fmt.Sprintf("디렉토리 %d개 기록됨", len(s.Keys())),
	}
}

// CheckShellHook은 셸 hook 설치 여부를 확인한다.
func CheckShellHook(shellType, rcPath string) DiagResult {
	if !slices.Contains(shell.Supported(), shellType) {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("지원하지 않는 셸: %q", shellType),
			Fix:     "zsh, bash, fish 중 하나를 사용하세요",
		}
	}
	if !setup.HookInstalled(rcPath) {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s에 hook 없음", rcPath),
			Fix:     fmt.Sprintf("rv init %s --install", shellType),
		}
	}
	return DiagResult{
		Name:    "shell_hook",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s hook 설치됨", shellType),
	}
}

// CheckProfileFile은 dir의 프로필 파일을 파싱한다. 파일이 없으면 경고한다.
func CheckProfileFile(dir, fileName string) (*profile.Node, DiagResult) {
	loader := profile.FileLoader{FileName: fileName}
	tree, err := loader.Load(dir)
	switch {
	case errors.Is(err, profile.ErrConfigUnavailable):
		return nil, DiagResult{
			Name:    "profile_file",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음", loader.Path(dir)),
			Fix:     fmt.Sprintf("%s 파일 생성", fileName),
		}
	case err != nil:
		return nil, DiagResult{
			Name:    "profile_file",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 문법 확인", loader.Path(dir)),
		}
	}
	return tree, DiagResult{
		Name:    "profile_file",
		Status:  StatusOK,
		Message: fmt.Sprintf("프로필 %d개", len(profile.Selectors(tree))),
	}
}

// CheckActiveProfile은 dir에 지정된 프로필이 tree에서 해석되는지 확인한다.
func CheckActiveProfile(s *store.Store, dir string, tree *profile.Node) DiagResult {
	key, err := store.Key(dir)
	if err != nil {
		return DiagResult{Name: "active_profile", Status: StatusFail, Message: err.Error()}
	}
	rec, ok := s.Get(key)
	if !ok {
		return DiagResult{
			Name:    "active_profile",
			Status:  StatusOK,
			Message: "지정된 프로필 없음",
		}
	}
	if tree == nil {
		return DiagResult{
			Name:    "active_profile",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%q 지정됨, 프로필 파일 없음", rec.Profile),
			Fix:     "rv clear",
		}
	}
	if _, err := profile.ResolveMerged(tree, rec.Profile, profile.KeyCase{}); err != nil {
		return DiagResult{
			Name:    "active_profile",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     "rv set <profile> 로 다시 지정",
		}
	}
	return DiagResult{
		Name:    "active_profile",
		Status:  StatusOK,
		Message: fmt.Sprintf("%q 해석 가능", rec.Profile),
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(in Input) []DiagResult {
	var results []DiagResult
	results = append(results, CheckSettings(in.SettingsPath))
	results = append(results, CheckStore(in.StorePath))
	results = append(results, CheckShellHook(in.Shell, in.RCPath))

	tree, res := CheckProfileFile(in.Dir, in.FileName)
	results = append(results, res)

	if s, err := store.Load(in.StorePath); err == nil {
		results = append(results, CheckActiveProfile(s, in.Dir, tree))
	}
	return results
}

// Failed는 results에 StatusFail이 하나라도 있는지 반환한다.
func Failed(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
