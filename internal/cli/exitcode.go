package cli

import (
	"errors"
)

// ExitCode는 rv의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitProfileNotFound는 프로필 선택자 해석 실패다.
	ExitProfileNotFound ExitCode = 2
	// ExitStoreCorrupt는 메타데이터 파일 손상이다.
	ExitStoreCorrupt ExitCode = 3
	// ExitConfigError는 설정 파일(config.toml 또는 rv.toml) 오류다.
	ExitConfigError ExitCode = 4
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return ExitProfileNotFound
	case errors.Is(err, ErrStoreCorrupt):
		return ExitStoreCorrupt
	case errors.Is(err, ErrConfig), errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
