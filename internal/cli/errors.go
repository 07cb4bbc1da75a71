package cli

import (
	"github.com/hbjs97/rv/internal/config"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/store"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrProfileNotFound는 선택자가 설정 트리에서 해석되지 않을 때의 sentinel error다.
	ErrProfileNotFound = profile.ErrProfileNotFound
	// ErrStoreCorrupt는 메타데이터 파일을 해석할 수 없을 때의 sentinel error다.
	ErrStoreCorrupt = store.ErrStoreCorrupt
	// ErrConfig는 사용자 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrInvalidConfig는 rv.toml이 올바른 TOML이 아닐 때의 sentinel error다.
	ErrInvalidConfig = profile.ErrInvalidConfig
	// ErrConfigUnavailable는 현재 디렉토리에 rv.toml이 없을 때의 sentinel error다.
	ErrConfigUnavailable = profile.ErrConfigUnavailable
)
