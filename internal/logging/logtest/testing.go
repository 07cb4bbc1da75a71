// Package logtest는 테스트에서 로그 항목을 검사하는 헬퍼다. 프로덕션 코드는 import하지 않는다.
package logtest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObserved는 모든 항목을 기록하는 로거를 생성한다.
func NewObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
