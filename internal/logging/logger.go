// Package logging은 stderr 진단용 zap 로거를 만든다.
// 지시문과 요약은 로거를 거치지 않는다. stdout은 셸의 몫이다.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New는 w에 쓰는 콘솔 로거를 생성한다.
// 기본은 Warn 이상, verbose면 Debug부터 출력한다.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.CallerKey = ""
	encoderCfg.NameKey = "logger"

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core).Named("rv")
}
