package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 创建格式化工具使用的日志记录器
func NewLogger(debug bool) *zap.Logger {
	config := zap.NewProductionConfig()

	if debug {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		panic("初始化日志系统失败: " + err.Error())
	}

	return logger
}
