package tpool

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Log struct {
	app *zap.Logger
	err *zap.Logger
}

func NewLog(cfg LogConfig) *Log {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	appCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.AppFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}),
		zap.InfoLevel,
	)

	errorCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.ErrorFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}),
		zap.ErrorLevel,
	)

	return &Log{
		app: zap.New(appCore, zap.AddCaller()),
		err: zap.New(errorCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
	}
}

// NewNopLog discards everything. Used when no log files are configured.
func NewNopLog() *Log {
	return &Log{
		app: zap.NewNop(),
		err: zap.NewNop(),
	}
}

func (l *Log) App(msg string, fields ...zap.Field) {
	l.app.Info(msg, fields...)
}

func (l *Log) Error(err error, msg string, fields ...zap.Field) {
	l.err.Error(msg, append(fields, zap.Error(err))...)
}
