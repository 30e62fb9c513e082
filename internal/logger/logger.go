package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var instance *zap.SugaredLogger

// Initialize - настройка глобального логгера сервиса.
// До вызова Initialize любое логирование - ошибка программиста.
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	instance = log.Sugar()
	return nil
}

// Get - доступ к логгеру для нестандартных случаев (например, zap.Field)
func Get() *zap.SugaredLogger {
	if instance == nil {
		panic("logger not initialized, call Initialize()")
	}
	return instance
}

// Sync - сброс буферов, вызывается при завершении процесса
func Sync() error {
	if instance == nil {
		return nil
	}
	return instance.Sync()
}

// обёртки по уровням логирования

func Debug(args ...interface{}) { Get().Debugln(args...) }

func Info(args ...interface{}) { Get().Infoln(args...) }

func Warn(args ...interface{}) { Get().Warnln(args...) }

func Error(args ...interface{}) { Get().Errorln(args...) }

func Panic(args ...interface{}) { Get().Panicln(args...) }
