package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tradeagent/conf"
)

var (
	mu     sync.RWMutex
	zl     = zap.NewNop()
	sugar  = zl.Sugar()
	rotate *lumberjack.Logger
)

// InitLogger 初始化全局日志：按配置写入滚动文件，可选同时输出到控制台
func InitLogger(cfg *conf.LogConfig, appName string) {
	mu.Lock()
	defer mu.Unlock()

	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if cfg.FileName != "" {
		rotate = &lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotate), level))
	}
	if cfg.Console || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level))
	}

	zl = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("app", appName))
	sugar = zl.Sugar()
}

// ReplaceLogger 测试或命令行工具中替换全局 logger
func ReplaceLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	zl = l
	sugar = l.Sugar()
}

// Sync 退出前刷新缓冲
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = zl.Sync()
	if rotate != nil {
		_ = rotate.Close()
	}
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func get() (*zap.Logger, *zap.SugaredLogger) {
	mu.RLock()
	defer mu.RUnlock()
	return zl, sugar
}

// Pair 构造一个结构化字段
func Pair(key string, value any) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) {
	l, _ := get()
	l.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	l, _ := get()
	l.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	l, _ := get()
	l.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	l, _ := get()
	l.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	l, _ := get()
	l.Fatal(msg, fields...)
}

func Debugf(format string, args ...any) {
	_, s := get()
	s.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	_, s := get()
	s.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	_, s := get()
	s.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	_, s := get()
	s.Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	_, s := get()
	s.Fatalf(format, args...)
}
