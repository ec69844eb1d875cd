package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init 初始化全局zap日志器
// 设计说明：
// 1. 通过zap.ReplaceGlobals注册全局logger，各包用zap.L()获取
// 2. level支持debug/info/warn/error，format支持json/console
// 3. 生产环境用json格式（便于ELK/Loki检索），开发环境用console格式
func Init(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("非法的日志级别 %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("非法的日志格式 %q（仅支持json/console）", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return nil, fmt.Errorf("构建日志器失败: %w", err)
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
