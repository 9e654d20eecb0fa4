package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapLogger routes gorm's logger.Interface into zap.
type zapLogger struct {
	log   *zap.Logger
	level logger.LogLevel
}

func NewZapLogger(l *zap.Logger) logger.Interface {
	return zapLogger{log: l.WithOptions(zap.AddCallerSkip(3)), level: logger.Warn}
}

func (l zapLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.level = level
	return l
}

func (l zapLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(s, args...))
	}
}

func (l zapLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(s, args...))
	}
}

func (l zapLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(s, args...))
	}
}

func (l zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		l.log.Error("query failed", zap.Error(err), zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.Warn("slow query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.Debug("query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
