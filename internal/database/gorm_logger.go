package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger routes GORM's logging through slog. SQL tracing lands at
// Debug, so production log levels never pay for statement formatting; slow
// queries are promoted to Warn regardless of level.
type queryLogger struct {
	slowThreshold time.Duration
}

func newQueryLogger() queryLogger {
	return queryLogger{slowThreshold: 500 * time.Millisecond}
}

// LogMode is a no-op; slog owns level filtering.
func (q queryLogger) LogMode(logger.LogLevel) logger.Interface { return q }

func (q queryLogger) Info(_ context.Context, msg string, args ...any) {
	slog.Info(fmt.Sprintf(msg, args...))
}

func (q queryLogger) Warn(_ context.Context, msg string, args ...any) {
	slog.Warn(fmt.Sprintf(msg, args...))
}

func (q queryLogger) Error(_ context.Context, msg string, args ...any) {
	slog.Error(fmt.Sprintf(msg, args...))
}

// sqlLogLimit caps how much of a statement lands in a log line.
const sqlLogLimit = 240

// compactSQL keeps the head of an oversized statement and notes how much
// was cut. The head carries the verb and table name, which is what a log
// reader scans for.
func compactSQL(sql string) string {
	if len(sql) <= sqlLogLimit {
		return sql
	}
	return fmt.Sprintf("%s... [%d chars]", sql[:sqlLogLimit], len(sql))
}

// Trace reports one SQL operation. ErrRecordNotFound is the ordinary
// no-rows outcome of First and stays on the Debug path.
func (q queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		slog.Error("query failed",
			"sql", compactSQL(sql),
			"rows", rows,
			"elapsed", elapsed,
			"error", err,
		)
	case q.slowThreshold > 0 && elapsed >= q.slowThreshold:
		sql, rows := fc()
		slog.Warn("slow query",
			"sql", compactSQL(sql),
			"rows", rows,
			"elapsed", elapsed,
		)
	case slog.Default().Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		slog.Debug("query",
			"sql", compactSQL(sql),
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}
