package middleware

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticket-reservation/internal/handler"
)

// Logger logs every run of the action called name.  Menu navigation
// results (back, exit) are logged as success.
func Logger(log *zap.Logger, name string) Middleware {
	return func(next handler.Action) handler.Action {
		return func(s *handler.Session) error {
			start := time.Now()
			err := next(s)
			fields := []zap.Field{
				zap.String("action", name),
				zap.String("role", string(s.Role)),
				zap.Duration("latency", time.Since(start)),
			}
			if s.NationalID != "" {
				fields = append(fields, zap.String("national_id", s.NationalID))
			}
			switch {
			case err == nil, errors.Is(err, handler.ErrBack), errors.Is(err, handler.ErrExit):
				log.Debug("action", fields...)
			default:
				log.Warn("action failed", append(fields, zap.Error(err))...)
			}
			return err
		}
	}
}
