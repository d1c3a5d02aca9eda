package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/sail/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write one record per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCycleEnd: func(ctx context.Context, e *domain.CycleEvent) {
			attrs := []any{
				"session_id", e.SessionID,
				"seq", e.Seq,
				"trigger", e.Trigger,
				"duration", e.Duration,
				"history_len", e.HistoryLen,
			}
			if e.Err != nil {
				logger.InfoContext(ctx, string(e.Type), append(attrs, "err", e.Err)...)
				return
			}
			logger.DebugContext(ctx, string(e.Type), attrs...)
		},
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			logger.DebugContext(ctx, string(e.Type), "session_id", e.SessionID, "key", e.Key)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.InfoContext(ctx, string(e.Type), "session_id", e.SessionID, "fields", len(e.State))
		},
	}
}
