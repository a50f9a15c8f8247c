package worker

import (
	"context"
	"log/slog"

	audit "staffdir/pkg/platform/audit"
)

// Worker drains audit events from a channel into a store. Append failures
// are logged and do not stop the worker.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run consumes until inbox is closed or ctx is done. When inbox closes, every
// event already queued has been handed to the store.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"action", event.Action,
					"subject_id", event.SubjectID,
					"error", err,
				)
			}
		}
	}
}
