// Package logstore writes audit events to a structured logger. It is the
// default sink when no event stream is configured.
package logstore

import (
	"context"
	"log/slog"

	audit "staffdir/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger.With("component", "audit")}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"category", string(event.Category),
		"action", event.Action,
		"subject_id", event.SubjectID,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
