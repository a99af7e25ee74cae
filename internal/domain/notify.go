package domain

import "context"

// Notifier reports run lifecycle events to external monitoring. Every
// method is best-effort: callers log the returned error and move on, a
// monitoring outage must never change the outcome of a backup.
type Notifier interface {
	Start(ctx context.Context) error
	Success(ctx context.Context, message string) error
	Failure(ctx context.Context, exitCode int, message string) error
}
