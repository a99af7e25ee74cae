package domain

import "context"

// RetentionPolicy bounds how many archives survive a prune pass, counted
// per calendar period over the whole repository.
type RetentionPolicy struct {
	KeepDaily   int
	KeepWeekly  int
	KeepMonthly int
}

// Archiver wraps the external deduplicating archive tool. The orchestrator
// is the only caller and sequences Create before Prune before Compact:
// pruning must never see the repository without the run's fresh archive,
// and compaction only reclaims space for archives pruning already deleted.
type Archiver interface {
	// Check verifies the external tool is installed, for preflight.
	Check() error
	Create(ctx context.Context, name string, sources []string, excludes []string) error
	Prune(ctx context.Context, policy RetentionPolicy) error
	Compact(ctx context.Context) error
}
