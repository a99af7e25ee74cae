package notify

import (
	"context"
	"errors"

	"github.com/semmidev/photark/internal/domain"
)

// Multi fans an event out to every configured notifier. Each target gets
// its chance even when an earlier one fails.
type Multi []domain.Notifier

func (m Multi) Start(ctx context.Context) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.Start(ctx))
	}
	return errors.Join(errs...)
}

func (m Multi) Success(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.Success(ctx, message))
	}
	return errors.Join(errs...)
}

func (m Multi) Failure(ctx context.Context, exitCode int, message string) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.Failure(ctx, exitCode, message))
	}
	return errors.Join(errs...)
}
