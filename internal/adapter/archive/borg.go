package archive

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/semmidev/photark/internal/domain"
)

// Borg drives the borg binary against a single repository. Archives are
// immutable once created; retention and space reclamation are separate
// repository-wide passes sequenced by the caller.
type Borg struct {
	repo string
	bin  string
	run  func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewBorg(repo string) *Borg {
	return &Borg{
		repo: repo,
		bin:  "borg",
		run:  runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (b *Borg) Check() error {
	if _, err := exec.LookPath(b.bin); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", b.bin, err)
	}
	return nil
}

func (b *Borg) Create(ctx context.Context, name string, sources []string, excludes []string) error {
	return b.invoke(ctx, b.createArgs(name, sources, excludes))
}

func (b *Borg) Prune(ctx context.Context, policy domain.RetentionPolicy) error {
	return b.invoke(ctx, b.pruneArgs(policy))
}

func (b *Borg) Compact(ctx context.Context) error {
	return b.invoke(ctx, b.compactArgs())
}

func (b *Borg) createArgs(name string, sources []string, excludes []string) []string {
	args := []string{"create", "--stats"}
	for _, pattern := range excludes {
		args = append(args, "--exclude", pattern)
	}
	args = append(args, b.repo+"::"+name)
	args = append(args, sources...)
	return args
}

func (b *Borg) pruneArgs(policy domain.RetentionPolicy) []string {
	return []string{
		"prune",
		"--keep-daily", strconv.Itoa(policy.KeepDaily),
		"--keep-weekly", strconv.Itoa(policy.KeepWeekly),
		"--keep-monthly", strconv.Itoa(policy.KeepMonthly),
		b.repo,
	}
}

func (b *Borg) compactArgs() []string {
	return []string{"compact", b.repo}
}

func (b *Borg) invoke(ctx context.Context, args []string) error {
	output, err := b.run(ctx, b.bin, args...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ExitError{
			Code: exitErr.ExitCode(),
			Err: fmt.Errorf("%s %s failed: %s",
				b.bin, args[0], strings.TrimSpace(string(output))),
		}
	}
	return fmt.Errorf("%s %s failed: %w", b.bin, args[0], err)
}
