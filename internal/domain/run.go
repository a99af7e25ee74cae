package domain

import (
	"errors"
	"fmt"
	"time"
)

// MaintenanceState tracks the target application's maintenance mode as seen
// by the current run. It lives on the BackupRun, never in package state, so
// the failure path can decide from run-scoped data whether a disable is due.
type MaintenanceState int

const (
	MaintenanceOff MaintenanceState = iota
	MaintenanceEnabling
	MaintenanceOn
	MaintenanceDisabling
)

func (s MaintenanceState) String() string {
	switch s {
	case MaintenanceOff:
		return "off"
	case MaintenanceEnabling:
		return "enabling"
	case MaintenanceOn:
		return "on"
	case MaintenanceDisabling:
		return "disabling"
	default:
		return "unknown"
	}
}

// BackupRun is the state of one backup execution. Created at invocation
// start, mutated as steps complete, discarded at process exit.
type BackupRun struct {
	StartedAt   time.Time
	Maintenance MaintenanceState
	DumpPath    string
	ArchiveName string
}

// ExitError carries the process exit code of a failed step. The first
// fatal error's code is authoritative for the whole run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exitf builds an ExitError from a formatted message.
func Exitf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode extracts the exit code from err, defaulting to 1 for errors
// that carry none and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
