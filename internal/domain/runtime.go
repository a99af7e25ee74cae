package domain

import "context"

// ContainerRuntime executes commands inside named running containers.
// Non-zero exits surface as *ExitError so the orchestrator can propagate
// the failing command's code to the process boundary.
type ContainerRuntime interface {
	// Exec runs cmd inside the container and returns its combined output.
	Exec(ctx context.Context, container string, cmd []string, env []string) (string, error)

	// ExecToFile runs cmd inside the container, streaming stdout to
	// outputPath. Stderr is kept aside for the error message.
	ExecToFile(ctx context.Context, container string, cmd []string, env []string, outputPath string) error

	// ImageTag returns the image reference the container was created from.
	ImageTag(ctx context.Context, container string) (string, error)

	// Ping verifies the runtime daemon is reachable.
	Ping(ctx context.Context) error
}
