package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/semmidev/photark/internal/domain"
)

// Docker implements domain.ContainerRuntime against the local docker (or
// podman-compatible) daemon.
type Docker struct {
	cli *client.Client
}

func NewDocker() (*Docker, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create container runtime client: %w", err)
	}
	return &Docker{cli: cli}, nil
}

func (d *Docker) Close() error {
	return d.cli.Close()
}

func (d *Docker) Ping(ctx context.Context) error {
	if _, err := d.cli.Ping(ctx); err != nil {
		return fmt.Errorf("container runtime unreachable: %w", err)
	}
	return nil
}

func (d *Docker) Exec(ctx context.Context, containerName string, cmd []string, env []string) (string, error) {
	var stdout bytes.Buffer
	if err := d.exec(ctx, containerName, cmd, env, &stdout); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

func (d *Docker) ExecToFile(ctx context.Context, containerName string, cmd []string, env []string, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := d.exec(ctx, containerName, cmd, env, out); err != nil {
		return err
	}
	return out.Sync()
}

func (d *Docker) ImageTag(ctx context.Context, containerName string) (string, error) {
	info, err := d.cli.ContainerInspect(ctx, containerName)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return "", fmt.Errorf("container %s not found", containerName)
		}
		return "", fmt.Errorf("failed to inspect container %s: %w", containerName, err)
	}
	return info.Config.Image, nil
}

// exec runs cmd in the container, copying stdout into w. A non-zero exit
// becomes a *domain.ExitError carrying the command's code and its stderr.
func (d *Docker) exec(ctx context.Context, containerName string, cmd []string, env []string, w io.Writer) error {
	execID, err := d.cli.ContainerExecCreate(ctx, containerName, container.ExecOptions{
		Cmd:          cmd,
		Env:          env,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create exec in %s: %w", containerName, err)
	}

	attach, err := d.cli.ContainerExecAttach(ctx, execID.ID, container.ExecAttachOptions{})
	if err != nil {
		return fmt.Errorf("failed to attach to exec in %s: %w", containerName, err)
	}
	defer attach.Close()

	var stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(w, &stderr, attach.Reader); err != nil {
		return fmt.Errorf("failed to read exec output from %s: %w", containerName, err)
	}

	inspect, err := d.cli.ContainerExecInspect(ctx, execID.ID)
	if err != nil {
		return fmt.Errorf("failed to inspect exec in %s: %w", containerName, err)
	}
	if inspect.ExitCode != 0 {
		return &domain.ExitError{
			Code: inspect.ExitCode,
			Err: fmt.Errorf("%s in %s failed: %s",
				cmd[0], containerName, strings.TrimSpace(stderr.String())),
		}
	}
	return nil
}
