package usecase

import (
	"context"
	"regexp"

	"github.com/semmidev/photark/internal/domain"
)

// unknownVersion names dump artifacts when no version can be resolved.
const unknownVersion = "unknown"

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// VersionResolver discovers version strings used only for artifact naming.
// Two tiers: an in-container version command first, then a scrape of the
// container's image tag. Both failing yields "" and never aborts a run.
type VersionResolver struct {
	runtime domain.ContainerRuntime
	logger  Logger
}

func NewVersionResolver(rt domain.ContainerRuntime, logger Logger) *VersionResolver {
	return &VersionResolver{runtime: rt, logger: logger}
}

func (r *VersionResolver) Resolve(ctx context.Context, container string, versionCmd []string) string {
	if len(versionCmd) > 0 {
		out, err := r.runtime.Exec(ctx, container, versionCmd, nil)
		if err == nil {
			if v := extractVersion(out); v != "" {
				return v
			}
		} else {
			r.logger.Warnf("Version command in %s failed, falling back to image tag: %v", container, err)
		}
	}

	tag, err := r.runtime.ImageTag(ctx, container)
	if err != nil {
		r.logger.Warnf("Could not inspect image tag of %s: %v", container, err)
		return ""
	}
	return extractVersion(tag)
}

// extractVersion pulls the first version-looking substring out of arbitrary
// tool output or an image reference like "photoprism/photoprism:2.1.0".
func extractVersion(s string) string {
	return versionPattern.FindString(s)
}

func orUnknown(version string) string {
	if version == "" {
		return unknownVersion
	}
	return version
}
