package domain

import "context"

// Storage receives an offsite copy of the dump artifact. Uploads happen
// after the archive is created and before local cleanup deletes the file.
type Storage interface {
	Upload(ctx context.Context, localPath string, remoteName string) error
}
