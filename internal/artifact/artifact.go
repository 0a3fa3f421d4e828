// Package artifact manages the ephemeral files a single conversion produces:
// one intermediate download and one transcoded output. Each artifact belongs
// to exactly one in-flight request and is removed when that request's
// pipeline exits.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"url2media/internal/util"
)

// Artifact is one ephemeral file on scratch storage.
type Artifact struct {
	Path string
}

// New creates an empty, uniquely named file under dir with the given role
// prefix and suffix (extension, including the dot). The directory is created
// if missing.
func New(dir, role, suffix string) (*Artifact, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s%s", role, uuid.NewString(), suffix)
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close artifact: %w", err)
	}
	return &Artifact{Path: path}, nil
}

// Size returns the current file size in bytes.
func (a *Artifact) Size() (int64, error) {
	return util.FileSize(a.Path)
}

// Remove deletes the file. It is idempotent: a missing file is not an error.
func (a *Artifact) Remove() error {
	return util.RemoveIfExists(a.Path)
}
