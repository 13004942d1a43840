package orchestrate

import (
	"io"
	"os"
)

// System abstracts the filesystem operations the orchestrator needs so
// staging and cleanup are unit-testable without touching the host temp dir.
type System interface {
	TempDir() string
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	CopyFile(src string, dst string) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// TempDir returns the default directory for temporary files.
func (RealSystem) TempDir() string {
	return os.TempDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes path and any children it contains.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// CopyFile copies src to dst, creating or truncating dst.
func (RealSystem) CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
