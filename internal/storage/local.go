package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore is the local-directory backend of the FileStore. Files land
// under <root>/<bucket>/<filename>.
type LocalStore struct {
	root string
}

// NewLocal creates a local backend rooted at the given directory.
func NewLocal(root string) *LocalStore {
	return &LocalStore{root: root}
}

var _ backendStore = (*LocalStore)(nil)

func (s *LocalStore) upload(ctx context.Context, r io.Reader, bucket, filename string) (*StoredFile, error) {
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("upload", BackendLocal, err)
	}

	name, err := uniqueFilename(filename, func(candidate string) (bool, error) {
		_, statErr := os.Stat(filepath.Join(dir, candidate))
		if statErr == nil {
			return true, nil
		}
		if os.IsNotExist(statErr) {
			return false, nil
		}
		return false, statErr
	})
	if err != nil {
		return nil, storageErr("upload", BackendLocal, err)
	}

	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return nil, storageErr("upload", BackendLocal, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return nil, storageErr("upload", BackendLocal, err)
	}
	if err := f.Close(); err != nil {
		return nil, storageErr("upload", BackendLocal, err)
	}

	// Post-condition: the file must be visible before we report success.
	if _, err := os.Stat(dst); err != nil {
		return nil, storageErr("upload", BackendLocal, fmt.Errorf("saved file not found: %w", err))
	}

	return &StoredFile{Filename: name, Localizacao: dst}, nil
}

func (s *LocalStore) delete(ctx context.Context, bucket, filename string) error {
	dst := filepath.Join(s.root, bucket, filename)
	if _, err := os.Stat(dst); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return storageErr("delete", BackendLocal, err)
	}
	if err := os.Remove(dst); err != nil {
		return storageErr("delete", BackendLocal, err)
	}
	return nil
}
