package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Package storage contains the physical file stores backing documents and
// procedural filings. Two interchangeable backends sit behind one
// contract: a local directory tree and a remote SMB share. An
// S3-compatible object store for profile images lives alongside them.

// Backend selects which physical store handles a given call. It is a
// closed set; the wire discriminator is parsed once at the edge via
// ParseBackend and string comparison never leaks past this package.
type Backend int

const (
	BackendLocal Backend = iota + 1
	BackendSamba
)

// ParseBackend maps the wire discriminator ("local" | "samba") to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "local":
		return BackendLocal, nil
	case "samba":
		return BackendSamba, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBackend, s)
	}
}

func (b Backend) String() string {
	switch b {
	case BackendLocal:
		return "local"
	case BackendSamba:
		return "samba"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// Modeled failure cases. Anything else raised by the filesystem or the
// network is wrapped in *StorageError.
var (
	ErrNoFile         = errors.New("no file provided")
	ErrEmptyFilename  = errors.New("empty filename")
	ErrExtNotAllowed  = errors.New("file type not allowed")
	ErrInvalidBackend = errors.New("invalid storage backend")
	ErrFileNotFound   = errors.New("file not found in storage")
)

// StorageError wraps an underlying filesystem or network fault, carrying
// the operation that failed and the backend it failed on.
type StorageError struct {
	Op      string
	Backend Backend
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, b Backend, err error) error {
	return &StorageError{Op: op, Backend: b, Err: err}
}

// StoredFile is the result of a successful upload. Localizacao is set by
// the local backend (filesystem path); URL by the remote one (smb://...).
type StoredFile struct {
	Filename    string
	Localizacao string
	URL         string
}

// FileStore uploads, deletes and replaces files on one of the two
// backends. Bucket is an opaque folder segment (client display name for
// documents, category label for filings); callers must ensure
// semantically distinct owners do not share a label, since identical
// labels land in the same folder.
type FileStore interface {
	// Upload sanitizes filename, verifies its extension against the
	// allowed set, allocates a collision-free name inside bucket and
	// writes the content. The write is confirmed by an existence check
	// before the result is returned.
	Upload(ctx context.Context, r io.Reader, backend Backend, bucket, filename string) (*StoredFile, error)

	// Delete removes bucket/filename. Returns ErrFileNotFound when the
	// file is absent.
	Delete(ctx context.Context, backend Backend, bucket, filename string) error

	// Replace deletes the old file and then uploads the new content under
	// its own name, possibly to a different backend. Sanitization and the
	// extension check apply to newFilename, not the name being replaced.
	// When the delete step fails for any reason, including ErrFileNotFound,
	// the upload is not attempted and the delete failure is returned, so a
	// failed cleanup never leaves an orphaned new file behind.
	Replace(ctx context.Context, r io.Reader, backendNew, backendOld Backend, bucket, oldFilename, newFilename string) (*StoredFile, error)
}

// backendStore is the per-backend half of the contract; shared input
// validation lives in the dispatcher.
type backendStore interface {
	upload(ctx context.Context, r io.Reader, bucket, filename string) (*StoredFile, error)
	delete(ctx context.Context, bucket, filename string) error
}

// allowedExtensions is the closed set of document types the office accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type dualStore struct {
	local  backendStore
	remote backendStore
}

// NewFileStore builds the dual-backend store from the two backend
// implementations.
func NewFileStore(local, remote backendStore) FileStore {
	return &dualStore{local: local, remote: remote}
}

func (s *dualStore) pick(b Backend) (backendStore, error) {
	switch b {
	case BackendLocal:
		return s.local, nil
	case BackendSamba:
		return s.remote, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidBackend, int(b))
	}
}

func (s *dualStore) Upload(ctx context.Context, r io.Reader, backend Backend, bucket, filename string) (*StoredFile, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	if strings.TrimSpace(filename) == "" {
		return nil, ErrEmptyFilename
	}
	clean := SanitizeFilename(filename)
	if clean == "" {
		return nil, ErrEmptyFilename
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(clean))] {
		return nil, fmt.Errorf("%w: %s", ErrExtNotAllowed, filepath.Ext(clean))
	}
	be, err := s.pick(backend)
	if err != nil {
		return nil, err
	}
	return be.upload(ctx, r, bucket, clean)
}

func (s *dualStore) Delete(ctx context.Context, backend Backend, bucket, filename string) error {
	if strings.TrimSpace(filename) == "" {
		return ErrEmptyFilename
	}
	be, err := s.pick(backend)
	if err != nil {
		return err
	}
	return be.delete(ctx, bucket, filename)
}

func (s *dualStore) Replace(ctx context.Context, r io.Reader, backendNew, backendOld Backend, bucket, oldFilename, newFilename string) (*StoredFile, error) {
	if err := s.Delete(ctx, backendOld, bucket, oldFilename); err != nil {
		// Short-circuit: an update must not create a new file after a
		// failed cleanup.
		return nil, err
	}
	return s.Upload(ctx, r, backendNew, bucket, newFilename)
}

// SanitizeFilename strips path components and replaces anything outside
// [A-Za-z0-9._-] with an underscore, so bucket and filename stay single,
// safe path segments.
func SanitizeFilename(name string) string {
	// Handle both separators regardless of host OS.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return ""
	}
	return out
}

// uniqueFilename probes bucket for filename and, on collision, suffixes
// _1, _2, ... before the extension until a free name is found.
func uniqueFilename(filename string, exists func(name string) (bool, error)) (string, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	name := filename
	for counter := 1; ; counter++ {
		taken, err := exists(name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
}
