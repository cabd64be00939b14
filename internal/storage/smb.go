package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"path"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"lexapi/internal/config"
)

// SambaStore is the remote-share backend of the FileStore. It opens a
// fresh SMB session per call and closes it before returning; there is no
// pooled connection, retry or backoff layer.
type SambaStore struct {
	cfg config.SMBConfig

	// dialTimeout bounds the TCP connect only; an established session has
	// no deadline of its own.
	dialTimeout time.Duration
}

// NewSamba creates a remote backend for the configured share.
func NewSamba(cfg config.SMBConfig) *SambaStore {
	return &SambaStore{cfg: cfg, dialTimeout: 10 * time.Second}
}

var _ backendStore = (*SambaStore)(nil)

func (s *SambaStore) validate() error {
	c := s.cfg
	if c.ServerName == "" || c.ServerIP == "" || c.Username == "" || c.ShareName == "" || c.RemotePath == "" {
		return fmt.Errorf("incomplete SMB configuration: server name, IP, username, share and remote path are all required")
	}
	return nil
}

// connect dials the server and mounts the share. The returned cleanup
// closes the mount, session and socket in order.
func (s *SambaStore) connect(ctx context.Context) (*smb2.Share, func(), error) {
	if err := s.validate(); err != nil {
		return nil, nil, err
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(s.cfg.ServerIP, "445"), s.dialTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to samba server: %w", err)
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:        s.cfg.Username,
			Password:    s.cfg.Password,
			Domain:      "WORKGROUP",
			Workstation: s.cfg.MachineName,
		},
	}
	sess, err := d.DialContext(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("samba session: %w", err)
	}

	share, err := sess.Mount(s.cfg.ShareName)
	if err != nil {
		sess.Logoff()
		conn.Close()
		return nil, nil, fmt.Errorf("mount share %s: %w", s.cfg.ShareName, err)
	}

	cleanup := func() {
		share.Umount()
		sess.Logoff()
		conn.Close()
	}
	return share, cleanup, nil
}

func (s *SambaStore) upload(ctx context.Context, r io.Reader, bucket, filename string) (*StoredFile, error) {
	share, cleanup, err := s.connect(ctx)
	if err != nil {
		return nil, storageErr("upload", BackendSamba, err)
	}
	defer cleanup()

	dir := path.Join(s.cfg.RemotePath, bucket)
	if err := share.MkdirAll(winPath(dir), 0o755); err != nil {
		return nil, storageErr("upload", BackendSamba, fmt.Errorf("create remote folder: %w", err))
	}

	name, err := uniqueFilename(filename, func(candidate string) (bool, error) {
		return remoteExists(share, dir, candidate)
	})
	if err != nil {
		return nil, storageErr("upload", BackendSamba, err)
	}

	dst := path.Join(dir, name)
	f, err := share.Create(winPath(dst))
	if err != nil {
		return nil, storageErr("upload", BackendSamba, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, storageErr("upload", BackendSamba, err)
	}
	if err := f.Close(); err != nil {
		return nil, storageErr("upload", BackendSamba, err)
	}

	// The share gives no write receipt; confirm by listing the folder.
	ok, err := remoteExists(share, dir, name)
	if err != nil {
		return nil, storageErr("upload", BackendSamba, err)
	}
	if !ok {
		return nil, storageErr("upload", BackendSamba, fmt.Errorf("stored file %s not visible on share", name))
	}

	url := fmt.Sprintf("smb://%s/%s/%s", s.cfg.ServerName, s.cfg.ShareName, dst)
	return &StoredFile{Filename: name, URL: url}, nil
}

func (s *SambaStore) delete(ctx context.Context, bucket, filename string) error {
	share, cleanup, err := s.connect(ctx)
	if err != nil {
		return storageErr("delete", BackendSamba, err)
	}
	defer cleanup()

	dir := path.Join(s.cfg.RemotePath, bucket)
	ok, err := remoteExists(share, dir, filename)
	if err != nil {
		return storageErr("delete", BackendSamba, err)
	}
	if !ok {
		return ErrFileNotFound
	}
	if err := share.Remove(winPath(path.Join(dir, filename))); err != nil {
		return storageErr("delete", BackendSamba, err)
	}
	return nil
}

func remoteExists(share *smb2.Share, dir, filename string) (bool, error) {
	entries, err := share.ReadDir(winPath(dir))
	if err != nil {
		return false, fmt.Errorf("list remote folder: %w", err)
	}
	for _, e := range entries {
		if e.Name() == filename {
			return true, nil
		}
	}
	return false, nil
}

// winPath converts a slash-joined path to the backslash form the SMB
// protocol expects.
func winPath(p string) string {
	return strings.ReplaceAll(strings.TrimPrefix(p, "/"), "/", `\`)
}
