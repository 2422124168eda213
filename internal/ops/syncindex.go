// Package ops implements remote maintenance operations against an index
// build host — today, a single one: pulling a freshly built bbolt
// snapshot down to the local machine that serves queries.
package ops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"
)

// SyncConfig names the remote build host and the local/remote paths of
// the index snapshot to pull.
type SyncConfig struct {
	Host       string // host:port, default port 22 if no port given
	Username   string
	Password   string
	RemotePath string
	LocalPath  string
	Timeout    time.Duration
}

// Syncer pulls posting-list snapshots from a remote index-build host over
// SSH: one session per command, combined-output/pipe style, the shape a
// device-diagnostics session wrapper takes adapted to a single file-pull
// operation.
type Syncer struct {
	cfg    SyncConfig
	client *ssh.Client
}

// Dial opens the SSH connection to cfg.Host.
func Dial(cfg SyncConfig) (*Syncer, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	addr := cfg.Host
	if !hasPort(addr) {
		addr += ":22"
	}

	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("ops: ssh dial %s: %w", cfg.Host, err)
	}
	return &Syncer{cfg: cfg, client: client}, nil
}

func hasPort(addr string) bool {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return true
		}
		if addr[i] == ']' {
			return false
		}
	}
	return false
}

// PullSnapshot downloads cfg.RemotePath to cfg.LocalPath via `cat`,
// writing to a temp file first and renaming into place so a reader never
// observes a partially-written snapshot — an upload-then-rename
// discipline run in reverse.
func (s *Syncer) PullSnapshot() error {
	session, err := s.client.NewSession()
	if err != nil {
		return fmt.Errorf("ops: new session: %w", err)
	}
	defer session.Close()

	stdout, err := session.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ops: stdout pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("cat %s", s.cfg.RemotePath)); err != nil {
		return fmt.Errorf("ops: start cat: %w", err)
	}

	tmpPath := s.cfg.LocalPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.cfg.LocalPath), 0o755); err != nil {
		return fmt.Errorf("ops: mkdir: %w", err)
	}
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ops: create temp file: %w", err)
	}

	if _, copyErr := io.Copy(tmp, stdout); copyErr != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ops: copy snapshot: %w", copyErr)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ops: close temp file: %w", err)
	}

	if err := session.Wait(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ops: remote cat failed: %w", err)
	}

	if err := os.Rename(tmpPath, s.cfg.LocalPath); err != nil {
		return fmt.Errorf("ops: rename into place: %w", err)
	}
	return nil
}

// RemoteSnapshotSize runs `stat -c %s` against the remote path, useful for
// deciding whether a pull is needed before transferring the whole file.
func (s *Syncer) RemoteSnapshotSize() (int64, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return 0, fmt.Errorf("ops: new session: %w", err)
	}
	defer session.Close()

	out, err := session.CombinedOutput(fmt.Sprintf("stat -c %%s %s", s.cfg.RemotePath))
	if err != nil {
		return 0, fmt.Errorf("ops: stat remote snapshot: %w", err)
	}
	var size int64
	if _, err := fmt.Sscanf(string(out), "%d", &size); err != nil {
		return 0, fmt.Errorf("ops: parse remote size: %w", err)
	}
	return size, nil
}

// Close closes the underlying SSH connection.
func (s *Syncer) Close() error { return s.client.Close() }
