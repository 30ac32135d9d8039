// Package certs handles the certificate files a proxy session touches: the
// app's pinned certificate (leased, overwritten, restored), mitmproxy's
// generated CA, and the PEM trust bundle handed to mitmproxy for upstream
// verification.
package certs

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// ErrArtifactNotFound is returned when the pinned certificate file does not
// exist at the expected path.
var ErrArtifactNotFound = errors.New("pinned certificate not found")

// BackupSuffix is appended to the artifact path for the sidecar backup kept
// on disk while the original bytes are swapped out. It survives a crash of
// this process; `start-proxy restore` picks it up.
const BackupSuffix = ".orig"

// Artifact is a pinned certificate file held under a temporary lease: the
// original bytes are retained in memory, mirrored to a sidecar backup, and
// written back at teardown.
type Artifact struct {
	Path     string
	Original []byte
}

// LeaseArtifact reads and retains the artifact's current bytes.
func LeaseArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("read pinned certificate: %w", err)
	}
	return &Artifact{Path: path, Original: data}, nil
}

func (a *Artifact) backupPath() string { return a.Path + BackupSuffix }

// Overwrite replaces the artifact's contents with der. The sidecar backup is
// written first so the original survives even if this process dies before
// restoring.
func (a *Artifact) Overwrite(der []byte) error {
	if err := os.WriteFile(a.backupPath(), a.Original, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", a.backupPath(), err)
	}
	log.WithField("path", a.Path).Debug("Overwriting pinned certificate")
	if err := os.WriteFile(a.Path, der, 0o644); err != nil {
		return fmt.Errorf("overwrite %s: %w", a.Path, err)
	}
	return nil
}

// Restore writes the retained original bytes back and removes the sidecar.
func (a *Artifact) Restore() error {
	if err := os.WriteFile(a.Path, a.Original, 0o644); err != nil {
		return fmt.Errorf("restore %s: %w", a.Path, err)
	}
	if err := os.Remove(a.backupPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove backup %s: %w", a.backupPath(), err)
	}
	return nil
}

// RecoverBackup restores path from its sidecar backup, if one exists, and
// reports whether a backup was found.
func RecoverBackup(path string) (bool, error) {
	backup := path + BackupSuffix
	data, err := os.ReadFile(backup)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup %s: %w", backup, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return true, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(backup); err != nil {
		return true, fmt.Errorf("remove backup %s: %w", backup, err)
	}
	return true, nil
}
