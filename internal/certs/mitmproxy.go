package certs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCertificateUnavailable is returned when mitmproxy's generated CA
// certificate cannot be found, i.e. mitmproxy has never been run on this
// machine.
var ErrCertificateUnavailable = errors.New("mitmproxy CA certificate not found")

// CACertFilename is the name mitmproxy gives its generated CA certificate
// inside its config directory.
const CACertFilename = "mitmproxy-ca-cert.pem"

// DefaultConfDir returns mitmproxy's default config directory, ~/.mitmproxy.
func DefaultConfDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".mitmproxy"), nil
}

// FindCACert returns the path of mitmproxy's generated CA certificate under
// confdir.
func FindCACert(confdir string) (string, error) {
	path := filepath.Join(confdir, CACertFilename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w in %s (run mitmproxy once to generate it)", ErrCertificateUnavailable, confdir)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return path, nil
}
