package certs

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadCACert loads a PEM certificate file and returns its DER bytes, the
// form the pinned artifact is stored in.
func ReadCACert(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	der, err := NormalizeDER(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return der, nil
}

// NormalizeDER accepts certificate bytes in either DER or PEM form and
// returns validated DER.
func NormalizeDER(data []byte) ([]byte, error) {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "CERTIFICATE" {
			return nil, fmt.Errorf("unexpected PEM block %q", block.Type)
		}
		der = block.Bytes
	}
	if _, err := x509.ParseCertificate(der); err != nil {
		return nil, fmt.Errorf("not a certificate: %w", err)
	}
	return der, nil
}

// WriteTrustBundle writes der as a PEM file named after base (extension
// replaced with .pem) in a fresh temporary directory. The caller owns the
// returned directory and removes it at teardown.
func WriteTrustBundle(der []byte, base string) (pemPath string, dir string, err error) {
	if _, err := x509.ParseCertificate(der); err != nil {
		return "", "", fmt.Errorf("not a certificate: %w", err)
	}

	dir, err = os.MkdirTemp("", "start-proxy-")
	if err != nil {
		return "", "", fmt.Errorf("create temp dir: %w", err)
	}

	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".pem"
	pemPath = filepath.Join(dir, name)
	if err := writePem(pemPath, "CERTIFICATE", der); err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	return pemPath, dir, nil
}

// LooksLikeMitmproxyCA reports whether der parses as a certificate issued by
// mitmproxy, meaning a previous session left the swap in place.
func LooksLikeMitmproxyCA(der []byte) bool {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(cert.Issuer.CommonName), "mitmproxy")
}

func writePem(path, type_ string, bytes []byte) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return pem.Encode(out, &pem.Block{Type: type_, Bytes: bytes})
}
