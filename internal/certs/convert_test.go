package certs

import (
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDER(t *testing.T) {
	der := testCertDER(t, "test-ca")

	got, err := NormalizeDER(der)
	require.NoError(t, err)
	assert.Equal(t, der, got)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	got, err = NormalizeDER(pemBytes)
	require.NoError(t, err)
	assert.Equal(t, der, got)
}

func TestNormalizeDER_Garbage(t *testing.T) {
	_, err := NormalizeDER([]byte("not a certificate"))
	assert.Error(t, err)
}

func TestNormalizeDER_WrongBlockType(t *testing.T) {
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})
	_, err := NormalizeDER(pemBytes)
	assert.Error(t, err)
}

func TestReadCACert(t *testing.T) {
	der := testCertDER(t, "mitmproxy")
	dir := t.TempDir()
	path := filepath.Join(dir, CACertFilename)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, pemBytes, 0o644))

	got, err := ReadCACert(path)
	require.NoError(t, err)
	assert.Equal(t, der, got)
}

func TestWriteTrustBundle(t *testing.T) {
	der := testCertDER(t, "Signal Messenger")

	pemPath, dir, err := WriteTrustBundle(der, "signal-messenger.cer")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.Equal(t, "signal-messenger.pem", filepath.Base(pemPath))

	data, err := os.ReadFile(pemPath)
	require.NoError(t, err)
	block, _ := pem.Decode(data)
	require.NotNil(t, block)
	assert.Equal(t, "CERTIFICATE", block.Type)
	assert.Equal(t, der, block.Bytes)
}

func TestWriteTrustBundle_RejectsGarbage(t *testing.T) {
	_, _, err := WriteTrustBundle([]byte("garbage"), "pinned.cer")
	assert.Error(t, err)
}

func TestLooksLikeMitmproxyCA(t *testing.T) {
	assert.True(t, LooksLikeMitmproxyCA(testCertDER(t, "mitmproxy")))
	assert.False(t, LooksLikeMitmproxyCA(testCertDER(t, "Signal Messenger")))
	assert.False(t, LooksLikeMitmproxyCA([]byte("garbage")))
}
