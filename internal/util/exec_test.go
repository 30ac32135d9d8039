package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_Seam(t *testing.T) {
	orig := RunCommandFn
	defer func() { RunCommandFn = orig }()

	var got []string
	RunCommandFn = func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}

	require.NoError(t, RunCommand("networksetup", "-setwebproxy", "Wi-Fi", "127.0.0.1", "8080"))
	assert.Equal(t, []string{"networksetup", "-setwebproxy", "Wi-Fi", "127.0.0.1", "8080"}, got)
}

func TestReadCommand_Seam(t *testing.T) {
	orig := ReadCommandFn
	defer func() { ReadCommandFn = orig }()

	ReadCommandFn = func(name string, args ...string) ([]byte, error) {
		return []byte("interface: en0\n"), nil
	}

	out, err := ReadCommand("route", "-n", "get", "default")
	require.NoError(t, err)
	assert.Equal(t, "interface: en0\n", string(out))
}
