package session

import (
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolName(t *testing.T) {
	assert.Equal(t, "mitmproxy", toolName(false))
	assert.Equal(t, "mitmweb", toolName(true))
}

func TestToolArgs(t *testing.T) {
	s := &Session{opts: Options{
		ListenHost: "0.0.0.0",
		ListenPort: 9090,
		ConfDir:    "/home/dev/.mitmproxy",
		Scripts:    []string{"shims.py"},
		ExtraArgs:  []string{"--ssl-insecure"},
	}}

	assert.Equal(t, []string{
		"--listen-host", "0.0.0.0",
		"--listen-port", "9090",
		"--set", "confdir=/home/dev/.mitmproxy",
		"--scripts", "shims.py",
		"--set", "ssl_verify_upstream_trusted_ca=/tmp/bundle/signal-messenger.pem",
		"--ssl-insecure",
	}, s.toolArgs("/tmp/bundle/signal-messenger.pem"))
}

func TestToolArgs_DefaultConfDir(t *testing.T) {
	s := &Session{opts: Options{ListenHost: "127.0.0.1", ListenPort: 8080}}

	// No confdir override: the proxy uses its own default.
	assert.Equal(t, []string{
		"--listen-host", "127.0.0.1",
		"--listen-port", "8080",
		"--set", "ssl_verify_upstream_trusted_ca=/tmp/b.pem",
	}, s.toolArgs("/tmp/b.pem"))
}

func TestStartProxyTool_SignalsRealProcess(t *testing.T) {
	handle, err := startProxyToolImpl("sleep", []string{"30"})
	require.NoError(t, err)

	require.NoError(t, handle.Signal(syscall.SIGTERM))

	err = handle.Wait()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
}

func TestStartProxyTool_MissingBinary(t *testing.T) {
	_, err := startProxyToolImpl("definitely-not-a-proxy-tool", nil)
	require.Error(t, err)
}
