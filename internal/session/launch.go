package session

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// proxyHandle is the minimal surface of a started proxy process.
type proxyHandle interface {
	Signal(sig os.Signal) error
	Wait() error
}

// Seam for tests.
var startProxyTool = startProxyToolImpl

func startProxyToolImpl(name string, args []string) (proxyHandle, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return processHandle{cmd}, nil
}

type processHandle struct {
	cmd *exec.Cmd
}

func (p processHandle) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

func (p processHandle) Wait() error {
	return p.cmd.Wait()
}

func toolName(webUI bool) string {
	if webUI {
		return "mitmweb"
	}
	return "mitmproxy"
}

func (s *Session) toolArgs(pemPath string) []string {
	args := []string{
		"--listen-host", s.opts.ListenHost,
		"--listen-port", strconv.Itoa(s.opts.ListenPort),
	}
	if s.opts.ConfDir != "" {
		// The CA swapped into the app came from this confdir; the proxy must
		// use the same one.
		args = append(args, "--set", "confdir="+s.opts.ConfDir)
	}
	for _, script := range s.opts.Scripts {
		args = append(args, "--scripts", script)
	}
	args = append(args, "--set", "ssl_verify_upstream_trusted_ca="+pemPath)
	return append(args, s.opts.ExtraArgs...)
}

// runProxy blocks until the proxy exits. Signals are forwarded to the proxy;
// a non-zero exit after a signal counts as a clean shutdown.
func (s *Session) runProxy(pemPath string, signals <-chan os.Signal) error {
	name := toolName(s.opts.WebUI)
	args := s.toolArgs(pemPath)

	fmt.Printf("Running: %s %v\n", name, args)
	handle, err := startProxyTool(name, args)
	if err != nil {
		return &LaunchError{Tool: name, Err: err}
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- handle.Wait() }()

	interrupted := false
	for {
		select {
		case sig := <-signals:
			interrupted = true
			if err := handle.Signal(sig); err != nil {
				log.WithError(err).Debug("Failed to forward signal to proxy")
			}
		case err := <-waitCh:
			if err == nil {
				return nil
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				if interrupted {
					return nil
				}
				return fmt.Errorf("%s exited uncleanly: %w", name, err)
			}
			return fmt.Errorf("waiting for %s: %w", name, err)
		}
	}
}
