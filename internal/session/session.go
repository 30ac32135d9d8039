// Package session orchestrates a mitmproxy run against a Signal checkout: it
// swaps the app's pinned server certificate for mitmproxy's CA, optionally
// points the host's proxy settings at mitmproxy, blocks while the proxy runs
// interactively, and puts every mutation back no matter how the run ends.
package session

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/sashaweiss-signal/proxying/internal/certs"
	"github.com/sashaweiss-signal/proxying/internal/sysproxy"
)

// DefaultArtifactPath is the pinned certificate's location relative to the
// Signal checkout root.
const DefaultArtifactPath = "SignalServiceKit/Resources/Certificates/signal-messenger.cer"

// Options configures a proxy session.
type Options struct {
	SignalRoot    string
	ArtifactPath  string // relative to SignalRoot; DefaultArtifactPath if empty
	WebUI         bool
	NoSystemProxy bool
	Scripts       []string // forwarded to mitmproxy in order
	ListenHost    string
	ListenPort    int
	ConfDir       string   // mitmproxy config dir; ~/.mitmproxy if empty
	ExtraArgs     []string // appended to the mitmproxy command line
}

// Seams for tests.
var (
	currentProxySettings = sysproxy.Current
	setProxySettings     = sysproxy.Set
	restoreProxySettings = sysproxy.Restore
	notifySignals        = notifySignalsImpl
)

func notifySignalsImpl() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch, func() { signal.Stop(ch) }
}

type undoStep struct {
	name string
	fn   func() error
}

// Session tracks the mutations made during setup so teardown can revert them
// in reverse order. Every undo is registered before its mutation is
// attempted.
type Session struct {
	opts Options
	undo []undoStep
}

// Run performs the full setup, proxy, teardown sequence. Teardown runs on
// every exit path, including setup failures and interrupts; its failures are
// aggregated and joined with the run error.
func Run(opts Options) (err error) {
	s := &Session{opts: opts}

	// Interrupts from here on are handled, not fatal: they end the proxy (or
	// abort setup) and still flow through teardown.
	signals, stop := notifySignals()
	defer stop()

	defer func() {
		if terr := s.teardown(); terr != nil {
			err = errors.Join(err, terr)
		}
	}()

	pemPath, err := s.setup(signals)
	if err != nil {
		return err
	}
	return s.runProxy(pemPath, signals)
}

func (s *Session) artifactPath() string {
	rel := s.opts.ArtifactPath
	if rel == "" {
		rel = DefaultArtifactPath
	}
	return filepath.Join(s.opts.SignalRoot, rel)
}

func (s *Session) confDir() (string, error) {
	if s.opts.ConfDir != "" {
		return s.opts.ConfDir, nil
	}
	return certs.DefaultConfDir()
}

func (s *Session) setup(signals <-chan os.Signal) (pemPath string, err error) {
	artifact, err := certs.LeaseArtifact(s.artifactPath())
	if err != nil {
		return "", err
	}
	log.WithField("path", artifact.Path).Debug("Leased pinned certificate")

	confdir, err := s.confDir()
	if err != nil {
		return "", err
	}
	caPath, err := certs.FindCACert(confdir)
	if err != nil {
		return "", err
	}
	caDER, err := certs.ReadCACert(caPath)
	if err != nil {
		return "", err
	}

	s.push("restore pinned certificate", artifact.Restore)
	if err := artifact.Overwrite(caDER); err != nil {
		return "", err
	}
	fmt.Printf("Swapped %s for the mitmproxy CA\n", artifact.Path)

	originalDER, err := certs.NormalizeDER(artifact.Original)
	if err != nil {
		return "", fmt.Errorf("pinned certificate: %w", err)
	}
	pemPath, bundleDir, err := certs.WriteTrustBundle(originalDER, filepath.Base(artifact.Path))
	if err != nil {
		return "", err
	}
	s.push("remove trust bundle", func() error { return os.RemoveAll(bundleDir) })
	log.WithField("path", pemPath).Debug("Wrote upstream trust bundle")

	if !s.opts.NoSystemProxy {
		snapshot, err := currentProxySettings()
		if err != nil {
			return "", err
		}
		s.push("restore system proxy settings", func() error { return restoreProxySettings(snapshot) })
		if err := setProxySettings(s.opts.ListenHost, s.opts.ListenPort); err != nil {
			return "", err
		}
		fmt.Printf("System proxy set to %s:%d (was %s)\n", s.opts.ListenHost, s.opts.ListenPort, snapshot)
	}

	// A ^C during the steps above lands in the channel rather than killing
	// us; honor it before handing the terminal to mitmproxy.
	select {
	case sig := <-signals:
		return "", fmt.Errorf("interrupted by %v before launch", sig)
	default:
	}
	return pemPath, nil
}

func (s *Session) push(name string, fn func() error) {
	s.undo = append(s.undo, undoStep{name: name, fn: fn})
}

// teardown reverts every registered mutation in reverse order. Each step is
// attempted even if earlier ones fail.
func (s *Session) teardown() error {
	var failures []error
	for i := len(s.undo) - 1; i >= 0; i-- {
		step := s.undo[i]
		log.WithField("step", step.name).Debug("Tearing down")
		if err := step.fn(); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", step.name, err))
		}
	}
	if len(s.undo) > 0 && len(failures) == 0 {
		fmt.Println("Restored original state")
	}
	s.undo = nil
	if len(failures) > 0 {
		return &TeardownError{Failures: failures}
	}
	return nil
}
