// Package sysproxy reads and mutates the host OS's HTTP(S) proxy settings,
// via networksetup on macOS and gsettings on GNOME-ish Linuxes. Settings are
// snapshotted before mutation so a session can put them back exactly.
package sysproxy

import (
	"errors"
	"fmt"
)

// Settings is a snapshot of the host's HTTP(S) proxy configuration.
type Settings struct {
	Enabled bool
	Host    string
	Port    int
}

func (s Settings) String() string {
	if !s.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ErrUnsupported is returned on platforms without a known system proxy
// mechanism.
var ErrUnsupported = errors.New("system proxy configuration not supported on this platform")

// Error wraps a failed system proxy operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("system proxy %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Current returns the host's active HTTP proxy settings.
func Current() (Settings, error) {
	s, err := currentImpl()
	if err != nil {
		return Settings{}, &Error{Op: "read", Err: err}
	}
	return s, nil
}

// Set points the host's HTTP and HTTPS proxy at host:port and enables it.
func Set(host string, port int) error {
	if err := setImpl(host, port); err != nil {
		return &Error{Op: "set", Err: err}
	}
	return nil
}

// Disable turns the host's HTTP(S) proxy off.
func Disable() error {
	if err := disableImpl(); err != nil {
		return &Error{Op: "disable", Err: err}
	}
	return nil
}

// Restore brings the host back to a previously captured snapshot.
func Restore(prev Settings) error {
	if prev.Enabled {
		return Set(prev.Host, prev.Port)
	}
	return Disable()
}

// Supported reports whether this platform has a system proxy backend, and
// which one.
func Supported() (string, bool) {
	return backendName()
}
