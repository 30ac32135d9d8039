//go:build !darwin && !linux

package sysproxy

func backendName() (string, bool) { return "", false }

func currentImpl() (Settings, error) { return Settings{}, ErrUnsupported }

func setImpl(host string, port int) error { return ErrUnsupported }

func disableImpl() error { return ErrUnsupported }
