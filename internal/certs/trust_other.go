//go:build !darwin && !linux

package certs

import (
	"fmt"
	"runtime"
)

func trustCertImpl(certPath string) error {
	return fmt.Errorf("system trust store installation is not supported on %s", runtime.GOOS)
}
