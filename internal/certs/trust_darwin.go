//go:build darwin

package certs

import (
	"fmt"

	"github.com/sashaweiss-signal/proxying/internal/util"
)

func trustCertImpl(certPath string) error {
	fmt.Println("Adding certificate to macOS System Keychain (may prompt for sudo)...")
	return util.RunCommand("sudo", "security", "add-trusted-cert", "-d", "-r", "trustRoot", "-k", "/Library/Keychains/System.keychain", certPath)
}
