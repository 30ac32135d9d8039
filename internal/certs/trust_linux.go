//go:build linux

package certs

import (
	"fmt"

	"github.com/sashaweiss-signal/proxying/internal/util"
)

func trustCertImpl(certPath string) error {
	dest := "/usr/local/share/ca-certificates/mitmproxy-ca.crt"

	fmt.Printf("Copying certificate to %s (sudo)...\n", dest)
	if err := util.RunCommand("sudo", "cp", certPath, dest); err != nil {
		return err
	}

	fmt.Println("Updating CA certificates...")
	return util.RunCommand("sudo", "update-ca-certificates")
}
