package util

import (
	"os"

	"github.com/spf13/viper"
)

// ResolveSignalRoot determines the Signal checkout to operate on.
// Order:
// 1. The --signal-root flag
// 2. Env var SIGNAL_ROOT
// 3. Config "signal_root" (viper)
// 4. Fallback: the current working directory
func ResolveSignalRoot(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if root := os.Getenv("SIGNAL_ROOT"); root != "" {
		return root
	}

	if root := viper.GetString("signal_root"); root != "" {
		return root
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
