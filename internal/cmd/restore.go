package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sashaweiss-signal/proxying/internal/certs"
	"github.com/sashaweiss-signal/proxying/internal/sysproxy"
	"github.com/sashaweiss-signal/proxying/internal/util"
)

// Vars so tests can replace them.
var (
	readProxySettings = sysproxy.Current
	disableProxy      = sysproxy.Disable
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recover the pinned certificate after an unclean exit.",
	Long: `Recover the pinned certificate after an unclean exit.

A session backs the pinned certificate up next to the original before
overwriting it. If the process died without restoring (power loss,
kill -9), this puts the backup in place and turns the host proxy off
when it still points at mitmproxy.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagRoot, _ := cmd.Flags().GetString("signal-root")
		host, _ := cmd.Flags().GetString("listen-host")
		port, _ := cmd.Flags().GetInt("listen-port")

		artifactPath, err := resolveArtifactPath(util.ResolveSignalRoot(flagRoot))
		if err != nil {
			return err
		}
		return runRestore(artifactPath, host, port)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(artifactPath, host string, port int) error {
	restored, err := certs.RecoverBackup(artifactPath)
	if err != nil {
		return err
	}
	if restored {
		fmt.Printf("Restored %s from backup\n", artifactPath)
	} else {
		fmt.Printf("No backup next to %s, nothing to restore\n", artifactPath)
	}

	cur, err := readProxySettings()
	if err != nil {
		// Certificate recovery is the important part, a missing proxy
		// backend should not fail it.
		log.WithError(err).Debug("Could not read host proxy settings")
		return nil
	}
	if cur.Enabled && cur.Host == host && cur.Port == port {
		if err := disableProxy(); err != nil {
			return err
		}
		fmt.Println("Turned the host proxy off, it was still pointing at mitmproxy")
	}
	return nil
}
