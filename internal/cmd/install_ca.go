package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sashaweiss-signal/proxying/internal/certs"
)

var installCACmd = &cobra.Command{
	Use:   "install-ca",
	Short: "Add the mitmproxy CA to the system trust store.",
	Long: `Add the mitmproxy CA to the system trust store.

Only needed when other tools on this machine (simulators, curl, browsers)
should trust mitmproxy too. The Signal app itself trusts the CA through
the certificate swap a session performs, without touching the system
store. Uses sudo.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		confdir, _ := cmd.Flags().GetString("confdir")
		if confdir == "" {
			var err error
			confdir, err = certs.DefaultConfDir()
			if err != nil {
				return err
			}
		}
		caPath, err := certs.FindCACert(confdir)
		if err != nil {
			return err
		}
		return certs.TrustCert(caPath)
	},
}

func init() {
	rootCmd.AddCommand(installCACmd)
}
