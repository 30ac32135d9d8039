package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/sashaweiss-signal/proxying/internal/certs"
	"github.com/sashaweiss-signal/proxying/internal/sysproxy"
	"github.com/sashaweiss-signal/proxying/internal/util"
)

// Vars so tests can replace them.
var (
	lookPath       = exec.LookPath
	proxySupported = sysproxy.Supported
)

var doctorCmd = &cobra.Command{
	Use:          "doctor",
	Short:        "Check that everything a proxy session needs is in place.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagRoot, _ := cmd.Flags().GetString("signal-root")
		confdir, _ := cmd.Flags().GetString("confdir")
		host, _ := cmd.Flags().GetString("listen-host")
		port, _ := cmd.Flags().GetInt("listen-port")
		return runDoctor(util.ResolveSignalRoot(flagRoot), confdir, host, port)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(root, confdir, host string, port int) error {
	var problems int

	ok := func(format string, a ...any) {
		fmt.Printf("  ok: "+format+"\n", a...)
	}
	bad := func(format string, a ...any) {
		problems++
		fmt.Printf("  PROBLEM: "+format+"\n", a...)
	}

	for _, tool := range []string{"mitmproxy", "mitmweb"} {
		if path, err := lookPath(tool); err != nil {
			bad("%s not found on PATH (try: brew install mitmproxy)", tool)
		} else {
			ok("%s at %s", tool, path)
		}
	}

	if confdir == "" {
		var err error
		confdir, err = certs.DefaultConfDir()
		if err != nil {
			return err
		}
	}
	if caPath, err := certs.FindCACert(confdir); err != nil {
		bad("mitmproxy CA missing from %s (run mitmproxy once to generate it)", confdir)
	} else {
		ok("mitmproxy CA at %s", caPath)
	}

	artifactPath, err := resolveArtifactPath(root)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		bad("pinned certificate not found at %s (is %s a Signal checkout?)", artifactPath, root)
	} else if der, derr := certs.NormalizeDER(data); derr != nil {
		bad("pinned certificate at %s does not parse: %v", artifactPath, derr)
	} else if certs.LooksLikeMitmproxyCA(der) {
		bad("pinned certificate at %s is a mitmproxy CA, left over from an unclean exit (try: start-proxy restore)", artifactPath)
	} else {
		ok("pinned certificate at %s", artifactPath)
	}
	if _, err := os.Stat(artifactPath + certs.BackupSuffix); err == nil {
		bad("leftover backup at %s (try: start-proxy restore)", artifactPath+certs.BackupSuffix)
	}

	if backend, supported := proxySupported(); supported {
		ok("host proxy control via %s", backend)
	} else {
		bad("no host proxy backend on this platform, run with --no-network-proxy")
	}

	if util.PortInUse(host, port) {
		bad("%s:%d is already in use", host, port)
	} else {
		ok("%s:%d is free", host, port)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Println("All good")
	return nil
}
