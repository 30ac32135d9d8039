package cmd

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sashaweiss-signal/proxying/internal/session"
	"github.com/sashaweiss-signal/proxying/internal/util"
)

// runSession is a var so tests can replace it.
var runSession = session.Run

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "start-proxy",
	Short: "Run mitmproxy against a local Signal build.",
	Long: `Run mitmproxy against a local Signal build.

The app pins signal-messenger.cer, so plain proxying only produces TLS
errors. This command swaps that pinned certificate for the mitmproxy CA
and hands the original to mitmproxy for upstream verification, then runs
mitmproxy in this terminal until you quit it. Host proxy settings are
updated too unless --no-network-proxy is given. Everything is restored
when the session ends, however it ends.

The pinned certificate is backed up next to the original with a .orig
suffix, so an unclean exit can be repaired with "start-proxy restore".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := sessionOptions(cmd)
		if err != nil {
			return err
		}
		return runSession(opts)
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.start-proxy.yaml)")
	rootCmd.PersistentFlags().String("signal-root", "", "Signal checkout to operate on (default $SIGNAL_ROOT or the working directory)")
	rootCmd.PersistentFlags().String("confdir", "", "mitmproxy config directory (default ~/.mitmproxy)")
	rootCmd.PersistentFlags().String("listen-host", "127.0.0.1", "Address mitmproxy listens on")
	rootCmd.PersistentFlags().Int("listen-port", 8080, "Port mitmproxy listens on")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.Flags().Bool("web-ui", false, "Use mitmweb instead of the mitmproxy console")
	rootCmd.Flags().Bool("no-network-proxy", false, "Leave the host proxy settings alone")
	rootCmd.Flags().StringArray("script", nil, "mitmproxy addon script, may be repeated")
}

func initConfig() {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose || os.Getenv("START_PROXY_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".start-proxy")
	}

	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Loaded config")
	}
}

// sessionOptions merges flags with the checkout's project config. Flags that
// were set explicitly win over config values.
func sessionOptions(cmd *cobra.Command) (session.Options, error) {
	flagRoot, _ := cmd.Flags().GetString("signal-root")
	root := util.ResolveSignalRoot(flagRoot)

	cfg, err := util.LoadProjectConfig(root)
	if err != nil {
		return session.Options{}, err
	}

	opts := session.Options{
		SignalRoot:   root,
		ArtifactPath: cfg.Certificate,
		ExtraArgs:    cfg.MitmproxyArgs,
	}
	opts.WebUI, _ = cmd.Flags().GetBool("web-ui")
	opts.NoSystemProxy, _ = cmd.Flags().GetBool("no-network-proxy")
	opts.ConfDir, _ = cmd.Flags().GetString("confdir")

	opts.ListenHost, _ = cmd.Flags().GetString("listen-host")
	opts.ListenPort, _ = cmd.Flags().GetInt("listen-port")
	if cfg.Listen.Host != "" && !cmd.Flags().Changed("listen-host") {
		opts.ListenHost = cfg.Listen.Host
	}
	if cfg.Listen.Port != 0 && !cmd.Flags().Changed("listen-port") {
		opts.ListenPort = cfg.Listen.Port
	}

	flagScripts, _ := cmd.Flags().GetStringArray("script")
	opts.Scripts = resolveScripts(root, cfg.Scripts, flagScripts)
	return opts, nil
}

// resolveScripts puts config-declared scripts before flag-passed ones and
// anchors relative config paths at the checkout root.
func resolveScripts(root string, fromConfig, fromFlags []string) []string {
	var scripts []string
	for _, s := range fromConfig {
		if !filepath.IsAbs(s) {
			s = filepath.Join(root, s)
		}
		scripts = append(scripts, s)
	}
	return append(scripts, fromFlags...)
}

// resolveArtifactPath returns the pinned certificate's absolute path for a
// checkout, honoring a project config override.
func resolveArtifactPath(root string) (string, error) {
	cfg, err := util.LoadProjectConfig(root)
	if err != nil {
		return "", err
	}
	rel := cfg.Certificate
	if rel == "" {
		rel = session.DefaultArtifactPath
	}
	return filepath.Join(root, rel), nil
}
