package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/config"
	"github.com/mj1618/uistate/internal/logging"
	"github.com/mj1618/uistate/internal/output"
	"github.com/mj1618/uistate/internal/version"
)

var (
	// cfg and logger are set by the root PersistentPreRunE.
	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "uistate",
	Short: "Perceive and annotate the UI state of a device, browser or desktop",
	Long: `uistate turns a raw UI hierarchy dump into a numbered list of elements and,
optionally, a screenshot with each interactive element outlined and labelled
with the same number. It reads from Android (adb), iOS (WebDriverAgent),
Chrome (DevTools) and macOS (osascript), or from saved dump files.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.String("format", "text", "Output format: text, yaml, json")
	pf.Bool("pretty", false, "Pretty-print JSON")

	pf.String("platform", "android", "Platform: android, ios, chrome, mac")
	pf.String("driver", "", "Driver name (default: file when --dump is set, else the platform's live driver)")
	pf.String("dump", "", "Read the hierarchy from this file instead of a live device")
	pf.String("screenshot", "", "Screenshot file used with --dump")
	pf.String("window-size", "", "Window size WxH used with --dump")
	pf.String("adb", "", "adb command line (overrides config)")
	pf.String("browser-url", "", "DevTools endpoint (overrides config)")
	pf.String("wda-url", "", "WebDriverAgent base URL (overrides config)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.NewLoader().WithConfigPath(path).Load()
		if err != nil {
			return err
		}
		if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
			loaded.LogLevel = lvl
		}
		l, err := logging.New(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
