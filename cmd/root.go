package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mj1618/windows-mcp/internal/config"
	"github.com/mj1618/windows-mcp/internal/logger"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/mj1618/windows-mcp/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "windows-mcp",
	Short: "Expose the Windows desktop to AI agents over MCP",
	Long: `windows-mcp captures the state of the Windows desktop (open apps, the focused
app, and the interactive, informative and scrollable UI elements on screen)
and serves it, together with input tools, over the Model Context Protocol.

Settings come from flags, WINDOWS_MCP_* environment variables, and
$HOME/.config/windows-mcp/config.yaml, in that order of precedence.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = initConfig
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/windows-mcp/config.yaml)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error, off")
	flags.Bool("log-pretty", false, "Human-readable console logs on stderr")
	flags.Duration("capture-timeout", 0, "Deadline for one desktop capture (1s-30s, default 8s)")
	flags.String("fixture", "", `Replay a YAML desktop file instead of the live desktop ("sample" for the built-in one)`)
	flags.String("format", "text", "Output format: text, yaml, json")
	flags.Bool("pretty", false, "Pretty-print JSON output")

	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.pretty", flags.Lookup("log-pretty"))
	_ = v.BindPFlag("capture.timeout", flags.Lookup("capture-timeout"))
	_ = v.BindPFlag("fixture", flags.Lookup("fixture"))
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Configure(v, cfgFile); err != nil {
		return err
	}
	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	// The root persistent flag is read directly so subcommand flags of
	// the same name cannot shadow it.
	format, _ := rootCmd.PersistentFlags().GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
	output.Stdout = cmd.OutOrStdout()
	return nil
}
