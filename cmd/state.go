package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Capture and print the desktop state",
	Long: `Capture the desktop once and print the focused app, the open apps, and the
interactive, informative and scrollable elements with their IDs and click
coordinates.

Examples:
  windows-mcp state
  windows-mcp state --format json --pretty
  windows-mcp state --annotate --out screen.png`,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().Bool("vision", false, "Also capture a screenshot (written with --out)")
	stateCmd.Flags().Bool("annotate", false, "Draw element boxes and IDs on the screenshot (implies --vision)")
	stateCmd.Flags().String("out", "", "Write the screenshot to this file")
}

func runState(cmd *cobra.Command, _ []string) error {
	vision, _ := cmd.Flags().GetBool("vision")
	annotate, _ := cmd.Flags().GetBool("annotate")
	out, _ := cmd.Flags().GetString("out")
	if (vision || annotate) && out == "" {
		return fmt.Errorf("--out is required with --vision or --annotate")
	}

	session, err := newSession()
	if err != nil {
		return err
	}
	state, err := session.State(cmd.Context(), desktop.StateOptions{Vision: vision || annotate})
	if err != nil {
		return err
	}

	if state.Screenshot != nil {
		img := state.Screenshot.Image
		if annotate {
			img = output.Annotate(img, state.Snapshot)
		}
		opts := cfg.ImageOptions()
		opts.Format = imageFormatFor(out, opts.Format)
		data, _, err := output.EncodeImage(img, opts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
	}
	return output.Print(output.NewStateDocument(state))
}
