package cmd

import (
	"context"
	"time"

	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/logger"
	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/spf13/cobra"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Watch the desktop and print element changes",
	Long: `Capture the desktop repeatedly and print what changed between captures:
elements added, removed, or with changed properties. Nothing is printed while
the desktop is stable.

Use Ctrl+C, --count or --duration to stop observing.`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Duration("interval", time.Second, "Time between captures")
	observeCmd.Flags().Duration("duration", 0, "Stop after this long (0 = until interrupted)")
	observeCmd.Flags().Int("count", 0, "Stop after this many captures after the first (0 = unlimited)")
}

func runObserve(cmd *cobra.Command, _ []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	duration, _ := cmd.Flags().GetDuration("duration")
	count, _ := cmd.Flags().GetInt("count")

	session, err := newSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if duration > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}
	log := logger.WithComponent("observe")

	prev, err := session.State(ctx, desktop.StateOptions{})
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 0; count == 0 || n < count; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		curr, err := session.State(ctx, desktop.StateOptions{})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// A failed capture is skipped; the next tick compares against
			// the last good one.
			log.Warn().Err(err).Msg("capture failed")
			continue
		}
		diff := model.DiffSnapshots(prev.Snapshot, curr.Snapshot)
		prev = curr
		if diff.Empty() {
			continue
		}
		if err := output.Print(output.DiffDocument{
			StateID:    curr.ID,
			FocusedApp: curr.ActiveApp,
			Diff:       diff,
		}); err != nil {
			return err
		}
	}
	return nil
}
