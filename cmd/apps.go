package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List open apps",
	RunE:  runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

// appList prints one app per line in text format.
type appList []model.AppRecord

func (l appList) Text() string {
	if len(l) == 0 {
		return output.NoApps + "\n"
	}
	var b strings.Builder
	for _, app := range l {
		fmt.Fprintln(&b, output.FormatApp(app))
	}
	return b.String()
}

func runApps(cmd *cobra.Command, _ []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	apps, err := session.Desktop().Apps(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(appList(apps))
}
