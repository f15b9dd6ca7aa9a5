package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/windows-mcp/internal/server"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments]",
	Short: "Invoke one MCP tool and print its result",
	Long: `Invoke a tool exactly as an MCP client would, without starting a transport.
Arguments are a JSON object. Image content is written to --out when given.

Examples:
  windows-mcp call Apps-Tool
  windows-mcp call Switch-Tool '{"name": "notepad"}'
  windows-mcp call State-Tool '{"use_vision": true}' --out screen.png`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().String("out", "", "Write image content to this file")
}

func runCall(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	arguments := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &arguments); err != nil {
			return fmt.Errorf("invalid JSON arguments: %w", err)
		}
	}

	session, err := newSession()
	if err != nil {
		return err
	}
	srv := server.New(session, server.Options{Image: cfg.ImageOptions()})
	result, err := srv.Call(cmd.Context(), args[0], arguments)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	var text []string
	for _, c := range result.Content {
		switch c := c.(type) {
		case mcp.TextContent:
			text = append(text, c.Text)
		case mcp.ImageContent:
			if out == "" {
				text = append(text, fmt.Sprintf("[%s image omitted; use --out]", c.MIMEType))
				continue
			}
			data, err := base64.StdEncoding.DecodeString(c.Data)
			if err != nil {
				return fmt.Errorf("decode image: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
		}
	}
	fmt.Fprintln(w, strings.Join(text, "\n"))
	if result.IsError {
		return fmt.Errorf("%s failed", args[0])
	}
	return nil
}
