package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a clean flag set.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"serve", "state", "apps", "observe", "call"} {
		assert.True(t, found[name], "missing subcommand %q", name)
	}
	assert.NotEmpty(t, rootCmd.Version)
	assert.NotNil(t, rootCmd.PersistentPreRunE)
}

func TestState_Text(t *testing.T) {
	out, err := run(t, "state", "--fixture", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, `"Untitled - Notepad"`)
	assert.Contains(t, out, `"Save"`)
	assert.NotContains(t, out, `"Hidden"`)
}

func TestState_JSON(t *testing.T) {
	out, err := run(t, "state", "--fixture", "sample", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		FocusedApp struct {
			Title string `json:"title"`
		} `json:"focused_app"`
		Interactive []json.RawMessage `json:"interactive"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Untitled - Notepad", doc.FocusedApp.Title)
	assert.NotEmpty(t, doc.Interactive)
}

func TestState_AnnotateWritesScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.png")
	_, err := run(t, "state", "--fixture", "sample", "--annotate", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestState_VisionNeedsOut(t *testing.T) {
	_, err := run(t, "state", "--fixture", "sample", "--vision")
	assert.ErrorContains(t, err, "--out is required")
}

func TestRoot_BadFormat(t *testing.T) {
	_, err := run(t, "apps", "--fixture", "sample", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestRoot_MissingFixture(t *testing.T) {
	_, err := run(t, "apps", "--fixture", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestApps_Text(t *testing.T) {
	out, err := run(t, "apps", "--fixture", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, `"Calculator"`)
	assert.Contains(t, out, "focused")
}

func TestCall_Switch(t *testing.T) {
	out, err := run(t, "call", "Switch-Tool", `{"name": "calc"}`, "--fixture", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, `Switched to "Calculator".`)
}

func TestCall_ToolErrorFails(t *testing.T) {
	out, err := run(t, "call", "Switch-Tool", `{"name": "no such app"}`, "--fixture", "sample")
	assert.ErrorContains(t, err, "Switch-Tool failed")
	assert.Contains(t, out, "no matching app")
}

func TestCall_BadInput(t *testing.T) {
	_, err := run(t, "call", "Apps-Tool", `{not json`, "--fixture", "sample")
	assert.ErrorContains(t, err, "invalid JSON arguments")

	_, err = run(t, "call", "Nope-Tool", "--fixture", "sample")
	assert.ErrorContains(t, err, "unknown tool")
}

func TestCall_StateImageToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	out, err := run(t, "call", "State-Tool", `{"use_vision": true}`, "--out", path, "--fixture", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "Untitled - Notepad")
	assert.FileExists(t, path)
}

func TestObserve_StableDesktopPrintsNothing(t *testing.T) {
	out, err := run(t, "observe", "--fixture", "sample", "--interval", "1ms", "--count", "2")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestImageFormatFor(t *testing.T) {
	assert.Equal(t, "png", imageFormatFor("a.PNG", "jpeg"))
	assert.Equal(t, "jpeg", imageFormatFor("a.jpg", "png"))
	assert.Equal(t, "jpeg", imageFormatFor("a.jpeg", "png"))
	assert.Equal(t, "png", imageFormatFor("a.bin", "png"))
}
