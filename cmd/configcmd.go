package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// GetResult is the JSON payload for `config get`.
type GetResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SetResult is the JSON payload for `config set`.
type SetResult struct {
	Key     string `json:"key"`
	Outcome string `json:"outcome"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and mutate flat key=value config files",
}

var configGetCmd = &cobra.Command{
	Use:   "get <resource> <key>",
	Short: "Print the value of a key in a named config resource",
	Long: `Print the value of a key in a named config resource.

The resource name resolves to <base>/etc/<resource>.conf. The first
active (non-commented) line carrying the key wins; its value is printed
with surrounding whitespace trimmed.

Examples:
  opskit config get api level
  opskit config get api level --json`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetApp().ConfigGet(args[0], args[1])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <path> <key[=value]>",
	Short: "Update, append or comment out a key in a config file",
	Long: `Update, append or comment out a key in the config file at path.

With key=value the first active line carrying the key is rewritten in
place, or a new line is appended when none exists. With a bare key the
matching line is commented out. All other lines are preserved
byte-for-byte.

Examples:
  opskit config set /usr/local/opskit/etc/api.conf level=3
  opskit config set ./api.conf debug`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetApp().ConfigSet(args[0], args[1])
	},
}

// ConfigGet looks up key in the named resource and prints its value.
func (app *App) ConfigGet(resource, key string) error {
	value, err := app.Store.GetByName(resource, key)
	if err != nil {
		return err
	}

	if app.JSON {
		return outputJSON(app.Out, GetResult{Key: key, Value: value})
	}
	fmt.Fprintln(app.Out, value)
	return nil
}

// ConfigSet applies a key=value spec to the file at path and prints which
// mutation happened.
func (app *App) ConfigSet(path, spec string) error {
	outcome, err := app.Store.SetByPath(path, spec)
	if err != nil {
		return err
	}

	if app.JSON {
		key, _, _ := strings.Cut(spec, "=")
		return outputJSON(app.Out, SetResult{Key: key, Outcome: outcome.String()})
	}
	fmt.Fprintln(app.Out, outcome)
	return nil
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
