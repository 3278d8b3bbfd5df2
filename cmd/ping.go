package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// PingResult is the JSON payload for `ping`.
type PingResult struct {
	Host      string   `json:"host"`
	Reachable bool     `json:"reachable"`
	Addresses []string `json:"addresses,omitempty"`
}

var pingCmd = &cobra.Command{
	Use:   "ping <host>",
	Short: "Check whether a host resolves and answers echo requests",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetApp().Ping(cmd.Context(), args[0])
	},
}

// Ping resolves host and probes it, printing the result.
func (app *App) Ping(ctx context.Context, host string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	addrs, err := app.Prober.Resolve(host)
	if err != nil {
		return err
	}
	if err := app.Prober.Ping(ctx, host); err != nil {
		return err
	}

	if app.JSON {
		return outputJSON(app.Out, PingResult{Host: host, Reachable: true, Addresses: addrs})
	}
	fmt.Fprintf(app.Out, "%s is reachable (%s)\n", host, addrs[0])
	return nil
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
