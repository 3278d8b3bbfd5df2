package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"opskit/internal/sysinfo"
)

// SysinfoResult is the JSON payload for `sysinfo`.
type SysinfoResult struct {
	Memory sysinfo.Memory `json:"memory"`
	Load   sysinfo.Load   `json:"load"`
	Uptime float64        `json:"uptime_seconds"`
}

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Show memory, load average and uptime",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetApp().Sysinfo()
	},
}

// Sysinfo samples and prints memory, load and uptime figures.
func (app *App) Sysinfo() error {
	mem, err := app.Sampler.Memory()
	if err != nil {
		return err
	}
	load, err := app.Sampler.LoadAverage()
	if err != nil {
		return err
	}
	uptime, err := app.Sampler.Uptime()
	if err != nil {
		return err
	}

	if app.JSON {
		return outputJSON(app.Out, SysinfoResult{
			Memory: mem,
			Load:   load,
			Uptime: uptime.Seconds(),
		})
	}

	fmt.Fprintf(app.Out, "Memory: %d MiB total, %d MiB available\n",
		mem.TotalKiB/1024, mem.AvailableKiB/1024)
	fmt.Fprintf(app.Out, "Load: %.2f %.2f %.2f\n", load.Load1, load.Load5, load.Load15)
	fmt.Fprintf(app.Out, "Uptime: %s\n", uptime.Round(time.Second))
	return nil
}

func init() {
	rootCmd.AddCommand(sysinfoCmd)
}
