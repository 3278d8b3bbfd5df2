// Package netprobe runs small reachability checks. Subprocesses are always
// invoked with a structured argument list; no command line is ever
// assembled from input strings.
package netprobe

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Runner executes a subprocess and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Prober performs host reachability probes.
type Prober struct {
	runner  Runner
	count   int
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a Prober sending count echo requests per probe, each bounded
// by timeout.
func New(count int, timeout time.Duration, log zerolog.Logger) *Prober {
	if count < 1 {
		count = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Prober{runner: execRunner{}, count: count, timeout: timeout, log: log}
}

// Ping checks whether host answers ICMP echo requests.
func (p *Prober) Ping(ctx context.Context, host string) error {
	if host == "" {
		return fmt.Errorf("host cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout+time.Second)
	defer cancel()

	seconds := int(p.timeout.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	args := []string{"-c", strconv.Itoa(p.count), "-W", strconv.Itoa(seconds), "--", host}

	out, err := p.runner.Run(ctx, "ping", args...)
	if err != nil {
		p.log.Debug().Str("host", host).Err(err).Msg("ping failed")
		return fmt.Errorf("host %s unreachable: %w (%s)", host, err, string(out))
	}
	return nil
}

// Resolve returns the addresses host resolves to.
func (p *Prober) Resolve(host string) ([]string, error) {
	if host == "" {
		return nil, fmt.Errorf("host cannot be empty")
	}
	addrs, err := net.LookupHost(host)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", host, err)
	}
	return addrs, nil
}
