// Package sysinfo samples memory, load and uptime figures from the proc
// filesystem. Every sample is a fresh read; nothing is cached.
package sysinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable is returned when a proc file cannot be read, typically on
// systems without a proc filesystem.
var ErrUnavailable = errors.New("system information unavailable")

// Sampler reads system figures from a proc filesystem root.
type Sampler struct {
	root string
}

// New creates a Sampler over the real /proc.
func New() *Sampler {
	return &Sampler{root: "/proc"}
}

// NewWithRoot creates a Sampler over an alternate proc root.
func NewWithRoot(root string) *Sampler {
	return &Sampler{root: root}
}

// Memory holds sizes from /proc/meminfo, in kibibytes.
type Memory struct {
	TotalKiB     uint64 `json:"total_kib"`
	FreeKiB      uint64 `json:"free_kib"`
	AvailableKiB uint64 `json:"available_kib"`
}

// Load holds the three load averages from /proc/loadavg.
type Load struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Memory samples /proc/meminfo.
func (s *Sampler) Memory() (Memory, error) {
	data, err := s.read("meminfo")
	if err != nil {
		return Memory{}, err
	}

	var mem Memory
	for _, line := range strings.Split(string(data), "\n") {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		kib, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		switch name {
		case "MemTotal":
			mem.TotalKiB = kib
		case "MemFree":
			mem.FreeKiB = kib
		case "MemAvailable":
			mem.AvailableKiB = kib
		}
	}
	if mem.TotalKiB == 0 {
		return Memory{}, fmt.Errorf("meminfo has no MemTotal: %w", ErrUnavailable)
	}
	return mem, nil
}

// LoadAverage samples /proc/loadavg.
func (s *Sampler) LoadAverage() (Load, error) {
	data, err := s.read("loadavg")
	if err != nil {
		return Load{}, err
	}

	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return Load{}, fmt.Errorf("malformed loadavg %q: %w", string(data), ErrUnavailable)
	}
	var load Load
	for i, dst := range []*float64{&load.Load1, &load.Load5, &load.Load15} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Load{}, fmt.Errorf("malformed loadavg field %q: %w", fields[i], ErrUnavailable)
		}
		*dst = v
	}
	return load, nil
}

// Uptime samples /proc/uptime.
func (s *Sampler) Uptime() (time.Duration, error) {
	data, err := s.read("uptime")
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, fmt.Errorf("malformed uptime: %w", ErrUnavailable)
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed uptime field %q: %w", fields[0], ErrUnavailable)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func (s *Sampler) read(name string) ([]byte, error) {
	path := filepath.Join(s.root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnavailable)
	}
	return data, nil
}
