// Package confstore reads and mutates flat `key = value` configuration
// files in place, preserving every byte it was not asked to change.
// Resources are opened transiently per call; nothing is cached between
// operations.
package confstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// Store resolves logical resource names under a base directory and performs
// read and read-modify-write operations against the resolved files.
type Store struct {
	base string
	log  zerolog.Logger
}

// New creates a Store rooted at base. Named resources resolve to
// <base>/etc/<name>.conf.
func New(base string, log zerolog.Logger) *Store {
	return &Store{base: base, log: log}
}

// ResourcePath returns the file a logical resource name resolves to.
func (s *Store) ResourcePath(name string) string {
	return filepath.Join(s.base, "etc", name+".conf")
}

// GetByName looks up key in the named resource. It returns the value of the
// first active (non-commented) line whose key matches, with surrounding
// whitespace trimmed. A present-but-empty value yields ("", nil); an absent
// key yields ErrKeyNotFound.
func (s *Store) GetByName(name, key string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("resource name cannot be empty")
	}
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}

	path := s.ResourcePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn().Str("path", path).Msg("config resource not found")
			return "", fmt.Errorf("%s: %w", path, ErrResourceNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		content := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(content, "#") {
			continue
		}
		if rest, ok := cutKey(content, key); ok {
			return strings.TrimSpace(rest), nil
		}
	}

	s.log.Debug().Str("path", path).Str("key", key).Msg("key not configured")
	return "", fmt.Errorf("key %q in %s: %w", key, path, ErrKeyNotFound)
}

// SetByPath applies a key=value spec to the config file at path. The spec is
// split on its first "="; a bare key (no "=") means "comment this key out".
// At most one line is touched:
//
//   - an active matching line plus a value rewrites that line (Modified)
//   - an active matching line without a value gets a "# " prefix (Commented)
//   - no active match appends a new line, reusing the indentation of any
//     earlier trace of the key (Appended); a bare key with no match appends
//     a commented placeholder instead
//
// The file must already exist. The rewrite goes through a temp file and an
// atomic rename, serialized against concurrent SetByPath calls with an
// advisory lock next to the file.
func (s *Store) SetByPath(path, spec string) (Outcome, error) {
	if spec == "" {
		return 0, fmt.Errorf("key=value spec cannot be empty")
	}
	key, value, hasValue := strings.Cut(spec, "=")
	if key == "" {
		return 0, fmt.Errorf("spec %q has no key", spec)
	}

	lock, err := acquireLock(path)
	if err != nil {
		return 0, fmt.Errorf("locking %s: %w", path, err)
	}
	defer lock.release()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn().Str("path", path).Msg("config resource not found")
			return 0, fmt.Errorf("%s: %w", path, ErrResourceNotFound)
		}
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	content, outcome := rewrite(string(data), key, value, hasValue)

	if err := writeAtomic(path, content); err != nil {
		return 0, fmt.Errorf("rewriting %s: %w", path, err)
	}
	s.log.Info().Str("path", path).Str("key", key).Stringer("outcome", outcome).Msg("config updated")
	return outcome, nil
}

// rewrite computes the new file content and the outcome for one spec.
func rewrite(content, key, value string, hasValue bool) (string, Outcome) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if _, ok := cutKey(trimmed, key); !ok {
			continue
		}
		if hasValue {
			// Everything through the first "=" is kept verbatim, the new
			// value follows with no inserted space.
			eq := strings.Index(line, "=")
			lines[i] = line[:eq+1] + value
			return strings.Join(lines, "\n"), Modified
		}
		lines[i] = "# " + line
		return strings.Join(lines, "\n"), Commented
	}

	// No active line carries the key: append, mirroring the indentation of
	// the first earlier trace of it, commented or not.
	indent := appendIndent(lines, key)
	entry := indent + key + " = " + value
	if !hasValue {
		entry = indent + "# " + key + " ="
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + entry + "\n", Appended
}

// appendIndent finds the leading whitespace to reuse for an appended entry:
// that of the first line whose content (past any comment marker) starts
// with the key.
func appendIndent(lines []string, key string) string {
	for _, line := range lines {
		content := strings.TrimLeft(line, " \t")
		candidate := content
		if strings.HasPrefix(candidate, "#") {
			candidate = strings.TrimLeft(candidate[1:], " \t")
		}
		if strings.HasPrefix(candidate, key) {
			return line[:len(line)-len(content)]
		}
	}
	return ""
}

// cutKey reports whether content is a `key = value` entry for key, and if
// so returns the raw text after the first "=".
func cutKey(content, key string) (string, bool) {
	if !strings.HasPrefix(content, key) {
		return "", false
	}
	rest := strings.TrimLeft(content[len(key):], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	return rest[1:], true
}

// writeAtomic replaces the file content via a temp file and rename so a
// crash mid-write never truncates the resource.
func writeAtomic(path, content string) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithExistingPermissions())
	if err != nil {
		return err
	}
	defer pending.Cleanup() // best effort; no-op once committed

	if _, err := pending.WriteString(content); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}
