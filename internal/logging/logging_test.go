package logging

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// reset clears the once guard so each test exercises Configure from
// scratch instead of inheriting whichever test ran first.
func reset() {
	once = sync.Once{}
	base = zerolog.Logger{}
}

func TestConfigure_WritesStructuredEntries(t *testing.T) {
	reset()
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})

	l := Base()
	l.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"opskit"`) {
		t.Errorf("entry missing service field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("entry missing message: %s", out)
	}
}

func TestConfigure_OnlyOnce(t *testing.T) {
	reset()
	var first, second bytes.Buffer
	Configure(Config{Level: "debug", Output: &first})
	Configure(Config{Level: "debug", Output: &second})

	l := Base()
	l.Info().Msg("routed")

	if !strings.Contains(first.String(), "routed") {
		t.Errorf("first Configure must bind the output, got %q", first.String())
	}
	if second.Len() != 0 {
		t.Error("second Configure call must not rebind the output")
	}
}

func TestConfigure_LevelFilters(t *testing.T) {
	reset()
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})

	l := Base()
	l.Info().Msg("quiet")
	l.Warn().Msg("loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Errorf("info entry written at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("warn entry missing: %s", buf.String())
	}
}

func TestFromContext_Fallback(t *testing.T) {
	reset()
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("FromContext on empty context returned nil")
	}
}

func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info().Msg("via context")

	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("context logger not used, buffer: %q", buf.String())
	}
}
