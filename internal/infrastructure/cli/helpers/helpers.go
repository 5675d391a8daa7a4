package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether decorated output should be emitted, honoring
// the configured preference and NO_COLOR.
func ColorEnabled(preference string) bool {
	switch strings.ToLower(preference) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// PrintJSON pretty-prints v for --json output.
func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// NewTable returns a tabwriter configured for aligned column output.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// Ago renders a timestamp as a relative age ("3 minutes ago").
func Ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// Millis renders an execution duration given in milliseconds.
func Millis(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Count renders "3 tools" style labels with humanized large numbers.
func Count(n int, singular, plural string) string {
	label := plural
	if n == 1 {
		label = singular
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), label)
}
