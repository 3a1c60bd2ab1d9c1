package checker

import (
	"fmt"
	"strings"
)

// Render a finalized Report into the plugin output convention: one status
// line, one line per remaining bucket message, then the `|`-prefixed perfdata
// line (always present, even when bare).
func Render(f Final) []string {
	lines := []string{
		fmt.Sprintf("%s Database Health - %s", f.Severity.Level(), f.Primary),
	}

	for _, msg := range f.Secondary {
		lines = append(lines, fmt.Sprintf("%s - %s", f.Severity.Level(), msg))
	}

	perf := make([]string, len(f.Perf))
	for i, p := range f.Perf {
		perf[i] = p.String()
	}
	lines = append(lines, fmt.Sprintf("|%s", strings.Join(perf, ` `)))

	return lines
}
