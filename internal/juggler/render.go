// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// tab is the TJ3 indentation unit.
const tab = "    "

// WriteTasks serializes the task forest as TJ3 task blocks.
func WriteTasks(w io.Writer, tasks []*Task) error {
	for _, t := range tasks {
		if _, err := io.WriteString(w, t.Render()); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the TJ3 block for the task, with child tasks nested and
// indented. The emitted text is a fragment meant to be embedded in a
// larger project file; no TJ3 validation is performed.
func (t *Task) Render() string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "task %s %q {\n", ToIdentifier(t.Key), t.Summary)
	fmt.Fprintf(&b, "%sJira %q\n", tab, t.Key)

	if t.Allocate != "" {
		fmt.Fprintf(&b, "%sallocate %s\n", tab, t.Allocate)
	}
	if t.Effort != nil {
		fmt.Fprintf(&b, "%seffort %sd\n", tab, formatDays(*t.Effort))
	}
	if len(t.Depends) > 0 {
		refs := make([]string, len(t.Depends))
		for i, dep := range t.Depends {
			refs[i] = "!" + dep
		}
		fmt.Fprintf(&b, "%sdepends %s\n", tab, strings.Join(refs, ", "))
	}
	if t.Mark.Name != "" && t.Mark.Value != "" {
		fmt.Fprintf(&b, "%s%s %s\n", tab, t.Mark.Name, t.Mark.Value)
	}

	for _, child := range t.Children {
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimSpace(child.Render()), "\n") {
			if strings.TrimSpace(line) == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString(tab)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// formatDays renders a workday quantity the way TJ3 expects: shortest
// decimal form, no exponent.
func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// jugglerDate renders a date at 1-hour resolution in TJ3's format.
func jugglerDate(t time.Time) string {
	return t.Format("2006-01-02-15") + ":00"
}
