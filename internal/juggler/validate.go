// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"io"
)

// Validate corrects the task list in property order: allocation, effort,
// dependencies, time marks. Tasks without an estimate are excluded with a
// warning; estimates below the floor are clamped; dependencies pointing
// outside the exported set are removed. The pruned list is returned.
func Validate(tasks []*Task, warn io.Writer) []*Task {
	if warn == nil {
		warn = io.Discard
	}

	// Effort pass. Container tasks (nil effort) pass through untouched.
	kept := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Effort == nil {
			kept = append(kept, t)
			continue
		}
		if *t.Effort == 0 {
			fmt.Fprintf(warn, "warning: estimate for %s is 0, excluding\n", t.Key)
			continue
		}
		if *t.Effort < MinEffort {
			fmt.Fprintf(warn, "warning: estimate %sd too low for %s, assuming %sd\n",
				formatDays(*t.Effort), t.Key, formatDays(MinEffort))
			*t.Effort = MinEffort
		}
		kept = append(kept, t)
	}

	// Depends pass: only links within the exported set survive.
	ids := make(map[string]bool, len(kept))
	for _, t := range kept {
		ids[ToIdentifier(t.Key)] = true
	}
	for _, t := range kept {
		pruned := t.Depends[:0]
		for _, dep := range t.Depends {
			if ids[dep] {
				pruned = append(pruned, dep)
			} else {
				fmt.Fprintf(warn, "warning: removing link to %s for %s, as not within scope\n", dep, t.Key)
			}
		}
		t.Depends = pruned
	}

	// Time marks are built by LinkToPreceding with valid names only;
	// nothing to correct here.
	return kept
}
