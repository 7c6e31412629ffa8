// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"io"
	"time"

	"github.com/melexis/jira-juggler/pkg/types"
)

// Convert runs the full conversion over a fetched issue set: load tasks,
// build the hierarchy when enabled, validate, order, and infer the
// schedule. The returned tasks are ready for WriteTasks.
func Convert(issues []types.Issue, cfg types.ExportConfig, linkSet map[string]bool, resolver UserResolver, warn io.Writer) []*Task {
	opts := Options{LinkSet: linkSet, Resolver: resolver, Warn: warn}

	tasks := make([]*Task, 0, len(issues))
	for i := range issues {
		tasks = append(tasks, NewTask(&issues[i], opts))
	}

	// The hierarchy is built before validation so the epic rules can see
	// zero-effort children that validation would otherwise exclude.
	if cfg.EnableEpics {
		tasks = BuildHierarchy(tasks, warn)
	}

	tasks = Validate(tasks, warn)

	if cfg.SprintField != "" {
		SortOnSprint(tasks)
	}
	SortByStatus(tasks)

	if cfg.DependOnPreceding {
		weeklyMax := cfg.WeeklyMax
		if weeklyMax <= 0 {
			weeklyMax = 5
		}
		current := cfg.CurrentDate
		if current.IsZero() {
			current = time.Now()
		}
		LinkToPreceding(tasks, weeklyMax, current)
	}
	return tasks
}
