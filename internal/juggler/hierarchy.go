// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"io"
	"math"
)

// BuildHierarchy arranges a flat task list into an Epic → Story → Sub-task
// forest and returns the top-level tasks. Each task attaches to its parent
// task when that is in the set, otherwise to its epic task. Container
// tasks lose their own effort attribute; their effort is the rollup of
// their children.
func BuildHierarchy(tasks []*Task, warn io.Writer) []*Task {
	if warn == nil {
		warn = io.Discard
	}

	byKey := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		byKey[t.Key] = t
	}

	for _, t := range tasks {
		if t.ParentKey != "" {
			if parent, ok := byKey[t.ParentKey]; ok {
				parent.AddChild(t)
				continue
			}
		}
		if t.EpicKey != "" {
			if epic, ok := byKey[t.EpicKey]; ok {
				epic.AddChild(t)
			}
		}
	}

	tasks = applyEpicRules(tasks, warn)

	// Container tasks must not carry an effort attribute.
	for _, t := range tasks {
		if len(t.Children) > 0 {
			t.Effort = nil
		}
	}

	var top []*Task
	for _, t := range tasks {
		if t.ParentKey != "" && byKey[t.ParentKey] != nil {
			continue
		}
		if t.EpicKey != "" && byKey[t.EpicKey] != nil {
			continue
		}
		top = append(top, t)
	}
	return top
}

// applyEpicRules enforces the epic estimation rules:
//
//  1. An epic with any child lacking a real estimate drops all its
//     children and is treated as a single task.
//  2. If such an epic itself has no estimate it is excluded.
//  3. When an epic and its children both carry estimates and the sums
//     disagree by more than 0.01d, a warning reports the difference.
func applyEpicRules(tasks []*Task, warn io.Writer) []*Task {
	remove := make(map[*Task]bool)

	for _, t := range tasks {
		if !t.IsEpic || len(t.Children) == 0 {
			continue
		}

		zeroChildren := 0
		for _, c := range t.Children {
			if effectivelyZeroEffort(c) {
				zeroChildren++
			}
		}

		if zeroChildren > 0 {
			fmt.Fprintf(warn, "warning: epic %s has %d children without estimates; discarding children and treating the epic as a single task\n",
				t.Key, zeroChildren)
			for _, c := range t.Children {
				remove[c] = true
			}
			t.Children = nil

			if t.Effort != nil && *t.Effort == 0 {
				fmt.Fprintf(warn, "warning: estimate for epic %s is 0, excluding\n", t.Key)
				remove[t] = true
			}
			continue
		}

		if t.Effort == nil || *t.Effort <= 0 {
			continue
		}
		var childSum float64
		for _, c := range t.Children {
			childSum += c.RolledUpEffort()
		}
		if childSum > 0 && math.Abs(*t.Effort-childSum) > 0.01 {
			fmt.Fprintf(warn, "warning: epic %s effort estimate (%sd) differs from sum of children (%sd) by %+.2fd\n",
				t.Key, formatDays(*t.Effort), formatDays(childSum), *t.Effort-childSum)
		}
	}

	if len(remove) == 0 {
		return tasks
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if !remove[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

// effectivelyZeroEffort reports whether a task has no real estimate: no
// original and no remaining estimate in JIRA, and a computed effort at or
// below the floor.
func effectivelyZeroEffort(t *Task) bool {
	if t.Issue == nil || t.Effort == nil || *t.Effort > MinEffort {
		return false
	}
	tt := t.Issue.TimeTracking
	if tt == nil {
		return true
	}
	remaining := 0
	if tt.RemainingEstimateSec != nil {
		remaining = *tt.RemainingEstimateSec
	}
	return tt.OriginalEstimateSec == 0 && remaining == 0
}
