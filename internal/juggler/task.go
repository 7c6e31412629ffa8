// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package juggler converts JIRA issue snapshots into TaskJuggler task
// blocks: it builds the Epic/Story/Sub-task forest, rolls effort up to
// container tasks, infers dependencies and schedule marks, and serializes
// the result as nested TJ3 text.
//
// The package is pure: it consumes types.Issue values, writes warnings to
// an injected io.Writer and never touches the network.
package juggler

import (
	"sort"
	"strings"
	"time"

	"github.com/melexis/jira-juggler/pkg/types"
)

const (
	// SecondsPerDay converts JIRA seconds to TJ3 workdays: a workday is
	// 8 hours, starting at 9 a.m., without breaks.
	SecondsPerDay = 8.0 * 60 * 60

	// MinEffort is the smallest effort TJ3 schedules sensibly (one hour).
	MinEffort = 1.0 / 8

	// DefaultEffort is assumed when an issue carries no time tracking.
	DefaultEffort = MinEffort

	maxSummaryLen = 70

	// NotAssigned is the allocation emitted for unassigned issues. The
	// enclosing project file is expected to declare this resource.
	NotAssigned = `"not assigned"`
)

// UserResolver turns JIRA user records and raw account IDs into TJ3
// allocation names. The fetch stage provides an implementation backed by
// the user API and a cache; tests provide fakes.
type UserResolver interface {
	// Resolve returns the allocation name for a full user record.
	Resolve(user types.User) string

	// ResolveID returns the allocation name for a bare identifier as it
	// appears in changelog items (an account ID or a server username).
	ResolveID(id string) string
}

// TimeMark is an optional start or end attribute on a task.
type TimeMark struct {
	Name  string // "start" or "end"
	Value string
}

// Task is one TaskJuggler task derived from a JIRA issue.
type Task struct {
	Key     string
	Summary string
	Issue   *types.Issue

	// Allocate is the TJ3 allocation value (a username or a quoted
	// display name).
	Allocate string

	// Effort is the effort in workdays. Nil marks a container task, which
	// must not carry an effort attribute; its effort is the rollup of its
	// children.
	Effort *float64

	// Depends holds task identifiers this task depends on.
	Depends []string

	// Mark is the inferred start or end attribute, when any.
	Mark TimeMark

	// Hierarchy relationships.
	ParentKey string
	EpicKey   string
	Children  []*Task
	IsEpic    bool

	// ResolvedAt is the last transition to Approved/Resolved (Closed as
	// fallback); zero while the issue is open.
	ResolvedAt time.Time

	// Sprint ordering state, filled by SortOnSprint.
	sprintName     string
	sprintPriority int
	sprintStart    time.Time
}

// IsResolved reports whether the underlying issue reached the Approved,
// Resolved or Closed status.
func (t *Task) IsResolved() bool {
	return t.Issue != nil && isResolvedStatus(t.Issue.Status)
}

func isResolvedStatus(status string) bool {
	switch status {
	case "Approved", "Resolved", "Closed":
		return true
	}
	return false
}

// AddChild appends child unless it is already present.
func (t *Task) AddChild(child *Task) {
	for _, c := range t.Children {
		if c == child {
			return
		}
	}
	t.Children = append(t.Children, child)
}

// RolledUpEffort returns the task effort including all descendants. A
// container task contributes only the sum of its children.
func (t *Task) RolledUpEffort() float64 {
	if len(t.Children) > 0 {
		var sum float64
		for _, c := range t.Children {
			sum += c.RolledUpEffort()
		}
		return sum
	}
	if t.Effort != nil {
		return *t.Effort
	}
	return 0
}

func (t *Task) appendDepend(id string) {
	for _, d := range t.Depends {
		if d == id {
			return
		}
	}
	t.Depends = append(t.Depends, id)
}

// ToIdentifier converts an issue key to a TJ3 task identifier.
func ToIdentifier(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// historiesNewestFirst returns the changelog groups ordered newest first.
func historiesNewestFirst(groups []types.ChangeGroup) []types.ChangeGroup {
	sorted := make([]types.ChangeGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})
	return sorted
}
