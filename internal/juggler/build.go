// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/melexis/jira-juggler/pkg/types"
)

// Options carries the dependencies needed to load tasks from issues.
type Options struct {
	// LinkSet holds the active link phrases for dependency inference.
	LinkSet map[string]bool

	// Resolver maps JIRA users to allocation names.
	Resolver UserResolver

	// Warn receives warning lines; nil discards them.
	Warn io.Writer
}

func (o Options) warn() io.Writer {
	if o.Warn == nil {
		return io.Discard
	}
	return o.Warn
}

// NewTask loads one task from an issue snapshot.
func NewTask(issue *types.Issue, opts Options) *Task {
	t := &Task{
		Key:       issue.Key,
		Summary:   truncateSummary(issue.Summary),
		Issue:     issue,
		ParentKey: issue.ParentKey,
		EpicKey:   issue.EpicKey,
		IsEpic:    strings.EqualFold(issue.Type, "epic"),
	}
	if t.IsResolved() {
		t.ResolvedAt = resolvedAt(issue)
	}
	t.Allocate = loadAllocate(issue, opts.Resolver)
	t.Effort = loadEffort(issue, opts.warn())
	t.Depends = loadDepends(issue, opts.LinkSet)
	return t
}

func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) > maxSummaryLen {
		return string(runes[:maxSummaryLen]) + "..."
	}
	return summary
}

// loadAllocate determines the allocation name. For Closed/Resolved issues
// the changelog is walked newest-first to recover the assignee at the
// moment of resolution; the current assignee is the fallback.
func loadAllocate(issue *types.Issue, resolver UserResolver) string {
	if issue.Status == "Closed" || issue.Status == "Resolved" {
		if name := allocateFromChangelog(issue, resolver); name != "" {
			return name
		}
	}
	if issue.Assignee != nil {
		return resolver.Resolve(*issue.Assignee)
	}
	return NotAssigned
}

func allocateFromChangelog(issue *types.Issue, resolver UserResolver) string {
	beforeResolved := false
	value := ""
	for _, group := range historiesNewestFirst(issue.Changelog) {
		for _, item := range group.Items {
			switch {
			case strings.EqualFold(item.Field, "assignee"):
				if !beforeResolved {
					// Assignee changed after resolution: the previous
					// value is the one that did the work.
					if item.From != "" {
						value = resolver.ResolveID(item.From)
					}
				} else {
					// Last assignee set before the resolving transition.
					if item.To != "" {
						return resolver.ResolveID(item.To)
					}
					return value
				}
			case strings.EqualFold(item.Field, "status"):
				to := strings.ToLower(item.ToString)
				if to == "approved" || to == "resolved" {
					beforeResolved = true
					if value != "" {
						return value
					}
				}
			}
		}
	}
	return value
}

// loadEffort determines the effort in workdays. The original estimate is
// the base value; resolved issues prefer logged time over it, open issues
// prefer the remaining estimate, with a one-hour floor once the remaining
// work was burned to zero. The overrides apply even to a zero base, so an
// issue estimated only through its remaining or logged time still gets an
// effort; a base of 0 with no override is excluded by Validate later.
func loadEffort(issue *types.Issue, warn io.Writer) *float64 {
	tt := issue.TimeTracking
	if tt == nil {
		fmt.Fprintf(warn, "warning: no estimate found for %s, assuming %sd\n",
			issue.Key, formatDays(DefaultEffort))
		return effortOf(DefaultEffort)
	}

	value := float64(tt.OriginalEstimateSec) / SecondsPerDay
	if isResolvedStatus(issue.Status) {
		if tt.TimeSpentSec > 0 {
			value = float64(tt.TimeSpentSec) / SecondsPerDay
		}
	} else if tt.RemainingEstimateSec != nil {
		if *tt.RemainingEstimateSec > 0 {
			value = float64(*tt.RemainingEstimateSec) / SecondsPerDay
		} else {
			value = MinEffort
		}
	}
	return effortOf(value)
}

func effortOf(v float64) *float64 { return &v }

// loadDepends collects identifiers of linked issues whose link phrase is
// in the active link set.
func loadDepends(issue *types.Issue, linkSet map[string]bool) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, link := range issue.Links {
		var key string
		switch {
		case link.InwardKey != "" && linkSet[link.Inward]:
			key = link.InwardKey
		case link.OutwardKey != "" && linkSet[link.Outward]:
			key = link.OutwardKey
		default:
			continue
		}
		id := ToIdentifier(key)
		if !seen[id] {
			seen[id] = true
			deps = append(deps, id)
		}
	}
	return deps
}

// resolvedAt returns the time of the last transition to Approved or
// Resolved, falling back to the last transition to Closed.
func resolvedAt(issue *types.Issue) time.Time {
	var closedAt time.Time
	for _, group := range historiesNewestFirst(issue.Changelog) {
		for _, item := range group.Items {
			if !strings.EqualFold(item.Field, "status") {
				continue
			}
			switch strings.ToLower(item.ToString) {
			case "approved", "resolved":
				return group.Created
			case "closed":
				if closedAt.IsZero() {
					closedAt = group.Created
				}
			}
		}
	}
	return closedAt
}
