// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"sort"
	"strings"
	"time"
)

// sprintPriorities ranks sprint states; unknown states rank 0 (no sprint).
var sprintPriorities = map[string]int{
	"ACTIVE": 3,
	"FUTURE": 2,
	"CLOSED": 1,
}

// SortOnSprint orders tasks by their sprint association: tasks in an
// active sprint first, then future, then closed, with issues outside any
// sprint last. Ties break on sprint start date, then natural name order
// with names containing "backlog" last. The sort is stable.
func SortOnSprint(tasks []*Task) {
	for _, t := range tasks {
		t.sprintName = ""
		t.sprintPriority = 0
		t.sprintStart = time.Time{}
		if t.Issue == nil {
			continue
		}
		for _, s := range t.Issue.Sprints {
			prio := sprintPriorities[strings.ToUpper(s.State)]
			if prio > t.sprintPriority {
				t.sprintName = s.Name
				t.sprintPriority = prio
				t.sprintStart = s.StartDate
			}
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return compareSprint(tasks[i], tasks[j]) < 0
	})
}

func compareSprint(a, b *Task) int {
	if a.sprintPriority > b.sprintPriority {
		return -1
	}
	if a.sprintPriority < b.sprintPriority {
		return 1
	}
	if a.sprintPriority == 0 || a.sprintName == b.sprintName {
		return 0
	}
	if a.sprintStart.IsZero() != b.sprintStart.IsZero() {
		// A sprint with a start date sorts before one without.
		if b.sprintStart.IsZero() {
			return -1
		}
		return 1
	}
	if a.sprintStart.Equal(b.sprintStart) {
		aBacklog := strings.Contains(strings.ToLower(a.sprintName), "backlog")
		bBacklog := strings.Contains(strings.ToLower(b.sprintName), "backlog")
		if !aBacklog && bBacklog {
			return -1
		}
		if aBacklog && !bBacklog {
			return 1
		}
		if naturalLess(a.sprintName, b.sprintName) {
			return -1
		}
		return 1
	}
	if a.sprintStart.Before(b.sprintStart) {
		return -1
	}
	return 1
}

// SortByStatus moves resolved tasks to the front, ordered by resolution
// time. Unresolved tasks keep their relative order.
func SortByStatus(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return compareStatus(tasks[i], tasks[j]) < 0
	})
}

func compareStatus(a, b *Task) int {
	switch {
	case a.IsResolved() && !b.IsResolved():
		return -1
	case b.IsResolved() && !a.IsResolved():
		return 1
	case a.IsResolved() && b.IsResolved():
		if a.ResolvedAt.Before(b.ResolvedAt) {
			return -1
		}
		return 1
	}
	return 0
}

// naturalLess compares two strings case-insensitively, treating digit runs
// as numbers, so "Sprint 9" sorts before "Sprint 10".
func naturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := leadingNumber(a)
			nb, rb := leadingNumber(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// leadingNumber splits off the numeric prefix of s.
func leadingNumber(s string) (uint64, string) {
	var n uint64
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + uint64(s[i]-'0')
		i++
	}
	return n, s[i:]
}
