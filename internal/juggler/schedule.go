// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"math"
	"time"
)

// LinkToPreceding chains each unresolved task to the preceding unresolved
// task of the same assignee, so one resource never runs two tasks in
// parallel.
//
// Resolved tasks drop their JIRA-derived dependencies and get an end mark
// at their resolution time. The first unresolved task per assignee gets a
// start mark at the current date, unless it depends on another unresolved
// task; when time was already logged on it the start moves back by the
// logged workdays plus the weekends in between, and the effort grows by
// the logged time (TaskJuggler schedules the whole task from the start
// mark, so logged and remaining time must both be covered).
func LinkToPreceding(tasks []*Task, weeklyMax float64, current time.Time) {
	byID := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		byID[ToIdentifier(t.Key)] = t
	}
	currentStr := jugglerDate(current)
	unresolved := make(map[string][]*Task)

	for _, t := range tasks {
		if t.IsResolved() {
			t.Depends = nil
			t.Mark = TimeMark{Name: "end", Value: jugglerDate(t.ResolvedAt)}
			continue
		}

		if preceding, ok := unresolved[t.Allocate]; ok {
			t.appendDepend(ToIdentifier(preceding[len(preceding)-1].Key))
		} else if !dependsOnUnresolved(t, byID) {
			start := currentStr
			if spent := loggedSeconds(t); spent > 0 {
				if t.Effort != nil {
					*t.Effort += float64(spent) / SecondsPerDay
				}
				daysSpent := float64(spent/3600) / 8
				weekends := weekendsBetween(current, daysSpent, weeklyMax)
				daysPerWeekend := math.Min(2, 7-weeklyMax)
				start = fmt.Sprintf("%%{%s - %sd}", currentStr,
					formatDays(daysSpent+weekends*daysPerWeekend))
			}
			t.Mark = TimeMark{Name: "start", Value: start}
		}
		unresolved[t.Allocate] = append(unresolved[t.Allocate], t)
	}
}

func loggedSeconds(t *Task) int {
	if t.Issue == nil || t.Issue.TimeTracking == nil {
		return 0
	}
	return t.Issue.TimeTracking.TimeSpentSec
}

func dependsOnUnresolved(t *Task, byID map[string]*Task) bool {
	for _, dep := range t.Depends {
		if other, ok := byID[dep]; ok && !other.IsResolved() {
			return true
		}
	}
	return false
}

// weekendsBetween counts the weekends crossed when travelling the given
// number of workdays back from date. Workdays run 9 a.m. to 5 p.m.
func weekendsBetween(date time.Time, workdaysPassed, weeklyMax float64) float64 {
	nineAM := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, date.Location())
	secs := date.Sub(nineAM).Seconds()
	if secs < 0 {
		secs += 24 * 60 * 60
	}
	dayOfWeek := float64((int(date.Weekday())+6)%7) + secs/SecondsPerDay
	if dayOfWeek > weeklyMax {
		dayOfWeek = weeklyMax
	}
	remaining := workdaysPassed - dayOfWeek
	if remaining <= 0 {
		return 0
	}
	return 1 + math.Floor(remaining/weeklyMax)
}
