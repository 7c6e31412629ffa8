// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/melexis/jira-juggler/pkg/types"
)

// Server and Data Center instances return sprint entries as toString()
// dumps of the Greenhopper Sprint object rather than JSON objects.
var (
	sprintStateRe = regexp.MustCompile(`state=(ACTIVE|FUTURE|CLOSED)`)
	sprintNameRe  = regexp.MustCompile(`name=(.+?),`)
	sprintStartRe = regexp.MustCompile(`startDate=(.+?),`)
)

// parseSprints reads the sprint custom field value, accepting both the
// Cloud object form and the Server string form.
func parseSprints(value gjson.Result) []types.Sprint {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}

	var sprints []types.Sprint
	for _, entry := range value.Array() {
		var sprint types.Sprint
		switch entry.Type {
		case gjson.JSON:
			sprint = types.Sprint{
				Name:      entry.Get("name").String(),
				State:     normalizeSprintState(entry.Get("state").String()),
				StartDate: parseJiraTime(entry.Get("startDate").String()),
			}
		case gjson.String:
			sprint = parseSprintString(entry.String())
		default:
			continue
		}
		if sprint.Name == "" && sprint.State == "" {
			continue
		}
		sprints = append(sprints, sprint)
	}
	return sprints
}

func parseSprintString(raw string) types.Sprint {
	var sprint types.Sprint
	if m := sprintStateRe.FindStringSubmatch(raw); m != nil {
		sprint.State = m[1]
	}
	if m := sprintNameRe.FindStringSubmatch(raw); m != nil {
		sprint.Name = m[1]
	}
	if m := sprintStartRe.FindStringSubmatch(raw); m != nil && m[1] != "<null>" {
		sprint.StartDate = parseJiraTime(m[1])
	}
	return sprint
}

func normalizeSprintState(state string) string {
	switch state {
	case "active":
		return "ACTIVE"
	case "future":
		return "FUTURE"
	case "closed":
		return "CLOSED"
	}
	return state
}
