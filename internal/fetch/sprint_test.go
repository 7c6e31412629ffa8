// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestParseSprintsCloudForm(t *testing.T) {
	raw := `[
		{"id": 37, "name": "Sprint 5", "state": "active", "startDate": "2022-03-07T09:00:00.000Z"},
		{"id": 38, "name": "Sprint 6", "state": "future"}
	]`

	sprints := parseSprints(gjson.Parse(raw))

	if len(sprints) != 2 {
		t.Fatalf("got %d sprints, want 2", len(sprints))
	}
	if sprints[0].Name != "Sprint 5" || sprints[0].State != "ACTIVE" {
		t.Errorf("sprint[0] = %+v", sprints[0])
	}
	want := time.Date(2022, 3, 7, 9, 0, 0, 0, time.UTC)
	if !sprints[0].StartDate.Equal(want) {
		t.Errorf("StartDate = %v, want %v", sprints[0].StartDate, want)
	}
	if sprints[1].State != "FUTURE" || !sprints[1].StartDate.IsZero() {
		t.Errorf("sprint[1] = %+v", sprints[1])
	}
}

func TestParseSprintsServerForm(t *testing.T) {
	raw := `[
		"com.atlassian.greenhopper.service.sprint.Sprint@12345[id=1,rapidViewId=2,state=CLOSED,name=Sprint 1,startDate=2021-03-02T11:00:00.000Z,endDate=2021-03-16T11:00:00.000Z,completeDate=2021-03-16T12:00:00.000Z,sequence=1]",
		"com.atlassian.greenhopper.service.sprint.Sprint@67890[id=2,rapidViewId=2,state=FUTURE,name=Sprint 2,startDate=<null>,endDate=<null>,completeDate=<null>,sequence=2]"
	]`

	sprints := parseSprints(gjson.Parse(raw))

	if len(sprints) != 2 {
		t.Fatalf("got %d sprints, want 2", len(sprints))
	}
	if sprints[0].Name != "Sprint 1" || sprints[0].State != "CLOSED" {
		t.Errorf("sprint[0] = %+v", sprints[0])
	}
	want := time.Date(2021, 3, 2, 11, 0, 0, 0, time.UTC)
	if !sprints[0].StartDate.Equal(want) {
		t.Errorf("StartDate = %v, want %v", sprints[0].StartDate, want)
	}
	if sprints[1].Name != "Sprint 2" || !sprints[1].StartDate.IsZero() {
		t.Errorf("sprint[1] = %+v, want a zero start date for <null>", sprints[1])
	}
}

func TestParseSprintsNull(t *testing.T) {
	if got := parseSprints(gjson.Parse("null")); got != nil {
		t.Errorf("parseSprints(null) = %v, want nil", got)
	}
	if got := parseSprints(gjson.Result{}); got != nil {
		t.Errorf("parseSprints(missing) = %v, want nil", got)
	}
}

func TestParseJiraTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2021-08-18T14:30:00.000+0200", time.Date(2021, 8, 18, 14, 30, 0, 0, time.FixedZone("", 2*3600))},
		{"2022-03-07T09:00:00.000Z", time.Date(2022, 3, 7, 9, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
	}

	for _, tt := range tests {
		if got := parseJiraTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseJiraTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
