// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/melexis/jira-juggler/pkg/types"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	remaining := 4 * 3600
	snap := &Snapshot{
		Query:     "project = PROJ",
		Endpoint:  "https://example.atlassian.net",
		FetchedAt: time.Date(2022, 4, 1, 8, 0, 0, 0, time.UTC),
		Issues: []types.Issue{
			{
				Key:     "PROJ-1",
				Summary: "Write the parser",
				Status:  "Open",
				Type:    "Story",
				EpicKey: "PROJ-10",
				Assignee: &types.User{
					AccountID:    "5b10ac8d82e05b22cc7d4ef5",
					EmailAddress: "alice@example.com",
				},
				TimeTracking: &types.TimeTracking{
					OriginalEstimateSec:  8 * 3600,
					RemainingEstimateSec: &remaining,
				},
				Links: []types.IssueLink{
					{Inward: "is blocked by", Outward: "blocks", InwardKey: "PROJ-2"},
				},
				Sprints: []types.Sprint{
					{Name: "Sprint 3", State: "ACTIVE", StartDate: time.Date(2022, 3, 28, 9, 0, 0, 0, time.UTC)},
				},
			},
			{
				Key:       "PROJ-2",
				Summary:   "Lexer groundwork",
				Status:    "Open",
				Type:      "Sub-task",
				IsSubtask: true,
				ParentKey: "PROJ-1",
			},
		},
	}

	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Query != snap.Query || got.Endpoint != snap.Endpoint {
		t.Errorf("header = %q %q", got.Query, got.Endpoint)
	}
	if len(got.Issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(got.Issues))
	}
	issue := got.Issues[0]
	if issue.Key != "PROJ-1" || issue.EpicKey != "PROJ-10" {
		t.Errorf("issue = %+v", issue)
	}
	if issue.Assignee == nil || issue.Assignee.EmailAddress != "alice@example.com" {
		t.Errorf("assignee = %+v", issue.Assignee)
	}
	if issue.TimeTracking == nil || issue.TimeTracking.RemainingEstimateSec == nil ||
		*issue.TimeTracking.RemainingEstimateSec != remaining {
		t.Errorf("time tracking = %+v", issue.TimeTracking)
	}
	if len(issue.Sprints) != 1 || issue.Sprints[0].Name != "Sprint 3" {
		t.Errorf("sprints = %+v", issue.Sprints)
	}
	sub := got.Issues[1]
	if !sub.IsSubtask || sub.ParentKey != "PROJ-1" {
		t.Errorf("sub-task = %+v, subtask flag and parent must survive the roundtrip", sub)
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing snapshot")
	}
}
