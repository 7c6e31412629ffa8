// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the domain model shared between the fetch and
// conversion stages: a client-independent snapshot of a JIRA issue and the
// configuration structs the CLI binds.
package types

import "time"

// Issue is a snapshot of a JIRA issue with the fields the convertor needs.
// The fetch stage fills it from the JIRA REST API; the conversion stage
// never touches the network.
type Issue struct {
	// Key is the JIRA issue key (e.g. "PROJ-123").
	Key string `json:"key" yaml:"key"`

	// Summary is the issue title.
	Summary string `json:"summary" yaml:"summary"`

	// Status is the workflow status name (e.g. "Open", "Resolved").
	Status string `json:"status" yaml:"status"`

	// Type is the issue type name (e.g. "Epic", "Story", "Sub-task").
	Type string `json:"type" yaml:"type"`

	// IsSubtask reports the issue type's subtask flag. Snapshot metadata
	// only: hierarchy construction follows ParentKey/EpicKey, since a
	// parent link is meaningful for any issue type.
	IsSubtask bool `json:"is_subtask,omitempty" yaml:"is_subtask,omitempty"`

	// ParentKey is the key of the parent issue: the parent story for a
	// sub-task, or the epic for issues in team-managed projects.
	ParentKey string `json:"parent_key,omitempty" yaml:"parent_key,omitempty"`

	// EpicKey is the key held by an epic-link custom field, when present.
	EpicKey string `json:"epic_key,omitempty" yaml:"epic_key,omitempty"`

	// Assignee is the currently assigned user, nil when unassigned.
	Assignee *User `json:"assignee,omitempty" yaml:"assignee,omitempty"`

	// Links are the issue links (blocks, depends on, ...).
	Links []IssueLink `json:"links,omitempty" yaml:"links,omitempty"`

	// TimeTracking carries the estimate and logged-time fields in seconds.
	// Nil when the issue has no time tracking at all.
	TimeTracking *TimeTracking `json:"time_tracking,omitempty" yaml:"time_tracking,omitempty"`

	// Changelog holds the issue history, newest entries in API order.
	Changelog []ChangeGroup `json:"changelog,omitempty" yaml:"changelog,omitempty"`

	// Sprints lists the sprints the issue is or was part of.
	Sprints []Sprint `json:"sprints,omitempty" yaml:"sprints,omitempty"`
}

// User identifies a JIRA user. Cloud instances populate AccountID; legacy
// server instances populate Name.
type User struct {
	AccountID    string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	EmailAddress string `json:"email_address,omitempty" yaml:"email_address,omitempty"`
	DisplayName  string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// IssueLink is one directed issue link. Exactly one of InwardKey or
// OutwardKey is set, matching which side of the link this issue is on.
type IssueLink struct {
	// Inward and Outward are the link type's phrases (e.g. "is blocked by" /
	// "blocks").
	Inward  string `json:"inward" yaml:"inward"`
	Outward string `json:"outward" yaml:"outward"`

	// InwardKey is the key of the linked issue on the inward side.
	InwardKey string `json:"inward_key,omitempty" yaml:"inward_key,omitempty"`

	// OutwardKey is the key of the linked issue on the outward side.
	OutwardKey string `json:"outward_key,omitempty" yaml:"outward_key,omitempty"`
}

// LinkType is an issue link type configured on the JIRA instance.
type LinkType struct {
	Name    string `json:"name" yaml:"name"`
	Inward  string `json:"inward" yaml:"inward"`
	Outward string `json:"outward" yaml:"outward"`
}

// TimeTracking holds the time tracking fields of an issue, in seconds.
// A zero OriginalEstimateSec means JIRA returned a null estimate; a nil
// RemainingEstimateSec means the field was null (distinct from zero, which
// marks an issue whose remaining work was burned down to nothing).
type TimeTracking struct {
	OriginalEstimateSec  int  `json:"original_estimate_sec" yaml:"original_estimate_sec"`
	RemainingEstimateSec *int `json:"remaining_estimate_sec,omitempty" yaml:"remaining_estimate_sec,omitempty"`
	TimeSpentSec         int  `json:"time_spent_sec" yaml:"time_spent_sec"`
}

// ChangeGroup is one changelog history entry: a set of field changes made
// at the same time.
type ChangeGroup struct {
	Created time.Time    `json:"created" yaml:"created"`
	Items   []ChangeItem `json:"items" yaml:"items"`
}

// ChangeItem is a single field change. From and To carry identifiers
// (account IDs for assignee changes); FromString and ToString carry the
// display values (status names for status changes).
type ChangeItem struct {
	Field      string `json:"field" yaml:"field"`
	From       string `json:"from,omitempty" yaml:"from,omitempty"`
	FromString string `json:"from_string,omitempty" yaml:"from_string,omitempty"`
	To         string `json:"to,omitempty" yaml:"to,omitempty"`
	ToString   string `json:"to_string,omitempty" yaml:"to_string,omitempty"`
}

// Sprint is one sprint association extracted from the sprint custom field.
type Sprint struct {
	Name      string    `json:"name" yaml:"name"`
	State     string    `json:"state" yaml:"state"` // ACTIVE, FUTURE or CLOSED
	StartDate time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
}
