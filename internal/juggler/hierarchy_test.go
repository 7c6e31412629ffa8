// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/melexis/jira-juggler/pkg/types"
)

func taskFromIssue(t *testing.T, issue *types.Issue) *Task {
	t.Helper()
	return NewTask(issue, Options{Resolver: stubResolver{}})
}

func estimated(days float64) *types.TimeTracking {
	return &types.TimeTracking{OriginalEstimateSec: int(days * 8 * 3600)}
}

func TestBuildHierarchyNesting(t *testing.T) {
	epic := taskFromIssue(t, &types.Issue{Key: "PROJ-1", Type: "Epic", TimeTracking: estimated(3)})
	story := taskFromIssue(t, &types.Issue{Key: "PROJ-2", Type: "Story", EpicKey: "PROJ-1", TimeTracking: estimated(2)})
	sub := taskFromIssue(t, &types.Issue{Key: "PROJ-3", Type: "Sub-task", ParentKey: "PROJ-2", TimeTracking: estimated(1)})

	top := BuildHierarchy([]*Task{epic, story, sub}, nil)

	if len(top) != 1 || top[0] != epic {
		t.Fatalf("top = %v, want just the epic", keysOf(top))
	}
	if len(epic.Children) != 1 || epic.Children[0] != story {
		t.Fatalf("epic children = %v, want [PROJ-2]", keysOf(epic.Children))
	}
	if len(story.Children) != 1 || story.Children[0] != sub {
		t.Fatalf("story children = %v, want [PROJ-3]", keysOf(story.Children))
	}
	if epic.Effort != nil || story.Effort != nil {
		t.Error("container tasks must not carry an effort attribute")
	}
	if sub.Effort == nil || *sub.Effort != 1 {
		t.Errorf("leaf effort = %v, want 1", sub.Effort)
	}
}

func TestBuildHierarchyOrphanStaysTopLevel(t *testing.T) {
	story := taskFromIssue(t, &types.Issue{Key: "PROJ-2", Type: "Story", EpicKey: "PROJ-99", TimeTracking: estimated(2)})

	top := BuildHierarchy([]*Task{story}, nil)

	if len(top) != 1 || top[0] != story {
		t.Fatalf("top = %v, want the orphan story", keysOf(top))
	}
}

func TestEpicRuleUnestimatedChildren(t *testing.T) {
	var warnings bytes.Buffer
	epic := taskFromIssue(t, &types.Issue{Key: "PROJ-1", Type: "Epic", TimeTracking: estimated(3)})
	estimatedChild := taskFromIssue(t, &types.Issue{Key: "PROJ-2", EpicKey: "PROJ-1", TimeTracking: estimated(1)})
	zeroChild := taskFromIssue(t, &types.Issue{Key: "PROJ-3", EpicKey: "PROJ-1", TimeTracking: &types.TimeTracking{}})

	top := BuildHierarchy([]*Task{epic, estimatedChild, zeroChild}, &warnings)

	if len(top) != 1 || top[0] != epic {
		t.Fatalf("top = %v, want just the epic", keysOf(top))
	}
	if len(epic.Children) != 0 {
		t.Errorf("epic children = %v, want none", keysOf(epic.Children))
	}
	if epic.Effort == nil || *epic.Effort != 3 {
		t.Errorf("epic effort = %v, want its own estimate 3", epic.Effort)
	}
	if !strings.Contains(warnings.String(), "without estimates") {
		t.Errorf("missing warning, got %q", warnings.String())
	}
}

func TestEpicRuleZeroEpicExcluded(t *testing.T) {
	var warnings bytes.Buffer
	epic := taskFromIssue(t, &types.Issue{Key: "PROJ-1", Type: "Epic", TimeTracking: &types.TimeTracking{}})
	zeroChild := taskFromIssue(t, &types.Issue{Key: "PROJ-2", EpicKey: "PROJ-1", TimeTracking: &types.TimeTracking{}})

	top := BuildHierarchy([]*Task{epic, zeroChild}, &warnings)

	if len(top) != 0 {
		t.Fatalf("top = %v, want empty", keysOf(top))
	}
	if !strings.Contains(warnings.String(), "estimate for epic PROJ-1 is 0, excluding") {
		t.Errorf("missing exclusion warning, got %q", warnings.String())
	}
}

func TestEpicRuleEstimateMismatchWarns(t *testing.T) {
	var warnings bytes.Buffer
	epic := taskFromIssue(t, &types.Issue{Key: "PROJ-1", Type: "Epic", TimeTracking: estimated(5)})
	childA := taskFromIssue(t, &types.Issue{Key: "PROJ-2", EpicKey: "PROJ-1", TimeTracking: estimated(2)})
	childB := taskFromIssue(t, &types.Issue{Key: "PROJ-3", EpicKey: "PROJ-1", TimeTracking: estimated(2)})

	BuildHierarchy([]*Task{epic, childA, childB}, &warnings)

	if !strings.Contains(warnings.String(), "+1.00d") {
		t.Errorf("missing mismatch warning, got %q", warnings.String())
	}
	if len(epic.Children) != 2 {
		t.Errorf("children must survive a mismatch, got %v", keysOf(epic.Children))
	}
}

func TestEpicRuleMatchingEstimatesQuiet(t *testing.T) {
	var warnings bytes.Buffer
	epic := taskFromIssue(t, &types.Issue{Key: "PROJ-1", Type: "Epic", TimeTracking: estimated(4)})
	childA := taskFromIssue(t, &types.Issue{Key: "PROJ-2", EpicKey: "PROJ-1", TimeTracking: estimated(2)})
	childB := taskFromIssue(t, &types.Issue{Key: "PROJ-3", EpicKey: "PROJ-1", TimeTracking: estimated(2)})

	BuildHierarchy([]*Task{epic, childA, childB}, &warnings)

	if warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %q", warnings.String())
	}
}

func keysOf(tasks []*Task) []string {
	keys := make([]string, len(tasks))
	for i, t := range tasks {
		keys[i] = t.Key
	}
	return keys
}
