// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/melexis/jira-juggler/pkg/types"
)

var instanceLinkTypes = []types.LinkType{
	{Name: "Blocker", Inward: "is blocked by", Outward: "blocks"},
	{Name: "Dependency", Inward: "is depended on by", Outward: "depends on"},
	{Name: "Relates", Inward: "relates to", Outward: "relates to"},
}

func TestDetermineLinksDefaults(t *testing.T) {
	var warnings bytes.Buffer

	set := DetermineLinks(instanceLinkTypes, nil, &warnings)

	if !set["is blocked by"] {
		t.Error("default set must contain the Blocker inward phrase")
	}
	if !set["depends on"] {
		t.Error("default set must contain the Dependency outward phrase")
	}
	if len(set) != 2 {
		t.Errorf("set = %v, want exactly two phrases", set)
	}
	if warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %q", warnings.String())
	}
}

func TestDetermineLinksMissingDefaultFamilyWarns(t *testing.T) {
	var warnings bytes.Buffer
	onlyBlocker := instanceLinkTypes[:1]

	set := DetermineLinks(onlyBlocker, nil, &warnings)

	if !set["is blocked by"] || len(set) != 1 {
		t.Errorf("set = %v, want only the Blocker phrase", set)
	}
	if !strings.Contains(warnings.String(), "use --links") {
		t.Errorf("missing warning, got %q", warnings.String())
	}
}

func TestDetermineLinksExplicit(t *testing.T) {
	var warnings bytes.Buffer

	set := DetermineLinks(instanceLinkTypes, []string{"relates to", "is blocked by"}, &warnings)

	if !set["relates to"] || !set["is blocked by"] || len(set) != 2 {
		t.Errorf("set = %v", set)
	}
	if warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %q", warnings.String())
	}
}

func TestDetermineLinksUnknownPhraseWarns(t *testing.T) {
	var warnings bytes.Buffer

	set := DetermineLinks(instanceLinkTypes, []string{"is blocked by", "is cloned by"}, &warnings)

	if !set["is blocked by"] || len(set) != 1 {
		t.Errorf("set = %v, want only the known phrase", set)
	}
	if !strings.Contains(warnings.String(), "is cloned by") {
		t.Errorf("missing warning, got %q", warnings.String())
	}
}

func TestDetermineLinksEmptyDisables(t *testing.T) {
	set := DetermineLinks(instanceLinkTypes, []string{}, nil)

	if len(set) != 0 {
		t.Errorf("set = %v, want empty", set)
	}
}
