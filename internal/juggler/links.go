// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package juggler

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/melexis/jira-juggler/pkg/types"
)

// defaultLinkFamilies lists the link type names tried for the default
// dependency direction, in preference order per family.
var defaultLinkFamilies = []struct {
	direction string // "inward" or "outward"
	names     []string
}{
	{"inward", []string{"Blocker", "Blocks"}},
	{"outward", []string{"Dependency", "Dependent"}},
}

// DetermineLinks selects the link phrases used for dependency inference.
//
// With input == nil the instance defaults apply: the inward phrase of the
// Blocker/Blocks link type and the outward phrase of Dependency/Dependent,
// warning for each family that is absent. A non-nil input is validated
// against the instance's phrases; unknown phrases warn and are dropped.
// An empty non-nil input disables link inference.
func DetermineLinks(linkTypes []types.LinkType, input []string, warn io.Writer) map[string]bool {
	if warn == nil {
		warn = io.Discard
	}
	set := make(map[string]bool)

	if input == nil {
		byName := make(map[string]types.LinkType, len(linkTypes))
		for _, lt := range linkTypes {
			byName[lt.Name] = lt
		}
		for _, family := range defaultLinkFamilies {
			found := false
			for _, name := range family.names {
				lt, ok := byName[name]
				if !ok {
					continue
				}
				if family.direction == "inward" {
					set[lt.Inward] = true
				} else {
					set[lt.Outward] = true
				}
				found = true
				break
			}
			if !found {
				fmt.Fprintf(warn, "warning: none of the default issue link types %v exist in your Jira configuration; use --links if you think this is a problem\n",
					family.names)
			}
		}
		return set
	}

	if len(input) == 0 {
		return set
	}

	known := make(map[string]bool)
	for _, lt := range linkTypes {
		known[lt.Inward] = true
		known[lt.Outward] = true
	}
	var missing []string
	for _, phrase := range input {
		if set[phrase] {
			continue
		}
		if known[phrase] {
			set[phrase] = true
		} else {
			missing = append(missing, phrase)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		fmt.Fprintf(warn, "warning: links %s not found in your Jira configuration\n",
			strings.Join(missing, ", "))
	}
	return set
}
