// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves issue snapshots from a JIRA instance. The
// Source interface is the narrow seam between the convertor and the JIRA
// service; AtlassianSource implements it on the go-atlassian client.
package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/melexis/jira-juggler/pkg/types"
)

// DefaultPageSize matches the JIRA search API default.
const DefaultPageSize = 50

// Source is the narrow interface to the JIRA service.
type Source interface {
	// SearchPage runs the JQL query and returns one page of issues,
	// starting at the given offset. An empty page marks the end.
	SearchPage(ctx context.Context, jql string, startAt, maxResults int) ([]types.Issue, error)

	// LinkTypes returns the issue link types configured on the instance.
	LinkTypes(ctx context.Context) ([]types.LinkType, error)

	// User fetches a user record by account ID.
	User(ctx context.Context, accountID string) (types.User, error)
}

// Issues pages through the search results until an empty page. Progress
// lines go to w.
func Issues(ctx context.Context, src Source, jql string, pageSize int, w io.Writer) ([]types.Issue, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if w == nil {
		w = io.Discard
	}

	var all []types.Issue
	for startAt := 0; ; {
		page, err := src.SearchPage(ctx, jql, startAt, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		startAt += len(page)
	}
	fmt.Fprintf(w, "retrieved %d issues\n", len(all))
	return all, nil
}
