// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jira "github.com/ctreminiom/go-atlassian/v2/jira/v3"
	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/melexis/jira-juggler/pkg/types"
)

// defaultEpicFields lists common epic-link custom field IDs, tried in
// order when the issue has no typed parent.
var defaultEpicFields = []string{"customfield_10014", "customfield_10008"}

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 4
)

// FieldOptions names the custom fields the adapter extracts from the raw
// search response, since the typed client does not surface them.
type FieldOptions struct {
	// SprintField is the custom field holding sprint data (empty skips
	// sprint extraction).
	SprintField string

	// EpicFields are epic-link custom field IDs; defaults apply when nil.
	EpicFields []string
}

// AtlassianSource implements Source on the go-atlassian v3 client.
type AtlassianSource struct {
	client *jira.Client
	fields FieldOptions
}

// NewAtlassianSource builds the client with basic auth and a retrying
// HTTP transport (429/5xx with backoff, honoring Retry-After).
func NewAtlassianSource(cfg types.JiraConfig, fields FieldOptions) (*AtlassianSource, error) {
	client, err := jira.New(buildHTTPClient(cfg), cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating Jira client for %s: %w", cfg.Endpoint, err)
	}
	client.Auth.SetBasicAuth(cfg.Username, cfg.APIToken)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "jira-juggler"
	}
	client.Auth.SetUserAgent(userAgent)

	if fields.EpicFields == nil {
		fields.EpicFields = defaultEpicFields
	}
	return &AtlassianSource{client: client, fields: fields}, nil
}

func buildHTTPClient(cfg types.JiraConfig) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	if rc.RetryMax <= 0 {
		rc.RetryMax = defaultRetryMax
	}
	rc.Logger = nil

	httpClient := rc.StandardClient()
	httpClient.Timeout = cfg.Timeout
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}
	return httpClient
}

// SearchPage implements Source. The changelog is expanded on every page;
// sprint and epic-link custom fields come from the raw response body.
func (s *AtlassianSource) SearchPage(ctx context.Context, jql string, startAt, maxResults int) ([]types.Issue, error) {
	page, resp, err := s.client.Issue.Search.Post(ctx, jql, nil, []string{"changelog"}, startAt, maxResults, "")
	if err != nil {
		return nil, searchError(resp, err)
	}

	var rawIssues []gjson.Result
	if resp != nil {
		rawIssues = gjson.GetBytes(resp.Bytes.Bytes(), "issues").Array()
	}

	issues := make([]types.Issue, 0, len(page.Issues))
	for i, scheme := range page.Issues {
		issue := convertIssue(scheme)
		if i < len(rawIssues) {
			s.applyRawFields(&issue, rawIssues[i].Get("fields"))
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// LinkTypes implements Source.
func (s *AtlassianSource) LinkTypes(ctx context.Context) ([]types.LinkType, error) {
	result, _, err := s.client.Issue.Link.Type.Gets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching issue link types: %w", err)
	}
	linkTypes := make([]types.LinkType, 0, len(result.IssueLinkTypes))
	for _, lt := range result.IssueLinkTypes {
		linkTypes = append(linkTypes, types.LinkType{
			Name:    lt.Name,
			Inward:  lt.Inward,
			Outward: lt.Outward,
		})
	}
	return linkTypes, nil
}

// User implements Source.
func (s *AtlassianSource) User(ctx context.Context, accountID string) (types.User, error) {
	user, _, err := s.client.User.Get(ctx, accountID, nil)
	if err != nil {
		return types.User{}, fmt.Errorf("fetching user %s: %w", accountID, err)
	}
	return convertUser(user), nil
}

// searchError attaches an actionable hint to a failed search.
func searchError(resp *models.ResponseScheme, err error) error {
	if resp == nil {
		return fmt.Errorf("searching Jira: %w", err)
	}
	switch resp.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("searching Jira: %w (check your Jira credentials)", err)
	case http.StatusForbidden:
		return fmt.Errorf("searching Jira: %w (no permission to access this project or query)", err)
	case http.StatusNotFound:
		return fmt.Errorf("searching Jira: %w (endpoint not found; check the endpoint URL)", err)
	case http.StatusBadRequest, http.StatusGone:
		if msgs := gjson.GetBytes(resp.Bytes.Bytes(), "errorMessages").Array(); len(msgs) > 0 {
			details := make([]string, 0, len(msgs))
			for _, m := range msgs {
				details = append(details, m.String())
			}
			return fmt.Errorf("searching Jira: %w (invalid JQL: %s)", err, strings.Join(details, "; "))
		}
		return fmt.Errorf("searching Jira: %w (invalid JQL query syntax)", err)
	}
	return fmt.Errorf("searching Jira: %w", err)
}

// applyRawFields extracts the fields the typed schemes do not carry:
// plain time tracking seconds, the sprint custom field and the epic link.
func (s *AtlassianSource) applyRawFields(issue *types.Issue, fields gjson.Result) {
	issue.TimeTracking = parseTimeTracking(fields)

	if s.fields.SprintField != "" {
		issue.Sprints = parseSprints(fields.Get(s.fields.SprintField))
	}

	if issue.EpicKey == "" {
		for _, field := range s.fields.EpicFields {
			v := fields.Get(field)
			if !v.Exists() || v.Type == gjson.Null {
				continue
			}
			if key := v.Get("key"); key.Exists() {
				issue.EpicKey = key.String()
			} else {
				issue.EpicKey = v.String()
			}
			break
		}
	}
}

// parseTimeTracking reads the plain estimate fields. A missing
// timeoriginalestimate field (time tracking disabled) yields nil; a null
// or zero original estimate maps to zero seconds, which the convertor can
// still override with the remaining or logged time.
func parseTimeTracking(fields gjson.Result) *types.TimeTracking {
	orig := fields.Get("timeoriginalestimate")
	if !orig.Exists() {
		return nil
	}
	tt := &types.TimeTracking{
		OriginalEstimateSec: int(orig.Int()),
		TimeSpentSec:        int(fields.Get("timespent").Int()),
	}
	if remaining := fields.Get("timeestimate"); remaining.Exists() && remaining.Type != gjson.Null {
		v := int(remaining.Int())
		tt.RemainingEstimateSec = &v
	}
	return tt
}

func convertIssue(scheme *models.IssueScheme) types.Issue {
	issue := types.Issue{Key: scheme.Key}
	if f := scheme.Fields; f != nil {
		issue.Summary = f.Summary
		if f.Status != nil {
			issue.Status = f.Status.Name
		}
		if f.IssueType != nil {
			issue.Type = f.IssueType.Name
			issue.IsSubtask = f.IssueType.Subtask
		}
		if f.Parent != nil {
			issue.ParentKey = f.Parent.Key
		}
		if f.Assignee != nil {
			user := convertUser(f.Assignee)
			issue.Assignee = &user
		}
		for _, link := range f.IssueLinks {
			if link == nil || link.Type == nil {
				continue
			}
			converted := types.IssueLink{
				Inward:  link.Type.Inward,
				Outward: link.Type.Outward,
			}
			if link.InwardIssue != nil {
				converted.InwardKey = link.InwardIssue.Key
			}
			if link.OutwardIssue != nil {
				converted.OutwardKey = link.OutwardIssue.Key
			}
			issue.Links = append(issue.Links, converted)
		}
	}
	if scheme.Changelog != nil {
		for _, history := range scheme.Changelog.Histories {
			if history == nil {
				continue
			}
			group := types.ChangeGroup{Created: parseJiraTime(history.Created)}
			for _, item := range history.Items {
				if item == nil {
					continue
				}
				group.Items = append(group.Items, types.ChangeItem{
					Field:      item.Field,
					From:       item.From,
					FromString: item.FromString,
					To:         item.To,
					ToString:   item.ToString,
				})
			}
			issue.Changelog = append(issue.Changelog, group)
		}
	}
	return issue
}

func convertUser(user *models.UserScheme) types.User {
	if user == nil {
		return types.User{}
	}
	return types.User{
		AccountID:    user.AccountID,
		Name:         user.Name,
		EmailAddress: user.EmailAddress,
		DisplayName:  user.DisplayName,
	}
}

// jiraTimeLayouts covers the timestamp forms JIRA emits: changelog
// entries carry milliseconds and a numeric zone, sprint dates are
// RFC 3339.
var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.999-0700",
	time.RFC3339,
	"2006-01-02T15:04:05.999",
}

func parseJiraTime(value string) time.Time {
	for _, layout := range jiraTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
