package types

import "time"

// JiraConfig holds the connection settings for the JIRA Cloud (or Server)
// instance.
type JiraConfig struct {
	// Endpoint is the base URL of the instance
	// (e.g. "https://melexis.atlassian.net").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Username is the email address (Cloud) or username (Server).
	Username string `json:"username" yaml:"username"`

	// APIToken is the API token, or the account password on legacy servers.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// PageSize is the search page size (default 50).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// RetryMax is the number of retries on HTTP 429/5xx (default 4).
	RetryMax int `json:"retry_max" yaml:"retry_max"`

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// UserCachePath is an optional SQLite file caching account-ID to
	// username lookups across runs. Empty disables the cache.
	UserCachePath string `json:"user_cache_path,omitempty" yaml:"user_cache_path,omitempty"`
}

// ExportConfig holds the settings of one JQL-to-TaskJuggler conversion.
type ExportConfig struct {
	// Query is the JQL query selecting the issues to export.
	Query string `json:"query" yaml:"query"`

	// Output is the .tjp fragment path; "-" writes to stdout.
	Output string `json:"output" yaml:"output"`

	// Links restricts dependency inference to these link phrases
	// (e.g. "is blocked by"). Nil selects the instance defaults; an empty
	// list disables link inference.
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`

	// DependOnPreceding chains each unresolved task to the preceding task
	// of the same assignee and infers start/end times.
	DependOnPreceding bool `json:"depend_on_preceding" yaml:"depend_on_preceding"`

	// SprintField names the custom field holding sprint data
	// (e.g. "customfield_10851"); tasks are then ordered by sprint first.
	SprintField string `json:"sprint_field,omitempty" yaml:"sprint_field,omitempty"`

	// WeeklyMax is the number of allocated workdays per week, used to
	// approximate start times of tasks with logged time (default 5).
	WeeklyMax float64 `json:"weekly_max" yaml:"weekly_max"`

	// CurrentDate anchors schedule inference; zero means time.Now.
	CurrentDate time.Time `json:"current_date,omitempty" yaml:"current_date,omitempty"`

	// EnableEpics nests Story and Sub-task tasks under their Epic and
	// parent tasks, with effort rolled up to the containers.
	EnableEpics bool `json:"enable_epics" yaml:"enable_epics"`
}
