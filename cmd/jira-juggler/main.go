// Package main is the entry point for the jira-juggler CLI, which queries
// JIRA with JQL and writes the issues as a TaskJuggler project fragment.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/melexis/jira-juggler/internal/secrets"
	"github.com/melexis/jira-juggler/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the jira-juggler CLI.
var rootCmd = &cobra.Command{
	Use:   "jira-juggler",
	Short: "Export JIRA issues as TaskJuggler tasks",
	Long: `jira-juggler queries a JIRA instance with a JQL query and writes the
matching issues as a TaskJuggler (tjp) task fragment, preserving estimates,
assignees, issue links and the Epic/Story/Sub-task hierarchy.

The output is a fragment: include it from a project file that declares the
project window and the resources matching the assignee names.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jira-juggler.yaml or ~/.config/jira-juggler/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "JIRA base URL (e.g. https://melexis.atlassian.net)")
	rootCmd.PersistentFlags().String("username", "", "JIRA username or email address")
	rootCmd.PersistentFlags().String("api-token", "", "JIRA API token (or password on legacy servers)")
	rootCmd.PersistentFlags().Int("page-size", 0, "search page size (default 50)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.PersistentFlags().Int("retry-max", 0, "retries on HTTP 429/5xx (default 4)")
	rootCmd.PersistentFlags().String("user-cache", "", "SQLite file caching account-ID lookups between runs")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jira-juggler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jira-juggler"))
		}
	}

	viper.SetEnvPrefix("JIRA_JUGGLER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// jiraConfig assembles the connection settings from flags, the config
// file and loaded secrets, in that order of precedence.
func jiraConfig(cmd *cobra.Command) (types.JiraConfig, error) {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = viper.GetString("endpoint")
	}
	if endpoint == "" {
		return types.JiraConfig{}, fmt.Errorf("no JIRA endpoint configured; pass --endpoint or set endpoint in the config file")
	}

	username, _ := cmd.Flags().GetString("username")
	username = secrets.Default(loadedSecrets, "jira-username", username)
	if username == "" {
		username = viper.GetString("username")
	}

	token, _ := cmd.Flags().GetString("api-token")
	token = secrets.Default(loadedSecrets, "jira-api-token", token)
	if token == "" {
		token = viper.GetString("api_token")
	}
	if username == "" || token == "" {
		return types.JiraConfig{}, fmt.Errorf("no JIRA credentials configured; pass --username and --api-token or store them under .secrets/")
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize == 0 {
		pageSize = viper.GetInt("page_size")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	retryMax, _ := cmd.Flags().GetInt("retry-max")
	if retryMax == 0 {
		retryMax = viper.GetInt("retry_max")
	}
	userCache, _ := cmd.Flags().GetString("user-cache")
	if userCache == "" {
		userCache = viper.GetString("user_cache_path")
	}

	return types.JiraConfig{
		Endpoint:      endpoint,
		Username:      username,
		APIToken:      token,
		PageSize:      pageSize,
		Timeout:       timeout,
		RetryMax:      retryMax,
		UserAgent:     "jira-juggler/" + version,
		UserCachePath: userCache,
	}, nil
}

// parseCurrentDate accepts a date or a date with an hour.
func parseCurrentDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02-15"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --current-date %q; use YYYY-MM-DD", value)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
