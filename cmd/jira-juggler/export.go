package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/melexis/jira-juggler/internal/fetch"
	"github.com/melexis/jira-juggler/internal/juggler"
	"github.com/melexis/jira-juggler/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Query JIRA and write a TaskJuggler task fragment",
	Long: `Export runs a JQL query against the configured JIRA instance and writes
the matching issues as TaskJuggler tasks. Estimates become effort, assignees
become allocations, and blocking links become depends entries.

With --enable-epics the Epic/Story/Sub-task hierarchy is preserved as nested
tasks. With --depend-on-preceding each open task depends on the preceding
task of the same assignee, and start/end times are inferred so the schedule
lines up with reality.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("query", "q", "", "JQL query selecting the issues to export")
	exportCmd.Flags().StringP("output", "o", "jira_export.tjp", "output file; - writes to stdout")
	exportCmd.Flags().StringSliceP("links", "l", nil, "issue link phrases used for depends (e.g. \"is blocked by\"); pass an empty value to disable")
	exportCmd.Flags().BoolP("depend-on-preceding", "d", false, "make open tasks depend on the preceding task of the same assignee")
	exportCmd.Flags().StringP("sort-on-sprint", "s", "", "sprint custom field (e.g. customfield_10851); orders tasks by sprint first")
	exportCmd.Flags().Float64P("weeklymax", "w", 5, "allocated workdays per week, for start time inference")
	exportCmd.Flags().StringP("current-date", "c", "", "anchor date for schedule inference (YYYY-MM-DD; default today)")
	exportCmd.Flags().BoolP("enable-epics", "e", false, "nest tasks under their Epic and parent tasks")
	exportCmd.Flags().String("snapshot", "", "also save the fetched issues as YAML, for offline render runs")
	cobra.CheckErr(exportCmd.MarkFlagRequired("query"))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jiraCfg, err := jiraConfig(cmd)
	if err != nil {
		return err
	}
	expCfg, err := exportConfig(cmd)
	if err != nil {
		return err
	}

	src, err := fetch.NewAtlassianSource(jiraCfg, fetch.FieldOptions{SprintField: expCfg.SprintField})
	if err != nil {
		return err
	}

	linkSet, err := determineLinkSet(cmd, src, expCfg.Links)
	if err != nil {
		return err
	}

	issues, err := fetch.Issues(ctx, src, expCfg.Query, jiraCfg.PageSize, os.Stderr)
	if err != nil {
		return err
	}

	if snapPath, _ := cmd.Flags().GetString("snapshot"); snapPath != "" {
		snap := &fetch.Snapshot{
			Query:     expCfg.Query,
			Endpoint:  jiraCfg.Endpoint,
			FetchedAt: time.Now(),
			Issues:    issues,
		}
		if err := fetch.WriteSnapshot(snapPath, snap); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved snapshot to %s\n", snapPath)
	}

	var cache *fetch.UserCache
	if jiraCfg.UserCachePath != "" {
		cache, err = fetch.OpenUserCache(jiraCfg.UserCachePath)
		if err != nil {
			return err
		}
		defer cache.Close()
	}
	resolver := fetch.NewResolver(ctx, src, cache, os.Stderr)

	tasks := juggler.Convert(issues, expCfg, linkSet, resolver, os.Stderr)
	return writeOutput(expCfg.Output, tasks)
}

func exportConfig(cmd *cobra.Command) (types.ExportConfig, error) {
	query, _ := cmd.Flags().GetString("query")
	output, _ := cmd.Flags().GetString("output")
	dependOnPreceding, _ := cmd.Flags().GetBool("depend-on-preceding")
	sprintField, _ := cmd.Flags().GetString("sort-on-sprint")
	weeklyMax, _ := cmd.Flags().GetFloat64("weeklymax")
	enableEpics, _ := cmd.Flags().GetBool("enable-epics")

	// A links flag left unset selects the instance defaults; setting it,
	// even to an empty value, overrides them.
	var links []string
	if cmd.Flags().Changed("links") {
		raw, _ := cmd.Flags().GetStringSlice("links")
		links = make([]string, 0, len(raw))
		for _, phrase := range raw {
			if phrase != "" {
				links = append(links, phrase)
			}
		}
	}

	cfg := types.ExportConfig{
		Query:             query,
		Output:            output,
		Links:             links,
		DependOnPreceding: dependOnPreceding,
		SprintField:       sprintField,
		WeeklyMax:         weeklyMax,
		EnableEpics:       enableEpics,
	}

	if value, _ := cmd.Flags().GetString("current-date"); value != "" {
		current, err := parseCurrentDate(value)
		if err != nil {
			return types.ExportConfig{}, err
		}
		cfg.CurrentDate = current
	}
	return cfg, nil
}

// determineLinkSet fetches the instance link types and selects the active
// phrases. The fetch is skipped when link inference is disabled outright.
func determineLinkSet(cmd *cobra.Command, src fetch.Source, links []string) (map[string]bool, error) {
	if links != nil && len(links) == 0 {
		return map[string]bool{}, nil
	}
	linkTypes, err := src.LinkTypes(cmd.Context())
	if err != nil {
		return nil, err
	}
	return juggler.DetermineLinks(linkTypes, links, os.Stderr), nil
}

func writeOutput(path string, tasks []*juggler.Task) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if err := juggler.WriteTasks(w, tasks); err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(os.Stderr, "wrote %d top-level tasks to %s\n", len(tasks), path)
	}
	return nil
}
