package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/melexis/jira-juggler/internal/fetch"
	"github.com/melexis/jira-juggler/internal/juggler"
	"github.com/melexis/jira-juggler/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Convert a saved issue snapshot without touching JIRA",
	Long: `Render converts a YAML snapshot written by export --snapshot into a
TaskJuggler task fragment. No network access is needed, which makes it
suitable for reproducing a conversion or iterating on conversion flags.

Link phrases given with --links are used as-is, since the instance's link
types are not available offline.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("snapshot", "", "snapshot file written by export --snapshot")
	renderCmd.Flags().StringP("output", "o", "jira_export.tjp", "output file; - writes to stdout")
	renderCmd.Flags().StringSliceP("links", "l", []string{"is blocked by"}, "issue link phrases used for depends")
	renderCmd.Flags().BoolP("depend-on-preceding", "d", false, "make open tasks depend on the preceding task of the same assignee")
	renderCmd.Flags().StringP("sort-on-sprint", "s", "", "sprint custom field; orders tasks by sprint first")
	renderCmd.Flags().Float64P("weeklymax", "w", 5, "allocated workdays per week, for start time inference")
	renderCmd.Flags().StringP("current-date", "c", "", "anchor date for schedule inference (YYYY-MM-DD; default today)")
	renderCmd.Flags().BoolP("enable-epics", "e", false, "nest tasks under their Epic and parent tasks")
	cobra.CheckErr(renderCmd.MarkFlagRequired("snapshot"))

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	snapPath, _ := cmd.Flags().GetString("snapshot")
	snap, err := fetch.ReadSnapshot(snapPath)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	dependOnPreceding, _ := cmd.Flags().GetBool("depend-on-preceding")
	sprintField, _ := cmd.Flags().GetString("sort-on-sprint")
	weeklyMax, _ := cmd.Flags().GetFloat64("weeklymax")
	enableEpics, _ := cmd.Flags().GetBool("enable-epics")
	links, _ := cmd.Flags().GetStringSlice("links")

	cfg := types.ExportConfig{
		Query:             snap.Query,
		Output:            output,
		DependOnPreceding: dependOnPreceding,
		SprintField:       sprintField,
		WeeklyMax:         weeklyMax,
		EnableEpics:       enableEpics,
	}
	if value, _ := cmd.Flags().GetString("current-date"); value != "" {
		current, err := parseCurrentDate(value)
		if err != nil {
			return err
		}
		cfg.CurrentDate = current
	}

	linkSet := make(map[string]bool, len(links))
	for _, phrase := range links {
		if phrase != "" {
			linkSet[phrase] = true
		}
	}

	resolver := snapshotResolver{}
	tasks := juggler.Convert(snap.Issues, cfg, linkSet, resolver, os.Stderr)
	return writeOutput(output, tasks)
}

// snapshotResolver derives allocation names without API access: account
// IDs in changelog entries cannot be looked up offline and pass through.
type snapshotResolver struct{}

func (snapshotResolver) Resolve(user types.User) string {
	if user.EmailAddress != "" {
		for i := 0; i < len(user.EmailAddress); i++ {
			if user.EmailAddress[i] == '@' {
				return user.EmailAddress[:i]
			}
		}
		return user.EmailAddress
	}
	if user.Name != "" {
		return user.Name
	}
	return user.AccountID
}

func (snapshotResolver) ResolveID(id string) string { return id }
