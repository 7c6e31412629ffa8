package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melexis/jira-juggler/internal/fetch"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the issue link types of the JIRA instance",
	Long: `Links prints the issue link types configured on the instance, with their
inward and outward phrases. Pass a phrase from this list to export --links
to control which links become depends entries.`,
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	jiraCfg, err := jiraConfig(cmd)
	if err != nil {
		return err
	}
	src, err := fetch.NewAtlassianSource(jiraCfg, fetch.FieldOptions{})
	if err != nil {
		return err
	}

	linkTypes, err := src.LinkTypes(cmd.Context())
	if err != nil {
		return err
	}
	for _, lt := range linkTypes {
		fmt.Printf("%s\n  inward:  %q\n  outward: %q\n", lt.Name, lt.Inward, lt.Outward)
	}
	return nil
}
