package cmd

import (
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/spf13/cobra"
)

var listCategories string
var listMode string

var listChecksCmd = &cobra.Command{
	Use:   "list-checks",
	Short: "List all available lint checks",
	RunE:  runListChecks,
}

func init() {
	listChecksCmd.Flags().StringVar(&listCategories, "categories", "", "Comma-separated list of categories to filter")
	listChecksCmd.Flags().StringVar(&listMode, "mode", "all", "Filter checks by mode (lint, strict, all)")
}

func runListChecks(cmd *cobra.Command, args []string) error {
	var cats []string
	if listCategories != "" {
		cats = splitComma(listCategories)
	}

	mode := listMode
	switch mode {
	case "all":
		mode = ""
	case check.ModeLint, check.ModeStrict:
	default:
		return fmt.Errorf("unknown mode: %s", listMode)
	}

	checks := check.GetChecks(mode, cats)
	out := cmd.OutOrStdout()
	if len(checks) == 0 {
		fmt.Fprintln(out, "No checks found.")
		return nil
	}

	currentCat := ""
	for _, c := range checks {
		if c.Category() != currentCat {
			currentCat = c.Category()
			fmt.Fprintf(out, "\n[%s]\n", currentCat)
		}
		modeTag := ""
		if c.Mode() != check.ModeLint {
			modeTag = fmt.Sprintf("[%s]", c.Mode())
		}
		fmt.Fprintf(out, "  %-24s %-8s %s\n", c.Name(), modeTag, c.Description())
	}
	return nil
}
