package cmd

import (
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/check"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/reporter"
	"github.com/AntTheLimey/ddldoc/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	lintFile       string
	lintOut        outputFlags
	lintCategories string
	lintStrict     bool
	lintFailOn     string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check a DDL file for documentation and schema issues",
	Long: "Parse a SQL file and run the registered checks over the extracted tables. " +
		"--strict also re-parses every statement with the MySQL grammar.",
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintFile, "file", "", `Path to SQL file, or "-" for stdin (required)`)
	lintCmd.MarkFlagRequired("file")
	addOutputFlags(lintCmd, &lintOut, "markdown")
	lintCmd.Flags().StringVar(&lintCategories, "categories", "", "Comma-separated list of check categories to run")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Also run grammar checks")
	lintCmd.Flags().StringVar(&lintFailOn, "fail-on", "never", "Exit non-zero when a finding is at least this severe (error, warning, notice, info, never)")
}

func runLint(cmd *cobra.Command, args []string) error {
	if err := checkFormat(lintOut.Format); err != nil {
		return err
	}
	threshold, failOn, err := parseFailOn(lintFailOn)
	if err != nil {
		return err
	}

	sql, err := readInput(lintFile, appConfig.Parser.MaxInputBytes)
	if err != nil {
		return err
	}
	target := check.NewTarget(lintFile, sql)
	logDropped(target.Dropped)

	var cats []string
	if lintCategories != "" {
		cats = splitComma(lintCategories)
	}

	report, err := scanner.RunLint(cmd.Context(), target, scanner.Options{
		Categories: cats,
		Strict:     lintStrict,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	output, err := reporter.Render(report, lintOut.Format)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := writeOutput(output, lintOut, sourceName(lintFile)); err != nil {
		return err
	}
	return exceeds(report, threshold, failOn)
}

// parseFailOn returns the severity threshold and whether one is set.
func parseFailOn(s string) (models.Severity, bool, error) {
	if strings.EqualFold(s, "never") || s == "" {
		return 0, false, nil
	}
	sev, err := models.ParseSeverity(strings.ToUpper(s))
	if err != nil {
		return 0, false, fmt.Errorf("--fail-on: %w", err)
	}
	return sev, true, nil
}

// exceeds returns an error when the report holds a finding at or above threshold.
func exceeds(report *models.Report, threshold models.Severity, enabled bool) error {
	if !enabled {
		return nil
	}
	if worst, ok := report.Worst(); ok && worst <= threshold {
		return fmt.Errorf("%s findings present (fail-on %s)", worst, threshold)
	}
	return nil
}
