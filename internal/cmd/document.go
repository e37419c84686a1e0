package cmd

import (
	"fmt"
	"time"

	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
	"github.com/AntTheLimey/ddldoc/internal/reporter"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	documentFile        string
	documentTitle       string
	documentLocale      string
	documentOut         outputFlags
	documentInteractive bool
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Render a schema document from a DDL file",
	Long: "Parse every CREATE TABLE statement in a SQL file and render a document with one " +
		"numbered section per table: heading, description, caption and a field table.",
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().StringVar(&documentFile, "file", "", `Path to SQL file, or "-" for stdin (required)`)
	documentCmd.MarkFlagRequired("file")
	documentCmd.Flags().StringVar(&documentTitle, "title", "", "Document title (overrides document.title)")
	documentCmd.Flags().StringVar(&documentLocale, "locale", "", "Document language, en or zh (overrides document.locale)")
	documentCmd.Flags().BoolVarP(&documentInteractive, "interactive", "i", false, "Choose the output format from a menu")
	addOutputFlags(documentCmd, &documentOut, "markdown")
}

func runDocument(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if documentTitle != "" {
		cfg.Document.Title = documentTitle
	}
	if documentLocale != "" {
		cfg.Document.Locale = documentLocale
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if documentInteractive {
		format, err := chooseFormat(documentOut.Format)
		if err != nil {
			return err
		}
		documentOut.Format = format
	}
	if err := checkFormat(documentOut.Format); err != nil {
		return err
	}

	sql, err := readInput(documentFile, cfg.Parser.MaxInputBytes)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := parser.ParseConcurrent(cmd.Context(), sql, cfg.Parser.Workers)
	if err != nil {
		return fmt.Errorf("parse %s: %w", documentFile, err)
	}
	logDropped(res.Dropped)
	logger.Info("parsed",
		zap.String("file", documentFile),
		zap.Int("tables", len(res.Tables)),
		zap.Int("dropped", len(res.Dropped)),
		zap.Duration("elapsed", time.Since(start)))

	doc := models.NewSchemaDocument(cfg.Document.Title, documentFile, res)
	output, err := reporter.RenderDocument(doc, cfg.Document, documentOut.Format)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return writeOutput(output, documentOut, sourceName(documentFile))
}

func logDropped(dropped []parser.Diagnostic) {
	for _, d := range dropped {
		logger.Warn("dropped statement",
			zap.Int("line", d.Line),
			zap.String("reason", d.Reason),
			zap.String("snippet", d.Snippet))
	}
}

// chooseFormat asks for an output format, starting on current.
func chooseFormat(current string) (string, error) {
	start := 0
	for i, f := range reporter.Formats {
		if f == current {
			start = i
		}
	}
	prompt := promptui.Select{
		Label:     "Output format",
		Items:     reporter.Formats,
		CursorPos: start,
	}
	_, format, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("choose format: %w", err)
	}
	return format, nil
}
