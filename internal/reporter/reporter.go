// Package reporter renders check reports and schema documents into
// various output formats.
package reporter

import (
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/config"
	"github.com/AntTheLimey/ddldoc/internal/models"
)

const (
	toolName    = "ddldoc"
	toolVersion = "0.1.0"
)

// Formats lists the output formats accepted by Render and RenderDocument.
var Formats = []string{"markdown", "html", "json", "yaml"}

// Render dispatches to the appropriate report renderer based on format.
func Render(report *models.Report, format string) (string, error) {
	switch format {
	case "json":
		return RenderJSON(report), nil
	case "markdown":
		return RenderMarkdown(report), nil
	case "html":
		return RenderHTML(report), nil
	case "yaml":
		return RenderYAML(report)
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// RenderDocument dispatches to the appropriate document renderer based on format.
func RenderDocument(doc *models.SchemaDocument, cfg config.Document, format string) (string, error) {
	switch format {
	case "json":
		return RenderDocumentJSON(doc, cfg), nil
	case "markdown":
		return RenderDocumentMarkdown(doc, cfg), nil
	case "html":
		return RenderDocumentHTML(doc, cfg), nil
	case "yaml":
		return RenderDocumentYAML(doc, cfg)
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}
