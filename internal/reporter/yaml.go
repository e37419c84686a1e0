package reporter

import (
	"fmt"

	"github.com/AntTheLimey/ddldoc/internal/config"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"gopkg.in/yaml.v3"
)

// RenderYAML renders the report as YAML with the same layout as RenderJSON.
func RenderYAML(report *models.Report) (string, error) {
	out, err := yaml.Marshal(buildReportData(report))
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

// RenderDocumentYAML renders the schema document as YAML.
func RenderDocumentYAML(doc *models.SchemaDocument, cfg config.Document) (string, error) {
	out, err := yaml.Marshal(buildDocumentData(doc, cfg))
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(out), nil
}
