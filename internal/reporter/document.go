package reporter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AntTheLimey/ddldoc/internal/config"
	"github.com/AntTheLimey/ddldoc/internal/models"
	"github.com/AntTheLimey/ddldoc/internal/parser"
)

// phrases holds the sentence templates of one document locale.
type phrases struct {
	lang        string
	heading     string // number, subject
	description string // subject, summary, chapter, table number
	caption     string // chapter, table number, subject, table name
	listSep     string
	more        string
	total       string // field count
	dropped     string
	labels      [4]string
}

var locales = map[string]phrases{
	"en": {
		lang:        "en",
		heading:     "%d %s table",
		description: "The %[1]s table stores %[1]s information and contains %[2]s. The %[1]s table is shown in Table %[3]d-%[4]d.",
		caption:     "Table %d-%d %s table (%s)",
		listSep:     ", ",
		more:        ", etc.",
		total:       "%d attributes in total",
		dropped:     "Statements not documented",
		labels:      [4]string{"Field", "Type", "Nullable", "Comment"},
	},
	"zh": {
		lang:        "zh-CN",
		heading:     "%d %s表",
		description: "%[1]s表用于存储%[1]s信息，包含%[2]s。%[1]s表如表%[3]d-%[4]d所示。",
		caption:     "表%d-%d %s表(%s)",
		listSep:     "、",
		more:        "等",
		total:       "共%d个属性",
		dropped:     "未能解析的语句",
		labels:      [4]string{"字段名", "类型", "允许空", "说明"},
	},
}

func localePhrases(cfg config.Document) phrases {
	if p, ok := locales[cfg.Locale]; ok {
		return p
	}
	return locales["en"]
}

// tableLayout is the rendered text surrounding one table of a document.
type tableLayout struct {
	Number      string                 `json:"number" yaml:"number"`
	Heading     string                 `json:"heading,omitempty" yaml:"heading,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Caption     string                 `json:"caption,omitempty" yaml:"caption,omitempty"`
	Table       parser.TableDescriptor `json:"table" yaml:"table"`
}

// layoutTables computes heading, description and caption for every table.
// The i-th table (0-based) gets heading number i+1 and table number
// chapter-(start_table+i). A table without a comment is named by its
// table name instead.
func layoutTables(doc *models.SchemaDocument, cfg config.Document) []tableLayout {
	p := localePhrases(cfg)
	out := make([]tableLayout, 0, len(doc.Tables))
	for i, t := range doc.Tables {
		subject := t.Comment
		if subject == "" {
			subject = t.Name
		}
		n := cfg.StartTable + i

		l := tableLayout{
			Number: fmt.Sprintf("%d-%d", cfg.Chapter, n),
			Table:  t,
		}
		if cfg.Heading {
			l.Heading = fmt.Sprintf(p.heading, i+1, subject)
		}
		if cfg.Description {
			l.Description = fmt.Sprintf(p.description, subject, attributeSummary(p, t.Fields, cfg.AttributeSummary), cfg.Chapter, n)
		}
		if cfg.Caption {
			l.Caption = fmt.Sprintf(p.caption, cfg.Chapter, n, subject, t.Name)
		}
		out = append(out, l)
	}
	return out
}

// attributeSummary names the first limit fields by comment, or by name when
// the comment is empty, followed by the field count.
func attributeSummary(p phrases, fields []parser.FieldDescriptor, limit int) string {
	var names []string
	for _, f := range fields[:max(0, min(limit, len(fields)))] {
		if f.Comment != "" {
			names = append(names, f.Comment)
		} else {
			names = append(names, f.Name)
		}
	}
	total := fmt.Sprintf(p.total, len(fields))
	if len(names) == 0 {
		return total
	}
	list := strings.Join(names, p.listSep)
	if limit < len(fields) {
		list += p.more
	}
	if p.lang == "en" {
		return list + ", " + total
	}
	return list + total
}

func labels(cfg config.Document) [4]string {
	if len(cfg.ColumnLabels) == 4 {
		return [4]string(cfg.ColumnLabels)
	}
	return localePhrases(cfg).labels
}

// -- Markdown -----------------------------------------------------------------

// RenderDocumentMarkdown renders the schema document as markdown.
func RenderDocumentMarkdown(doc *models.SchemaDocument, cfg config.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "*%s, %s*\n\n", doc.Source, doc.Timestamp.Format("2006-01-02 15:04:05 UTC"))

	hashes := strings.Repeat("#", cfg.HeadingLevel)
	cols := labels(cfg)
	for _, l := range layoutTables(doc, cfg) {
		if l.Heading != "" {
			fmt.Fprintf(&b, "%s %s\n\n", hashes, l.Heading)
		}
		if l.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", l.Description)
		}
		if l.Caption != "" {
			fmt.Fprintf(&b, "**%s**\n\n", l.Caption)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", mdCell(cols[0]), mdCell(cols[1]), mdCell(cols[2]), mdCell(cols[3]))
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, f := range l.Table.Fields {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", mdCell(f.Name), mdCell(f.DataType), f.Nullable, mdCell(f.Comment))
		}
		b.WriteString("\n")
		if cfg.BlankSeparator {
			b.WriteString("&nbsp;\n\n")
		}
	}

	if len(doc.Dropped) > 0 {
		fmt.Fprintf(&b, "%s %s\n\n", hashes, localePhrases(cfg).dropped)
		for _, d := range doc.Dropped {
			fmt.Fprintf(&b, "- line %d: %s (`%s`)\n", d.Line, d.Reason, strings.ReplaceAll(d.Snippet, "`", "'"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// -- HTML ---------------------------------------------------------------------

const documentCSS = `
body { font-family: 'Times New Roman', 'SimSun', serif; margin: 40px auto; max-width: 900px;
       color: #000; line-height: 1.6; padding: 0 20px; }
h1 { text-align: center; }
.description { text-indent: 2em; }
.caption { text-align: center; font-weight: bold; font-size: 0.95em; margin-bottom: 4px; }
table { border-collapse: collapse; width: 100%; margin: 0 0 1em; font-size: 0.95em; }
th, td { padding: 4px 10px; text-align: center; vertical-align: middle; }
th { font-weight: bold; }
table.three_line { border-top: 2px solid #000; border-bottom: 2px solid #000; }
table.three_line th { border-bottom: 1px solid #000; }
table.grid th, table.grid td { border: 1px solid #000; }
table.grid { border: 2px solid #000; }
.blank { height: 1.6em; }
.dropped { font-family: monospace; font-size: 0.85em; }
`

// RenderDocumentHTML renders the schema document as a standalone HTML page.
// cfg.TableStyle selects three-line or full grid borders.
func RenderDocumentHTML(doc *models.SchemaDocument, cfg config.Document) string {
	p := localePhrases(cfg)
	cols := labels(cfg)
	level := cfg.HeadingLevel
	if level < 1 || level > 6 {
		level = 2
	}

	var main []string
	main = append(main, fmt.Sprintf(`<h1>%s</h1>`, esc(doc.Title)))
	for _, l := range layoutTables(doc, cfg) {
		if l.Heading != "" {
			main = append(main, fmt.Sprintf(`<h%d id="table-%s">%s</h%d>`, level, esc(l.Number), esc(l.Heading), level))
		}
		if l.Description != "" {
			main = append(main, fmt.Sprintf(`<p class="description">%s</p>`, esc(l.Description)))
		}
		if l.Caption != "" {
			main = append(main, fmt.Sprintf(`<p class="caption">%s</p>`, esc(l.Caption)))
		}
		main = append(main, fmt.Sprintf(`<table class="%s">`, esc(cfg.TableStyle)))
		main = append(main, fmt.Sprintf(`<tr><th>%s</th><th>%s</th><th>%s</th><th>%s</th></tr>`,
			esc(cols[0]), esc(cols[1]), esc(cols[2]), esc(cols[3])))
		for _, f := range l.Table.Fields {
			main = append(main, fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(f.Name), esc(f.DataType), f.Nullable, esc(f.Comment)))
		}
		main = append(main, `</table>`)
		if cfg.BlankSeparator {
			main = append(main, `<p class="blank"></p>`)
		}
	}

	if len(doc.Dropped) > 0 {
		main = append(main, fmt.Sprintf(`<h%d>%s</h%d>`, level, esc(p.dropped), level))
		main = append(main, `<ul class="dropped">`)
		for _, d := range doc.Dropped {
			main = append(main, fmt.Sprintf(`<li>line %d: %s <code>%s</code></li>`, d.Line, esc(d.Reason), esc(d.Snippet)))
		}
		main = append(main, `</ul>`)
	}

	return htmlPage(p.lang, doc.Title, documentCSS, nil, main, "")
}

// -- JSON ---------------------------------------------------------------------

type documentData struct {
	Meta    documentMeta        `json:"meta" yaml:"meta"`
	Tables  []tableLayout       `json:"tables" yaml:"tables"`
	Dropped []parser.Diagnostic `json:"dropped" yaml:"dropped"`
}

type documentMeta struct {
	Tool      string `json:"tool" yaml:"tool"`
	Version   string `json:"version" yaml:"version"`
	Title     string `json:"title" yaml:"title"`
	Source    string `json:"source" yaml:"source"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Locale    string `json:"locale" yaml:"locale"`
	Tables    int    `json:"table_count" yaml:"table_count"`
	Fields    int    `json:"field_count" yaml:"field_count"`
}

func buildDocumentData(doc *models.SchemaDocument, cfg config.Document) documentData {
	dropped := doc.Dropped
	if dropped == nil {
		dropped = []parser.Diagnostic{}
	}
	return documentData{
		Meta: documentMeta{
			Tool:      toolName,
			Version:   toolVersion,
			Title:     doc.Title,
			Source:    doc.Source,
			Timestamp: doc.Timestamp.Format("2006-01-02T15:04:05-07:00"),
			Locale:    localePhrases(cfg).lang,
			Tables:    len(doc.Tables),
			Fields:    doc.FieldCount(),
		},
		Tables:  layoutTables(doc, cfg),
		Dropped: dropped,
	}
}

// RenderDocumentJSON renders the schema document as JSON. Each table carries
// its number and the heading, description and caption enabled in cfg.
func RenderDocumentJSON(doc *models.SchemaDocument, cfg config.Document) string {
	out, _ := json.MarshalIndent(buildDocumentData(doc, cfg), "", "  ")
	return string(out)
}
