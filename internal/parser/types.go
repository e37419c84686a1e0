// Package parser extracts table and column metadata from CREATE TABLE DDL.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Nullability reports whether a column accepts NULL.
type Nullability int

const (
	NullableYes Nullability = iota
	NullableNo
)

var nullabilityNames = map[Nullability]string{
	NullableYes: "YES",
	NullableNo:  "NO",
}

func (n Nullability) String() string {
	if name, ok := nullabilityNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Nullability(%d)", int(n))
}

// ParseNullability converts "YES" or "NO" (any case) to a Nullability.
func ParseNullability(s string) (Nullability, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return NullableYes, nil
	case "NO":
		return NullableNo, nil
	}
	return 0, fmt.Errorf("unknown nullability: %s", s)
}

func (n Nullability) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Nullability) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParseNullability(name)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n Nullability) MarshalYAML() (any, error) {
	return n.String(), nil
}

func (n *Nullability) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseNullability(node.Value)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// DuplicateMode is the IGNORE / REPLACE keyword that may precede AS <select>.
type DuplicateMode int

const (
	DuplicatesNone DuplicateMode = iota
	DuplicatesIgnore
	DuplicatesReplace
)

var duplicateModeNames = map[DuplicateMode]string{
	DuplicatesNone:    "NONE",
	DuplicatesIgnore:  "IGNORE",
	DuplicatesReplace: "REPLACE",
}

func (d DuplicateMode) String() string {
	if name, ok := duplicateModeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DuplicateMode(%d)", int(d))
}

// ParseDuplicateMode converts NONE, IGNORE or REPLACE (any case) to a DuplicateMode.
// The empty string maps to DuplicatesNone.
func ParseDuplicateMode(s string) (DuplicateMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return DuplicatesNone, nil
	case "IGNORE":
		return DuplicatesIgnore, nil
	case "REPLACE":
		return DuplicatesReplace, nil
	}
	return 0, fmt.Errorf("unknown duplicate mode: %s", s)
}

func (d DuplicateMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DuplicateMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, err := ParseDuplicateMode(name)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d DuplicateMode) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *DuplicateMode) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseDuplicateMode(node.Value)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// FieldDescriptor describes one column of a table.
type FieldDescriptor struct {
	Name     string      `json:"name" yaml:"name"`         // Column name, quotes removed
	DataType string      `json:"type" yaml:"type"`         // Upper-cased base type, e.g. "VARCHAR(50)"
	Nullable Nullability `json:"nullable" yaml:"nullable"` // NO only with an explicit NOT NULL
	Comment  string      `json:"comment" yaml:"comment"`   // Column comment, unescaped
}

// TableDescriptor describes one CREATE TABLE statement.
type TableDescriptor struct {
	Temporary   bool              `json:"temporary" yaml:"temporary"`
	IfNotExists bool              `json:"if_not_exists" yaml:"if_not_exists"`
	Name        string            `json:"name" yaml:"name"`
	Comment     string            `json:"comment" yaml:"comment"`
	Definition  string            `json:"definition" yaml:"definition"`         // Text between the outer parentheses, newlines removed
	Options     string            `json:"table_options" yaml:"table_options"`   // ENGINE, CHARSET, COMMENT ... clause
	Partition   string            `json:"partition,omitempty" yaml:"partition,omitempty"`
	Duplicates  DuplicateMode     `json:"duplicates" yaml:"duplicates"`
	AsClause    string            `json:"as_clause,omitempty" yaml:"as_clause,omitempty"`
	Fields      []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Field returns the field with the given name, compared case-insensitively,
// or nil if the table has none.
func (t *TableDescriptor) Field(name string) *FieldDescriptor {
	for i := range t.Fields {
		if strings.EqualFold(t.Fields[i].Name, name) {
			return &t.Fields[i]
		}
	}
	return nil
}

// BaseName returns the last dotted component of the table name,
// i.e. "orders" for "shop.orders".
func (t *TableDescriptor) BaseName() string {
	if idx := strings.LastIndex(t.Name, "."); idx >= 0 {
		return t.Name[idx+1:]
	}
	return t.Name
}

// Statement is one CREATE TABLE statement located in a larger SQL text.
type Statement struct {
	Text   string // Statement text from CREATE through the terminating semicolon
	Offset int    // Byte offset of the statement in the source text
	Line   int    // 1-based line number of the CREATE keyword
}

// Diagnostic records a statement that produced no descriptor.
type Diagnostic struct {
	Offset  int    `json:"offset" yaml:"offset"`
	Line    int    `json:"line" yaml:"line"`
	Err     error  `json:"-" yaml:"-"`
	Reason  string `json:"reason" yaml:"reason"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Result is the outcome of parsing a SQL text.
type Result struct {
	Tables  []TableDescriptor `json:"tables" yaml:"tables"`
	Dropped []Diagnostic      `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}
