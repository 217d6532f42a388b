// Package output renders command results as tables, JSON, or YAML, with
// optional JMESPath filtering.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Astreocclu/pool-visualizer/pkg/expressions"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json, or yaml)", s)
	}
}

// Table is tabular data for the table format.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Renderer renders values in a fixed format, applying an optional JMESPath
// query to JSON and YAML output.
type Renderer struct {
	format    Format
	query     string
	evaluator *expressions.Evaluator
}

// NewRenderer creates a renderer. The query is ignored for table output.
func NewRenderer(format Format, query string) *Renderer {
	return &Renderer{
		format:    format,
		query:     query,
		evaluator: expressions.NewEvaluator(),
	}
}

// Render formats the value. Table output requires a *Table value; other
// values fall back to JSON when the format is table.
func (r *Renderer) Render(v any) (string, error) {
	if r.format == FormatTable {
		if table, ok := v.(*Table); ok {
			return renderTable(table), nil
		}
	}

	filtered, err := r.filter(v)
	if err != nil {
		return "", err
	}

	switch r.format {
	case FormatYAML:
		data, err := yaml.Marshal(filtered)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	default:
		data, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	}
}

func (r *Renderer) filter(v any) (any, error) {
	if r.query == "" {
		return v, nil
	}
	return r.evaluator.EvaluateValue(r.query, v)
}

func renderTable(table *Table) string {
	if len(table.Rows) == 0 {
		return "No data found"
	}

	var builder strings.Builder
	writer := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, strings.Join(table.Headers, "\t"))

	separators := make([]string, len(table.Headers))
	for i, header := range table.Headers {
		separators[i] = strings.Repeat("-", len(header))
	}
	fmt.Fprintln(writer, strings.Join(separators, "\t"))

	for _, row := range table.Rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}

	writer.Flush()
	return builder.String()
}
