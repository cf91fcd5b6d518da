// Package output writes the catalog report in machine-readable formats.
// CSV, JSON and XML are alternatives to the default grouped text report.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default grouped text report.
	FormatTable Format = "table"
	// FormatCSV outputs one row per outdated entry.
	FormatCSV Format = "csv"
	// FormatJSON outputs the report as a single JSON document.
	FormatJSON Format = "json"
	// FormatXML outputs the report as XML.
	FormatXML Format = "xml"
)

// ParseFormat parses a format name case-insensitively.
//
// Parameters:
//   - s: Format name (e.g. "json", "CSV"); empty means FormatTable
//
// Returns:
//   - Format: The parsed format
//   - error: When s names no known format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected table, json, csv or xml)", s)
	}
}

// IsStructuredFormat returns true if the format is meant for machine consumption.
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML
}

// Formatter handles writing data in a specific format.
//
// Fields:
//   - format: The output format
//   - writer: Destination for formatted output
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// WriteReport writes report in the formatter's format.
//
// Returns:
//   - error: When the format is not structured or encoding fails
func (f *Formatter) WriteReport(report *CatalogReport) error {
	switch f.format {
	case FormatJSON:
		return f.writeJSON(report)
	case FormatXML:
		return f.writeXML(report)
	case FormatCSV:
		return f.writeCSV(report.csvHeaders(), report.csvRows())
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// writeCSV writes a header row and data rows.
//
// csv.Writer buffers all writes and only reports errors via Error() after Flush().
func (f *Formatter) writeCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// writeJSON writes compact single-line JSON.
func (f *Formatter) writeJSON(data any) error {
	return json.NewEncoder(f.writer).Encode(data)
}

// writeXML writes the XML header followed by the data with 2-space indentation.
func (f *Formatter) writeXML(data any) error {
	_, _ = fmt.Fprint(f.writer, xml.Header)
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}
