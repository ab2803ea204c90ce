// Package format renders activity log entries for terminal output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Extractor extracts the value from an entry.
	Extractor func(domain.Entry) string
}

// TableFormatter renders entries as an aligned text table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a formatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		config: DefaultTableConfig(),
		columns: []TableColumn{
			{Name: "ID", Width: 10, Extractor: func(e domain.Entry) string { return e.ID }},
			{Name: "Date", Width: 19, Extractor: func(e domain.Entry) string { return domain.FormatLocal(e.CreatedAt) }},
			{Name: "Action", Width: 14, Extractor: func(e domain.Entry) string { return e.Action.String() }},
			{Name: "Actor", Width: 22, Extractor: func(e domain.Entry) string { return e.Actor() }},
			{Name: "Status", Width: 9, Extractor: func(e domain.Entry) string { return e.Status.String() }},
			{Name: "Read", Width: 6, Extractor: readMarker},
			{Name: "Details", Width: 32, Extractor: func(e domain.Entry) string { return e.Details }},
		},
	}
}

func readMarker(e domain.Entry) string {
	if e.IsRead {
		return "read"
	}
	return "NEW"
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatEntries writes the entries as a table.
func (f *TableFormatter) FormatEntries(entries []domain.Entry, writer io.Writer) error {
	if len(entries) == 0 {
		return nil
	}
	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := f.writeRow(e, writer); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, 0, len(f.columns))
	for _, col := range f.columns {
		cells = append(cells, pad(col.Name, col.Width))
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	cells := make([]string, 0, len(f.columns))
	for _, col := range f.columns {
		cells = append(cells, strings.Repeat("-", col.Width))
	}
	_, err := fmt.Fprintln(writer, strings.Join(cells, "  "))
	return err
}

func (f *TableFormatter) writeRow(e domain.Entry, writer io.Writer) error {
	cells := make([]string, 0, len(f.columns))
	for _, col := range f.columns {
		cells = append(cells, pad(truncate(col.Extractor(e), col.Width), col.Width))
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// pad left-aligns a value within width.
func pad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

// truncate shortens a value to width, marking the cut with an ellipsis.
func truncate(value string, width int) string {
	if len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}
