package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats open reports as a detailed table.
type TableFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(config Config) *TableFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TableFormatter{
		config: config,
		colors: colors,
	}
}

// Format formats the report as a detailed table.
func (f *TableFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	f.writeHeader(&buf, report)

	table := tablewriter.NewWriter(&buf)
	configureTable(table)
	table.SetHeader([]string{"#", "Result", "FD", "Time", "Syscall", "Code", "Errno", "Message"})

	for i, result := range report.Results {
		table.Append(f.formatResultRow(i+1, &result))
	}

	table.Render()

	fmt.Fprintf(&buf, "\n%d opened, %d failed\n", report.Succeeded(), report.Failed())

	return buf.Bytes(), nil
}

// writeHeader writes the request parameters.
func (f *TableFormatter) writeHeader(buf *bytes.Buffer, report *Report) {
	header := fmt.Sprintf("Family: %s", strings.ToUpper(report.Family))
	if report.Source != "" {
		header += fmt.Sprintf(" | Source: %s", report.Source)
	}
	if report.Interface != "" {
		header += fmt.Sprintf(" | Interface: %s", report.Interface)
	}
	header += fmt.Sprintf(" | Time: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05"))

	if f.colors != nil {
		header = f.colors.Header.Sprint(header)
	}
	buf.WriteString(header)
}

// formatResultRow converts a result to a table row.
func (f *TableFormatter) formatResultRow(n int, result *Result) []string {
	duration := fmt.Sprintf("%.3f ms", float64(result.Duration.Microseconds())/1000)

	if result.OK {
		status := "ok"
		if f.colors != nil {
			status = f.colors.Success.Sprint(status)
		}
		return []string{strconv.Itoa(n), status, strconv.Itoa(result.FD), duration, "", "", "", ""}
	}

	status := "failed"
	if f.colors != nil {
		status = f.colors.Failure.Sprint(status)
	}
	return []string{
		strconv.Itoa(n),
		status,
		"-",
		duration,
		result.Syscall,
		result.Code,
		strconv.Itoa(result.Errno),
		result.Error,
	}
}

// ContentType returns the MIME type for table output.
func (f *TableFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for table output.
func (f *TableFormatter) FileExtension() string {
	return "txt"
}

// configureTable sets up the table appearance.
func configureTable(table *tablewriter.Table) {
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
}
