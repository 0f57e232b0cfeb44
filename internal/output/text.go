package output

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
)

// TextFormatter formats open reports as one line per result.
type TextFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(config Config) *TextFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TextFormatter{
		config: config,
		colors: colors,
	}
}

// Format formats the report as plain text.
func (f *TextFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	f.writeHeader(&buf, report)

	for i, result := range report.Results {
		f.formatResult(&buf, i+1, &result)
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "%d opened, %d failed\n", report.Succeeded(), report.Failed())

	return buf.Bytes(), nil
}

// writeHeader writes the request parameters.
func (f *TextFormatter) writeHeader(buf *bytes.Buffer, report *Report) {
	header := fmt.Sprintf("open icmp socket, family %s", report.Family)
	if report.Source != "" {
		header += fmt.Sprintf(", source %s", report.Source)
	}
	if report.Interface != "" {
		header += fmt.Sprintf(", interface %s", report.Interface)
	}
	if f.colors != nil {
		header = f.colors.Header.Sprint(header)
	}
	buf.WriteString(header)
	buf.WriteString("\n\n")
}

// formatResult formats a single result line.
func (f *TextFormatter) formatResult(buf *bytes.Buffer, n int, result *Result) {
	fmt.Fprintf(buf, "%3d  ", n)

	if result.OK {
		line := fmt.Sprintf("fd %d", result.FD)
		if f.colors != nil {
			line = f.colors.Success.Sprint(line)
		}
		fmt.Fprintf(buf, "%s  %.3f ms\n", line, float64(result.Duration.Microseconds())/1000)
		return
	}

	line := result.Error
	if result.Code != "" {
		line = fmt.Sprintf("%s: %s", result.Code, result.Error)
	}
	if result.Syscall != "" {
		line = fmt.Sprintf("%s (syscall: %s)", line, result.Syscall)
	}
	if f.colors != nil {
		line = f.colors.Failure.Sprint(line)
	}
	fmt.Fprintf(buf, "%s\n", line)
}

// ContentType returns the MIME type for text output.
func (f *TextFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for text output.
func (f *TextFormatter) FileExtension() string {
	return "txt"
}

// ColorScheme defines colors for different output elements.
type ColorScheme struct {
	Header  *color.Color
	Success *color.Color
	Failure *color.Color
	Muted   *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:  color.New(color.FgWhite, color.Bold),
		Success: color.New(color.FgGreen),
		Failure: color.New(color.FgRed, color.Bold),
		Muted:   color.New(color.FgHiBlack),
	}
}
