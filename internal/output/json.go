package output

import (
	"encoding/json"
)

// JSONFormatter formats open reports as JSON.
type JSONFormatter struct {
	config Config
	pretty bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(config Config) *JSONFormatter {
	return &JSONFormatter{
		config: config,
		pretty: true, // Default to pretty-printed
	}
}

// SetPretty enables or disables pretty-printing.
func (f *JSONFormatter) SetPretty(pretty bool) {
	f.pretty = pretty
}

// Format formats the report as JSON.
func (f *JSONFormatter) Format(report *Report) ([]byte, error) {
	output := f.toJSONOutput(report)

	if f.pretty {
		return json.MarshalIndent(output, "", "  ")
	}
	return json.Marshal(output)
}

// JSONOutput is the JSON-serializable representation of a report.
type JSONOutput struct {
	Family    string       `json:"family"`
	Source    string       `json:"source,omitempty"`
	Interface string       `json:"interface,omitempty"`
	Timestamp string       `json:"timestamp"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []JSONResult `json:"results"`
}

// JSONResult represents a single open result in JSON format.
type JSONResult struct {
	OK         bool    `json:"ok"`
	FD         int     `json:"fd"`
	DurationMs float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
	Syscall    string  `json:"syscall,omitempty"`
	Code       string  `json:"code,omitempty"`
	Errno      int     `json:"errno,omitempty"`
}

// toJSONOutput converts a report to its JSON representation.
func (f *JSONFormatter) toJSONOutput(report *Report) JSONOutput {
	out := JSONOutput{
		Family:    report.Family,
		Source:    report.Source,
		Interface: report.Interface,
		Timestamp: report.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Results:   make([]JSONResult, 0, len(report.Results)),
	}

	for _, result := range report.Results {
		out.Results = append(out.Results, JSONResult{
			OK:         result.OK,
			FD:         result.FD,
			DurationMs: float64(result.Duration.Microseconds()) / 1000,
			Error:      result.Error,
			Syscall:    result.Syscall,
			Code:       result.Code,
			Errno:      result.Errno,
		})
	}

	return out
}

// ContentType returns the MIME type for JSON output.
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// FileExtension returns the file extension for JSON output.
func (f *JSONFormatter) FileExtension() string {
	return "json"
}
