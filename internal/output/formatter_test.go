package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/KilimcininKorOglu/diavlos/internal/sockopen"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "text"},
		{FormatVerbose, "verbose"},
		{FormatJSON, "json"},
		{Format(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", int(tt.format), got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	config := Config{Colors: false}

	if _, ok := NewFormatter(FormatText, config).(*TextFormatter); !ok {
		t.Error("NewFormatter(FormatText) did not return a *TextFormatter")
	}
	if _, ok := NewFormatter(FormatVerbose, config).(*TableFormatter); !ok {
		t.Error("NewFormatter(FormatVerbose) did not return a *TableFormatter")
	}
	if _, ok := NewFormatter(FormatJSON, config).(*JSONFormatter); !ok {
		t.Error("NewFormatter(FormatJSON) did not return a *JSONFormatter")
	}
}

func TestNewResult(t *testing.T) {
	success := NewResult(nil, 5, 2*time.Millisecond)
	if !success.OK {
		t.Error("OK = false for nil error")
	}
	if success.FD != 5 {
		t.Errorf("FD = %d, want 5", success.FD)
	}
	if success.Error != "" {
		t.Errorf("Error = %q, want empty", success.Error)
	}

	sysErr := &sockopen.SysError{Syscall: "socket", Errno: unix.EPERM}
	failure := NewResult(sysErr, -1, time.Millisecond)
	if failure.OK {
		t.Error("OK = true for failed result")
	}
	if failure.FD != -1 {
		t.Errorf("FD = %d, want -1", failure.FD)
	}
	if failure.Syscall != "socket" {
		t.Errorf("Syscall = %q, want %q", failure.Syscall, "socket")
	}
	if failure.Code != "EPERM" {
		t.Errorf("Code = %q, want %q", failure.Code, "EPERM")
	}
	if failure.Errno != int(unix.EPERM) {
		t.Errorf("Errno = %d, want %d", failure.Errno, int(unix.EPERM))
	}
}

func TestReportCounts(t *testing.T) {
	report := &Report{
		Results: []Result{
			{OK: true, FD: 3},
			{OK: false, FD: -1},
			{OK: true, FD: 4},
		},
	}

	if got := report.Succeeded(); got != 2 {
		t.Errorf("Succeeded() = %d, want 2", got)
	}
	if got := report.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
}

func sampleReport() *Report {
	return &Report{
		Family:    "inet",
		Source:    "127.0.0.1",
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Results: []Result{
			{OK: true, FD: 3, Duration: 1500 * time.Microsecond},
			{OK: false, FD: -1, Duration: 200 * time.Microsecond,
				Error: "operation not permitted", Syscall: "socket",
				Code: "EPERM", Errno: int(unix.EPERM)},
		},
	}
}

func TestTextFormatter(t *testing.T) {
	f := NewTextFormatter(Config{Colors: false})

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"family inet",
		"source 127.0.0.1",
		"fd 3",
		"EPERM: operation not permitted (syscall: socket)",
		"1 opened, 1 failed",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(Config{Colors: false})

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if decoded.Family != "inet" {
		t.Errorf("family = %q, want %q", decoded.Family, "inet")
	}
	if decoded.Succeeded != 1 || decoded.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 1/1", decoded.Succeeded, decoded.Failed)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("results = %d entries, want 2", len(decoded.Results))
	}
	if decoded.Results[0].FD != 3 {
		t.Errorf("results[0].fd = %d, want 3", decoded.Results[0].FD)
	}
	if decoded.Results[1].Code != "EPERM" {
		t.Errorf("results[1].code = %q, want %q", decoded.Results[1].Code, "EPERM")
	}
}

func TestJSONFormatterCompact(t *testing.T) {
	f := NewJSONFormatter(Config{})
	f.SetPretty(false)

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(string(out), "\n  ") {
		t.Error("compact output contains indentation")
	}
}

func TestTableFormatter(t *testing.T) {
	f := NewTableFormatter(Config{Colors: false})

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	text := string(out)
	for _, want := range []string{"SYSCALL", "EPERM", "socket"} {
		if !strings.Contains(text, want) {
			t.Errorf("table missing %q:\n%s", want, text)
		}
	}
}

func TestInterfaceTable(t *testing.T) {
	ifaces := []Interface{
		{Name: "lo", Index: 1, MTU: 65536, Flags: "up|loopback", Addrs: []string{"127.0.0.1/8"}},
	}

	out := InterfaceTable(ifaces, Config{Colors: false})
	if !strings.Contains(string(out), "lo") {
		t.Errorf("table missing interface name:\n%s", out)
	}
}

func TestListInterfaces(t *testing.T) {
	ifaces, err := ListInterfaces()
	if err != nil {
		t.Fatalf("ListInterfaces() error = %v", err)
	}
	if len(ifaces) == 0 {
		t.Skip("Skipping: no network interfaces")
	}
	if ifaces[0].Name == "" {
		t.Error("interface with empty name")
	}
}
