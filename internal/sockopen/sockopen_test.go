package sockopen

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestFamilyConstants(t *testing.T) {
	// The exported values must match the host OS address-family constants.
	if int(AFInet) != unix.AF_INET {
		t.Errorf("AFInet = %d, want %d", int(AFInet), unix.AF_INET)
	}
	if int(AFInet6) != unix.AF_INET6 {
		t.Errorf("AFInet6 = %d, want %d", int(AFInet6), unix.AF_INET6)
	}
}

func TestFamilyString(t *testing.T) {
	tests := []struct {
		family   Family
		expected string
	}{
		{AFInet, "inet"},
		{AFInet6, "inet6"},
		{Family(12345), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.family.String(); got != tt.expected {
			t.Errorf("Family(%d).String() = %q, want %q", int(tt.family), got, tt.expected)
		}
	}
}

func TestFamilyProtocol(t *testing.T) {
	proto, ok := AFInet.protocol()
	if !ok || proto != unix.IPPROTO_ICMP {
		t.Errorf("AFInet.protocol() = (%d, %v), want (%d, true)", proto, ok, unix.IPPROTO_ICMP)
	}

	proto, ok = AFInet6.protocol()
	if !ok || proto != unix.IPPROTO_ICMPV6 {
		t.Errorf("AFInet6.protocol() = (%d, %v), want (%d, true)", proto, ok, unix.IPPROTO_ICMPV6)
	}

	if _, ok := Family(0).protocol(); ok {
		t.Error("Family(0).protocol() ok = true, want false")
	}
}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		input    string
		expected Family
		wantErr  bool
	}{
		{"inet", AFInet, false},
		{"ipv4", AFInet, false},
		{"4", AFInet, false},
		{"inet6", AFInet6, false},
		{"ipv6", AFInet6, false},
		{"6", AFInet6, false},
		{"", 0, true},
		{"unix", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			family, err := ParseFamily(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFamily(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFamily(%q) error = %v", tt.input, err)
			}
			if family != tt.expected {
				t.Errorf("ParseFamily(%q) = %v, want %v", tt.input, family, tt.expected)
			}
		})
	}
}
