package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		enabled bool
		plain   string
	}{
		{"1.2.3", false, "1.2.3"},
		{"1.2.3-rc.1+build.123", true, "1.2.3-rc.1+build.123"},
		{"0.1.0-dev", true, "0.1.0-dev"},
		{"nightly", true, "nightly"},
	}
	for _, tt := range tests {
		Version = tt.version
		got := Colored(tt.enabled)
		if stripped := stripANSI(got); stripped != tt.plain {
			t.Errorf("Colored(%v) for %q = %q (plain %q)", tt.enabled, tt.version, got, stripped)
		}
	}
}

func TestColoredEmitsEscapes(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = false

	Version = "1.2.3"
	if got := Colored(true); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) = %q, want ANSI escapes", got)
	}
}

func TestInfo(t *testing.T) {
	origV, origC, origD := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origV, origC, origD }()

	Version, GitCommit, BuildDate = "1.0.0", "", ""
	if got := Info(false); got != "postfix 1.0.0\n" {
		t.Errorf("Info = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	got := Info(false)
	if !strings.Contains(got, "commit: abc123\n") || !strings.Contains(got, "built:  2024-01-15T10:30:00Z\n") {
		t.Errorf("Info = %q", got)
	}
}

func stripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
