package naming

import (
	"fmt"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "spaces",
			in:       "nightly build",
			expected: "nightly_build",
		},
		{
			name:     "slashes",
			in:       "team/project",
			expected: "team_project",
		},
		{
			name:     "clean",
			in:       "build42",
			expected: "build42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	got := Label("build42", "default", 1700000000)
	want := "kitchen-build42-default-170000"
	if got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	if len(got) > MaxBaseLength {
		t.Errorf("label %q exceeds %d characters", got, MaxBaseLength)
	}
}

func TestLabelTruncation(t *testing.T) {
	long := strings.Repeat("a", 26) + "ABCDE" // 31 chars before composition
	got := Label(long, "default-ubuntu", 1700000000)
	if len(got) != MaxBaseLength {
		t.Errorf("expected exactly %d characters, got %d (%q)", MaxBaseLength, len(got), got)
	}
	if !strings.HasPrefix(got, "kitchen-") {
		t.Errorf("expected kitchen- prefix, got %q", got)
	}
}

func TestLabelLeavesRoomForSuffix(t *testing.T) {
	got := Label(strings.Repeat("x", 40), "default", 1700000000)
	candidate := fmt.Sprintf("%s%02d", got, 99)
	if len(candidate) > 32 {
		t.Errorf("label plus suffix %q exceeds the provider's 32-character cap", candidate)
	}
}
