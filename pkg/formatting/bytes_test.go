package formatting_test

import (
	"testing"

	"github.com/cleavehq/cleave/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"bare number", "1024", 1024},
		{"bytes", "512B", 512},
		{"kilobytes", "2KB", 2048},
		{"megabytes", "50MB", 50 * 1024 * 1024},
		{"gigabytes", "1GB", 1 << 30},
		{"terabytes", "3TB", 3 << 40},
		{"lowercase unit", "10mb", 10 * 1024 * 1024},
		{"surrounding space", "  5KB  ", 5120},
		{"space before unit", "5 KB", 5120},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no digits", "MB"},
		{"negative", "-5MB"},
		{"unknown unit", "5XB"},
		{"decimal", "1.5MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formatting.ParseBytes(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		input     int64
		precision int
		expected  string
	}{
		{"bytes", 512, 1, "512 B"},
		{"kilobytes", 2048, 1, "2 KB"},
		{"megabytes", 50 * 1024 * 1024, 1, "50 MB"},
		{"fractional", 1536, 1, "1.5 KB"},
		{"trims zeros", 1 << 30, 2, "1 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.input, tt.precision); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
