// Package formatting provides byte-size parsing and formatting helpers.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

var units = map[string]int64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// ParseBytes parses a human-readable byte size such as "50MB" or "1024"
// into a byte count. Units are binary (1KB = 1024 bytes) and case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	unit := strings.ToUpper(strings.TrimSpace(s[i:]))
	mult, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("unknown byte unit: %q", unit)
	}

	return n * mult, nil
}

// FormatBytes renders a byte count with a binary unit suffix at the given
// decimal precision.
func FormatBytes(n int64, precision int) string {
	switch {
	case n >= 1<<40:
		return trimZeros(float64(n)/(1<<40), precision) + " TB"
	case n >= 1<<30:
		return trimZeros(float64(n)/(1<<30), precision) + " GB"
	case n >= 1<<20:
		return trimZeros(float64(n)/(1<<20), precision) + " MB"
	case n >= 1<<10:
		return trimZeros(float64(n)/(1<<10), precision) + " KB"
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func trimZeros(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
