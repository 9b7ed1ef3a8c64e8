// Package tools implements the finance tools the model can invoke, with the
// argument validation and human-readable formatting they share.
package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// requiredString extracts a non-empty string argument from tool input.
func requiredString(input map[string]any, key string) (string, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing required field %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("missing required field %q", key)
	}
	return s, nil
}

// requiredNumber extracts a numeric argument. Models send numbers as JSON
// floats, but strings slip through occasionally.
func requiredNumber(input map[string]any, key string) (float64, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing required field %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("field %q must be a number, got %q", key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q must be a number, got %T", key, raw)
	}
}

// fmtPrice renders an optional price, "n/a" when missing.
func fmtPrice(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// fmtPct renders an optional percentage with sign.
func fmtPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// fmtLarge renders a large optional value in B/M units.
func fmtLarge(v *float64) string {
	if v == nil {
		return "n/a"
	}
	switch {
	case *v >= 1e12:
		return fmt.Sprintf("%.2fT", *v/1e12)
	case *v >= 1e9:
		return fmt.Sprintf("%.2fB", *v/1e9)
	case *v >= 1e6:
		return fmt.Sprintf("%.2fM", *v/1e6)
	default:
		return fmt.Sprintf("%.0f", *v)
	}
}

// fmtVolume renders an optional share volume.
func fmtVolume(v *int64) string {
	if v == nil {
		return "n/a"
	}
	f := float64(*v)
	return fmtLarge(&f)
}

// truncate cuts text to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
