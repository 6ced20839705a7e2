package core

// coerce.go handles the coercion of raw CSV cells into numeric values.
//
// Cells come in trimmed but otherwise untouched. A cell is "resolved"
// only if it parses as a number; empty cells and garbage both count as
// missing and fall through to the imputation policy in cleaner.go.

import (
	"strings"

	"github.com/spf13/cast"
)

// parseNumeric attempts to coerce a raw cell into a float64.
// Returns false for empty or unparseable values.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseInt coerces a raw cell into an int64, truncating any fractional
// part toward zero. Returns false for empty or unparseable values.
func parseInt(s string) (int64, bool) {
	f, ok := parseNumeric(s)
	if !ok {
		return 0, false
	}
	return truncate(f), true
}

// truncate converts a resolved numeric value to an integer using
// truncation toward zero, matching plain numeric cast semantics.
// Values are never rounded.
func truncate(f float64) int64 {
	return int64(f)
}
