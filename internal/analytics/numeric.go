package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ExtractNumeric pulls a clean number out of a field of unknown shape.
// Device firmwares report battery and temperature inconsistently: plain
// numbers, "87%", "34.14 c", "  41 C". The stripping rule keeps digits,
// one decimal point and one leading minus sign, drops everything else,
// and parses the residue as a float. Returns ok=false when the value is
// nil, empty after stripping, or unparseable.
func ExtractNumeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		return parseNumericString(n)
	default:
		return 0, false
	}
}

func parseNumericString(s string) (float64, bool) {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	residue := b.String()
	if residue == "" || residue == "-" || residue == "." || residue == "-." {
		return 0, false
	}
	f, err := strconv.ParseFloat(residue, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// extractNumericPtr is ExtractNumeric with a pointer result for
// optional CanonicalPacket fields.
func extractNumericPtr(v interface{}) *float64 {
	f, ok := ExtractNumeric(v)
	if !ok {
		return nil
	}
	return &f
}
