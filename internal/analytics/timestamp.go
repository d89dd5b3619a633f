package analytics

import (
	"encoding/json"
	"time"

	"github.com/fleetsight/insights/internal/models"
)

// timeLayouts are tried in order when a timestamp arrives as a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts a single raw timestamp value into a time.Time.
// Strings are tried against the known layouts; numbers are read as a
// Unix epoch, in milliseconds when the magnitude says so. Returns
// ok=false for anything else; never panics on malformed input.
func ParseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		if t == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		return epochToTime(int64(t)), t > 0
	case int64:
		return epochToTime(t), t > 0
	case int:
		return epochToTime(int64(t)), t > 0
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return epochToTime(i), i > 0
	default:
		return time.Time{}, false
	}
}

// epochToTime treats values above ~Sep 2001 in millisecond range as
// epoch millis, everything else as epoch seconds.
func epochToTime(epoch int64) time.Time {
	if epoch > 1e12 {
		return time.UnixMilli(epoch).UTC()
	}
	return time.Unix(epoch, 0).UTC()
}

// ResolveTime returns the first candidate field of rec that parses to a
// valid instant, walking fields in priority order. ok=false when none
// parse.
func ResolveTime(rec models.RawPacketRecord, fields ...string) (time.Time, bool) {
	for _, field := range fields {
		v, present := rec[field]
		if !present {
			continue
		}
		if t, ok := ParseTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveTimeString returns the first candidate field that holds a
// non-empty timestamp string, without parsing it. The daily distance
// aggregator matches day prefixes on the raw string.
func ResolveTimeString(rec models.RawPacketRecord, fields ...string) string {
	for _, field := range fields {
		if s, ok := rec[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
