package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsight/insights/internal/models"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected time.Time
		ok       bool
	}{
		{
			name:     "RFC3339",
			input:    "2026-03-14T09:30:00Z",
			expected: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "space separated",
			input:    "2026-03-14 09:30:00",
			expected: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "date only",
			input:    "2026-03-14",
			expected: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "epoch millis",
			input:    float64(1773480600000),
			expected: time.UnixMilli(1773480600000).UTC(),
			ok:       true,
		},
		{
			name:     "epoch seconds",
			input:    float64(1773480600),
			expected: time.Unix(1773480600, 0).UTC(),
			ok:       true,
		},
		{name: "garbage string", input: "not a date", ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "zero epoch", input: float64(0), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestResolveTime_FallbackChain(t *testing.T) {
	rec := models.RawPacketRecord{
		"deviceTimestamp":    "garbage",
		"deviceRawTimestamp": "2026-03-14 08:00:00",
		"timestamp":          "2026-03-14 09:00:00",
	}

	// First parseable candidate wins, malformed ones are skipped.
	got, ok := ResolveTime(rec, "deviceTimestamp", "deviceRawTimestamp", "timestamp")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC), got)
}

func TestResolveTime_NoneParse(t *testing.T) {
	rec := models.RawPacketRecord{"deviceTimestamp": "???"}

	_, ok := ResolveTime(rec, "deviceTimestamp", "deviceRawTimestamp")
	assert.False(t, ok)
}

func TestResolveTimeString(t *testing.T) {
	rec := models.RawPacketRecord{
		"deviceRawTimestamp": "2026-03-14 08:00:00",
	}

	assert.Equal(t, "2026-03-14 08:00:00", ResolveTimeString(rec, "deviceTimestamp", "deviceRawTimestamp"))
	assert.Equal(t, "", ResolveTimeString(rec, "serverTimestamp"))
}
