package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsight/insights/internal/models"
)

func TestNormalize_FieldResolution(t *testing.T) {
	raws := []models.RawPacketRecord{
		{
			"packet":          "N",
			"deviceTimestamp": "2026-03-14 08:59:30",
			"timestamp":       "2026-03-14T09:00:00Z",
			"latitude":        12.9716,
			"longitude":       77.5946,
			"speed":           34.0,
			"battery":         "87%",
			"rawTemperature":  "34.14 c",
			"signal":          21.0,
		},
	}

	packets := Normalize("868120301234567", raws)
	require.Len(t, packets, 1)
	p := packets[0]

	assert.Equal(t, "868120301234567", p.IMEI)
	assert.Equal(t, models.PacketNormal, p.PacketType)

	require.NotNil(t, p.DeviceTime)
	assert.Equal(t, time.Date(2026, 3, 14, 8, 59, 30, 0, time.UTC), *p.DeviceTime)
	require.NotNil(t, p.ServerTime)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), *p.ServerTime)

	// Server time wins the sort instant when both are present.
	require.NotNil(t, p.SortTime)
	assert.Equal(t, *p.ServerTime, *p.SortTime)
	assert.Equal(t, "2026-03-14 08:59:30", p.DeviceTimeRaw)

	require.NotNil(t, p.Battery)
	assert.InDelta(t, 87, *p.Battery, 1e-9)
	require.NotNil(t, p.Temperature)
	assert.InDelta(t, 34.14, *p.Temperature, 1e-9)
	require.NotNil(t, p.Latitude)
	assert.InDelta(t, 12.9716, *p.Latitude, 1e-9)
	require.NotNil(t, p.Speed)
	assert.InDelta(t, 34, *p.Speed, 1e-9)
	require.NotNil(t, p.Signal)
	assert.InDelta(t, 21, *p.Signal, 1e-9)
}

func TestNormalize_PacketTypeClassification(t *testing.T) {
	tests := []struct {
		name     string
		raw      models.RawPacketRecord
		expected models.PacketType
	}{
		{name: "single letter normal", raw: models.RawPacketRecord{"packet": "N"}, expected: models.PacketNormal},
		{name: "lowercase word via type field", raw: models.RawPacketRecord{"type": "alert"}, expected: models.PacketAlert},
		{name: "error via packetType field", raw: models.RawPacketRecord{"packetType": "E"}, expected: models.PacketError},
		{name: "packet field wins over type", raw: models.RawPacketRecord{"packet": "A", "type": "N"}, expected: models.PacketAlert},
		{name: "unrecognized marker", raw: models.RawPacketRecord{"packet": "X9"}, expected: models.PacketUnknown},
		{name: "missing marker", raw: models.RawPacketRecord{}, expected: models.PacketUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packets := Normalize("imei", []models.RawPacketRecord{tt.raw})
			require.Len(t, packets, 1)
			assert.Equal(t, tt.expected, packets[0].PacketType)
		})
	}
}

func TestNormalize_SortTimeFallsBackToDeviceTime(t *testing.T) {
	raws := []models.RawPacketRecord{
		{"deviceTimestamp": "2026-03-14 08:00:00"},
	}

	packets := Normalize("imei", raws)
	require.Len(t, packets, 1)
	require.NotNil(t, packets[0].SortTime)
	assert.Equal(t, *packets[0].DeviceTime, *packets[0].SortTime)
	assert.Nil(t, packets[0].ServerTime)
}

func TestNormalize_PreservesOrderAndLength(t *testing.T) {
	raws := []models.RawPacketRecord{
		{"speed": 1.0},
		{"speed": 2.0},
		{"garbage": map[string]interface{}{"nested": true}},
		{"speed": 4.0},
	}

	packets := Normalize("imei", raws)
	require.Len(t, packets, len(raws))
	assert.InDelta(t, 1, *packets[0].Speed, 1e-9)
	assert.InDelta(t, 2, *packets[1].Speed, 1e-9)
	assert.Nil(t, packets[2].Speed)
	assert.InDelta(t, 4, *packets[3].Speed, 1e-9)
}

func TestNormalize_MissingEverything(t *testing.T) {
	packets := Normalize("imei", []models.RawPacketRecord{{}})
	require.Len(t, packets, 1)

	p := packets[0]
	assert.Equal(t, models.PacketUnknown, p.PacketType)
	assert.Nil(t, p.SortTime)
	assert.Nil(t, p.Latitude)
	assert.Nil(t, p.Battery)
	assert.Empty(t, p.AlertCode)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, Normalize("imei", nil))
	assert.Empty(t, Normalize("imei", []models.RawPacketRecord{}))
}
