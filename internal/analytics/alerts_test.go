package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsight/insights/internal/models"
)

func alertPacket(code string) models.CanonicalPacket {
	return models.CanonicalPacket{
		PacketType: models.PacketAlert,
		AlertCode:  code,
		SortTime:   tptr(testBase),
	}
}

func TestEvaluateAlerts_ThresholdFlags(t *testing.T) {
	now := testBase.Add(10 * time.Minute)
	th := DefaultThresholds()

	packets := []models.CanonicalPacket{
		movingPacket(0, 40),
		movingPacket(1, 85), // overspeed
		movingPacket(2, 20),
	}
	packets[2].Temperature = fptr(62.5) // high temperature

	flags := EvaluateAlerts(packets, now, th)
	assert.True(t, flags.HasOverspeed)
	assert.True(t, flags.HasHighTemp)
	assert.False(t, flags.HasSOS)
	assert.False(t, flags.HasLowBattery)
	assert.False(t, flags.IsHanged)
}

func TestEvaluateAlerts_CodeMatching(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		check func(models.AlertFlags) bool
	}{
		{name: "SOS by code", code: "A1002", check: func(f models.AlertFlags) bool { return f.HasSOS }},
		{name: "SOS by name lowercase", code: "sos", check: func(f models.AlertFlags) bool { return f.HasSOS }},
		{name: "tamper by code", code: "A1003", check: func(f models.AlertFlags) bool { return f.HasTampered }},
		{name: "tamper by name", code: "Tampered", check: func(f models.AlertFlags) bool { return f.HasTampered }},
		{name: "SIM by code", code: "E1011", check: func(f models.AlertFlags) bool { return f.HasSimIssue }},
		{name: "SIM with space", code: "no sim", check: func(f models.AlertFlags) bool { return f.HasSimIssue }},
		{name: "data by code", code: "E1003", check: func(f models.AlertFlags) bool { return f.HasDataIssue }},
		{name: "data by name", code: "NO_DATA_CAPABILITY", check: func(f models.AlertFlags) bool { return f.HasDataIssue }},
		{name: "GPS by error code", code: "E1001", check: func(f models.AlertFlags) bool { return f.HasGpsIssue }},
		{name: "GPS disabled alert", code: "gps_disabled", check: func(f models.AlertFlags) bool { return f.HasGpsIssue }},
		{name: "GNSS connectivity", code: "GNSS Connectivity", check: func(f models.AlertFlags) bool { return f.HasGpsIssue }},
	}

	now := testBase.Add(time.Minute)
	th := DefaultThresholds()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := EvaluateAlerts([]models.CanonicalPacket{alertPacket(tt.code)}, now, th)
			assert.True(t, tt.check(flags))
		})
	}
}

func TestEvaluateAlerts_UnknownCodeSetsNothing(t *testing.T) {
	flags := EvaluateAlerts([]models.CanonicalPacket{alertPacket("Z9999")}, testBase, DefaultThresholds())

	assert.False(t, flags.HasSOS)
	assert.False(t, flags.HasTampered)
	assert.False(t, flags.HasSimIssue)
	assert.False(t, flags.HasDataIssue)
	assert.False(t, flags.HasGpsIssue)
}

func TestEvaluateAlerts_LowBatteryUsesLatestNormal(t *testing.T) {
	now := testBase.Add(10 * time.Minute)
	th := DefaultThresholds()

	older := movingPacket(0, 10)
	older.Battery = fptr(90)
	newer := movingPacket(5, 10)
	newer.Battery = fptr(12)

	flags := EvaluateAlerts([]models.CanonicalPacket{older, newer}, now, th)
	assert.True(t, flags.HasLowBattery)

	// An old low reading does not flag when the latest normal packet is
	// healthy again.
	older.Battery = fptr(5)
	newer.Battery = fptr(80)
	flags = EvaluateAlerts([]models.CanonicalPacket{older, newer}, now, th)
	assert.False(t, flags.HasLowBattery)
}

func TestEvaluateAlerts_HangDetection(t *testing.T) {
	th := DefaultThresholds()
	packets := []models.CanonicalPacket{movingPacket(0, 10)}

	fresh := EvaluateAlerts(packets, testBase.Add(30*time.Minute), th)
	assert.False(t, fresh.IsHanged)

	stale := EvaluateAlerts(packets, testBase.Add(2*time.Hour), th)
	assert.True(t, stale.IsHanged)
}

func TestEvaluateAlerts_NoResolvableTimestampIsHanged(t *testing.T) {
	packets := []models.CanonicalPacket{{PacketType: models.PacketNormal}}

	flags := EvaluateAlerts(packets, testBase, DefaultThresholds())
	assert.True(t, flags.IsHanged)

	empty := EvaluateAlerts(nil, testBase, DefaultThresholds())
	assert.True(t, empty.IsHanged)
}

func TestLatestNormalPacket(t *testing.T) {
	older := movingPacket(0, 5)
	newest := movingPacket(10, 8)
	alert := alertPacket("A1002")
	alert.SortTime = tptr(testBase.Add(20 * time.Minute))

	// The newest packet overall is an alert; the newest normal one wins.
	latest := LatestNormalPacket([]models.CanonicalPacket{older, alert, newest})
	require.NotNil(t, latest)
	assert.Equal(t, *newest.SortTime, *latest.SortTime)

	assert.Nil(t, LatestNormalPacket(nil))
	assert.Nil(t, LatestNormalPacket([]models.CanonicalPacket{alert}))
}
