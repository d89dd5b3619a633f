package analytics

import (
	"strings"
	"time"

	"github.com/fleetsight/insights/internal/models"
)

// Candidate field names per concern, in priority order. Firmware
// revisions disagree on casing and on device- vs server-side naming.
var (
	packetTypeFields = []string{"packet", "type", "packetType"}
	alertFields      = []string{"alert", "alertCode", "alert_code"}

	deviceTimeFields = []string{"deviceTimestamp", "deviceRawTimestamp", "device_timestamp"}
	serverTimeFields = []string{"serverTimestamp", "server_timestamp", "timestamp", "createdAt", "created_at"}

	temperatureFields = []string{"rawTemperature", "temperature"}
	batteryFields     = []string{"battery", "batteryLevel"}
	latitudeFields    = []string{"latitude", "lat"}
	longitudeFields   = []string{"longitude", "lng", "lon"}
	speedFields       = []string{"speed"}
	signalFields      = []string{"signal", "signalStrength"}
)

// Normalize maps raw packet records for one device into canonical
// packets. Output has the same length and order as the input; callers
// that need chronological order sort afterwards. Raw records are not
// mutated.
func Normalize(imei string, raws []models.RawPacketRecord) []models.CanonicalPacket {
	packets := make([]models.CanonicalPacket, 0, len(raws))
	for _, raw := range raws {
		packets = append(packets, normalizeOne(imei, raw))
	}
	return packets
}

func normalizeOne(imei string, raw models.RawPacketRecord) models.CanonicalPacket {
	p := models.CanonicalPacket{
		IMEI:       imei,
		PacketType: classifyPacketType(firstString(raw, packetTypeFields...)),
		AlertCode:  firstString(raw, alertFields...),
	}

	if t, ok := ResolveTime(raw, deviceTimeFields...); ok {
		p.DeviceTime = &t
	}
	if t, ok := ResolveTime(raw, serverTimeFields...); ok {
		p.ServerTime = &t
	}
	p.SortTime = firstTime(p.ServerTime, p.DeviceTime)
	p.DeviceTimeRaw = ResolveTimeString(raw, deviceTimeFields...)

	// Battery and temperature go through the unit-stripping extractor;
	// position, speed and signal pass through as-is and are validated
	// by each consumer.
	p.Battery = extractNumericPtr(firstValue(raw, batteryFields...))
	p.Temperature = extractNumericPtr(firstValue(raw, temperatureFields...))
	p.Latitude = asFloatPtr(firstValue(raw, latitudeFields...))
	p.Longitude = asFloatPtr(firstValue(raw, longitudeFields...))
	p.Speed = asFloatPtr(firstValue(raw, speedFields...))
	p.Signal = asFloatPtr(firstValue(raw, signalFields...))

	return p
}

// classifyPacketType maps the raw type marker (single letter or full
// word) onto a PacketType.
func classifyPacketType(marker string) models.PacketType {
	switch strings.ToUpper(strings.TrimSpace(marker)) {
	case "N", "NORMAL":
		return models.PacketNormal
	case "A", "ALERT":
		return models.PacketAlert
	case "E", "ERROR":
		return models.PacketError
	default:
		return models.PacketUnknown
	}
}

func firstValue(raw models.RawPacketRecord, fields ...string) interface{} {
	for _, field := range fields {
		if v, ok := raw[field]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw models.RawPacketRecord, fields ...string) string {
	for _, field := range fields {
		if s, ok := raw[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstTime(candidates ...*time.Time) *time.Time {
	for _, t := range candidates {
		if t != nil {
			return t
		}
	}
	return nil
}

// asFloatPtr coerces plain numeric values (and numeric strings) without
// the unit-stripping of ExtractNumeric.
func asFloatPtr(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		f := n
		return &f
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		f, ok := parseNumericString(n)
		if !ok {
			return nil
		}
		return &f
	default:
		return nil
	}
}
