package analytics

import (
	"time"

	"github.com/fleetsight/insights/internal/models"
)

func fptr(f float64) *float64 { return &f }

func tptr(t time.Time) *time.Time { return &t }

var testBase = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// movingPacket builds a valid normal packet n minutes after testBase,
// with distinct coordinates derived from the offset.
func movingPacket(minutes int, speed float64) models.CanonicalPacket {
	at := testBase.Add(time.Duration(minutes) * time.Minute)
	return models.CanonicalPacket{
		IMEI:       "868120301234567",
		PacketType: models.PacketNormal,
		Latitude:   fptr(12.9716 + float64(minutes)*0.001),
		Longitude:  fptr(77.5946 + float64(minutes)*0.001),
		Speed:      fptr(speed),
		SortTime:   tptr(at),
		DeviceTime: tptr(at),
	}
}

// packetsWithSpeeds builds one valid packet per speed, one minute
// apart, in ascending chronological order.
func packetsWithSpeeds(speeds ...float64) []models.CanonicalPacket {
	packets := make([]models.CanonicalPacket, 0, len(speeds))
	for i, s := range speeds {
		packets = append(packets, movingPacket(i, s))
	}
	return packets
}
