package analytics

import (
	"strings"
	"time"

	"github.com/fleetsight/insights/internal/models"
)

// DailyDistanceKm sums the distance traveled on the day of reference,
// rounded to 2 decimals. The reference time is explicit so the
// aggregator stays a pure function; callers pass time.Now() for
// "today".
//
// Packets are matched to the day by the prefix of their raw device
// timestamp string, the way the device reports days. Exact duplicate
// timestamps are dropped (first occurrence wins), then consecutive
// identical coordinates, and the remaining polyline is summed pairwise.
// Fewer than two day packets, or fewer than two unique coordinates,
// yield 0.
func DailyDistanceKm(packets []models.CanonicalPacket, reference time.Time, keepZero bool) float64 {
	dayPrefix := reference.Format("2006-01-02")

	var day []models.CanonicalPacket
	seenStamps := make(map[string]struct{})
	for i := range packets {
		p := packets[i]
		if p.DeviceTimeRaw == "" || !strings.HasPrefix(p.DeviceTimeRaw, dayPrefix) {
			continue
		}
		if _, dup := seenStamps[p.DeviceTimeRaw]; dup {
			continue
		}
		seenStamps[p.DeviceTimeRaw] = struct{}{}
		day = append(day, p)
	}
	if len(day) < 2 {
		return 0
	}

	// Collapse runs of identical coordinates so a parked device does
	// not accumulate jitter distance.
	type coord struct{ lat, lon float64 }
	var line []coord
	for i := range day {
		if !day[i].HasValidCoordinates(keepZero) {
			continue
		}
		c := coord{*day[i].Latitude, *day[i].Longitude}
		if len(line) > 0 && line[len(line)-1] == c {
			continue
		}
		line = append(line, c)
	}
	if len(line) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(line); i++ {
		total += DistanceKm(line[i-1].lat, line[i-1].lon, line[i].lat, line[i].lon)
	}
	return roundTo(total, 2)
}
