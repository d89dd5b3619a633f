package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/fleetsight/insights/internal/models"
)

// Battery estimators. Both are display metrics that degrade to the "-"
// sentinel on missing data instead of returning an error: a dashboard
// cell always has something to show.

// NoFullChargeSentinel is returned by DrainTime when the history holds
// no 100% battery reading to anchor the estimate on.
const NoFullChargeSentinel = "No 100% record"

const missingSentinel = "-"

// RuntimeSinceFull estimates how long the device has been running since
// it was last seen fully charged: the elapsed hours between the most
// recent packet with a battery reading of exactly 100 and the newest
// packet overall, formatted as "12.3h".
//
// Precondition: packets newest-first. Returns "-" when there is no 100%
// reading, either bounding timestamp is unresolvable, or the elapsed
// time is negative.
func RuntimeSinceFull(packets []models.CanonicalPacket) string {
	if len(packets) == 0 {
		return missingSentinel
	}

	var full *models.CanonicalPacket
	for i := range packets {
		if packets[i].Battery != nil && *packets[i].Battery == 100 {
			full = &packets[i]
			break
		}
	}
	if full == nil {
		return missingSentinel
	}

	newest := packets[0]
	if newest.SortTime == nil || full.SortTime == nil {
		return missingSentinel
	}

	hours := newest.SortTime.Sub(*full.SortTime).Hours()
	if hours < 0 || math.IsNaN(hours) {
		return missingSentinel
	}
	return fmt.Sprintf("%.1fh", hours)
}

// DrainTime estimates how long the battery took to drain from full to
// its current level, over normal packets only. The most recent normal
// packet with battery 100 anchors the estimate; the elapsed time to the
// newest normal packet is formatted "1.5h" when at least an hour, "40m"
// otherwise.
//
// Precondition: packets newest-first. Device-reported timestamps are
// used for both ends (the device clock measured the drain). Returns
// NoFullChargeSentinel when the history never reaches 100%, and "-"
// when there are no normal packets, the current packet is still at 100
// or has no battery reading, or a timestamp is unresolvable.
func DrainTime(packets []models.CanonicalPacket) string {
	var normals []models.CanonicalPacket
	for i := range packets {
		if packets[i].PacketType == models.PacketNormal {
			normals = append(normals, packets[i])
		}
	}
	if len(normals) == 0 {
		return missingSentinel
	}

	var anchor *models.CanonicalPacket
	for i := range normals {
		if normals[i].Battery != nil && *normals[i].Battery == 100 {
			anchor = &normals[i]
			break
		}
	}
	if anchor == nil {
		return NoFullChargeSentinel
	}

	current := normals[0]
	if current.Battery == nil || *current.Battery == 100 {
		return missingSentinel
	}
	if current.DeviceTime == nil || anchor.DeviceTime == nil {
		return missingSentinel
	}

	elapsed := current.DeviceTime.Sub(*anchor.DeviceTime)
	if elapsed < 0 {
		return missingSentinel
	}
	if elapsed >= time.Hour {
		return fmt.Sprintf("%.1fh", elapsed.Hours())
	}
	return fmt.Sprintf("%dm", int(math.Round(elapsed.Minutes())))
}
