package analytics

import (
	"math"

	"github.com/fleetsight/insights/internal/models"
)

// MovementBreakdown is the idle/moving split of a device's packet
// history, as whole percentages. Each side is rounded independently, so
// the two may sum to 99 or 101 in edge cases.
type MovementBreakdown struct {
	IdlePct   int `json:"idlePct"`
	MovingPct int `json:"movingPct"`
}

// ClassifyMovement counts packets at or below idleSpeedKmh as idle and
// the rest as moving, over packets with a valid speed. Returns {0, 0}
// when no packet qualifies.
func ClassifyMovement(packets []models.CanonicalPacket, idleSpeedKmh float64) MovementBreakdown {
	var idle, moving int
	for i := range packets {
		if !packets[i].HasValidSpeed() {
			continue
		}
		if *packets[i].Speed <= idleSpeedKmh {
			idle++
		} else {
			moving++
		}
	}

	total := idle + moving
	if total == 0 {
		return MovementBreakdown{}
	}
	return MovementBreakdown{
		IdlePct:   int(math.Round(float64(idle) / float64(total) * 100)),
		MovingPct: int(math.Round(float64(moving) / float64(total) * 100)),
	}
}
