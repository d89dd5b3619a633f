package analytics

import (
	"math"

	"github.com/fleetsight/insights/internal/models"
)

// TripConfig parameterizes the trip segmenter. The start/stop split plus
// the idle-packet hold gives hysteresis: brief speed dips do not end a
// trip, brief spikes do not start one.
type TripConfig struct {
	StartSpeedKmh       float64
	StopSpeedKmh        float64
	RequiredIdlePackets int

	// EmitOpenTrip emits a trip still accumulating when the packet
	// window ends, marked Open. Off by default: the dashboard
	// historically only showed finalized trips.
	EmitOpenTrip bool

	KeepZeroCoordinates bool
}

// TripConfigFrom derives a TripConfig from the shared thresholds.
func TripConfigFrom(th Thresholds) TripConfig {
	return TripConfig{
		StartSpeedKmh:       th.TripStartSpeedKmh,
		StopSpeedKmh:        th.TripStopSpeedKmh,
		RequiredIdlePackets: th.TripIdlePackets,
		KeepZeroCoordinates: th.KeepZeroCoordinates,
	}
}

// openTrip is the accumulating state while the segmenter is in a trip.
type openTrip struct {
	trip        models.Trip
	speeds      []float64
	prevLat     float64
	prevLon     float64
	idleCounter int
}

// SegmentTrips runs the hysteresis state machine over the packet
// sequence and returns the finalized trips in order of detection.
//
// Precondition: packets must be in ascending chronological order; the
// segmenter trusts the caller's ordering (use SortedByTime first when
// the source is newest-first). Packets without a valid speed or valid
// coordinates are skipped entirely: they neither start, extend nor end
// a trip and are not counted in trip statistics.
func SegmentTrips(packets []models.CanonicalPacket, cfg TripConfig) []models.Trip {
	var trips []models.Trip
	var current *openTrip

	for i := range packets {
		p := &packets[i]
		if !p.HasValidSpeed() || !p.HasValidCoordinates(cfg.KeepZeroCoordinates) {
			continue
		}
		speed := *p.Speed

		if current == nil {
			if speed > cfg.StartSpeedKmh {
				current = startTrip(p, speed)
			}
			continue
		}

		extendTrip(current, p, speed)

		if speed <= cfg.StopSpeedKmh {
			current.idleCounter++
			if current.idleCounter >= cfg.RequiredIdlePackets {
				trips = append(trips, finalizeTrip(current, p))
				current = nil
			}
		} else {
			current.idleCounter = 0
		}
	}

	if current != nil && cfg.EmitOpenTrip {
		t := closeTripStats(current)
		t.Open = true
		trips = append(trips, t)
	}

	return trips
}

func startTrip(p *models.CanonicalPacket, speed float64) *openTrip {
	o := &openTrip{
		trip: models.Trip{
			StartTime:      p.SortTime,
			StartLatitude:  *p.Latitude,
			StartLongitude: *p.Longitude,
			EndTime:        p.SortTime,
			EndLatitude:    *p.Latitude,
			EndLongitude:   *p.Longitude,
			MaxSpeedKmh:    speed,
			PacketCount:    1,
		},
		speeds:  []float64{speed},
		prevLat: *p.Latitude,
		prevLon: *p.Longitude,
	}
	return o
}

func extendTrip(o *openTrip, p *models.CanonicalPacket, speed float64) {
	o.trip.PacketCount++
	o.speeds = append(o.speeds, speed)
	if speed > o.trip.MaxSpeedKmh {
		o.trip.MaxSpeedKmh = speed
	}
	o.trip.DistanceKm += DistanceKm(o.prevLat, o.prevLon, *p.Latitude, *p.Longitude)
	o.prevLat, o.prevLon = *p.Latitude, *p.Longitude

	// The latest valid packet is the provisional end of the trip.
	o.trip.EndTime = p.SortTime
	o.trip.EndLatitude = *p.Latitude
	o.trip.EndLongitude = *p.Longitude
}

func finalizeTrip(o *openTrip, last *models.CanonicalPacket) models.Trip {
	o.trip.EndTime = last.SortTime
	o.trip.EndLatitude = *last.Latitude
	o.trip.EndLongitude = *last.Longitude
	return closeTripStats(o)
}

func closeTripStats(o *openTrip) models.Trip {
	t := o.trip

	if t.StartTime != nil && t.EndTime != nil {
		t.DurationMin = roundTo(t.EndTime.Sub(*t.StartTime).Minutes(), 1)
	}

	var sum float64
	for _, s := range o.speeds {
		sum += s
	}
	if len(o.speeds) > 0 {
		t.AvgSpeedKmh = roundTo(sum/float64(len(o.speeds)), 1)
	}
	t.DistanceKm = roundTo(t.DistanceKm, 3)

	return t
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
