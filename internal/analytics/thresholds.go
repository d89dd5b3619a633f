// Package analytics derives higher-level facts (trips, distances,
// battery estimates, alert flags, status labels) from a device's raw
// telemetry packet history. Every function is pure: no I/O, no shared
// state, best-effort results for any input shape.
package analytics

import "time"

// Thresholds holds the tunable constants used across the analytics
// functions. Zero values are not meaningful; start from
// DefaultThresholds and override fields as needed.
type Thresholds struct {
	// TripStartSpeedKmh starts a trip when exceeded.
	TripStartSpeedKmh float64

	// TripStopSpeedKmh feeds the trip-stop idle counter when the speed
	// drops to or below it. Also the idle/moving boundary for the
	// movement classifier.
	TripStopSpeedKmh float64

	// TripIdlePackets is the number of consecutive low-speed packets
	// required to finalize a trip.
	TripIdlePackets int

	// OverspeedKmh flags overspeed packets and the Overspeed status.
	OverspeedKmh float64

	// HighTempC flags high-temperature packets.
	HighTempC float64

	// LowBatteryPct flags a low battery on the latest normal packet and
	// bounds the Low battery status.
	LowBatteryPct float64

	// GoodBatteryPct is the lower bound of the Good battery status.
	GoodBatteryPct float64

	// HangAfter marks a device as hanged when its newest packet is
	// older than this.
	HangAfter time.Duration

	// KeepZeroCoordinates accepts latitude/longitude values of exactly
	// 0. The upstream data source treats 0 as "no fix"; enabling this
	// keeps legitimate equatorial/prime meridian positions instead.
	KeepZeroCoordinates bool
}

// DefaultThresholds returns the thresholds the dashboard ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TripStartSpeedKmh: 5,
		TripStopSpeedKmh:  2,
		TripIdlePackets:   3,
		OverspeedKmh:      70,
		HighTempC:         50,
		LowBatteryPct:     20,
		GoodBatteryPct:    60,
		HangAfter:         time.Hour,
	}
}
