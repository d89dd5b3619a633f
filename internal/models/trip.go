package models

import "time"

// Trip is one finalized driving segment detected by the trip segmenter.
// Start and end times may be nil when the bounding packets carried no
// resolvable instant (DurationMin is 0 in that case).
type Trip struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`
	EndLatitude    float64 `json:"endLatitude"`
	EndLongitude   float64 `json:"endLongitude"`

	DistanceKm  float64 `json:"distanceKm"`  // rounded to 3 decimals
	DurationMin float64 `json:"durationMin"` // rounded to 1 decimal
	AvgSpeedKmh float64 `json:"avgSpeedKmh"` // rounded to 1 decimal
	MaxSpeedKmh float64 `json:"maxSpeedKmh"`

	PacketCount int `json:"packetCount"`

	// Open marks an in-progress trip that was still accumulating when
	// the packet window ended. Only emitted when explicitly requested.
	Open bool `json:"open,omitempty"`
}
