// Package models contains data models for the fleet insights service.
package models

import (
	"math"
	"time"
)

// PacketType classifies a telemetry packet by its raw type marker.
type PacketType string

const (
	// PacketNormal is routine position/sensor telemetry
	PacketNormal PacketType = "NORMAL"

	// PacketAlert carries an alert code raised by the device (SOS, tamper, ...)
	PacketAlert PacketType = "ALERT"

	// PacketError carries a device-side error code (SIM, GNSS, ...)
	PacketError PacketType = "ERROR"

	// PacketUnknown is anything the classifier cannot place
	PacketUnknown PacketType = "UNKNOWN"
)

// RawPacketRecord is a telemetry payload exactly as stored by the
// ingestion path. Field names and value shapes vary between device
// firmware revisions (e.g. "timestamp" vs "deviceTimestamp", battery as
// a number or as "87%"), so it stays an untyped JSON object until the
// normalizer maps it into a CanonicalPacket. Records are never mutated.
type RawPacketRecord map[string]interface{}

// CanonicalPacket is one normalized telemetry packet for a device.
// Optional fields are pointers: nil means the raw record had no usable
// value. A CanonicalPacket is created once by the normalizer and is
// immutable afterwards.
type CanonicalPacket struct {
	IMEI       string     `json:"imei"`
	PacketType PacketType `json:"packetType"`

	// AlertCode is the raw alert/error code string, empty when absent
	AlertCode string `json:"alertCode,omitempty"`

	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Speed       *float64 `json:"speed,omitempty"` // km/h
	Temperature *float64 `json:"temperature,omitempty"`
	Battery     *float64 `json:"battery,omitempty"` // percent
	Signal      *float64 `json:"signal,omitempty"`

	// DeviceTime is the clock reported by the device, ServerTime the
	// time the backend stored the record. SortTime is the comparable
	// instant used for ordering: ServerTime when present, otherwise
	// DeviceTime, otherwise nil. Packets with a nil SortTime sort last
	// and are excluded from computations that need a valid instant.
	DeviceTime *time.Time `json:"deviceTime,omitempty"`
	ServerTime *time.Time `json:"serverTime,omitempty"`
	SortTime   *time.Time `json:"sortTime,omitempty"`

	// DeviceTimeRaw is the unparsed device timestamp string, kept for
	// same-day prefix matching in the daily distance aggregator.
	DeviceTimeRaw string `json:"-"`
}

// HasValidCoordinates reports whether both latitude and longitude are
// present and finite. When keepZero is false, a zero value on either
// axis is treated as a "no fix" sentinel (the behavior of the upstream
// data source); keepZero=true accepts legitimate equatorial and prime
// meridian fixes.
func (p *CanonicalPacket) HasValidCoordinates(keepZero bool) bool {
	if p.Latitude == nil || p.Longitude == nil {
		return false
	}
	lat, lon := *p.Latitude, *p.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	if !keepZero && (lat == 0 || lon == 0) {
		return false
	}
	return true
}

// HasValidSpeed reports whether the packet carries a finite,
// non-negative speed.
func (p *CanonicalPacket) HasValidSpeed() bool {
	if p.Speed == nil {
		return false
	}
	s := *p.Speed
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0
}
