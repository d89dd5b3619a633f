package models

// AlertFlags is the set of threshold conditions evaluated over one
// device's full packet history. Derived on every call, never persisted.
type AlertFlags struct {
	HasOverspeed  bool `json:"hasOverspeed"`
	HasHighTemp   bool `json:"hasHighTemp"`
	HasLowBattery bool `json:"hasLowBattery"`
	HasSOS        bool `json:"hasSOS"`
	HasTampered   bool `json:"hasTampered"`
	HasSimIssue   bool `json:"hasSimIssue"`
	HasDataIssue  bool `json:"hasDataIssue"`
	HasGpsIssue   bool `json:"hasGpsIssue"`

	// IsHanged is true when the newest packet is older than the hang
	// threshold, i.e. the device has stopped reporting.
	IsHanged bool `json:"isHanged"`
}

// StatusLabel pairs a display text with a color tag. Tag semantics
// (which color renders how) are owned by the dashboard.
type StatusLabel struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// DeviceSnapshot is the derived view of a device's most recent normal
// packet. Recomputed on every call; it has no identity across calls.
type DeviceSnapshot struct {
	IMEI    string      `json:"imei"`
	GPS     StatusLabel `json:"gps"`
	Speed   StatusLabel `json:"speed"`
	Battery StatusLabel `json:"battery"`
}
