package analytics

import "github.com/fleetsight/insights/internal/models"

// Color tags attached to status labels. The dashboard owns what each
// tag renders as; these just mirror its palette.
const (
	tagGreen   = "green"
	tagOrange  = "orange"
	tagRed     = "red"
	tagDefault = "default"
)

// ClassifyStatus derives the GPS, speed and battery status labels for a
// device from its latest normal packet. A nil packet (device has no
// normal packets) yields the missing-data labels.
func ClassifyStatus(p *models.CanonicalPacket, th Thresholds) models.DeviceSnapshot {
	snap := models.DeviceSnapshot{}
	if p != nil {
		snap.IMEI = p.IMEI
	}
	snap.GPS = gpsStatus(p, th)
	snap.Speed = speedStatus(p, th)
	snap.Battery = batteryStatus(p, th)
	return snap
}

func gpsStatus(p *models.CanonicalPacket, th Thresholds) models.StatusLabel {
	if p == nil || !p.HasValidCoordinates(th.KeepZeroCoordinates) {
		return models.StatusLabel{Text: "No GPS", Tag: tagRed}
	}
	if !p.HasValidSpeed() {
		return models.StatusLabel{Text: "Unknown", Tag: tagDefault}
	}
	if *p.Speed == 0 {
		return models.StatusLabel{Text: "Idle", Tag: tagOrange}
	}
	return models.StatusLabel{Text: "Moving", Tag: tagGreen}
}

func speedStatus(p *models.CanonicalPacket, th Thresholds) models.StatusLabel {
	if p == nil || !p.HasValidSpeed() {
		return models.StatusLabel{Text: missingSentinel, Tag: tagDefault}
	}
	switch speed := *p.Speed; {
	case speed == 0:
		return models.StatusLabel{Text: "Idle", Tag: tagOrange}
	case speed > th.OverspeedKmh:
		return models.StatusLabel{Text: "Overspeed", Tag: tagRed}
	default:
		return models.StatusLabel{Text: "Normal", Tag: tagGreen}
	}
}

func batteryStatus(p *models.CanonicalPacket, th Thresholds) models.StatusLabel {
	if p == nil || p.Battery == nil {
		return models.StatusLabel{Text: missingSentinel, Tag: tagDefault}
	}
	switch battery := *p.Battery; {
	case battery >= th.GoodBatteryPct:
		return models.StatusLabel{Text: "Good", Tag: tagGreen}
	case battery >= th.LowBatteryPct:
		return models.StatusLabel{Text: "Medium", Tag: tagOrange}
	default:
		return models.StatusLabel{Text: "Low", Tag: tagRed}
	}
}
