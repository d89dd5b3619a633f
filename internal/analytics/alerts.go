package analytics

import (
	"strings"
	"time"

	"github.com/fleetsight/insights/internal/models"
)

// Alert and error codes reported by devices, upper-cased. Each
// condition matches on either the numeric code or the firmware's
// spelled-out name.
var (
	sosCodes    = codeSet("A1002", "SOS")
	tamperCodes = codeSet("A1003", "TAMPERED")
	simCodes    = codeSet("E1011", "NO_SIM", "NO SIM")
	dataCodes   = codeSet("E1003", "NO_DATA_CAPABILITY", "NO DATA CAPABILITY")
	gpsCodes    = codeSet("E1001", "GNSS_ERROR", "GNSS CONNECTIVITY", "A1004", "GPS_DISABLED", "GPS DISABLE")
)

func codeSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// EvaluateAlerts scans a device's full packet history and returns the
// threshold condition flags. now anchors hang detection so the
// evaluation stays deterministic under test.
func EvaluateAlerts(packets []models.CanonicalPacket, now time.Time, th Thresholds) models.AlertFlags {
	var flags models.AlertFlags

	for i := range packets {
		p := &packets[i]

		if p.Speed != nil && *p.Speed > th.OverspeedKmh {
			flags.HasOverspeed = true
		}
		if p.Temperature != nil && *p.Temperature > th.HighTempC {
			flags.HasHighTemp = true
		}

		if p.AlertCode != "" {
			code := strings.ToUpper(strings.TrimSpace(p.AlertCode))
			if _, ok := sosCodes[code]; ok {
				flags.HasSOS = true
			}
			if _, ok := tamperCodes[code]; ok {
				flags.HasTampered = true
			}
			if _, ok := simCodes[code]; ok {
				flags.HasSimIssue = true
			}
			if _, ok := dataCodes[code]; ok {
				flags.HasDataIssue = true
			}
			if _, ok := gpsCodes[code]; ok {
				flags.HasGpsIssue = true
			}
		}
	}

	if latest := LatestNormalPacket(packets); latest != nil {
		if latest.Battery != nil && *latest.Battery < th.LowBatteryPct {
			flags.HasLowBattery = true
		}
	}

	flags.IsHanged = isHanged(packets, now, th.HangAfter)

	return flags
}

// isHanged reports whether the newest resolvable packet timestamp is
// older than the hang threshold. A history with no resolvable timestamp
// gives no evidence of liveness and counts as hanged.
func isHanged(packets []models.CanonicalPacket, now time.Time, hangAfter time.Duration) bool {
	var newest *time.Time
	for i := range packets {
		t := packets[i].SortTime
		if t == nil {
			continue
		}
		if newest == nil || t.After(*newest) {
			newest = t
		}
	}
	if newest == nil {
		return true
	}
	return now.Sub(*newest) > hangAfter
}

// LatestNormalPacket returns the normal packet with the newest sort
// time, or nil when the history has none with a resolvable timestamp.
func LatestNormalPacket(packets []models.CanonicalPacket) *models.CanonicalPacket {
	var latest *models.CanonicalPacket
	for i := range packets {
		p := &packets[i]
		if p.PacketType != models.PacketNormal || p.SortTime == nil {
			continue
		}
		if latest == nil || p.SortTime.After(*latest.SortTime) {
			latest = p
		}
	}
	return latest
}
