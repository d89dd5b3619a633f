package analytics

import (
	"sort"

	"github.com/fleetsight/insights/internal/models"
)

// SortedByTime returns a copy of packets ordered by SortTime. Packets
// without a resolvable timestamp sort last in either direction. The
// input is left untouched, keeping the pipeline safe for concurrent
// callers sharing a slice.
func SortedByTime(packets []models.CanonicalPacket, ascending bool) []models.CanonicalPacket {
	sorted := make([]models.CanonicalPacket, len(packets))
	copy(sorted, packets)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].SortTime, sorted[j].SortTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		if ascending {
			return ti.Before(*tj)
		}
		return ti.After(*tj)
	})

	return sorted
}
