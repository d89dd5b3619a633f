package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetsight/insights/internal/analytics"
	"github.com/fleetsight/insights/internal/models"
	"github.com/fleetsight/insights/internal/repository"
)

// SnapshotCache is the cache surface the status endpoint uses. Get
// returns nil on a miss.
type SnapshotCache interface {
	Get(ctx context.Context, imei string) (*models.DeviceSnapshot, error)
	Set(ctx context.Context, imei string, snap *models.DeviceSnapshot) error
}

// InsightsHandler serves derived telemetry facts for one device: trips,
// distance/movement/battery summary, alert flags and status labels. It
// fetches the device's packet window, normalizes it and runs the
// analytics pipeline on every request; nothing is stateful between
// calls.
type InsightsHandler struct {
	packets      repository.PacketRepository
	cache        SnapshotCache
	thresholds   analytics.Thresholds
	packetWindow int
	now          func() time.Time
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(packets repository.PacketRepository, thresholds analytics.Thresholds, packetWindow int) *InsightsHandler {
	return &InsightsHandler{
		packets:      packets,
		thresholds:   thresholds,
		packetWindow: packetWindow,
		now:          time.Now,
	}
}

// WithSnapshotCache attaches an optional snapshot cache
func (h *InsightsHandler) WithSnapshotCache(cache SnapshotCache) *InsightsHandler {
	h.cache = cache
	return h
}

// WithClock overrides the wall clock, for tests
func (h *InsightsHandler) WithClock(now func() time.Time) *InsightsHandler {
	h.now = now
	return h
}

// fetchCanonical loads and normalizes the packet window for a device,
// in storage order (newest first).
func (h *InsightsHandler) fetchCanonical(c *gin.Context, imei string) ([]models.CanonicalPacket, bool) {
	raws, err := h.packets.GetByDevice(c.Request.Context(), imei, h.packetWindow)
	if err != nil {
		log.Printf("Failed to fetch packets for %s: %v", imei, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch device packets",
		})
		return nil, false
	}
	return analytics.Normalize(imei, raws), true
}

func requireIMEI(c *gin.Context) (string, bool) {
	imei := c.Param("imei")
	if imei == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing device IMEI",
		})
		return "", false
	}
	return imei, true
}

// GetTrips returns the device's finalized trips, oldest first. Pass
// ?open=true to include the in-progress trip, if any.
func (h *InsightsHandler) GetTrips(c *gin.Context) {
	imei, ok := requireIMEI(c)
	if !ok {
		return
	}

	packets, ok := h.fetchCanonical(c, imei)
	if !ok {
		return
	}

	cfg := analytics.TripConfigFrom(h.thresholds)
	cfg.EmitOpenTrip = c.Query("open") == "true"

	// The segmenter requires ascending chronological order.
	ascending := analytics.SortedByTime(packets, true)
	trips := analytics.SegmentTrips(ascending, cfg)
	if trips == nil {
		trips = []models.Trip{}
	}

	c.JSON(http.StatusOK, gin.H{
		"imei":  imei,
		"trips": trips,
		"total": len(trips),
	})
}

// SummaryResponse aggregates the per-device dashboard numbers.
type SummaryResponse struct {
	IMEI            string                      `json:"imei"`
	PacketCount     int                         `json:"packetCount"`
	TodayDistanceKm float64                     `json:"todayDistanceKm"`
	Movement        analytics.MovementBreakdown `json:"movement"`
	Battery         BatterySummary              `json:"battery"`
}

// BatterySummary carries the display-formatted battery estimates.
type BatterySummary struct {
	RuntimeSinceFull string `json:"runtimeSinceFull"`
	DrainTime        string `json:"drainTime"`
}

// GetSummary returns distance, movement and battery aggregates for a
// device.
func (h *InsightsHandler) GetSummary(c *gin.Context) {
	imei, ok := requireIMEI(c)
	if !ok {
		return
	}

	packets, ok := h.fetchCanonical(c, imei)
	if !ok {
		return
	}

	ascending := analytics.SortedByTime(packets, true)
	descending := analytics.SortedByTime(packets, false)

	c.JSON(http.StatusOK, SummaryResponse{
		IMEI:            imei,
		PacketCount:     len(packets),
		TodayDistanceKm: analytics.DailyDistanceKm(ascending, h.now().UTC(), h.thresholds.KeepZeroCoordinates),
		Movement:        analytics.ClassifyMovement(packets, h.thresholds.TripStopSpeedKmh),
		Battery: BatterySummary{
			RuntimeSinceFull: analytics.RuntimeSinceFull(descending),
			DrainTime:        analytics.DrainTime(descending),
		},
	})
}

// GetAlerts returns the threshold alert flags for a device.
func (h *InsightsHandler) GetAlerts(c *gin.Context) {
	imei, ok := requireIMEI(c)
	if !ok {
		return
	}

	packets, ok := h.fetchCanonical(c, imei)
	if !ok {
		return
	}

	flags := analytics.EvaluateAlerts(packets, h.now(), h.thresholds)

	c.JSON(http.StatusOK, gin.H{
		"imei":  imei,
		"flags": flags,
	})
}

// GetStatus returns the GPS/speed/battery status labels derived from
// the device's latest normal packet, served from the snapshot cache
// when fresh.
func (h *InsightsHandler) GetStatus(c *gin.Context) {
	imei, ok := requireIMEI(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.cache != nil {
		if snap, err := h.cache.Get(ctx, imei); err != nil {
			log.Printf("Snapshot cache read failed for %s: %v", imei, err)
		} else if snap != nil {
			c.JSON(http.StatusOK, snap)
			return
		}
	}

	packets, ok := h.fetchCanonical(c, imei)
	if !ok {
		return
	}

	latest := analytics.LatestNormalPacket(packets)
	snap := analytics.ClassifyStatus(latest, h.thresholds)
	if snap.IMEI == "" {
		snap.IMEI = imei
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, imei, &snap); err != nil {
			log.Printf("Snapshot cache write failed for %s: %v", imei, err)
		}
	}

	c.JSON(http.StatusOK, snap)
}
