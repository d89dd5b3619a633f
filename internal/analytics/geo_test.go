package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{12.9716, 77.5946},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}

	for _, p := range points {
		assert.Zero(t, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{12.9716, 77.5946, 13.0827, 80.2707},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-1.2921, 36.8219, 6.5244, 3.3792},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// One degree of latitude along a meridian is ~111.19 km on a
	// 6371 km sphere.
	assert.InDelta(t, 111.19, DistanceKm(0, 0, 1, 0), 0.05)

	// Bangalore to Chennai, roughly 290 km.
	assert.InDelta(t, 290, DistanceKm(12.9716, 77.5946, 13.0827, 80.2707), 5)
}
