package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetsight/insights/internal/models"
)

func TestSortedByTime(t *testing.T) {
	noTime := models.CanonicalPacket{PacketType: models.PacketNormal}
	packets := []models.CanonicalPacket{
		movingPacket(10, 1),
		noTime,
		movingPacket(0, 2),
		movingPacket(5, 3),
	}

	asc := SortedByTime(packets, true)
	require.Len(t, asc, 4)
	assert.Equal(t, *movingPacket(0, 2).SortTime, *asc[0].SortTime)
	assert.Equal(t, *movingPacket(5, 3).SortTime, *asc[1].SortTime)
	assert.Equal(t, *movingPacket(10, 1).SortTime, *asc[2].SortTime)
	assert.Nil(t, asc[3].SortTime, "packets without a timestamp sort last")

	desc := SortedByTime(packets, false)
	assert.Equal(t, *movingPacket(10, 1).SortTime, *desc[0].SortTime)
	assert.Nil(t, desc[3].SortTime)

	// The input order is untouched.
	assert.Equal(t, *movingPacket(10, 1).SortTime, *packets[0].SortTime)
	assert.Nil(t, packets[1].SortTime)
}
