// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"

	"github.com/fleetsight/insights/internal/models"
)

// PacketRepository defines read access to the raw telemetry packets
// persisted by the ingestion path.
type PacketRepository interface {
	// GetByDevice retrieves up to limit raw packet payloads for one
	// device, newest first. An unknown IMEI yields an empty slice, not
	// an error.
	GetByDevice(ctx context.Context, imei string, limit int) ([]models.RawPacketRecord, error)

	// CountByDevice returns the total number of stored packets for a
	// device.
	CountByDevice(ctx context.Context, imei string) (int, error)
}
