package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fleetsight/insights/internal/models"
)

// PostgresPacketRepository implements PacketRepository using PostgreSQL.
// Packets are stored the way the ingestion path received them: one JSONB
// payload per row, keyed by IMEI and arrival time. Payload shapes vary
// between firmware revisions, which is why they stay opaque here and are
// normalized downstream.
type PostgresPacketRepository struct {
	db *sql.DB
}

// NewPostgresPacketRepository creates a new PostgreSQL packet repository
func NewPostgresPacketRepository(db *sql.DB) *PostgresPacketRepository {
	return &PostgresPacketRepository{db: db}
}

// GetByDevice retrieves up to limit raw packet payloads for a device,
// newest first
func (r *PostgresPacketRepository) GetByDevice(ctx context.Context, imei string, limit int) ([]models.RawPacketRecord, error) {
	query := `
		SELECT payload
		FROM packets
		WHERE imei = $1
		ORDER BY received_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, imei, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query packets for %s: %w", imei, err)
	}
	defer rows.Close()

	var records []models.RawPacketRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan packet payload: %w", err)
		}

		var record models.RawPacketRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			// A corrupt payload row must not take down the whole
			// window; the normalizer classifies it as unknown.
			record = models.RawPacketRecord{}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packet rows: %w", err)
	}

	return records, nil
}

// CountByDevice returns the total number of stored packets for a device
func (r *PostgresPacketRepository) CountByDevice(ctx context.Context, imei string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM packets WHERE imei = $1`, imei).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count packets for %s: %w", imei, err)
	}
	return count, nil
}
