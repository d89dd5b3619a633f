package repository

import (
	"context"

	"github.com/fleetsight/insights/internal/models"
)

// MockPacketRepository is a mock implementation of PacketRepository for testing
type MockPacketRepository struct {
	GetByDeviceFunc   func(ctx context.Context, imei string, limit int) ([]models.RawPacketRecord, error)
	CountByDeviceFunc func(ctx context.Context, imei string) (int, error)
}

// NewMockPacketRepository creates a new mock packet repository
func NewMockPacketRepository() *MockPacketRepository {
	return &MockPacketRepository{
		GetByDeviceFunc: func(_ context.Context, _ string, _ int) ([]models.RawPacketRecord, error) {
			return []models.RawPacketRecord{}, nil
		},
		CountByDeviceFunc: func(_ context.Context, _ string) (int, error) {
			return 0, nil
		},
	}
}

// GetByDevice implements PacketRepository.GetByDevice
func (m *MockPacketRepository) GetByDevice(ctx context.Context, imei string, limit int) ([]models.RawPacketRecord, error) {
	return m.GetByDeviceFunc(ctx, imei, limit)
}

// CountByDevice implements PacketRepository.CountByDevice
func (m *MockPacketRepository) CountByDevice(ctx context.Context, imei string) (int, error) {
	return m.CountByDeviceFunc(ctx, imei)
}
