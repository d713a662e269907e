package repository

import (
	"context"
	"fmt"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

type ParkingSlotRepository interface {
	ListByLot(ctx context.Context, lotID int) ([]entities.ParkingSlot, error)
}

type parkingSlotRepository struct {
	client *backend.Client
}

func NewParkingSlotRepository(client *backend.Client) ParkingSlotRepository {
	return &parkingSlotRepository{client: client}
}

func (r *parkingSlotRepository) ListByLot(ctx context.Context, lotID int) ([]entities.ParkingSlot, error) {
	var slots []entities.ParkingSlot
	if err := r.client.Get(ctx, fmt.Sprintf("/api/v1/parking-slots/?parking_lot_id=%d", lotID), "", &slots); err != nil {
		return nil, fmt.Errorf("list slots of lot %d: %w", lotID, err)
	}
	return slots, nil
}
