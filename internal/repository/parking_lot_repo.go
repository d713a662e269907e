package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

const DefaultNearbyRadiusKm = 5.0

type ParkingLotRepository interface {
	List(ctx context.Context) ([]entities.ParkingLot, error)
	Get(ctx context.Context, id int) (*entities.ParkingLot, error)
	Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]entities.ParkingLot, error)
}

type parkingLotRepository struct {
	client *backend.Client
}

func NewParkingLotRepository(client *backend.Client) ParkingLotRepository {
	return &parkingLotRepository{client: client}
}

func (r *parkingLotRepository) List(ctx context.Context) ([]entities.ParkingLot, error) {
	var lots []entities.ParkingLot
	if err := r.client.Get(ctx, "/api/v1/parking-lots/", "", &lots); err != nil {
		return nil, fmt.Errorf("list parking lots: %w", err)
	}
	return lots, nil
}

func (r *parkingLotRepository) Get(ctx context.Context, id int) (*entities.ParkingLot, error) {
	var lot entities.ParkingLot
	if err := r.client.Get(ctx, fmt.Sprintf("/api/v1/parking-lots/%d", id), "", &lot); err != nil {
		return nil, fmt.Errorf("get parking lot %d: %w", id, err)
	}
	return &lot, nil
}

// Nearby lists lots within radiusKm of the point. A non-positive radius
// falls back to DefaultNearbyRadiusKm.
func (r *parkingLotRepository) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]entities.ParkingLot, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var lots []entities.ParkingLot
	if err := r.client.Get(ctx, "/api/v1/parking-lots/nearby?"+q.Encode(), "", &lots); err != nil {
		return nil, fmt.Errorf("nearby parking lots: %w", err)
	}
	return lots, nil
}
