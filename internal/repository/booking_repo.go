package repository

import (
	"context"
	"fmt"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

type BookingRepository interface {
	List(ctx context.Context, token string) ([]entities.Booking, error)
	Create(ctx context.Context, token string, req entities.BookingRequest) (*entities.Booking, error)
}

type bookingRepository struct {
	client *backend.Client
}

func NewBookingRepository(client *backend.Client) BookingRepository {
	return &bookingRepository{client: client}
}

func (r *bookingRepository) List(ctx context.Context, token string) ([]entities.Booking, error) {
	var bookings []entities.Booking
	if err := r.client.Get(ctx, "/api/v1/bookings/", token, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, token string, req entities.BookingRequest) (*entities.Booking, error) {
	var booking entities.Booking
	if err := r.client.PostJSON(ctx, "/api/v1/bookings/", token, req, &booking); err != nil {
		return nil, fmt.Errorf("create booking at lot %d: %w", req.ParkingLotID, err)
	}
	return &booking, nil
}
