package service

import (
	"context"
	"math"
	"strings"
	"time"

	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
	"smartparking/internal/utils"

	"go.uber.org/zap"
)

// QuoteFor prices a stay: every started hour is charged in full. Intervals
// that do not move forward in time cost nothing.
func QuoteFor(start, end time.Time, pricePerHour float64) entities.Quote {
	d := end.Sub(start)
	if d <= 0 {
		return entities.Quote{}
	}
	hours := int(math.Ceil(d.Hours()))
	return entities.Quote{Hours: hours, Total: float64(hours) * pricePerHour}
}

// Notifier is told about every booking the user creates.
type Notifier interface {
	BookingCreated(ctx context.Context, token string, lot entities.ParkingLot, booking entities.Booking)
}

type BookingService struct {
	bookings repository.BookingRepository
	notifier Notifier
	loc      *time.Location
	log      *zap.Logger
}

func NewBookingService(bookings repository.BookingRepository, notifier Notifier, loc *time.Location, log *zap.Logger) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{bookings: bookings, notifier: notifier, loc: loc, log: log}
}

func (s *BookingService) Location() *time.Location {
	return s.loc
}

// Quote prices the raw form values; unparsable or missing times quote zero.
func (s *BookingService) Quote(start, end string, pricePerHour float64) entities.Quote {
	st, err := utils.ParseLocalDateTime(start, s.loc)
	if err != nil {
		return entities.Quote{}
	}
	et, err := utils.ParseLocalDateTime(end, s.loc)
	if err != nil {
		return entities.Quote{}
	}
	return QuoteFor(st, et, pricePerHour)
}

func (s *BookingService) List(ctx context.Context, sess *entities.Session) ([]entities.Booking, error) {
	return s.bookings.List(ctx, sess.Token)
}

// Create submits the booking form for lot. Only required-field checks run
// here; the backend owns every other rule.
func (s *BookingService) Create(ctx context.Context, sess *entities.Session, lot entities.ParkingLot, form entities.BookingForm) (*entities.Booking, error) {
	req, err := s.buildRequest(lot.ID, form)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, sess.Token, *req)
	if err != nil {
		s.log.Warn("booking failed", zap.Int("parking_lot_id", lot.ID), zap.Error(err))
		return nil, err
	}
	s.log.Info("booking created",
		zap.Int("booking_id", booking.ID),
		zap.Int("parking_lot_id", lot.ID),
		zap.String("email", sess.Email))

	if s.notifier != nil {
		go s.notifier.BookingCreated(context.Background(), sess.Token, lot, *booking)
	}
	return booking, nil
}

func (s *BookingService) buildRequest(lotID int, form entities.BookingForm) (*entities.BookingRequest, error) {
	vehicleNumber := strings.TrimSpace(form.VehicleNumber)
	if vehicleNumber == "" {
		return nil, apperrors.NewMessageError("Vehicle number is required")
	}

	vehicleType := strings.ToLower(strings.TrimSpace(form.VehicleType))
	if vehicleType == "" {
		vehicleType = utils.DefaultVehicleType
	}
	if !utils.IsVehicleType(vehicleType) {
		return nil, apperrors.NewMessageError("Unknown vehicle type")
	}

	if strings.TrimSpace(form.StartTime) == "" || strings.TrimSpace(form.EndTime) == "" {
		return nil, apperrors.NewMessageError("Start and end time are required")
	}
	start, err := utils.ParseLocalDateTime(form.StartTime, s.loc)
	if err != nil {
		return nil, apperrors.NewMessageError("Invalid start time")
	}
	end, err := utils.ParseLocalDateTime(form.EndTime, s.loc)
	if err != nil {
		return nil, apperrors.NewMessageError("Invalid end time")
	}

	return &entities.BookingRequest{
		ParkingLotID:  lotID,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
		VehicleNumber: vehicleNumber,
		VehicleType:   vehicleType,
	}, nil
}
