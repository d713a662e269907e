package service

import (
	"context"
	"io"
	"sync"
	"time"

	"smartparking/internal/entities"

	"github.com/stretchr/testify/mock"
)

type MockParkingLotRepository struct {
	mock.Mock
}

func (m *MockParkingLotRepository) List(ctx context.Context) ([]entities.ParkingLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepository) Get(ctx context.Context, id int) (*entities.ParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepository) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]entities.ParkingLot, error) {
	args := m.Called(ctx, latitude, longitude, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ParkingLot), args.Error(1)
}

type MockParkingSlotRepository struct {
	mock.Mock
}

func (m *MockParkingSlotRepository) ListByLot(ctx context.Context, lotID int) ([]entities.ParkingSlot, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ParkingSlot), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context, token string) ([]entities.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, token string, req entities.BookingRequest) (*entities.Booking, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAuthRepository) Login(ctx context.Context, email, password string) (*entities.Token, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Token), args.Error(1)
}

func (m *MockAuthRepository) Me(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, token string, lot entities.ParkingLot, booking entities.Booking) {
	m.Called(ctx, token, lot, booking)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, s *entities.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*entities.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// fakeAIRepository serves a fixed snapshot and counts SlotStatus calls.
type fakeAIRepository struct {
	mu    sync.Mutex
	calls int
	snap  entities.SlotStatusSnapshot
	err   error
}

func (f *fakeAIRepository) DetectSlots(ctx context.Context, lotID int, filename string, image io.Reader) (*entities.SlotStatusSnapshot, error) {
	return &f.snap, f.err
}

func (f *fakeAIRepository) SlotStatus(ctx context.Context, lotID int) (*entities.SlotStatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap := f.snap
	snap.ParkingLotID = lotID
	return &snap, nil
}

func (f *fakeAIRepository) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ratingPtr(v float64) *float64 {
	return &v
}
