package service

import (
	"context"

	"smartparking/internal/entities"
	"smartparking/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ParkingService struct {
	lots  repository.ParkingLotRepository
	slots repository.ParkingSlotRepository
	log   *zap.Logger
}

func NewParkingService(lots repository.ParkingLotRepository, slots repository.ParkingSlotRepository, log *zap.Logger) *ParkingService {
	return &ParkingService{lots: lots, slots: slots, log: log}
}

type HomeData struct {
	Lots        []entities.ParkingLot
	Suggestions []entities.ParkingLot
}

// Home loads every lot together with the recommendation list. When the lot
// list fails there are no suggestions either; the failure is only logged
// for the recommendation widget, the caller shows it for the list.
func (s *ParkingService) Home(ctx context.Context) (*HomeData, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		s.log.Error("failed to load suggestions", zap.Error(err))
		return nil, err
	}
	return &HomeData{Lots: lots, Suggestions: Suggest(lots)}, nil
}

func (s *ParkingService) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]entities.ParkingLot, error) {
	return s.lots.Nearby(ctx, latitude, longitude, radiusKm)
}

func (s *ParkingService) Lot(ctx context.Context, id int) (*entities.ParkingLot, error) {
	return s.lots.Get(ctx, id)
}

type LotDetail struct {
	Lot    *entities.ParkingLot
	Slots  []entities.ParkingSlot
	Counts entities.SlotCounts
}

// Detail fetches the lot and its slots concurrently and waits for both.
func (s *ParkingService) Detail(ctx context.Context, id int) (*LotDetail, error) {
	var (
		lot   *entities.ParkingLot
		slots []entities.ParkingSlot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lot, err = s.lots.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = s.slots.ListByLot(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LotDetail{Lot: lot, Slots: slots, Counts: entities.CountSlots(slots)}, nil
}
