package service

import (
	"context"
	"sync"
	"time"

	"smartparking/internal/entities"
	"smartparking/internal/repository"

	"go.uber.org/zap"
)

const liveUpdateType = "parking_update"

// LiveService fans AI slot status out to live feed subscribers. One poller
// runs per lot while that lot has at least one subscriber.
type LiveService struct {
	ai       repository.AIRepository
	interval time.Duration
	log      *zap.Logger

	mu   sync.Mutex
	hubs map[int]*lotHub
}

type lotHub struct {
	subscribers map[chan entities.LiveUpdate]struct{}
	cancel      context.CancelFunc
}

func NewLiveService(ai repository.AIRepository, interval time.Duration, log *zap.Logger) *LiveService {
	return &LiveService{ai: ai, interval: interval, log: log, hubs: make(map[int]*lotHub)}
}

// Subscribe registers a subscriber for lotID. The returned function must be
// called exactly once to unsubscribe; it closes the channel.
func (s *LiveService) Subscribe(lotID int) (<-chan entities.LiveUpdate, func()) {
	ch := make(chan entities.LiveUpdate, 4)

	s.mu.Lock()
	hub, ok := s.hubs[lotID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		hub = &lotHub{subscribers: make(map[chan entities.LiveUpdate]struct{}), cancel: cancel}
		s.hubs[lotID] = hub
		go s.poll(ctx, lotID, hub)
	}
	hub.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { s.unsubscribe(lotID, hub, ch) })
	}
}

func (s *LiveService) unsubscribe(lotID int, hub *lotHub, ch chan entities.LiveUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(hub.subscribers, ch)
	close(ch)
	if len(hub.subscribers) == 0 {
		hub.cancel()
		if s.hubs[lotID] == hub {
			delete(s.hubs, lotID)
		}
	}
}

// Subscribers reports how many subscribers lotID has.
func (s *LiveService) Subscribers(lotID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hub, ok := s.hubs[lotID]; ok {
		return len(hub.subscribers)
	}
	return 0
}

func (s *LiveService) poll(ctx context.Context, lotID int, hub *lotHub) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.fetchAndBroadcast(ctx, lotID, hub)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *LiveService) fetchAndBroadcast(ctx context.Context, lotID int, hub *lotHub) {
	reqCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	snap, err := s.ai.SlotStatus(reqCtx, lotID)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("live slot poll failed", zap.Int("parking_lot_id", lotID), zap.Error(err))
		}
		return
	}

	update := entities.LiveUpdate{Type: liveUpdateType, SlotStatusSnapshot: *snap}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	for ch := range hub.subscribers {
		select {
		case ch <- update:
		default:
			// slow reader, it will get the next snapshot
		}
	}
}
