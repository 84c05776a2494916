// Package memory provides an in-process card store. It backs the "memory"
// database backend and enforces the same uniqueness rules as the SQL schema.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/store"
)

// CardStore implements store.CardStore with maps guarded by a RWMutex.
// Cards are copied on the way in and out, so callers never share state with the store.
type CardStore struct {
	mu       sync.RWMutex
	cards    map[int64]domain.Card
	byMobile map[string]int64
	byNumber map[string]int64
	lastID   int64
	now      store.Clock
	logger   *slog.Logger
}

// Option configures a CardStore.
type Option func(*CardStore)

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock store.Clock) Option {
	return func(s *CardStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewCardStore creates an empty in-memory card store.
func NewCardStore(logger *slog.Logger, opts ...Option) *CardStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CardStore{
		cards:    make(map[int64]domain.Card),
		byMobile: make(map[string]int64),
		byNumber: make(map[string]int64),
		now:      store.UTCNow,
		logger:   logger.With(slog.String("component", "memory_card_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ store.CardStore = (*CardStore)(nil)
	_ store.Pinger    = (*CardStore)(nil)
)

// FindByMobileNumber implements store.CardStore.
func (s *CardStore) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byMobile[mobileNumber]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	card := s.cards[id]
	return &card, nil
}

// FindByCardNumber implements store.CardStore.
func (s *CardStore) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNumber[cardNumber]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	card := s.cards[id]
	return &card, nil
}

// Save implements store.CardStore.
func (s *CardStore) Save(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during save", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *card
	if stored.IsNew() {
		if _, ok := s.byMobile[stored.MobileNumber]; ok {
			return nil, store.ErrDuplicateMobileNumber
		}
		if _, ok := s.byNumber[stored.CardNumber]; ok {
			return nil, store.ErrDuplicateCardNumber
		}
		s.lastID++
		stored.ID = s.lastID
		store.StampCreated(ctx, &stored, s.now())
		log.Debug("card inserted", slog.Int64("card_id", stored.ID))
	} else {
		existing, ok := s.cards[stored.ID]
		if !ok {
			return nil, store.ErrCardNotFound
		}
		if id, ok := s.byMobile[stored.MobileNumber]; ok && id != stored.ID {
			return nil, store.ErrDuplicateMobileNumber
		}
		if id, ok := s.byNumber[stored.CardNumber]; ok && id != stored.ID {
			return nil, store.ErrDuplicateCardNumber
		}
		delete(s.byMobile, existing.MobileNumber)
		delete(s.byNumber, existing.CardNumber)
		stored.Audit.CreatedAt = existing.Audit.CreatedAt
		stored.Audit.CreatedBy = existing.Audit.CreatedBy
		store.StampUpdated(ctx, &stored, s.now())
		log.Debug("card updated", slog.Int64("card_id", stored.ID))
	}

	s.cards[stored.ID] = stored
	s.byMobile[stored.MobileNumber] = stored.ID
	s.byNumber[stored.CardNumber] = stored.ID

	out := stored
	return &out, nil
}

// DeleteByID implements store.CardStore.
func (s *CardStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	delete(s.byMobile, card.MobileNumber)
	delete(s.byNumber, card.CardNumber)

	logger.FromContextOrDefault(ctx, s.logger).Debug("card deleted", slog.Int64("card_id", id))
	return nil
}

// Ping implements store.Pinger. The memory store is always ready.
func (s *CardStore) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored cards.
func (s *CardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
