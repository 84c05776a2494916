package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/events"
	"github.com/phrazzld/cards-api/internal/generation"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/platform/metrics"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/store"
)

// DefaultMaxCardNumberAttempts bounds how many card numbers CreateCard tries.
const DefaultMaxCardNumberAttempts = 5

const cardResource = "Card"

// CardService provides card lifecycle operations.
type CardService interface {
	// CreateCard issues a new card with default limits for mobileNumber.
	CreateCard(ctx context.Context, mobileNumber string) error

	// FetchCard returns the card issued for mobileNumber.
	FetchCard(ctx context.Context, mobileNumber string) (*domain.CardDTO, error)

	// UpdateCard locates the card by dto.CardNumber and overwrites its type,
	// limit and balances. Mobile and card numbers are never changed.
	UpdateCard(ctx context.Context, dto domain.CardDTO) (bool, error)

	// DeleteCard removes the card issued for mobileNumber.
	DeleteCard(ctx context.Context, mobileNumber string) (bool, error)
}

// Option configures the card service.
type Option func(*cardServiceImpl)

// WithMetrics records operation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *cardServiceImpl) {
		s.metrics = m
	}
}

// WithEventEmitter publishes a CardEvent on e after every successful write.
func WithEventEmitter(e events.EventEmitter) Option {
	return func(s *cardServiceImpl) {
		s.emitter = e
	}
}

// WithMaxCardNumberAttempts overrides DefaultMaxCardNumberAttempts.
// Values below one are ignored.
func WithMaxCardNumberAttempts(n int) Option {
	return func(s *cardServiceImpl) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	store       store.CardStore
	generator   generation.CardNumberGenerator
	logger      *slog.Logger
	metrics     *metrics.Metrics
	emitter     events.EventEmitter
	maxAttempts int
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cardStore store.CardStore,
	generator generation.CardNumberGenerator,
	logger *slog.Logger,
	opts ...Option,
) (CardService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardServiceImpl{
		store:       cardStore,
		generator:   generator,
		logger:      logger.With(slog.String("component", "card_service")),
		maxAttempts: DefaultMaxCardNumberAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, mobileNumber string) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(metrics.OpCreate, outcome(err), start) }()

	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("mobile_number", redact.MobileNumber(mobileNumber)))

	_, err = s.store.FindByMobileNumber(ctx, mobileNumber)
	switch {
	case err == nil:
		log.Info("card already exists for mobile number")
		return &CardAlreadyExistsError{MobileNumber: mobileNumber}
	case !store.IsNotFoundError(err):
		log.Error("failed to check for existing card", slog.String("error", redact.Error(err)))
		return NewCardServiceError("create_card", "failed to check for existing card", err)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		cardNumber, err := s.generator.Generate(ctx)
		if err != nil {
			log.Error("failed to generate card number", slog.String("error", err.Error()))
			return NewCardServiceError("create_card", "failed to generate card number", err)
		}

		taken, err := s.cardNumberTaken(ctx, cardNumber)
		if err != nil {
			log.Error("failed to check card number", slog.String("error", redact.Error(err)))
			return NewCardServiceError("create_card", "failed to check card number", err)
		}
		if taken {
			s.metrics.IncrementCardNumberCollisions()
			log.Warn("generated card number already in use", slog.Int("attempt", attempt))
			continue
		}

		saved, err := s.store.Save(ctx, domain.NewCard(mobileNumber, cardNumber))
		switch {
		case err == nil:
			s.metrics.IncrementCardsCreated()
			log.Info("card created",
				slog.Int64("card_id", saved.ID),
				slog.String("card_number", redact.CardNumber(saved.CardNumber)))
			s.emit(ctx, events.CardCreated, saved)
			return nil
		case errors.Is(err, store.ErrDuplicateCardNumber):
			// Lost a race against a concurrent create drawing the same number.
			s.metrics.IncrementCardNumberCollisions()
			log.Warn("card number taken while saving", slog.Int("attempt", attempt))
			continue
		case errors.Is(err, store.ErrDuplicateMobileNumber):
			log.Info("card created concurrently for mobile number")
			return &CardAlreadyExistsError{MobileNumber: mobileNumber}
		default:
			log.Error("failed to save card", slog.String("error", redact.Error(err)))
			return NewCardServiceError("create_card", "failed to save card", err)
		}
	}

	log.Error("no unused card number found", slog.Int("attempts", s.maxAttempts))
	return NewCardServiceError("create_card", "failed to allocate card number", ErrCardNumberExhausted)
}

func (s *cardServiceImpl) cardNumberTaken(ctx context.Context, cardNumber string) (bool, error) {
	_, err := s.store.FindByCardNumber(ctx, cardNumber)
	switch {
	case err == nil:
		return true, nil
	case store.IsNotFoundError(err):
		return false, nil
	default:
		return false, err
	}
}

// FetchCard implements CardService.FetchCard
func (s *cardServiceImpl) FetchCard(ctx context.Context, mobileNumber string) (dto *domain.CardDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(metrics.OpFetch, outcome(err), start) }()

	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.store.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found", slog.String("mobile_number", redact.MobileNumber(mobileNumber)))
			return nil, NewNotFoundError(cardResource, "mobileNumber", mobileNumber)
		}
		log.Error("failed to fetch card", slog.String("error", redact.Error(err)))
		return nil, NewCardServiceError("fetch_card", "failed to retrieve card", err)
	}

	external := domain.ToExternal(card)
	return &external, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(ctx context.Context, dto domain.CardDTO) (updated bool, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(metrics.OpUpdate, outcome(err), start) }()

	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("card_number", redact.CardNumber(dto.CardNumber)))

	existing, err := s.store.FindByCardNumber(ctx, dto.CardNumber)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for update")
			return false, NewNotFoundError(cardResource, "cardNumber", dto.CardNumber)
		}
		log.Error("failed to look up card for update", slog.String("error", redact.Error(err)))
		return false, NewCardServiceError("update_card", "failed to retrieve card", err)
	}

	// Identity fields are immutable; only the remaining fields come from the request.
	patch := dto
	patch.MobileNumber = existing.MobileNumber
	patch.CardNumber = existing.CardNumber

	saved, err := s.store.Save(ctx, domain.ToEntity(patch, existing))
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Info("card deleted before update was saved")
			return false, NewNotFoundError(cardResource, "cardNumber", dto.CardNumber)
		}
		log.Error("failed to save card update", slog.String("error", redact.Error(err)))
		return false, NewCardServiceError("update_card", "failed to save card", err)
	}

	log.Info("card updated", slog.Int64("card_id", existing.ID))
	s.emit(ctx, events.CardUpdated, saved)
	return true, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, mobileNumber string) (deleted bool, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(metrics.OpDelete, outcome(err), start) }()

	log := logger.FromContextOrDefault(ctx, s.logger).
		With(slog.String("mobile_number", redact.MobileNumber(mobileNumber)))

	card, err := s.store.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for delete")
			return false, NewNotFoundError(cardResource, "mobileNumber", mobileNumber)
		}
		log.Error("failed to look up card for delete", slog.String("error", redact.Error(err)))
		return false, NewCardServiceError("delete_card", "failed to retrieve card", err)
	}

	if err := s.store.DeleteByID(ctx, card.ID); err != nil {
		if store.IsNotFoundError(err) {
			log.Info("card deleted concurrently")
			return false, NewNotFoundError(cardResource, "mobileNumber", mobileNumber)
		}
		log.Error("failed to delete card", slog.String("error", redact.Error(err)))
		return false, NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted", slog.Int64("card_id", card.ID))
	s.emit(ctx, events.CardDeleted, card)
	return true, nil
}

// emit publishes a lifecycle event for a completed write. The write has already
// happened, so failures are logged and never returned.
func (s *cardServiceImpl) emit(ctx context.Context, eventType string, card *domain.Card) {
	if s.emitter == nil {
		return
	}
	event := events.NewCardEvent(eventType, card, store.ActorFromContext(ctx))
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit card event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", redact.Error(err)))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrCardAlreadyExists):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
