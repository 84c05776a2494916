package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/store"
)

const cardColumns = `card_id, mobile_number, card_number, card_type, total_limit, amount_used,
	available_amount, created_at, created_by, updated_at, updated_by`

const (
	findByMobileNumberQuery = `SELECT ` + cardColumns + ` FROM cards WHERE mobile_number = $1`
	findByCardNumberQuery   = `SELECT ` + cardColumns + ` FROM cards WHERE card_number = $1`

	insertCardQuery = `
		INSERT INTO cards (mobile_number, card_number, card_type, total_limit, amount_used,
			available_amount, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING card_id`

	updateCardQuery = `
		UPDATE cards
		SET mobile_number = $1, card_number = $2, card_type = $3, total_limit = $4,
			amount_used = $5, available_amount = $6, updated_at = $7, updated_by = $8
		WHERE card_id = $9
		RETURNING created_at, created_by`

	deleteCardQuery = `DELETE FROM cards WHERE card_id = $1`
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	now    store.Clock
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		now:    store.UTCNow,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// WithClock returns a copy of the store that stamps audit columns using clock.
func (s *PostgresCardStore) WithClock(clock store.Clock) *PostgresCardStore {
	cp := *s
	cp.now = clock
	return &cp
}

// Ensure PostgresCardStore implements the store interfaces
var (
	_ store.CardStore = (*PostgresCardStore)(nil)
	_ store.Pinger    = (*PostgresCardStore)(nil)
)

// FindByMobileNumber implements store.CardStore.FindByMobileNumber.
// Returns store.ErrCardNotFound if no card was issued for the mobile number.
func (s *PostgresCardStore) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving card by mobile number", slog.String("mobile_number", redact.MobileNumber(mobileNumber)))

	return s.findOne(ctx, log, findByMobileNumberQuery, mobileNumber)
}

// FindByCardNumber implements store.CardStore.FindByCardNumber.
// Returns store.ErrCardNotFound if the card number is unknown.
func (s *PostgresCardStore) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving card by card number", slog.String("card_number", redact.CardNumber(cardNumber)))

	return s.findOne(ctx, log, findByCardNumberQuery, cardNumber)
}

func (s *PostgresCardStore) findOne(ctx context.Context, log *slog.Logger, query, arg string) (*domain.Card, error) {
	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&card.ID,
		&card.MobileNumber,
		&card.CardNumber,
		&card.CardType,
		&card.TotalLimit,
		&card.AmountUsed,
		&card.AvailableAmount,
		&card.Audit.CreatedAt,
		&card.Audit.CreatedBy,
		&card.Audit.UpdatedAt,
		&card.Audit.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found")
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to query card", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("card", "find", "query failed", MapError(err))
	}

	return &card, nil
}

// Save implements store.CardStore.Save.
// Cards with a zero ID are inserted and receive the generated card_id; other
// cards are updated in place. Audit columns are stamped from the context actor.
func (s *PostgresCardStore) Save(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during save", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	saved := *card
	if saved.IsNew() {
		return s.insert(ctx, log, &saved)
	}
	return s.update(ctx, log, &saved)
}

func (s *PostgresCardStore) insert(ctx context.Context, log *slog.Logger, card *domain.Card) (*domain.Card, error) {
	store.StampCreated(ctx, card, s.now())

	err := s.db.QueryRowContext(
		ctx,
		insertCardQuery,
		card.MobileNumber,
		card.CardNumber,
		card.CardType,
		card.TotalLimit,
		card.AmountUsed,
		card.AvailableAmount,
		card.Audit.CreatedAt,
		card.Audit.CreatedBy,
		card.Audit.UpdatedAt,
		card.Audit.UpdatedBy,
	).Scan(&card.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("unique constraint violated during card insert",
				slog.String("error", redact.Error(err)))
			return nil, mapped
		}
		log.Error("failed to insert card", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("card", "insert", "insert failed", mapped)
	}

	log.Info("card created",
		slog.Int64("card_id", card.ID),
		slog.String("card_number", redact.CardNumber(card.CardNumber)))
	return card, nil
}

func (s *PostgresCardStore) update(ctx context.Context, log *slog.Logger, card *domain.Card) (*domain.Card, error) {
	store.StampUpdated(ctx, card, s.now())

	err := s.db.QueryRowContext(
		ctx,
		updateCardQuery,
		card.MobileNumber,
		card.CardNumber,
		card.CardType,
		card.TotalLimit,
		card.AmountUsed,
		card.AvailableAmount,
		card.Audit.UpdatedAt,
		card.Audit.UpdatedBy,
		card.ID,
	).Scan(&card.Audit.CreatedAt, &card.Audit.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card to update not found", slog.Int64("card_id", card.ID))
			return nil, store.ErrCardNotFound
		}
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			return nil, mapped
		}
		log.Error("failed to update card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", card.ID))
		return nil, store.NewStoreError("card", "update", "update failed", mapped)
	}

	log.Info("card updated", slog.Int64("card_id", card.ID))
	return card, nil
}

// DeleteByID implements store.CardStore.DeleteByID.
// Returns store.ErrCardNotFound if no row was deleted.
func (s *PostgresCardStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteCardQuery, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card to delete not found", slog.Int64("card_id", id))
		}
		return err
	}

	log.Info("card deleted", slog.Int64("card_id", id))
	return nil
}

// Ping implements store.Pinger when the store runs against a connection pool.
func (s *PostgresCardStore) Ping(ctx context.Context) error {
	pinger, ok := s.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	return pinger.PingContext(ctx)
}
