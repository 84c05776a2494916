package store

import (
	"context"

	"github.com/phrazzld/cards-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// Lookups return ErrCardNotFound (possibly wrapped) when no card matches.
// Implementations stamp domain.Audit on every write using ActorFromContext.
type CardStore interface {
	// FindByMobileNumber retrieves the card issued for a mobile number.
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Card, error)

	// FindByCardNumber retrieves a card by its card number.
	FindByCardNumber(ctx context.Context, cardNumber string) (*domain.Card, error)

	// Save inserts the card when its ID is zero, assigning a new ID, and
	// updates the stored record otherwise. It returns the stored card.
	//
	// Returns ErrDuplicateMobileNumber or ErrDuplicateCardNumber when the
	// backend enforces uniqueness and the write would violate it, and
	// ErrCardNotFound when updating a card that no longer exists.
	Save(ctx context.Context, card *domain.Card) (*domain.Card, error)

	// DeleteByID removes a card by its store-assigned identifier.
	DeleteByID(ctx context.Context, id int64) error
}

// Pinger is implemented by stores that can report backend readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
