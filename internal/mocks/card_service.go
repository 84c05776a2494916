package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cards-api/internal/domain"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	// Custom behavior functions
	CreateCardFn func(ctx context.Context, mobileNumber string) error
	FetchCardFn  func(ctx context.Context, mobileNumber string) (*domain.CardDTO, error)
	UpdateCardFn func(ctx context.Context, dto domain.CardDTO) (bool, error)
	DeleteCardFn func(ctx context.Context, mobileNumber string) (bool, error)

	// Default return values
	Card         *domain.CardDTO
	DefaultError error

	// Call tracking for verification
	mu    sync.Mutex
	Calls []string
}

func (m *MockCardService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

// CallCount returns how many times the named method was called.
func (m *MockCardService) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// CreateCard implements the CardService.CreateCard method
func (m *MockCardService) CreateCard(ctx context.Context, mobileNumber string) error {
	m.record("CreateCard")
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, mobileNumber)
	}
	return m.DefaultError
}

// FetchCard implements the CardService.FetchCard method
func (m *MockCardService) FetchCard(ctx context.Context, mobileNumber string) (*domain.CardDTO, error) {
	m.record("FetchCard")
	if m.FetchCardFn != nil {
		return m.FetchCardFn(ctx, mobileNumber)
	}
	return m.Card, m.DefaultError
}

// UpdateCard implements the CardService.UpdateCard method
func (m *MockCardService) UpdateCard(ctx context.Context, dto domain.CardDTO) (bool, error) {
	m.record("UpdateCard")
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, dto)
	}
	return m.DefaultError == nil, m.DefaultError
}

// DeleteCard implements the CardService.DeleteCard method
func (m *MockCardService) DeleteCard(ctx context.Context, mobileNumber string) (bool, error) {
	m.record("DeleteCard")
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, mobileNumber)
	}
	return m.DefaultError == nil, m.DefaultError
}
