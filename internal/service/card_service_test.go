package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/generation"
	"github.com/phrazzld/cards-api/internal/platform/memory"
	"github.com/phrazzld/cards-api/internal/platform/metrics"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testMobile = "1234567890"
	testNumber = "567890123456"
)

func newTestService(t *testing.T, numbers ...string) (CardService, *memory.CardStore) {
	t.Helper()
	cardStore := memory.NewCardStore(nil)
	svc, err := NewCardService(cardStore, generation.NewSequenceGenerator(numbers...), nil)
	require.NoError(t, err)
	return svc, cardStore
}

func TestNewCardService(t *testing.T) {
	tests := []struct {
		name      string
		store     store.CardStore
		generator generation.CardNumberGenerator
		errorMsg  string
	}{
		{
			name:      "nil store",
			store:     nil,
			generator: generation.NewSequenceGenerator(),
			errorMsg:  "cardStore",
		},
		{
			name:      "nil generator",
			store:     memory.NewCardStore(nil),
			generator: nil,
			errorMsg:  "generator",
		},
		{
			name:      "all dependencies provided",
			store:     memory.NewCardStore(nil),
			generator: generation.NewSequenceGenerator(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewCardService(tt.store, tt.generator, nil)
			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Nil(t, svc)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestCreateCard_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testNumber)

	require.NoError(t, svc.CreateCard(ctx, testMobile))

	got, err := svc.FetchCard(ctx, testMobile)
	require.NoError(t, err)
	assert.Equal(t, &domain.CardDTO{
		MobileNumber:    testMobile,
		CardNumber:      testNumber,
		CardType:        domain.DefaultCardType,
		TotalLimit:      domain.DefaultTotalLimit,
		AmountUsed:      0,
		AvailableAmount: domain.DefaultTotalLimit,
	}, got)
}

func TestCreateCard_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	svc, cardStore := newTestService(t, testNumber, "222222222222")

	require.NoError(t, svc.CreateCard(ctx, testMobile))

	err := svc.CreateCard(ctx, testMobile)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardAlreadyExists)

	var existsErr *CardAlreadyExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, testMobile, existsErr.MobileNumber)
	assert.Equal(t, "Card already registered with given mobileNumber 1234567890", err.Error())
	assert.Equal(t, 1, cardStore.Len())
}

func TestCreateCard_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	svc, cardStore := newTestService(t, testNumber, testNumber, "222222222222")

	require.NoError(t, svc.CreateCard(ctx, testMobile))
	require.NoError(t, svc.CreateCard(ctx, "0987654321"))

	got, err := svc.FetchCard(ctx, "0987654321")
	require.NoError(t, err)
	assert.Equal(t, "222222222222", got.CardNumber)
	assert.Equal(t, 2, cardStore.Len())
}

func TestCreateCard_Exhausted(t *testing.T) {
	ctx := context.Background()
	cardStore := memory.NewCardStore(nil)
	gen := generation.NewSequenceGenerator(testNumber, testNumber, testNumber, testNumber)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	svc, err := NewCardService(cardStore, gen, nil, WithMaxCardNumberAttempts(3), WithMetrics(m))
	require.NoError(t, err)

	require.NoError(t, svc.CreateCard(ctx, testMobile))

	err = svc.CreateCard(ctx, "0987654321")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCardNumberExhausted)
	var svcErr *CardServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_card", svcErr.Operation)

	assert.Equal(t, 1, cardStore.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CardsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CardNumberCollisions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreate, metrics.OutcomeError)))
}

func TestFetchCard_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.FetchCard(context.Background(), testMobile)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundError{Resource: "Card", Field: "mobileNumber", Value: testMobile}, *nf)
	assert.Equal(t, "Card not found with the given input data mobileNumber : '1234567890'", err.Error())
}

func TestUpdateCard_ChangesOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	svc, cardStore := newTestService(t, testNumber)
	require.NoError(t, svc.CreateCard(ctx, testMobile))

	before, err := cardStore.FindByCardNumber(ctx, testNumber)
	require.NoError(t, err)

	updated, err := svc.UpdateCard(ctx, domain.CardDTO{
		MobileNumber:    "5555555555",
		CardNumber:      testNumber,
		CardType:        "Debit Card",
		TotalLimit:      50000,
		AmountUsed:      1000,
		AvailableAmount: 49000,
	})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := svc.FetchCard(ctx, testMobile)
	require.NoError(t, err)
	assert.Equal(t, testMobile, got.MobileNumber)
	assert.Equal(t, testNumber, got.CardNumber)
	assert.Equal(t, "Debit Card", got.CardType)
	assert.Equal(t, 50000, got.TotalLimit)
	assert.Equal(t, 1000, got.AmountUsed)
	assert.Equal(t, 49000, got.AvailableAmount)

	after, err := cardStore.FindByCardNumber(ctx, testNumber)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Audit.CreatedAt, after.Audit.CreatedAt)

	_, err = svc.FetchCard(ctx, "5555555555")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCard_NotFound(t *testing.T) {
	svc, cardStore := newTestService(t)

	updated, err := svc.UpdateCard(context.Background(), domain.CardDTO{
		MobileNumber:    testMobile,
		CardNumber:      "999999999999",
		CardType:        "Credit Card",
		TotalLimit:      100,
		AvailableAmount: 100,
	})
	assert.False(t, updated)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cardNumber", nf.Field)
	assert.Equal(t, "999999999999", nf.Value)
	assert.Equal(t, 0, cardStore.Len())
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()
	svc, cardStore := newTestService(t, testNumber)
	require.NoError(t, svc.CreateCard(ctx, testMobile))

	deleted, err := svc.DeleteCard(ctx, testMobile)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, cardStore.Len())

	_, err = svc.FetchCard(ctx, testMobile)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = svc.DeleteCard(ctx, testMobile)
	assert.False(t, deleted)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "mobileNumber", nf.Field)
}

func TestCreateCard_StoreFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	t.Run("lookup failure", func(t *testing.T) {
		cardStore := new(MockCardStore)
		gen := new(MockGenerator)
		cardStore.On("FindByMobileNumber", mock.Anything, testMobile).Return(nil, dbErr)

		svc, err := NewCardService(cardStore, gen, nil)
		require.NoError(t, err)

		err = svc.CreateCard(ctx, testMobile)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrCardAlreadyExists)
		gen.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("generator failure", func(t *testing.T) {
		cardStore := new(MockCardStore)
		gen := new(MockGenerator)
		cardStore.On("FindByMobileNumber", mock.Anything, testMobile).Return(nil, store.ErrCardNotFound)
		gen.On("Generate", mock.Anything).Return("", generation.ErrGenerationFailed)

		svc, err := NewCardService(cardStore, gen, nil)
		require.NoError(t, err)

		err = svc.CreateCard(ctx, testMobile)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		cardStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate card number on save is retried", func(t *testing.T) {
		cardStore := new(MockCardStore)
		gen := new(MockGenerator)
		cardStore.On("FindByMobileNumber", mock.Anything, testMobile).Return(nil, store.ErrCardNotFound)
		cardStore.On("FindByCardNumber", mock.Anything, mock.Anything).Return(nil, store.ErrCardNotFound)
		gen.On("Generate", mock.Anything).Return(testNumber, nil).Once()
		gen.On("Generate", mock.Anything).Return("222222222222", nil).Once()
		cardStore.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Card) bool {
			return c.CardNumber == testNumber
		})).Return(nil, store.ErrDuplicateCardNumber)
		cardStore.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Card) bool {
			return c.CardNumber == "222222222222"
		})).Return(&domain.Card{ID: 7, MobileNumber: testMobile, CardNumber: "222222222222"}, nil)

		svc, err := NewCardService(cardStore, gen, nil)
		require.NoError(t, err)

		require.NoError(t, svc.CreateCard(ctx, testMobile))
		cardStore.AssertNumberOfCalls(t, "Save", 2)
		gen.AssertExpectations(t)
	})

	t.Run("duplicate mobile number on save", func(t *testing.T) {
		cardStore := new(MockCardStore)
		gen := new(MockGenerator)
		cardStore.On("FindByMobileNumber", mock.Anything, testMobile).Return(nil, store.ErrCardNotFound)
		cardStore.On("FindByCardNumber", mock.Anything, testNumber).Return(nil, store.ErrCardNotFound)
		gen.On("Generate", mock.Anything).Return(testNumber, nil)
		cardStore.On("Save", mock.Anything, mock.Anything).Return(nil, store.ErrDuplicateMobileNumber)

		svc, err := NewCardService(cardStore, gen, nil)
		require.NoError(t, err)

		err = svc.CreateCard(ctx, testMobile)
		assert.ErrorIs(t, err, ErrCardAlreadyExists)
	})

	t.Run("save failure", func(t *testing.T) {
		cardStore := new(MockCardStore)
		gen := new(MockGenerator)
		cardStore.On("FindByMobileNumber", mock.Anything, testMobile).Return(nil, store.ErrCardNotFound)
		cardStore.On("FindByCardNumber", mock.Anything, testNumber).Return(nil, store.ErrCardNotFound)
		gen.On("Generate", mock.Anything).Return(testNumber, nil)
		cardStore.On("Save", mock.Anything, mock.Anything).Return(nil, dbErr)

		svc, err := NewCardService(cardStore, gen, nil)
		require.NoError(t, err)

		err = svc.CreateCard(ctx, testMobile)
		var svcErr *CardServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestOtherOperations_StoreFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	cardStore := new(MockCardStore)
	cardStore.On("FindByMobileNumber", mock.Anything, mock.Anything).Return(nil, dbErr)
	cardStore.On("FindByCardNumber", mock.Anything, mock.Anything).Return(nil, dbErr)

	svc, err := NewCardService(cardStore, new(MockGenerator), nil)
	require.NoError(t, err)

	_, err = svc.FetchCard(ctx, testMobile)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateCard(ctx, domain.CardDTO{CardNumber: testNumber})
	assert.False(t, updated)
	assert.ErrorIs(t, err, dbErr)

	deleted, err := svc.DeleteCard(ctx, testMobile)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, dbErr)
}

func TestDeleteCard_ConcurrentDelete(t *testing.T) {
	cardStore := new(MockCardStore)
	cardStore.On("FindByMobileNumber", mock.Anything, testMobile).
		Return(&domain.Card{ID: 3, MobileNumber: testMobile, CardNumber: testNumber}, nil)
	cardStore.On("DeleteByID", mock.Anything, int64(3)).Return(store.ErrCardNotFound)

	svc, err := NewCardService(cardStore, new(MockGenerator), nil)
	require.NoError(t, err)

	deleted, err := svc.DeleteCard(context.Background(), testMobile)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestErrorTypes(t *testing.T) {
	nf := NewNotFoundError("Card", "cardNumber", testNumber)
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.False(t, errors.Is(nf, ErrCardAlreadyExists))

	wrapped := NewCardServiceError("fetch_card", "failed", nil)
	assert.Equal(t, "card service fetch_card failed: failed", wrapped.Error())
	assert.Nil(t, wrapped.Unwrap())
}
