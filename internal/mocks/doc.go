// Package mocks provides function-field mocks of the service interfaces for
// handler and middleware tests.
//
// Each mock falls back to its default fields when the matching Fn field is nil:
//
//	svc := &mocks.MockCardService{
//	    FetchCardFn: func(ctx context.Context, mobileNumber string) (*domain.CardDTO, error) {
//	        return nil, service.NewNotFoundError("Card", "mobileNumber", mobileNumber)
//	    },
//	}
package mocks
