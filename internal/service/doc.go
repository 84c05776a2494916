// Package service contains the card lifecycle use cases: issuing a card for a
// mobile number, fetching it, updating its limits and balances, and deleting it.
//
// The service depends only on the store.CardStore interface and a
// generation.CardNumberGenerator. It converts store failures into the error
// taxonomy declared in errors.go, which the API layer maps onto HTTP statuses:
//
//   - NotFoundError (errors.Is ErrNotFound) when no card matches the lookup key
//   - CardAlreadyExistsError (errors.Is ErrCardAlreadyExists) on a second create
//     for the same mobile number
//   - CardServiceError for everything unexpected, wrapping the cause
package service
