// Package domain contains the card record, its external representation and
// the pure mapping between them. It has no dependencies on storage or transport.
package domain
