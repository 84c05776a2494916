// Package postgres provides the PostgreSQL implementation of store.CardStore
// together with the embedded goose migrations that create its schema.
// Both the pgx stdlib driver ("pgx") and lib/pq ("postgres") are registered,
// and driver errors from either are mapped onto the store error taxonomy.
package postgres
