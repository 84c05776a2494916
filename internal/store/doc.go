// Package store defines the card persistence port implemented by the memory,
// postgres and redis-cached backends, along with the sentinel errors and audit
// stamping rules every backend shares.
package store
