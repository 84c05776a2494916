// Package redis provides the optional Redis-backed read-through cache that sits
// in front of a store.CardStore.
//
// Cards are cached by mobile number as JSON. A second key maps the card ID back
// to its mobile number so DeleteByID can evict the right entry. Any Redis failure
// is logged and the call falls through to the underlying store; the cache never
// turns a successful store operation into an error.
//
// Every write increments EpochKey. A fill after a cache miss remembers the epoch
// it saw before reading the store and commits under WATCH only if the epoch is
// unchanged, so a fill racing a delete or update never restores the old card.
//
// EventPublisher forwards card lifecycle events to a pub/sub channel so other
// services can follow card changes without polling.
package redis
