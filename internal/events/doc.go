// Package events carries card lifecycle notifications from the card service
// to interested handlers.
//
// The service emits a CardEvent after every successful create, update and
// delete. Handlers run synchronously in registration order; a failing handler
// never undoes the write that produced the event.
package events
