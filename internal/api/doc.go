// Package api handles incoming HTTP requests for the card endpoints, request
// validation, and response formatting. It acts as an adapter between external
// clients and service.CardService, translating HTTP concerns to card operations
// and service errors back to status codes.
package api
