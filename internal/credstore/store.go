// Package credstore holds the single bearer credential the portal acts with.
// It is a dumb slot: no validation happens here, and the token it returns may
// be expired or garbage. Decoding and expiry checks belong to the session
// resolver.
package credstore

import "context"

// SlotKey names the one durable slot. It matches the key the browser client
// used in local storage, so the two can share a mental model.
const SlotKey = "authToken"

// Store is the credential slot contract. Get returns the empty string when no
// credential is stored; that is the only "absent" signal.
type Store interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
