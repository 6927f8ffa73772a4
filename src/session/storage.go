package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a client has nothing stored under a key
var ErrNotFound = errors.New("session key not found")

// Storage is the per-client key/value store behind a Context.
// Values are opaque strings (the JSON the browser shell would have kept locally).
type Storage interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID, key string) error
	Health(ctx context.Context) error
}
