// Package storage writes the rendered summary image to its sinks: a local
// directory that always receives it and, optionally, an S3-compatible
// bucket that mirrors it.
package storage

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for object keys that would escape the sink root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Sink receives rendered images.
type Sink interface {
	// Name labels the sink in logs.
	Name() string

	// Put stores data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Ping checks that the sink is reachable.
	Ping(ctx context.Context) error
}
