// Package id defines TypeID-based identifiers for pipeline runs and
// webhook deliveries.
//
// IDs are prefix-qualified and K-sortable (UUIDv7-based), formatted as
// "prefix_suffix", so log lines and status output from one run correlate.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the record type encoded in a TypeID.
type Prefix string

// Record prefixes.
const (
	PrefixRun      Prefix = "run"
	PrefixDelivery Prefix = "dlv"
)

// ID identifies a run or a delivery. The zero value is the nil ID and
// encodes as an empty string.
//
//nolint:recvcheck // UnmarshalText needs a pointer receiver.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// New generates an ID with the given prefix. It panics on an invalid
// prefix, which is a programming error.
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return ID{inner: tid, valid: true}
}

// NewRunID generates a pipeline run ID.
func NewRunID() ID { return New(PrefixRun) }

// NewDeliveryID generates a webhook delivery ID.
func NewDeliveryID() ID { return New(PrefixDelivery) }

// String returns "prefix_suffix", or "" for the nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// Prefix returns the record prefix.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}
	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this is the zero ID.
func (i ID) IsNil() bool { return !i.valid }

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so status payloads
// carrying run and delivery IDs decode on the client side.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = ID{}
		return nil
	}
	tid, err := typeid.Parse(string(data))
	if err != nil {
		return fmt.Errorf("id: parse %q: %w", data, err)
	}
	*i = ID{inner: tid, valid: true}
	return nil
}
