package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StoreKind identifies which backing store owns a record.
type StoreKind int

const (
	// KindDurable records live in the durable document store.
	KindDurable StoreKind = iota
	// KindSeed records are demonstration items seeded into the session
	// store at startup.
	KindSeed
	// KindSession records were created in the session store at runtime.
	KindSession
)

// String returns the store kind name.
func (k StoreKind) String() string {
	switch k {
	case KindSeed:
		return "seed"
	case KindSession:
		return "session"
	default:
		return "durable"
	}
}

const (
	seedMarker    = 'm'
	sessionMarker = 's'
)

// TaggedID is a store-routed identifier: a store kind plus an opaque key.
// The wire form keeps the marker convention of the original identifiers
// (m<key> for seed items, s<key> for session items, bare ObjectID hex for
// durable records) so a mutation can be routed to the right store from
// the identifier alone, without a lookup round-trip. The kind is derived
// once at parse time; routing decisions never re-inspect the string.
type TaggedID struct {
	Kind StoreKind
	Key  string
}

// NewSessionID returns a fresh session-store identifier. Keys are UUIDs
// rather than timestamps so concurrent creates cannot collide.
func NewSessionID() TaggedID {
	return TaggedID{Kind: KindSession, Key: uuid.NewString()}
}

// NewSeedID returns a seed identifier with the given key.
func NewSeedID(key string) TaggedID {
	return TaggedID{Kind: KindSeed, Key: key}
}

// NewDurableID returns a durable-store identifier with the given key.
func NewDurableID(key string) TaggedID {
	return TaggedID{Kind: KindDurable, Key: key}
}

// ParseID derives a TaggedID from its wire form. A leading seed or
// session marker selects the session store; anything else (including
// ObjectID hex, whose alphabet contains neither marker) is durable.
func ParseID(s string) TaggedID {
	if s == "" {
		return TaggedID{}
	}
	switch s[0] {
	case seedMarker:
		return TaggedID{Kind: KindSeed, Key: s[1:]}
	case sessionMarker:
		return TaggedID{Kind: KindSession, Key: s[1:]}
	default:
		return TaggedID{Kind: KindDurable, Key: s}
	}
}

// Fallback reports whether the identifier targets the session store.
func (id TaggedID) Fallback() bool {
	return id.Kind == KindSeed || id.Kind == KindSession
}

// IsZero reports whether the identifier is unset.
func (id TaggedID) IsZero() bool {
	return id.Key == ""
}

// String renders the wire form of the identifier.
func (id TaggedID) String() string {
	switch id.Kind {
	case KindSeed:
		return string(seedMarker) + id.Key
	case KindSession:
		return string(sessionMarker) + id.Key
	default:
		return id.Key
	}
}

// MarshalJSON renders the identifier as its wire string.
func (id TaggedID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON parses the identifier from its wire string.
func (id *TaggedID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid identifier: %w", err)
	}
	*id = ParseID(s)
	return nil
}
