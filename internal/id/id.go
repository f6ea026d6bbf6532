package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind is the entity an identifier belongs to.
type Kind string

const (
	KindParticipant Kind = "p"
	KindTransaction Kind = "tx"
)

// Generator produces a fresh identifier of the given kind.
type Generator func(kind Kind) string

// New returns an identifier like "tx_0b6f8c1e-...". Random v4 UUIDs keep ids
// valid after removals, unlike positional indices.
func New(kind Kind) string {
	return Format(kind, uuid.NewString())
}

// Format joins a kind prefix and a raw identifier.
func Format(kind Kind, raw string) string {
	return string(kind) + "_" + raw
}

// Parse splits "tx_<uuid>" into its kind and UUID.
func Parse(s string) (Kind, uuid.UUID, error) {
	prefix, raw, ok := strings.Cut(s, "_")
	if !ok {
		return "", uuid.Nil, fmt.Errorf("invalid id format: %q", s)
	}

	kind := Kind(prefix)
	switch kind {
	case KindParticipant, KindTransaction:
	default:
		return "", uuid.Nil, fmt.Errorf("unknown id kind %q in %q", prefix, s)
	}

	u, err := uuid.Parse(raw)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("invalid uuid in id %q: %w", s, err)
	}
	return kind, u, nil
}

// Sequential returns a deterministic Generator ("p_1", "tx_2", ...) for tests
// and reproducible output. The counter is shared across kinds.
func Sequential() Generator {
	var n int
	return func(kind Kind) string {
		n++
		return Format(kind, fmt.Sprint(n))
	}
}
