package binmeta

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Property appeared in the wire node.
	PresenceDefaultApplied                      // Property was missing; the default value was kept.
	PresenceDropped                             // Property was present but degraded to absence
	// (unknown nested type, illegal map key kind, wire/declared kind mismatch,
	// or a duplicate map key under the Warn policy).
)

// PresenceMap maps property paths to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the materialized value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}
