// Package hashes provides the stable 32-bit name hash used to key classes,
// properties and object paths, plus a reverse dictionary for rendering known
// hashes back to names in tooling output.
package hashes

const (
	offsetBasis = 2166136261
	prime       = 16777619
)

// Lower returns the 32-bit FNV-1a hash of the ASCII-lowercased input. All
// class, property and path hashes in the container format are produced this
// way, so lookups are case-insensitive by construction.
func Lower(s string) uint32 {
	h := uint32(offsetBasis)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h ^= uint32(c)
		h *= prime
	}
	return h
}
