package hashes

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Dict maps name hashes back to the names that produced them. Hashes in the
// wire format are one-way; a dictionary of known names is the only way to
// render them readably.
type Dict struct {
	names map[uint32]string
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{names: make(map[uint32]string)}
}

// Add hashes name with Lower, records the mapping and returns the hash.
// Colliding names keep the first registration.
func (d *Dict) Add(name string) uint32 {
	h := Lower(name)
	if _, ok := d.names[h]; !ok {
		d.names[h] = name
	}
	return h
}

// Name returns the known name for h, if any.
func (d *Dict) Name(h uint32) (string, bool) {
	n, ok := d.names[h]
	return n, ok
}

// Format renders h as its known name, falling back to 0x%08x.
func (d *Dict) Format(h uint32) string {
	if d != nil {
		if n, ok := d.names[h]; ok {
			return n
		}
	}
	return fmt.Sprintf("0x%08x", h)
}

// Len returns the number of known names.
func (d *Dict) Len() int { return len(d.names) }

// LoadYAML reads a dictionary from a YAML sequence of names:
//
//	- Champion
//	- mAbilityPower
//	- Characters/Ahri/Root
func LoadYAML(r io.Reader) (*Dict, error) {
	var names []string
	if err := yaml.NewDecoder(r).Decode(&names); err != nil {
		return nil, fmt.Errorf("hashes: load dictionary: %w", err)
	}
	d := NewDict()
	for _, n := range names {
		d.Add(n)
	}
	return d, nil
}

// LoadYAMLFile reads a dictionary from a YAML file on disk.
func LoadYAMLFile(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}
