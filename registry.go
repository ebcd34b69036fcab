package binmeta

import (
	"fmt"

	"github.com/LoL-Fantome/binmeta/hashes"
)

// TypeDescriptor is the static schema of one data class: its class hash and
// the ordered property set. Descriptors are registered once during process
// setup and are read-only afterwards.
type TypeDescriptor struct {
	Name      string
	ClassHash uint32
	New       func() Class
	Props     []PropertyDescriptor
}

// PropertyDescriptor binds one property name hash to its declared wire kind
// and the typed access closures built by Field. Wire properties without a
// descriptor are not part of the schema and are ignored in both directions.
type PropertyDescriptor struct {
	Name     string
	NameHash uint32
	Kind     Kind

	decode func(st *decodeState, obj Class, n *Node) (assigned bool, err error)
	encode func(st *encodeState, obj Class) (*Node, error) // nil node omits the property
}

// Registry maps class hashes to type descriptors. Register all types during
// startup; afterwards the registry is immutable and safe for concurrent
// lookups across any number of Environments.
type Registry struct {
	types map[uint32]*TypeDescriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[uint32]*TypeDescriptor)}
}

// Register associates td's class hash with td. Each concrete type is expected
// to be registered exactly once; re-registering a hash with a different
// descriptor set panics, since it can only be a startup wiring bug.
func (r *Registry) Register(td *TypeDescriptor) {
	if prev, ok := r.types[td.ClassHash]; ok && prev != td {
		panic(fmt.Sprintf("binmeta: class 0x%08x registered twice (%q and %q)", td.ClassHash, prev.Name, td.Name))
	}
	r.types[td.ClassHash] = td
}

// Lookup returns the descriptor registered for classHash. Absence is a normal
// outcome for nested types and must not be treated as fatal by callers that
// can degrade (see the decoder's Struct/Embedded rules).
func (r *Registry) Lookup(classHash uint32) (*TypeDescriptor, bool) {
	td, ok := r.types[classHash]
	return td, ok
}

// Describe builds the descriptor for T. The class hash is derived from the
// lowercased name; a mismatch with P's MetaClassHash is a wiring bug and
// panics at startup.
func Describe[T any, P interface {
	*T
	Class
}](name string, props ...PropertyDescriptor) *TypeDescriptor {
	h := hashes.Lower(name)
	var zero P
	if got := zero.MetaClassHash(); got != h {
		panic(fmt.Sprintf("binmeta: %q hashes to 0x%08x but MetaClassHash returns 0x%08x", name, h, got))
	}
	return &TypeDescriptor{
		Name:      name,
		ClassHash: h,
		New:       func() Class { return P(new(T)) },
		Props:     props,
	}
}
