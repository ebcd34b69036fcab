package binmeta

// Environment is the session-scoped state threaded through every decode and
// encode: schema lookup plus the object-identity registry used for link
// resolution and deduplication. Create one Environment per file or per batch
// that shares cross-references, and discard it with the session.
//
// An Environment has no internal locking. One Environment belongs to one
// logical thread of control; run independent sessions on separate
// Environments. The Registry it wraps is immutable and may be shared freely.
type Environment struct {
	registry *Registry
	objects  map[uint32]Class
}

// NewEnvironment wraps reg in a fresh session with an empty object registry.
func NewEnvironment(reg *Registry) *Environment {
	return &Environment{
		registry: reg,
		objects:  make(map[uint32]Class),
	}
}

// ResolveType delegates to the schema registry. Absence is non-fatal for
// nested types.
func (e *Environment) ResolveType(classHash uint32) (*TypeDescriptor, bool) {
	return e.registry.Lookup(classHash)
}

// RegisterObject binds pathHash to obj if the path is unbound and returns the
// instance that ends up registered. A path hash denotes at most one instance
// per Environment, so an existing binding wins and is returned unchanged.
func (e *Environment) RegisterObject(pathHash uint32, obj Class) Class {
	if existing, ok := e.objects[pathHash]; ok {
		return existing
	}
	e.objects[pathHash] = obj
	return obj
}

// Registered returns the instance bound to pathHash, if any.
func (e *Environment) Registered(pathHash uint32) (Class, bool) {
	obj, ok := e.objects[pathHash]
	return obj, ok
}
