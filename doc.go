// Package binmeta converts between the schema-less, hash-keyed binary
// property tree used by the game's asset containers and statically declared
// Go data classes.
//
// The wire side is a tagged value tree (Node); the typed side is any struct
// registered with a TypeDescriptor built from adapter/Field builders. An
// Environment scopes one decode/encode session: it resolves class hashes to
// descriptors and deduplicates Objects by path hash so that cross-object
// links resolve to one instance.
//
// The codec is deliberately tolerant of schema drift: wire properties unknown
// to the target type, nested values of unregistered classes and maps with
// illegal key kinds all degrade to absence instead of failing the enclosing
// decode. Identity and root-level schema errors are hard failures.
package binmeta
