package binmeta

// Class marks a typed data class participating in decode/encode. The hash must
// be the stable hash of the lowercased class name (hashes.Lower) and the method
// must be callable on a nil receiver, so implementations return a constant:
//
//	func (*Champion) MetaClassHash() uint32 { return hashes.Lower("Champion") }
type Class interface {
	MetaClassHash() uint32
}

// Opt is the typed representation of a wire Optional. The zero value is
// absent; an absent Opt is the "unset" sentinel that encode omits entirely.
type Opt[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] { return Opt[T]{Value: v, Valid: true} }

// Get returns the inner value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.Value, o.Valid }

// Embed carries a nested typed value that the wire tags as Embedded. It exists
// so consumers can tell an embedded value apart from a plain struct even
// though the wire shape is identical. A nil Value is the unset sentinel.
type Embed[T any] struct {
	Value *T
}
