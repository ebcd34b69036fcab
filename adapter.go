package binmeta

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/LoL-Fantome/binmeta/hashes"
)

// Adapter pairs a declared wire kind with the decode/encode logic for one
// typed value shape. Adapters compose: ContainerOf, MapOf, OptionalOf,
// StructOf and EmbeddedOf wrap inner adapters, so arbitrarily nested declared
// types are built from the same small set of parts. The dispatch happens once,
// at registration, instead of per call.
type Adapter[V any] struct {
	kind Kind

	// decode converts a wire node into V. ok=false degrades the value to
	// absence (forward compatibility); only identity/schema/depth problems
	// surface as errors.
	decode func(st *decodeState, n *Node) (v V, ok bool, err error)

	// encode converts V into a wire node. A nil node drops the value.
	encode func(st *encodeState, v V) (*Node, error)

	// omit reports the unset sentinel. Field skips the whole property when it
	// returns true; the encode closure is not consulted.
	omit func(v V) bool
}

// Kind returns the declared wire tag the adapter encodes to.
func (a Adapter[V]) Kind() Kind { return a.kind }

func scalar[V any](k Kind, from func(*Node) (V, bool), to func(V) *Node) Adapter[V] {
	return Adapter[V]{
		kind: k,
		decode: func(st *decodeState, n *Node) (V, bool, error) {
			v, ok := from(n)
			if !ok {
				var zero V
				return zero, false, nil
			}
			return v, true, nil
		},
		encode: func(st *encodeState, v V) (*Node, error) { return to(v), nil },
	}
}

// ---- scalar adapters ----

func Bool() Adapter[bool]     { return scalar(KindBool, (*Node).AsBool, NewBool) }
func I8() Adapter[int8]       { return scalar(KindI8, (*Node).AsI8, NewI8) }
func U8() Adapter[uint8]      { return scalar(KindU8, (*Node).AsU8, NewU8) }
func I16() Adapter[int16]     { return scalar(KindI16, (*Node).AsI16, NewI16) }
func U16() Adapter[uint16]    { return scalar(KindU16, (*Node).AsU16, NewU16) }
func I32() Adapter[int32]     { return scalar(KindI32, (*Node).AsI32, NewI32) }
func U32() Adapter[uint32]    { return scalar(KindU32, (*Node).AsU32, NewU32) }
func I64() Adapter[int64]     { return scalar(KindI64, (*Node).AsI64, NewI64) }
func U64() Adapter[uint64]    { return scalar(KindU64, (*Node).AsU64, NewU64) }
func F32() Adapter[float32]   { return scalar(KindF32, (*Node).AsF32, NewF32) }
func String() Adapter[string] { return scalar(KindString, (*Node).AsString, NewString) }

// The Of suffix keeps these from colliding with the value type names.

func HashOf() Adapter[Hash] { return scalar(KindHash, (*Node).AsHash, NewHash) }

func WadChunkLinkOf() Adapter[WadChunkLink] {
	return scalar(KindWadChunkLink, (*Node).AsWadChunkLink, NewWadChunkLink)
}

func ObjectLinkOf() Adapter[ObjectLink] {
	return scalar(KindObjectLink, (*Node).AsObjectLink, NewObjectLink)
}

func BitBoolOf() Adapter[BitBool] { return scalar(KindBitBool, (*Node).AsBitBool, NewBitBool) }

func Vector2Of() Adapter[Vector2] { return scalar(KindVector2, (*Node).AsVector2, NewVector2) }
func Vector3Of() Adapter[Vector3] { return scalar(KindVector3, (*Node).AsVector3, NewVector3) }
func Vector4Of() Adapter[Vector4] { return scalar(KindVector4, (*Node).AsVector4, NewVector4) }

func Matrix4x4Of() Adapter[Matrix4x4] {
	return scalar(KindMatrix44, (*Node).AsMatrix4x4, NewMatrix4x4)
}

func ColorOf() Adapter[Color] { return scalar(KindColor, (*Node).AsColor, NewColor) }

// ---- combinators ----

// ContainerOf declares an ordered homogeneous sequence of elem. Element order
// round-trips.
func ContainerOf[V any](elem Adapter[V]) Adapter[[]V] {
	return sequenceOf(KindContainer, elem)
}

// UnorderedOf declares a sequence whose order the source does not guarantee.
// Decoding preserves whatever order the node carries, but callers must not
// rely on it.
func UnorderedOf[V any](elem Adapter[V]) Adapter[[]V] {
	return sequenceOf(KindUnorderedContainer, elem)
}

func sequenceOf[V any](k Kind, elem Adapter[V]) Adapter[[]V] {
	return Adapter[[]V]{
		kind: k,
		omit: func(vs []V) bool { return vs == nil },
		decode: func(st *decodeState, n *Node) ([]V, bool, error) {
			if n.Kind() != k || n.ElemKind() != elem.kind {
				return nil, false, nil
			}
			if err := st.enter(); err != nil {
				return nil, false, err
			}
			defer st.leave()
			items := n.Items()
			out := make([]V, 0, len(items))
			for i, it := range items {
				st.push(strconv.Itoa(i))
				v, ok, err := elem.decode(st, it)
				if err != nil {
					st.pop()
					return nil, false, err
				}
				if !ok {
					// Elements of unknown nested classes drop out; the rest
					// of the sequence survives.
					st.mark(PresenceDropped)
					st.pop()
					continue
				}
				st.pop()
				out = append(out, v)
			}
			return out, true, nil
		},
		encode: func(st *encodeState, vs []V) (*Node, error) {
			if err := st.enter(); err != nil {
				return nil, err
			}
			defer st.leave()
			items := make([]*Node, 0, len(vs))
			for _, v := range vs {
				n, err := elem.encode(st, v)
				if err != nil {
					return nil, err
				}
				if n == nil {
					continue
				}
				items = append(items, n)
			}
			return &Node{kind: k, elemKind: elem.kind, items: items}, nil
		},
	}
}

// MapOf declares a map from key to value. The key adapter must use one of the
// permitted key kinds; anything else is a wiring bug and panics at startup.
// Encoded entries are ordered by key so output is deterministic.
func MapOf[K comparable, V any](key Adapter[K], value Adapter[V]) Adapter[map[K]V] {
	if !key.kind.ValidMapKey() {
		panic(fmt.Sprintf("binmeta: %s is not a valid map key kind", key.kind))
	}
	return Adapter[map[K]V]{
		kind: KindMap,
		omit: func(m map[K]V) bool { return m == nil },
		decode: func(st *decodeState, n *Node) (map[K]V, bool, error) {
			// A key tag outside the permitted set, or any key/value tag drift
			// from the declared kinds, degrades the whole map to absence.
			if n.Kind() != KindMap || n.KeyKind() != key.kind || n.ValueKind() != value.kind {
				return nil, false, nil
			}
			if err := st.enter(); err != nil {
				return nil, false, err
			}
			defer st.leave()
			pairs := n.Pairs()
			out := make(map[K]V, len(pairs))
			// Duplicate detection tracks every key seen on the wire, including
			// keys whose value degraded and never reached the output map.
			seen := make(map[K]struct{}, len(pairs))
			for i, pair := range pairs {
				st.push(strconv.Itoa(i))
				k, ok, err := key.decode(st, pair.Key)
				if err != nil {
					st.pop()
					return nil, false, err
				}
				if !ok {
					st.mark(PresenceDropped)
					st.pop()
					continue
				}
				if _, dup := seen[k]; dup {
					switch st.opt.OnDuplicateKey {
					case Error:
						err := Issues{{Path: st.at(), Code: CodeDuplicateKey,
							Message: fmt.Sprintf("map key %v occurs more than once", k)}}
						st.pop()
						return nil, false, err
					case Warn:
						st.mark(PresenceDropped)
					}
					// First occurrence wins.
					st.pop()
					continue
				}
				seen[k] = struct{}{}
				v, ok, err := value.decode(st, pair.Value)
				if err != nil {
					st.pop()
					return nil, false, err
				}
				if !ok {
					st.mark(PresenceDropped)
					st.pop()
					continue
				}
				st.pop()
				out[k] = v
			}
			return out, true, nil
		},
		encode: func(st *encodeState, m map[K]V) (*Node, error) {
			if err := st.enter(); err != nil {
				return nil, err
			}
			defer st.leave()
			pairs := make([]MapPair, 0, len(m))
			for k, v := range m {
				kn, err := key.encode(st, k)
				if err != nil {
					return nil, err
				}
				vn, err := value.encode(st, v)
				if err != nil {
					return nil, err
				}
				if kn == nil || vn == nil {
					continue
				}
				pairs = append(pairs, MapPair{Key: kn, Value: vn})
			}
			sort.Slice(pairs, func(i, j int) bool { return lessKeyNode(pairs[i].Key, pairs[j].Key) })
			return NewMap(key.kind, value.kind, pairs...), nil
		},
	}
}

// lessKeyNode orders two key nodes of the same permitted key kind.
func lessKeyNode(a, b *Node) bool {
	switch a.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return a.intVal < b.intVal
	case KindString:
		return a.strVal < b.strVal
	default: // u8..u64, hash
		return a.uintVal < b.uintVal
	}
}

// OptionalOf declares a wire Optional of inner, carried as Opt on the typed
// side. An absent Opt at property level omits the property entirely; inside a
// container it encodes as an optional node with the presence flag clear.
func OptionalOf[V any](inner Adapter[V]) Adapter[Opt[V]] {
	return Adapter[Opt[V]]{
		kind: KindOptional,
		omit: func(o Opt[V]) bool { return !o.Valid },
		decode: func(st *decodeState, n *Node) (Opt[V], bool, error) {
			if n.Kind() != KindOptional || n.ElemKind() != inner.kind {
				return Opt[V]{}, false, nil
			}
			if !n.OptionalPresent() {
				return Opt[V]{}, true, nil
			}
			v, ok, err := inner.decode(st, n.OptionalInner())
			if err != nil {
				return Opt[V]{}, false, err
			}
			if !ok {
				// A present flag with an undecodable inner value is a
				// degradation, not a faithful absence.
				return Opt[V]{}, false, nil
			}
			return Some(v), true, nil
		},
		encode: func(st *encodeState, o Opt[V]) (*Node, error) {
			if !o.Valid {
				return NewOptionalNone(inner.kind), nil
			}
			n, err := inner.encode(st, o.Value)
			if err != nil {
				return nil, err
			}
			if n == nil {
				return NewOptionalNone(inner.kind), nil
			}
			return NewOptionalSome(inner.kind, n), nil
		},
	}
}

// StructOf declares a nested typed value without identity. Every occurrence
// decodes fresh; nothing is registered in the Environment. A wire class hash
// with no registered descriptor degrades to absence, but a hash that resolves
// to a different class than the declared one is a schema inconsistency and
// fails the decode.
func StructOf[T any, P interface {
	*T
	Class
}]() Adapter[P] {
	var zero P
	declared := zero.MetaClassHash()
	return Adapter[P]{
		kind: KindStruct,
		omit: func(v P) bool { return v == nil },
		decode: func(st *decodeState, n *Node) (P, bool, error) {
			if n.Kind() != KindStruct {
				return nil, false, nil
			}
			return decodeTypedBody[T, P](st, n, declared)
		},
		encode: func(st *encodeState, v P) (*Node, error) {
			if v == nil {
				return nil, nil
			}
			props, err := encodeTypedBody(st, declared, v)
			if err != nil {
				return nil, err
			}
			return NewStruct(declared, props...), nil
		},
	}
}

// EmbeddedOf declares a nested typed value carried in the Embed wrapper. The
// resolution rules match StructOf; only the wire tag and the typed carrier
// differ.
func EmbeddedOf[T any, P interface {
	*T
	Class
}]() Adapter[Embed[T]] {
	var zero P
	declared := zero.MetaClassHash()
	return Adapter[Embed[T]]{
		kind: KindEmbedded,
		omit: func(v Embed[T]) bool { return v.Value == nil },
		decode: func(st *decodeState, n *Node) (Embed[T], bool, error) {
			if n.Kind() != KindEmbedded {
				return Embed[T]{}, false, nil
			}
			v, ok, err := decodeTypedBody[T, P](st, n, declared)
			if err != nil || !ok {
				return Embed[T]{}, false, err
			}
			return Embed[T]{Value: (*T)(v)}, true, nil
		},
		encode: func(st *encodeState, v Embed[T]) (*Node, error) {
			if v.Value == nil {
				return nil, nil
			}
			props, err := encodeTypedBody(st, declared, P(v.Value))
			if err != nil {
				return nil, err
			}
			return NewEmbedded(declared, props...), nil
		},
	}
}

func decodeTypedBody[T any, P interface {
	*T
	Class
}](st *decodeState, n *Node, declared uint32) (P, bool, error) {
	td, ok := st.env.ResolveType(n.ClassHash())
	if !ok {
		// Unknown nested classes are dropped, not fatal; newer schemas keep
		// round-tripping through older tooling.
		return nil, false, nil
	}
	if td.ClassHash != declared {
		return nil, false, Issues{{Path: st.at(), Code: CodeClassMismatch,
			Message: fmt.Sprintf("nested value is %s (0x%08x) where class 0x%08x is declared", td.Name, td.ClassHash, declared)}}
	}
	if err := st.enter(); err != nil {
		return nil, false, err
	}
	defer st.leave()
	out := P(new(T))
	if err := decodeProps(st, td, out, n); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func encodeTypedBody(st *encodeState, declared uint32, obj Class) ([]Property, error) {
	td, ok := st.env.ResolveType(declared)
	if !ok {
		return nil, Issues{{Path: st.at(), Code: CodeSchemaMissing,
			Message: fmt.Sprintf("no descriptor registered for class 0x%08x", declared)}}
	}
	if err := st.enter(); err != nil {
		return nil, err
	}
	defer st.leave()
	return encodeProps(st, td, obj)
}

// Field binds one struct field to a declared wire kind through a pointer
// accessor. The accessor keeps everything statically typed; there is no
// reflection anywhere in the codec.
func Field[O any, V any](name string, field func(*O) *V, ad Adapter[V]) PropertyDescriptor {
	h := hashes.Lower(name)
	return PropertyDescriptor{
		Name:     name,
		NameHash: h,
		Kind:     ad.kind,
		decode: func(st *decodeState, obj Class, n *Node) (bool, error) {
			o, ok := any(obj).(*O)
			if !ok {
				return false, Issues{{Path: st.at(), Code: CodeClassMismatch,
					Message: fmt.Sprintf("descriptor for %T applied to %T", (*O)(nil), obj)}}
			}
			v, ok, err := ad.decode(st, n)
			if err != nil || !ok {
				return false, err
			}
			*field(o) = v
			return true, nil
		},
		encode: func(st *encodeState, obj Class) (*Node, error) {
			o, ok := any(obj).(*O)
			if !ok {
				return nil, Issues{{Path: st.at(), Code: CodeClassMismatch,
					Message: fmt.Sprintf("descriptor for %T applied to %T", (*O)(nil), obj)}}
			}
			v := *field(o)
			if ad.omit != nil && ad.omit(v) {
				return nil, nil
			}
			return ad.encode(st, v)
		},
	}
}
