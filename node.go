package binmeta

import (
	"fmt"
	"strings"
)

// Node is one value in the property tree exchanged with the container format.
// It is a tagged union: the kind selects which of the unexported fields is
// meaningful, and the typed constructors/accessors below are the only way in
// and out. Nodes are pure data; decode/encode behavior lives in the codec.
type Node struct {
	kind Kind

	boolVal bool
	intVal  int64
	uintVal uint64
	f32Val  float32
	vecVal  Vector4
	matVal  Matrix4x4
	colVal  Color
	strVal  string

	elemKind Kind // Container/UnorderedContainer element, Optional inner
	keyKind  Kind // Map key
	valKind  Kind // Map value

	items   []*Node   // Container/UnorderedContainer children
	pairs   []MapPair // Map entries, in wire order
	present bool      // Optional presence flag
	inner   *Node     // Optional inner value when present

	classHash uint32 // Struct/Embedded/Object
	pathHash  uint32 // Object only
	props     []Property
}

// MapPair is one key/value entry of a Map node.
type MapPair struct {
	Key   *Node
	Value *Node
}

// Property is one named entry of a Struct/Embedded/Object property set.
type Property struct {
	NameHash uint32
	Value    *Node
}

// Kind returns the node's wire tag.
func (n *Node) Kind() Kind { return n.kind }

// ---- constructors ----

func NewNone() *Node { return &Node{kind: KindNone} }

func NewBool(v bool) *Node  { return &Node{kind: KindBool, boolVal: v} }
func NewI8(v int8) *Node    { return &Node{kind: KindI8, intVal: int64(v)} }
func NewU8(v uint8) *Node   { return &Node{kind: KindU8, uintVal: uint64(v)} }
func NewI16(v int16) *Node  { return &Node{kind: KindI16, intVal: int64(v)} }
func NewU16(v uint16) *Node { return &Node{kind: KindU16, uintVal: uint64(v)} }
func NewI32(v int32) *Node  { return &Node{kind: KindI32, intVal: int64(v)} }
func NewU32(v uint32) *Node { return &Node{kind: KindU32, uintVal: uint64(v)} }
func NewI64(v int64) *Node  { return &Node{kind: KindI64, intVal: v} }
func NewU64(v uint64) *Node { return &Node{kind: KindU64, uintVal: v} }
func NewF32(v float32) *Node {
	return &Node{kind: KindF32, f32Val: v}
}

func NewVector2(v Vector2) *Node {
	return &Node{kind: KindVector2, vecVal: Vector4{X: v.X, Y: v.Y}}
}

func NewVector3(v Vector3) *Node {
	return &Node{kind: KindVector3, vecVal: Vector4{X: v.X, Y: v.Y, Z: v.Z}}
}

func NewVector4(v Vector4) *Node { return &Node{kind: KindVector4, vecVal: v} }

func NewMatrix4x4(v Matrix4x4) *Node { return &Node{kind: KindMatrix44, matVal: v} }

func NewColor(v Color) *Node { return &Node{kind: KindColor, colVal: v} }

func NewString(v string) *Node { return &Node{kind: KindString, strVal: v} }

func NewHash(v Hash) *Node {
	return &Node{kind: KindHash, uintVal: uint64(v)}
}

func NewWadChunkLink(v WadChunkLink) *Node {
	return &Node{kind: KindWadChunkLink, uintVal: uint64(v)}
}

func NewObjectLink(v ObjectLink) *Node {
	return &Node{kind: KindObjectLink, uintVal: uint64(v)}
}

func NewBitBool(v BitBool) *Node { return &Node{kind: KindBitBool, boolVal: bool(v)} }

// NewContainer builds an ordered homogeneous sequence node. Element order is
// semantically meaningful.
func NewContainer(elem Kind, items ...*Node) *Node {
	return &Node{kind: KindContainer, elemKind: elem, items: items}
}

// NewUnorderedContainer builds a sequence node whose order the source does not
// guarantee to preserve.
func NewUnorderedContainer(elem Kind, items ...*Node) *Node {
	return &Node{kind: KindUnorderedContainer, elemKind: elem, items: items}
}

// NewMap builds a map node from key/value pairs in wire order.
func NewMap(key, value Kind, pairs ...MapPair) *Node {
	return &Node{kind: KindMap, keyKind: key, valKind: value, pairs: pairs}
}

// NewOptionalSome builds a present optional wrapping inner.
func NewOptionalSome(elem Kind, innerNode *Node) *Node {
	return &Node{kind: KindOptional, elemKind: elem, present: true, inner: innerNode}
}

// NewOptionalNone builds an absent optional of the declared inner kind.
func NewOptionalNone(elem Kind) *Node {
	return &Node{kind: KindOptional, elemKind: elem}
}

// NewStruct builds a nested typed value without identity.
func NewStruct(classHash uint32, props ...Property) *Node {
	return &Node{kind: KindStruct, classHash: classHash, props: props}
}

// NewEmbedded builds a nested typed value carried in the embedded wrapper.
// Wire shape is identical to Struct; the tag keeps the distinction.
func NewEmbedded(classHash uint32, props ...Property) *Node {
	return &Node{kind: KindEmbedded, classHash: classHash, props: props}
}

// NewObject builds a top-level addressable node. Only Object nodes carry a
// path hash and participate in link resolution.
func NewObject(pathHash, classHash uint32, props ...Property) *Node {
	return &Node{kind: KindObject, pathHash: pathHash, classHash: classHash, props: props}
}

// ---- scalar accessors (comma-ok; ok is false on a kind mismatch) ----

func (n *Node) AsBool() (bool, bool) { return n.boolVal, n.kind == KindBool }

func (n *Node) AsI8() (int8, bool)    { return int8(n.intVal), n.kind == KindI8 }
func (n *Node) AsU8() (uint8, bool)   { return uint8(n.uintVal), n.kind == KindU8 }
func (n *Node) AsI16() (int16, bool)  { return int16(n.intVal), n.kind == KindI16 }
func (n *Node) AsU16() (uint16, bool) { return uint16(n.uintVal), n.kind == KindU16 }
func (n *Node) AsI32() (int32, bool)  { return int32(n.intVal), n.kind == KindI32 }
func (n *Node) AsU32() (uint32, bool) { return uint32(n.uintVal), n.kind == KindU32 }
func (n *Node) AsI64() (int64, bool)  { return n.intVal, n.kind == KindI64 }
func (n *Node) AsU64() (uint64, bool) { return n.uintVal, n.kind == KindU64 }

func (n *Node) AsF32() (float32, bool) { return n.f32Val, n.kind == KindF32 }

func (n *Node) AsVector2() (Vector2, bool) {
	return Vector2{X: n.vecVal.X, Y: n.vecVal.Y}, n.kind == KindVector2
}

func (n *Node) AsVector3() (Vector3, bool) {
	return Vector3{X: n.vecVal.X, Y: n.vecVal.Y, Z: n.vecVal.Z}, n.kind == KindVector3
}

func (n *Node) AsVector4() (Vector4, bool) { return n.vecVal, n.kind == KindVector4 }

func (n *Node) AsMatrix4x4() (Matrix4x4, bool) { return n.matVal, n.kind == KindMatrix44 }

func (n *Node) AsColor() (Color, bool) { return n.colVal, n.kind == KindColor }

func (n *Node) AsString() (string, bool) { return n.strVal, n.kind == KindString }

func (n *Node) AsHash() (Hash, bool) { return Hash(n.uintVal), n.kind == KindHash }

func (n *Node) AsWadChunkLink() (WadChunkLink, bool) {
	return WadChunkLink(n.uintVal), n.kind == KindWadChunkLink
}

func (n *Node) AsObjectLink() (ObjectLink, bool) {
	return ObjectLink(n.uintVal), n.kind == KindObjectLink
}

func (n *Node) AsBitBool() (BitBool, bool) { return BitBool(n.boolVal), n.kind == KindBitBool }

// ---- composite accessors ----

// ElemKind returns the declared element kind of a Container,
// UnorderedContainer or Optional node.
func (n *Node) ElemKind() Kind { return n.elemKind }

// KeyKind returns the declared key kind of a Map node.
func (n *Node) KeyKind() Kind { return n.keyKind }

// ValueKind returns the declared value kind of a Map node.
func (n *Node) ValueKind() Kind { return n.valKind }

// Items returns the children of a Container/UnorderedContainer node.
func (n *Node) Items() []*Node { return n.items }

// Pairs returns the entries of a Map node in wire order.
func (n *Node) Pairs() []MapPair { return n.pairs }

// OptionalPresent reports whether an Optional node carries a value.
func (n *Node) OptionalPresent() bool { return n.kind == KindOptional && n.present }

// OptionalInner returns the inner node of a present Optional, nil otherwise.
func (n *Node) OptionalInner() *Node {
	if n.kind == KindOptional && n.present {
		return n.inner
	}
	return nil
}

// ClassHash returns the class hash of a Struct/Embedded/Object node.
func (n *Node) ClassHash() uint32 { return n.classHash }

// PathHash returns the path hash of an Object node.
func (n *Node) PathHash() uint32 { return n.pathHash }

// Props returns the property set of a Struct/Embedded/Object node.
func (n *Node) Props() []Property { return n.props }

// Prop looks up a property by name hash.
func (n *Node) Prop(nameHash uint32) (*Node, bool) {
	for _, p := range n.props {
		if p.NameHash == nameHash {
			return p.Value, true
		}
	}
	return nil, false
}

// Equal reports deep structural equality. Sequences, map entries and property
// sets compare in order; UnorderedContainer is not order-normalized.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindNone:
		return true
	case KindBool, KindBitBool:
		return n.boolVal == o.boolVal
	case KindI8, KindI16, KindI32, KindI64:
		return n.intVal == o.intVal
	case KindU8, KindU16, KindU32, KindU64, KindHash, KindWadChunkLink, KindObjectLink:
		return n.uintVal == o.uintVal
	case KindF32:
		return n.f32Val == o.f32Val
	case KindVector2, KindVector3, KindVector4:
		return n.vecVal == o.vecVal
	case KindMatrix44:
		return n.matVal == o.matVal
	case KindColor:
		return n.colVal == o.colVal
	case KindString:
		return n.strVal == o.strVal
	case KindContainer, KindUnorderedContainer:
		if n.elemKind != o.elemKind || len(n.items) != len(o.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindOptional:
		if n.elemKind != o.elemKind || n.present != o.present {
			return false
		}
		if !n.present {
			return true
		}
		return n.inner.Equal(o.inner)
	case KindMap:
		if n.keyKind != o.keyKind || n.valKind != o.valKind || len(n.pairs) != len(o.pairs) {
			return false
		}
		for i := range n.pairs {
			if !n.pairs[i].Key.Equal(o.pairs[i].Key) || !n.pairs[i].Value.Equal(o.pairs[i].Value) {
				return false
			}
		}
		return true
	case KindStruct, KindEmbedded, KindObject:
		if n.classHash != o.classHash || n.pathHash != o.pathHash || len(n.props) != len(o.props) {
			return false
		}
		for i := range n.props {
			if n.props[i].NameHash != o.props[i].NameHash || !n.props[i].Value.Equal(o.props[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a compact single-line form for diagnostics.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindNone:
		return "none"
	case KindBool, KindBitBool:
		return fmt.Sprintf("%s(%t)", n.kind, n.boolVal)
	case KindI8, KindI16, KindI32, KindI64:
		return fmt.Sprintf("%s(%d)", n.kind, n.intVal)
	case KindU8, KindU16, KindU32, KindU64:
		return fmt.Sprintf("%s(%d)", n.kind, n.uintVal)
	case KindHash, KindWadChunkLink, KindObjectLink:
		return fmt.Sprintf("%s(0x%08x)", n.kind, n.uintVal)
	case KindF32:
		return fmt.Sprintf("f32(%g)", n.f32Val)
	case KindVector2:
		return fmt.Sprintf("vec2(%g, %g)", n.vecVal.X, n.vecVal.Y)
	case KindVector3:
		return fmt.Sprintf("vec3(%g, %g, %g)", n.vecVal.X, n.vecVal.Y, n.vecVal.Z)
	case KindVector4:
		return fmt.Sprintf("vec4(%g, %g, %g, %g)", n.vecVal.X, n.vecVal.Y, n.vecVal.Z, n.vecVal.W)
	case KindMatrix44:
		return "mat4{...}"
	case KindColor:
		return fmt.Sprintf("color(%d, %d, %d, %d)", n.colVal.R, n.colVal.G, n.colVal.B, n.colVal.A)
	case KindString:
		return fmt.Sprintf("string(%q)", n.strVal)
	case KindContainer, KindUnorderedContainer:
		return fmt.Sprintf("%s<%s>[%d]", n.kind, n.elemKind, len(n.items))
	case KindOptional:
		if !n.present {
			return fmt.Sprintf("optional<%s>(none)", n.elemKind)
		}
		return fmt.Sprintf("optional<%s>(%s)", n.elemKind, n.inner)
	case KindMap:
		return fmt.Sprintf("map<%s, %s>[%d]", n.keyKind, n.valKind, len(n.pairs))
	case KindStruct, KindEmbedded:
		return fmt.Sprintf("%s(0x%08x){%d props}", n.kind, n.classHash, len(n.props))
	case KindObject:
		var b strings.Builder
		fmt.Fprintf(&b, "object(path=0x%08x, class=0x%08x){%d props}", n.pathHash, n.classHash, len(n.props))
		return b.String()
	}
	return "unknown"
}
