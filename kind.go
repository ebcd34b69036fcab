package binmeta

// Kind tags a value-tree node with its wire representation. The ordinals are
// fixed by the container format and must not be reordered.
type Kind uint8

const (
	KindNone Kind = iota // 0
	KindBool
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindVector2
	KindVector3
	KindVector4
	KindMatrix44
	KindColor
	KindString
	KindHash
	KindWadChunkLink
	KindContainer
	KindUnorderedContainer
	KindStruct
	KindEmbedded
	KindObjectLink
	KindOptional
	KindMap
	KindBitBool // 26
)

// KindObject tags top-level addressable nodes. It is deliberately outside the
// property tag ordinals: the container format addresses objects through its
// own framing, never as a property value.
const KindObject Kind = 0xff

var kindNames = [...]string{
	KindNone:               "none",
	KindBool:               "bool",
	KindI8:                 "i8",
	KindU8:                 "u8",
	KindI16:                "i16",
	KindU16:                "u16",
	KindI32:                "i32",
	KindU32:                "u32",
	KindI64:                "i64",
	KindU64:                "u64",
	KindF32:                "f32",
	KindVector2:            "vec2",
	KindVector3:            "vec3",
	KindVector4:            "vec4",
	KindMatrix44:           "mat4",
	KindColor:              "color",
	KindString:             "string",
	KindHash:               "hash",
	KindWadChunkLink:       "wadlink",
	KindContainer:          "container",
	KindUnorderedContainer: "unordered",
	KindStruct:             "struct",
	KindEmbedded:           "embedded",
	KindObjectLink:         "objectlink",
	KindOptional:           "optional",
	KindMap:                "map",
	KindBitBool:            "bitbool",
}

// String returns the stable lowercase name of the kind. The names are part of
// the JSON projection format.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	if k == KindObject {
		return "object"
	}
	return "unknown"
}

// KindFromString maps a kind name back to its tag.
func KindFromString(s string) (Kind, bool) {
	if s == "object" {
		return KindObject, true
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// IsValid reports whether k is one of the defined tags.
func (k Kind) IsValid() bool { return int(k) < len(kindNames) || k == KindObject }

// IsPrimitive reports whether k is a scalar wire tag, i.e. a node of this kind
// carries a single value and no children.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindContainer, KindUnorderedContainer, KindStruct, KindEmbedded,
		KindOptional, KindMap, KindNone, KindObject:
		return false
	}
	return k.IsValid()
}

// ValidMapKey reports whether k may appear as a map key tag. The container
// format restricts keys to fixed-width integers, strings and hashes; floats,
// vectors, matrices, colors, links, bools and nested values are rejected.
func (k Kind) ValidMapKey() bool {
	switch k {
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32,
		KindI64, KindU64, KindString, KindHash:
		return true
	}
	return false
}
