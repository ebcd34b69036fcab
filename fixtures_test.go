package binmeta_test

import (
	"github.com/LoL-Fantome/binmeta"
	"github.com/LoL-Fantome/binmeta/hashes"
)

// Fixture classes. Each mirrors one shape the codec has to handle; the
// registry below wires them all so individual tests can share one setup.

type item struct {
	Name  string
	Count int32
}

func (*item) MetaClassHash() uint32 { return hashes.Lower("Item") }

type record struct {
	Count int32
	Label string
}

func (*record) MetaClassHash() uint32 { return hashes.Lower("Record") }

type holder struct {
	Child *item
	Extra binmeta.Embed[item]
}

func (*holder) MetaClassHash() uint32 { return hashes.Lower("Holder") }

type bag struct {
	Tags  []binmeta.Hash
	Items []*item
}

func (*bag) MetaClassHash() uint32 { return hashes.Lower("Bag") }

type statBlock struct {
	Values []float32
	ByHash map[binmeta.Hash]float32
	ByName map[string]int32
}

func (*statBlock) MetaClassHash() uint32 { return hashes.Lower("StatBlock") }

type tuning struct {
	Scale binmeta.Opt[float32]
	Name  string
}

func (*tuning) MetaClassHash() uint32 { return hashes.Lower("Tuning") }

type linker struct {
	Next   binmeta.ObjectLink
	Skin   binmeta.WadChunkLink
	Hidden binmeta.BitBool
}

func (*linker) MetaClassHash() uint32 { return hashes.Lower("Linker") }

type geo struct {
	Pos   binmeta.Vector3
	UV    binmeta.Vector2
	Rot   binmeta.Vector4
	World binmeta.Matrix4x4
	Tint  binmeta.Color
}

func (*geo) MetaClassHash() uint32 { return hashes.Lower("Geo") }

type wide struct {
	B   bool
	I8  int8
	U8  uint8
	I16 int16
	U16 uint16
	I32 int32
	U32 uint32
	I64 int64
	U64 uint64
	F   float32
	S   string
	H   binmeta.Hash
}

func (*wide) MetaClassHash() uint32 { return hashes.Lower("Wide") }

// chain is self-referential through a Struct property, so a cyclic instance
// graph can only terminate via the depth guard.
type chain struct {
	Next *chain
}

func (*chain) MetaClassHash() uint32 { return hashes.Lower("Chain") }

// orphan is deliberately never registered.
type orphan struct {
	X int32
}

func (*orphan) MetaClassHash() uint32 { return hashes.Lower("Orphan") }

func newTestRegistry() *binmeta.Registry {
	reg := binmeta.NewRegistry()

	reg.Register(binmeta.Describe[item, *item]("Item",
		binmeta.Field("Name", func(o *item) *string { return &o.Name }, binmeta.String()),
		binmeta.Field("Count", func(o *item) *int32 { return &o.Count }, binmeta.I32()),
	))

	reg.Register(binmeta.Describe[record, *record]("Record",
		binmeta.Field("Count", func(o *record) *int32 { return &o.Count }, binmeta.I32()),
		binmeta.Field("Label", func(o *record) *string { return &o.Label }, binmeta.String()),
	))

	reg.Register(binmeta.Describe[holder, *holder]("Holder",
		binmeta.Field("Child", func(o *holder) **item { return &o.Child }, binmeta.StructOf[item, *item]()),
		binmeta.Field("Extra", func(o *holder) *binmeta.Embed[item] { return &o.Extra }, binmeta.EmbeddedOf[item, *item]()),
	))

	reg.Register(binmeta.Describe[bag, *bag]("Bag",
		binmeta.Field("Tags", func(o *bag) *[]binmeta.Hash { return &o.Tags }, binmeta.ContainerOf(binmeta.HashOf())),
		binmeta.Field("Items", func(o *bag) *[]*item { return &o.Items }, binmeta.ContainerOf(binmeta.StructOf[item, *item]())),
	))

	reg.Register(binmeta.Describe[statBlock, *statBlock]("StatBlock",
		binmeta.Field("Values", func(o *statBlock) *[]float32 { return &o.Values }, binmeta.UnorderedOf(binmeta.F32())),
		binmeta.Field("ByHash", func(o *statBlock) *map[binmeta.Hash]float32 { return &o.ByHash }, binmeta.MapOf(binmeta.HashOf(), binmeta.F32())),
		binmeta.Field("ByName", func(o *statBlock) *map[string]int32 { return &o.ByName }, binmeta.MapOf(binmeta.String(), binmeta.I32())),
	))

	reg.Register(binmeta.Describe[tuning, *tuning]("Tuning",
		binmeta.Field("Scale", func(o *tuning) *binmeta.Opt[float32] { return &o.Scale }, binmeta.OptionalOf(binmeta.F32())),
		binmeta.Field("Name", func(o *tuning) *string { return &o.Name }, binmeta.String()),
	))

	reg.Register(binmeta.Describe[linker, *linker]("Linker",
		binmeta.Field("Next", func(o *linker) *binmeta.ObjectLink { return &o.Next }, binmeta.ObjectLinkOf()),
		binmeta.Field("Skin", func(o *linker) *binmeta.WadChunkLink { return &o.Skin }, binmeta.WadChunkLinkOf()),
		binmeta.Field("Hidden", func(o *linker) *binmeta.BitBool { return &o.Hidden }, binmeta.BitBoolOf()),
	))

	reg.Register(binmeta.Describe[geo, *geo]("Geo",
		binmeta.Field("Pos", func(o *geo) *binmeta.Vector3 { return &o.Pos }, binmeta.Vector3Of()),
		binmeta.Field("UV", func(o *geo) *binmeta.Vector2 { return &o.UV }, binmeta.Vector2Of()),
		binmeta.Field("Rot", func(o *geo) *binmeta.Vector4 { return &o.Rot }, binmeta.Vector4Of()),
		binmeta.Field("World", func(o *geo) *binmeta.Matrix4x4 { return &o.World }, binmeta.Matrix4x4Of()),
		binmeta.Field("Tint", func(o *geo) *binmeta.Color { return &o.Tint }, binmeta.ColorOf()),
	))

	reg.Register(binmeta.Describe[wide, *wide]("Wide",
		binmeta.Field("B", func(o *wide) *bool { return &o.B }, binmeta.Bool()),
		binmeta.Field("I8", func(o *wide) *int8 { return &o.I8 }, binmeta.I8()),
		binmeta.Field("U8", func(o *wide) *uint8 { return &o.U8 }, binmeta.U8()),
		binmeta.Field("I16", func(o *wide) *int16 { return &o.I16 }, binmeta.I16()),
		binmeta.Field("U16", func(o *wide) *uint16 { return &o.U16 }, binmeta.U16()),
		binmeta.Field("I32", func(o *wide) *int32 { return &o.I32 }, binmeta.I32()),
		binmeta.Field("U32", func(o *wide) *uint32 { return &o.U32 }, binmeta.U32()),
		binmeta.Field("I64", func(o *wide) *int64 { return &o.I64 }, binmeta.I64()),
		binmeta.Field("U64", func(o *wide) *uint64 { return &o.U64 }, binmeta.U64()),
		binmeta.Field("F", func(o *wide) *float32 { return &o.F }, binmeta.F32()),
		binmeta.Field("S", func(o *wide) *string { return &o.S }, binmeta.String()),
		binmeta.Field("H", func(o *wide) *binmeta.Hash { return &o.H }, binmeta.HashOf()),
	))

	reg.Register(binmeta.Describe[chain, *chain]("Chain",
		binmeta.Field("Next", func(o *chain) **chain { return &o.Next }, binmeta.StructOf[chain, *chain]()),
	))

	return reg
}

func prop(name string, n *binmeta.Node) binmeta.Property {
	return binmeta.Property{NameHash: hashes.Lower(name), Value: n}
}
