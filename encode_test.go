package binmeta_test

import (
	"testing"

	"github.com/LoL-Fantome/binmeta"
	"github.com/LoL-Fantome/binmeta/hashes"
)

func TestEncode_DeclaredKinds(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.Encode(env, 0x100, &record{Count: 42, Label: "x"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if node.Kind() != binmeta.KindObject || node.ClassHash() != hashes.Lower("Record") || node.PathHash() != 0x100 {
		t.Fatalf("node = %s", node)
	}
	count, ok := node.Prop(hashes.Lower("Count"))
	if !ok {
		t.Fatalf("Count property missing")
	}
	if v, ok := count.AsI32(); !ok || v != 42 {
		t.Fatalf("Count = %s", count)
	}
	label, ok := node.Prop(hashes.Lower("Label"))
	if !ok {
		t.Fatalf("Label property missing")
	}
	if v, _ := label.AsString(); v != "x" {
		t.Fatalf("Label = %s", label)
	}
}

func TestEncode_OmitsAbsentOptional(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.Encode(env, 0x200, &tuning{Name: "slow"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// The absent optional is omitted entirely, not written as a default.
	if _, ok := node.Prop(hashes.Lower("Scale")); ok {
		t.Fatalf("Scale should be omitted: %s", node)
	}
	if _, ok := node.Prop(hashes.Lower("Name")); !ok {
		t.Fatalf("Name should be present")
	}

	node, err = binmeta.Encode(env, 0x201, &tuning{Scale: binmeta.Some[float32](1.5)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	scale, ok := node.Prop(hashes.Lower("Scale"))
	if !ok || !scale.OptionalPresent() {
		t.Fatalf("Scale should be a present optional: %s", scale)
	}
	if v, _ := scale.OptionalInner().AsF32(); v != 1.5 {
		t.Fatalf("Scale inner = %s", scale.OptionalInner())
	}
}

func TestEncode_OmitsUnsetSentinels(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.Encode(env, 0x300, &holder{})
	if err != nil {
		t.Fatalf("Encode holder: %v", err)
	}
	if len(node.Props()) != 0 {
		t.Fatalf("nil Child and Extra should be omitted: %s", node)
	}

	node, err = binmeta.Encode(env, 0x301, &bag{})
	if err != nil {
		t.Fatalf("Encode bag: %v", err)
	}
	if len(node.Props()) != 0 {
		t.Fatalf("nil slices should be omitted: %s", node)
	}
}

func TestEncode_EmptySliceIsNotNil(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.Encode(env, 0x400, &bag{Tags: []binmeta.Hash{}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tags, ok := node.Prop(hashes.Lower("Tags"))
	if !ok {
		t.Fatalf("an empty (non-nil) slice should encode as an empty container")
	}
	if tags.Kind() != binmeta.KindContainer || len(tags.Items()) != 0 {
		t.Fatalf("Tags = %s", tags)
	}
}

func TestEncode_NestedStructAndEmbedded(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.Encode(env, 0x500, &holder{
		Child: &item{Name: "sword", Count: 2},
		Extra: binmeta.Embed[item]{Value: &item{Name: "shield"}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	child, ok := node.Prop(hashes.Lower("Child"))
	if !ok || child.Kind() != binmeta.KindStruct || child.ClassHash() != hashes.Lower("Item") {
		t.Fatalf("Child = %s", child)
	}
	extra, ok := node.Prop(hashes.Lower("Extra"))
	if !ok || extra.Kind() != binmeta.KindEmbedded {
		t.Fatalf("Extra = %s", extra)
	}
	name, _ := extra.Prop(hashes.Lower("Name"))
	if v, _ := name.AsString(); v != "shield" {
		t.Fatalf("Extra.Name = %s", name)
	}
}

func TestEncode_SchemaMissingNestedIsFatal(t *testing.T) {
	// A registry that knows Holder but not Item.
	reg := binmeta.NewRegistry()
	reg.Register(binmeta.Describe[holder, *holder]("Holder",
		binmeta.Field("Child", func(o *holder) **item { return &o.Child }, binmeta.StructOf[item, *item]()),
	))
	env := binmeta.NewEnvironment(reg)

	_, err := binmeta.Encode(env, 0x600, &holder{Child: &item{Name: "x"}})
	iss, ok := binmeta.AsIssues(err)
	if !ok || iss[0].Code != binmeta.CodeSchemaMissing {
		t.Fatalf("expected schema_missing, got %v", err)
	}
	if iss[0].Path != "/Child" {
		t.Fatalf("Path = %q, want /Child", iss[0].Path)
	}
}

func TestEncode_SchemaMissingRootIsFatal(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	_, err := binmeta.Encode(env, 0x700, &orphan{X: 1})
	iss, ok := binmeta.AsIssues(err)
	if !ok || iss[0].Code != binmeta.CodeSchemaMissing {
		t.Fatalf("expected schema_missing, got %v", err)
	}
}

func TestEncode_MapOrderIsDeterministic(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())
	sb := &statBlock{ByHash: map[binmeta.Hash]float32{30: 3, 10: 1, 20: 2}}

	node, err := binmeta.Encode(env, 0x800, sb)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, _ := node.Prop(hashes.Lower("ByHash"))
	pairs := m.Pairs()
	if len(pairs) != 3 {
		t.Fatalf("pairs = %d", len(pairs))
	}
	for i, want := range []binmeta.Hash{10, 20, 30} {
		if k, _ := pairs[i].Key.AsHash(); k != want {
			t.Fatalf("pairs[%d].Key = %s, want %d", i, pairs[i].Key, want)
		}
	}
}

func TestEncodePath(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	node, err := binmeta.EncodePath(env, "Characters/Ahri/Records/Root", &record{Count: 1})
	if err != nil {
		t.Fatalf("EncodePath: %v", err)
	}
	if node.PathHash() != hashes.Lower("Characters/Ahri/Records/Root") {
		t.Fatalf("PathHash = 0x%08x", node.PathHash())
	}
}

func TestEncode_CyclicStructGraph(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())
	a := &chain{}
	a.Next = a

	_, err := binmeta.Encode(env, 0x900, a)
	iss, ok := binmeta.AsIssues(err)
	if !ok || iss[0].Code != binmeta.CodeMaxDepth {
		t.Fatalf("expected max_depth, got %v", err)
	}
}

func TestEncode_NilInstance(t *testing.T) {
	env := binmeta.NewEnvironment(newTestRegistry())

	_, err := binmeta.Encode(env, 0xA00, nil)
	iss, ok := binmeta.AsIssues(err)
	if !ok || iss[0].Code != binmeta.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}
