// Package binjson projects property trees to and from a lossless JSON form.
// The projection exists for tooling: diffing trees, inspecting files and
// keeping fixtures in version control. It is not the container wire format.
//
// Kinds render by name, hashes as 0x%08x strings, 64-bit integers as JSON
// numbers, and property sets as arrays so that wire order round-trips.
package binjson

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/LoL-Fantome/binmeta"
)

type wireNode struct {
	Kind string `json:"kind"`

	Bool  *bool     `json:"bool,omitempty"`
	Int   *int64    `json:"int,omitempty"`
	Uint  *uint64   `json:"uint,omitempty"`
	F32   *float32  `json:"f32,omitempty"`
	Str   *string   `json:"str,omitempty"`
	Hash  string    `json:"hash,omitempty"` // hash, wadlink, objectlink
	Vec   []float32 `json:"vec,omitempty"`
	Mat   []float32 `json:"mat,omitempty"` // 16 values, row-major
	Color []int     `json:"color,omitempty"`

	Elem    string      `json:"elem,omitempty"`
	Key     string      `json:"key,omitempty"`
	Val     string      `json:"val,omitempty"`
	Items   []*wireNode `json:"items,omitempty"`
	Entries []wireEntry `json:"entries,omitempty"`
	Present *bool       `json:"present,omitempty"`
	Inner   *wireNode   `json:"inner,omitempty"`

	Path  string     `json:"path,omitempty"`
	Class string     `json:"class,omitempty"`
	Props []wireProp `json:"props,omitempty"`
}

type wireEntry struct {
	Key   *wireNode `json:"key"`
	Value *wireNode `json:"value"`
}

type wireProp struct {
	Name  string    `json:"name"` // 0x%08x
	Value *wireNode `json:"value"`
}

// Marshal renders a property tree as compact JSON.
func Marshal(n *binmeta.Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalIndent renders a property tree as indented JSON.
func MarshalIndent(n *binmeta.Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(w, "", "  ")
}

// Unmarshal rebuilds a property tree from its JSON projection.
func Unmarshal(data []byte) (*binmeta.Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("binjson: %w", err)
	}
	return fromWire(&w)
}

func hexHash(h uint32) string { return fmt.Sprintf("0x%08x", h) }

func parseHash(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("binjson: bad hash %q: %w", s, err)
	}
	return uint32(v), nil
}

func toWire(n *binmeta.Node) (*wireNode, error) {
	if n == nil {
		return nil, fmt.Errorf("binjson: nil node")
	}
	w := &wireNode{Kind: n.Kind().String()}
	switch n.Kind() {
	case binmeta.KindNone:
	case binmeta.KindBool:
		v, _ := n.AsBool()
		w.Bool = &v
	case binmeta.KindBitBool:
		v, _ := n.AsBitBool()
		b := bool(v)
		w.Bool = &b
	case binmeta.KindI8:
		v, _ := n.AsI8()
		i := int64(v)
		w.Int = &i
	case binmeta.KindI16:
		v, _ := n.AsI16()
		i := int64(v)
		w.Int = &i
	case binmeta.KindI32:
		v, _ := n.AsI32()
		i := int64(v)
		w.Int = &i
	case binmeta.KindI64:
		v, _ := n.AsI64()
		w.Int = &v
	case binmeta.KindU8:
		v, _ := n.AsU8()
		u := uint64(v)
		w.Uint = &u
	case binmeta.KindU16:
		v, _ := n.AsU16()
		u := uint64(v)
		w.Uint = &u
	case binmeta.KindU32:
		v, _ := n.AsU32()
		u := uint64(v)
		w.Uint = &u
	case binmeta.KindU64:
		v, _ := n.AsU64()
		w.Uint = &v
	case binmeta.KindF32:
		v, _ := n.AsF32()
		w.F32 = &v
	case binmeta.KindString:
		v, _ := n.AsString()
		w.Str = &v
	case binmeta.KindHash:
		v, _ := n.AsHash()
		w.Hash = hexHash(uint32(v))
	case binmeta.KindWadChunkLink:
		v, _ := n.AsWadChunkLink()
		w.Hash = hexHash(uint32(v))
	case binmeta.KindObjectLink:
		v, _ := n.AsObjectLink()
		w.Hash = hexHash(uint32(v))
	case binmeta.KindVector2:
		v, _ := n.AsVector2()
		w.Vec = []float32{v.X, v.Y}
	case binmeta.KindVector3:
		v, _ := n.AsVector3()
		w.Vec = []float32{v.X, v.Y, v.Z}
	case binmeta.KindVector4:
		v, _ := n.AsVector4()
		w.Vec = []float32{v.X, v.Y, v.Z, v.W}
	case binmeta.KindMatrix44:
		v, _ := n.AsMatrix4x4()
		w.Mat = make([]float32, 0, 16)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				w.Mat = append(w.Mat, v[r][c])
			}
		}
	case binmeta.KindColor:
		v, _ := n.AsColor()
		w.Color = []int{int(v.R), int(v.G), int(v.B), int(v.A)}
	case binmeta.KindContainer, binmeta.KindUnorderedContainer:
		w.Elem = n.ElemKind().String()
		for _, it := range n.Items() {
			cw, err := toWire(it)
			if err != nil {
				return nil, err
			}
			w.Items = append(w.Items, cw)
		}
	case binmeta.KindOptional:
		w.Elem = n.ElemKind().String()
		present := n.OptionalPresent()
		w.Present = &present
		if present {
			iw, err := toWire(n.OptionalInner())
			if err != nil {
				return nil, err
			}
			w.Inner = iw
		}
	case binmeta.KindMap:
		w.Key = n.KeyKind().String()
		w.Val = n.ValueKind().String()
		for _, p := range n.Pairs() {
			kw, err := toWire(p.Key)
			if err != nil {
				return nil, err
			}
			vw, err := toWire(p.Value)
			if err != nil {
				return nil, err
			}
			w.Entries = append(w.Entries, wireEntry{Key: kw, Value: vw})
		}
	case binmeta.KindStruct, binmeta.KindEmbedded, binmeta.KindObject:
		w.Class = hexHash(n.ClassHash())
		if n.Kind() == binmeta.KindObject {
			w.Path = hexHash(n.PathHash())
		}
		for _, p := range n.Props() {
			pw, err := toWire(p.Value)
			if err != nil {
				return nil, err
			}
			w.Props = append(w.Props, wireProp{Name: hexHash(p.NameHash), Value: pw})
		}
	default:
		return nil, fmt.Errorf("binjson: unknown kind %d", n.Kind())
	}
	return w, nil
}

func fromWire(w *wireNode) (*binmeta.Node, error) {
	k, ok := binmeta.KindFromString(w.Kind)
	if !ok {
		return nil, fmt.Errorf("binjson: unknown kind %q", w.Kind)
	}
	switch k {
	case binmeta.KindNone:
		return binmeta.NewNone(), nil
	case binmeta.KindBool:
		if w.Bool == nil {
			return nil, fmt.Errorf("binjson: bool node without value")
		}
		return binmeta.NewBool(*w.Bool), nil
	case binmeta.KindBitBool:
		if w.Bool == nil {
			return nil, fmt.Errorf("binjson: bitbool node without value")
		}
		return binmeta.NewBitBool(binmeta.BitBool(*w.Bool)), nil
	case binmeta.KindI8, binmeta.KindI16, binmeta.KindI32, binmeta.KindI64:
		if w.Int == nil {
			return nil, fmt.Errorf("binjson: %s node without value", w.Kind)
		}
		switch k {
		case binmeta.KindI8:
			return binmeta.NewI8(int8(*w.Int)), nil
		case binmeta.KindI16:
			return binmeta.NewI16(int16(*w.Int)), nil
		case binmeta.KindI32:
			return binmeta.NewI32(int32(*w.Int)), nil
		default:
			return binmeta.NewI64(*w.Int), nil
		}
	case binmeta.KindU8, binmeta.KindU16, binmeta.KindU32, binmeta.KindU64:
		if w.Uint == nil {
			return nil, fmt.Errorf("binjson: %s node without value", w.Kind)
		}
		switch k {
		case binmeta.KindU8:
			return binmeta.NewU8(uint8(*w.Uint)), nil
		case binmeta.KindU16:
			return binmeta.NewU16(uint16(*w.Uint)), nil
		case binmeta.KindU32:
			return binmeta.NewU32(uint32(*w.Uint)), nil
		default:
			return binmeta.NewU64(*w.Uint), nil
		}
	case binmeta.KindF32:
		if w.F32 == nil {
			return nil, fmt.Errorf("binjson: f32 node without value")
		}
		return binmeta.NewF32(*w.F32), nil
	case binmeta.KindString:
		if w.Str == nil {
			return nil, fmt.Errorf("binjson: string node without value")
		}
		return binmeta.NewString(*w.Str), nil
	case binmeta.KindHash, binmeta.KindWadChunkLink, binmeta.KindObjectLink:
		h, err := parseHash(w.Hash)
		if err != nil {
			return nil, err
		}
		switch k {
		case binmeta.KindHash:
			return binmeta.NewHash(binmeta.Hash(h)), nil
		case binmeta.KindWadChunkLink:
			return binmeta.NewWadChunkLink(binmeta.WadChunkLink(h)), nil
		default:
			return binmeta.NewObjectLink(binmeta.ObjectLink(h)), nil
		}
	case binmeta.KindVector2, binmeta.KindVector3, binmeta.KindVector4:
		want := map[binmeta.Kind]int{binmeta.KindVector2: 2, binmeta.KindVector3: 3, binmeta.KindVector4: 4}[k]
		if len(w.Vec) != want {
			return nil, fmt.Errorf("binjson: %s node needs %d components, got %d", w.Kind, want, len(w.Vec))
		}
		switch k {
		case binmeta.KindVector2:
			return binmeta.NewVector2(binmeta.Vector2{X: w.Vec[0], Y: w.Vec[1]}), nil
		case binmeta.KindVector3:
			return binmeta.NewVector3(binmeta.Vector3{X: w.Vec[0], Y: w.Vec[1], Z: w.Vec[2]}), nil
		default:
			return binmeta.NewVector4(binmeta.Vector4{X: w.Vec[0], Y: w.Vec[1], Z: w.Vec[2], W: w.Vec[3]}), nil
		}
	case binmeta.KindMatrix44:
		if len(w.Mat) != 16 {
			return nil, fmt.Errorf("binjson: mat4 node needs 16 values, got %d", len(w.Mat))
		}
		var m binmeta.Matrix4x4
		for i, v := range w.Mat {
			m[i/4][i%4] = v
		}
		return binmeta.NewMatrix4x4(m), nil
	case binmeta.KindColor:
		if len(w.Color) != 4 {
			return nil, fmt.Errorf("binjson: color node needs 4 channels, got %d", len(w.Color))
		}
		return binmeta.NewColor(binmeta.Color{
			R: uint8(w.Color[0]), G: uint8(w.Color[1]), B: uint8(w.Color[2]), A: uint8(w.Color[3]),
		}), nil
	case binmeta.KindContainer, binmeta.KindUnorderedContainer:
		elem, ok := binmeta.KindFromString(w.Elem)
		if !ok {
			return nil, fmt.Errorf("binjson: unknown element kind %q", w.Elem)
		}
		items := make([]*binmeta.Node, 0, len(w.Items))
		for _, iw := range w.Items {
			it, err := fromWire(iw)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		if k == binmeta.KindContainer {
			return binmeta.NewContainer(elem, items...), nil
		}
		return binmeta.NewUnorderedContainer(elem, items...), nil
	case binmeta.KindOptional:
		elem, ok := binmeta.KindFromString(w.Elem)
		if !ok {
			return nil, fmt.Errorf("binjson: unknown element kind %q", w.Elem)
		}
		if w.Present == nil || !*w.Present {
			return binmeta.NewOptionalNone(elem), nil
		}
		if w.Inner == nil {
			return nil, fmt.Errorf("binjson: present optional without inner node")
		}
		inner, err := fromWire(w.Inner)
		if err != nil {
			return nil, err
		}
		return binmeta.NewOptionalSome(elem, inner), nil
	case binmeta.KindMap:
		keyKind, ok := binmeta.KindFromString(w.Key)
		if !ok {
			return nil, fmt.Errorf("binjson: unknown key kind %q", w.Key)
		}
		valKind, ok := binmeta.KindFromString(w.Val)
		if !ok {
			return nil, fmt.Errorf("binjson: unknown value kind %q", w.Val)
		}
		pairs := make([]binmeta.MapPair, 0, len(w.Entries))
		for _, e := range w.Entries {
			if e.Key == nil || e.Value == nil {
				return nil, fmt.Errorf("binjson: map entry missing key or value")
			}
			kn, err := fromWire(e.Key)
			if err != nil {
				return nil, err
			}
			vn, err := fromWire(e.Value)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, binmeta.MapPair{Key: kn, Value: vn})
		}
		return binmeta.NewMap(keyKind, valKind, pairs...), nil
	case binmeta.KindStruct, binmeta.KindEmbedded, binmeta.KindObject:
		class, err := parseHash(w.Class)
		if err != nil {
			return nil, err
		}
		props := make([]binmeta.Property, 0, len(w.Props))
		for _, pw := range w.Props {
			name, err := parseHash(pw.Name)
			if err != nil {
				return nil, err
			}
			if pw.Value == nil {
				return nil, fmt.Errorf("binjson: property %s without value", pw.Name)
			}
			pv, err := fromWire(pw.Value)
			if err != nil {
				return nil, err
			}
			props = append(props, binmeta.Property{NameHash: name, Value: pv})
		}
		switch k {
		case binmeta.KindStruct:
			return binmeta.NewStruct(class, props...), nil
		case binmeta.KindEmbedded:
			return binmeta.NewEmbedded(class, props...), nil
		default:
			path, err := parseHash(w.Path)
			if err != nil {
				return nil, err
			}
			return binmeta.NewObject(path, class, props...), nil
		}
	}
	return nil, fmt.Errorf("binjson: unhandled kind %q", w.Kind)
}
