package binmeta

import (
	"fmt"
	"strings"

	"github.com/LoL-Fantome/binmeta/hashes"
)

type encodeState struct {
	env      *Environment
	maxDepth int
	depth    int
	path     []string
}

func newEncodeState(env *Environment, opts []EncodeOpt) *encodeState {
	st := &encodeState{env: env, maxDepth: DefaultMaxDepth}
	if len(opts) > 0 && opts[0].MaxDepth > 0 {
		st.maxDepth = opts[0].MaxDepth
	}
	return st
}

func (st *encodeState) at() string {
	if len(st.path) == 0 {
		return "/"
	}
	return "/" + strings.Join(st.path, "/")
}

func (st *encodeState) push(seg string) { st.path = append(st.path, seg) }
func (st *encodeState) pop()            { st.path = st.path[:len(st.path)-1] }

func (st *encodeState) enter() error {
	st.depth++
	if st.depth > st.maxDepth {
		return Issues{{Path: st.at(), Code: CodeMaxDepth,
			Message: fmt.Sprintf("nesting exceeds %d levels", st.maxDepth),
			Hint:    "a struct graph that cycles without going through object links cannot be encoded"}}
	}
	return nil
}

func (st *encodeState) leave() { st.depth-- }

// Encode produces an Object node from a typed instance. The wire tag of every
// property comes from its declared kind in the schema, never from the runtime
// value. Properties holding their unset sentinel (absent Opt, nil struct
// pointer, nil Embed value, nil slice or map) are omitted from the output,
// not written as defaults.
func Encode(env *Environment, pathHash uint32, obj Class, opts ...EncodeOpt) (*Node, error) {
	st := newEncodeState(env, opts)
	if obj == nil {
		return nil, Issues{{Path: st.at(), Code: CodeInvalidType, Message: "cannot encode a nil instance"}}
	}
	classHash := obj.MetaClassHash()
	td, ok := env.ResolveType(classHash)
	if !ok {
		return nil, Issues{{Path: st.at(), Code: CodeSchemaMissing,
			Message: fmt.Sprintf("no descriptor registered for class 0x%08x", classHash)}}
	}
	if err := st.enter(); err != nil {
		return nil, err
	}
	defer st.leave()
	props, err := encodeProps(st, td, obj)
	if err != nil {
		return nil, err
	}
	return NewObject(pathHash, td.ClassHash, props...), nil
}

// EncodePath is Encode with the path hash derived from a path string.
func EncodePath(env *Environment, path string, obj Class, opts ...EncodeOpt) (*Node, error) {
	return Encode(env, hashes.Lower(path), obj, opts...)
}

func encodeProps(st *encodeState, td *TypeDescriptor, obj Class) ([]Property, error) {
	props := make([]Property, 0, len(td.Props))
	for i := range td.Props {
		p := &td.Props[i]
		st.push(p.Name)
		n, err := p.encode(st, obj)
		st.pop()
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		props = append(props, Property{NameHash: p.NameHash, Value: n})
	}
	return props, nil
}
