package binmeta

import (
	"fmt"
	"strings"
)

type decodeState struct {
	env      *Environment
	opt      DecodeOpt
	maxDepth int
	depth    int
	path     []string
	presence PresenceMap // nil unless a WithMeta entry point collects it
}

func newDecodeState(env *Environment, opts []DecodeOpt) *decodeState {
	st := &decodeState{env: env, maxDepth: DefaultMaxDepth}
	if len(opts) > 0 {
		st.opt = opts[0]
		if st.opt.MaxDepth > 0 {
			st.maxDepth = st.opt.MaxDepth
		}
	}
	return st
}

// at renders the current property path for issues and presence keys.
func (st *decodeState) at() string {
	if len(st.path) == 0 {
		return "/"
	}
	return "/" + strings.Join(st.path, "/")
}

func (st *decodeState) push(seg string) { st.path = append(st.path, seg) }
func (st *decodeState) pop()            { st.path = st.path[:len(st.path)-1] }

func (st *decodeState) enter() error {
	st.depth++
	if st.depth > st.maxDepth {
		return Issues{{Path: st.at(), Code: CodeMaxDepth,
			Message: fmt.Sprintf("nesting exceeds %d levels", st.maxDepth),
			Hint:    "raise DecodeOpt.MaxDepth if the tree is legitimately this deep"}}
	}
	return nil
}

func (st *decodeState) leave() { st.depth-- }

func (st *decodeState) mark(f Presence) {
	if st.presence != nil {
		st.presence[st.at()] |= f
	}
}

// Decode materializes a typed instance from a top-level Object node.
//
// Decoding is idempotent and reference-stable within one Environment: the
// first decode of a path hash registers the instance, and later decodes of
// the same path return it as long as the requested type is compatible.
// Properties missing from the wire keep their zero value; wire properties
// unknown to T's schema are ignored.
func Decode[T any, P interface {
	*T
	Class
}](env *Environment, n *Node, opts ...DecodeOpt) (P, error) {
	st := newDecodeState(env, opts)
	return decodeObject[T, P](st, n)
}

// DecodeWithMeta is Decode plus presence metadata: which properties were seen,
// which kept their defaults, and which degraded to absence.
func DecodeWithMeta[T any, P interface {
	*T
	Class
}](env *Environment, n *Node, opts ...DecodeOpt) (Decoded[P], error) {
	st := newDecodeState(env, opts)
	st.presence = make(PresenceMap)
	v, err := decodeObject[T, P](st, n)
	return Decoded[P]{Value: v, Presence: st.presence}, err
}

func decodeObject[T any, P interface {
	*T
	Class
}](st *decodeState, n *Node) (P, error) {
	if n == nil || n.Kind() != KindObject {
		return nil, Issues{{Path: st.at(), Code: CodeInvalidType, Message: "expected an object node"}}
	}
	if existing, ok := st.env.Registered(n.PathHash()); ok {
		p, compatible := existing.(P)
		if !compatible {
			return nil, Issues{{Path: st.at(), Code: CodeIdentityConflict,
				Message: fmt.Sprintf("path 0x%08x is already bound to %T", n.PathHash(), existing)}}
		}
		return p, nil
	}
	var zero P
	requested := zero.MetaClassHash()
	td, ok := st.env.ResolveType(requested)
	if !ok {
		return nil, Issues{{Path: st.at(), Code: CodeSchemaMissing,
			Message: fmt.Sprintf("no descriptor registered for class 0x%08x", requested)}}
	}
	// The root-level type must be exact; only nested values degrade on
	// unknown classes.
	if td.ClassHash != n.ClassHash() {
		return nil, Issues{{Path: st.at(), Code: CodeClassMismatch,
			Message: fmt.Sprintf("node class is 0x%08x, %s is 0x%08x", n.ClassHash(), td.Name, td.ClassHash)}}
	}
	out := P(new(T))
	if err := st.enter(); err != nil {
		return nil, err
	}
	defer st.leave()
	if err := decodeProps(st, td, out, n); err != nil {
		return nil, err
	}
	st.env.RegisterObject(n.PathHash(), out)
	return out, nil
}

// DecodeAny materializes a typed instance driven by the node's own class hash
// instead of a statically requested type. It serves callers that walk a
// container without knowing the concrete types up front; at the top level a
// missing schema is fatal.
func (e *Environment) DecodeAny(n *Node, opts ...DecodeOpt) (Class, error) {
	st := newDecodeState(e, opts)
	if n == nil || n.Kind() != KindObject {
		return nil, Issues{{Path: st.at(), Code: CodeInvalidType, Message: "expected an object node"}}
	}
	if existing, ok := e.Registered(n.PathHash()); ok {
		return existing, nil
	}
	td, ok := e.ResolveType(n.ClassHash())
	if !ok {
		return nil, Issues{{Path: st.at(), Code: CodeSchemaMissing,
			Message: fmt.Sprintf("no descriptor registered for class 0x%08x", n.ClassHash())}}
	}
	out := td.New()
	if err := st.enter(); err != nil {
		return nil, err
	}
	defer st.leave()
	if err := decodeProps(st, td, out, n); err != nil {
		return nil, err
	}
	e.RegisterObject(n.PathHash(), out)
	return out, nil
}

// decodeProps walks the declared properties of td, assigning every one that
// has a decodable wire counterpart. Missing and degraded properties keep the
// target's zero value; both outcomes are recorded in presence metadata.
func decodeProps(st *decodeState, td *TypeDescriptor, obj Class, n *Node) error {
	for i := range td.Props {
		p := &td.Props[i]
		pn, ok := n.Prop(p.NameHash)
		st.push(p.Name)
		if !ok {
			st.mark(PresenceDefaultApplied)
			st.pop()
			continue
		}
		st.mark(PresenceSeen)
		assigned, err := p.decode(st, obj, pn)
		if err != nil {
			st.pop()
			return err
		}
		if !assigned {
			st.mark(PresenceDropped)
		}
		st.pop()
	}
	return nil
}
