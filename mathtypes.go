package binmeta

// Vector2 is a 2-component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a 4-component float vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Matrix4x4 is a 4x4 float matrix in row-major order.
type Matrix4x4 [4][4]float32

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Hash is a stable 32-bit identifier of a string, produced by hashes.Lower.
type Hash uint32

// WadChunkLink references an entry in a wad archive by hash.
type WadChunkLink uint32

// ObjectLink references another Object by path hash. Links are resolved
// against the Environment that decoded the referenced Object.
type ObjectLink uint32

// Resolve returns the instance registered under the link's path hash, if the
// Environment has materialized it.
func (l ObjectLink) Resolve(env *Environment) (Class, bool) {
	return env.Registered(uint32(l))
}

// BitBool is a bool that the container format packs into a single bit.
type BitBool bool
