package binmeta

// Severity expresses how strictly a data-integrity hazard is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DefaultMaxDepth bounds recursive descent when the options leave MaxDepth
// unset. Input trees are shallow in practice; the limit exists to turn
// pathological cyclic graphs into an error instead of a stack overflow.
const DefaultMaxDepth = 128

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
	// OnDuplicateKey selects the duplicate map key policy: Ignore and Warn
	// keep the first occurrence (Warn additionally flags it in presence
	// metadata), Error fails the decode call with duplicate_key.
	OnDuplicateKey Severity
}

// EncodeOpt bundles encoding options.
type EncodeOpt struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}
