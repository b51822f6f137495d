package abx

import "errors"

// Sentinel errors. Callers match with errors.Is; call sites wrap these with
// fmt.Errorf("%w: detail", ErrX) to add context, the same pattern the
// teacher's own sentinel errors use.
var (
	ErrBadMagic        = errors.New("abx: bad magic header")
	ErrUnexpectedEOF   = errors.New("abx: unexpected end of stream")
	ErrBadInternIndex  = errors.New("abx: interned string index out of range")
	ErrUnknownCommand  = errors.New("abx: unknown command")
	ErrUnknownAttrType = errors.New("abx: unknown attribute type")
	ErrStringTooLong   = errors.New("abx: string exceeds 65535 bytes")
	ErrPoolOverflow    = errors.New("abx: interning pool exceeds 65535 entries")
	ErrTagMismatch     = errors.New("abx: end tag does not match start tag")
	ErrUnbalancedEnd   = errors.New("abx: unbalanced end tag or end of document")
)
