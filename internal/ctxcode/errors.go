// Package ctxcode implements Core B: the two context-mixing adaptive
// coder variants (C7 nybble hot-list, C8 LZW per-context dictionary).
// Both keep per-context mutable state across a whole stream, owned
// exclusively by whichever side (encoder or decoder) is running.
package ctxcode

import "errors"

var (
	// ErrByteNotRepresentable is raised by the nybble coder when asked to
	// encode a byte ≥ 128; the variant's literal escape is a 7-bit form
	// and has no representation for the high bit.
	ErrByteNotRepresentable = errors.New("ctxcode: byte not representable in nybble variant")

	// ErrZeroByte is raised by the LZW coder; spec.md forbids the zero
	// byte in LZW plaintext (it is reserved as end-of-stream), and the
	// caller is expected to fall back to a pass-through block instead.
	ErrZeroByte = errors.New("ctxcode: zero byte not representable in LZW variant")

	// ErrDictionaryExhausted signals the encoder found no leaf to prune
	// after a full revolution of its per-context table; per spec.md the
	// encoder's own response is to fall back to literals for the rest
	// of the block, so this is informational, not fatal.
	ErrDictionaryExhausted = errors.New("ctxcode: dictionary exhausted")

	ErrMalformedStream = errors.New("ctxcode: malformed stream")
)
