// Package huffman builds n-ary canonical Huffman codes over a byte block
// and packs/unpacks the resulting digit stream into an arbitrary output
// radix.
package huffman

import "errors"

var (
	// ErrOverflow is returned by BuildTree when the sum of symbol counts
	// would exceed the range the merge arithmetic can track.
	ErrOverflow = errors.New("huffman: count sum overflow")

	// ErrBadLengthVector is returned by Canonical when a length vector
	// violates the Kraft inequality, or when a length exceeds the
	// implementation cap.
	ErrBadLengthVector = errors.New("huffman: length vector violates Kraft inequality")

	// ErrTruncatedPayload is returned by UnpackDigits when the header's
	// digit count disagrees with the bytes actually available.
	ErrTruncatedPayload = errors.New("huffman: truncated digit payload")

	// ErrRadix is returned when n or r fall outside the supported range.
	ErrRadix = errors.New("huffman: unsupported radix")
)

// maxLength caps the canonical code length this implementation will
// construct. 63 keeps binary code values inside a uint64; for n > 2 a
// value can exceed uint64 below this cap, and Canonical rejects such a
// vector with ErrBadLengthVector. No real block approaches it.
const maxLength = 63
