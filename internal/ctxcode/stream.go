package ctxcode

import "fmt"

// A single leading byte selects the Core B coder in use for the rest of
// the stream, per spec.md §6. Unlike Core A's netstring framer, Core B
// carries no length field of its own: the nybble variant relies on the
// container telling the decoder where the byte stream ends, and the LZW
// variant carries its own trailing end marker.
const (
	selectorPassThrough = ' '
	selectorNybble      = 0xAF
	selectorLZW         = 0x08
)

// Variant names which Core B coder a stream uses.
type Variant int

const (
	VariantNybble Variant = iota
	VariantLZW
)

// EncodeStream codes plain with the requested variant and prepends its
// selector byte. If the variant can't represent plain (a byte ≥ 128 for
// the nybble variant, a zero byte for the LZW variant), it falls back to
// a pass-through selector, mirroring Core A's own pass-through guarantee
// that every input is representable in some form.
func EncodeStream(plain []byte, variant Variant, nc *NybbleCoder, lc *LZWCoder) ([]byte, error) {
	switch variant {
	case VariantNybble:
		packed, err := nc.EncodeNybble(plain)
		if err != nil {
			return passThroughStream(plain), nil
		}
		return append([]byte{selectorNybble}, packed...), nil
	case VariantLZW:
		coded, err := lc.EncodeLZW(plain)
		if err != nil && err != ErrDictionaryExhausted {
			return passThroughStream(plain), nil
		}
		return append([]byte{selectorLZW}, coded...), nil
	default:
		return nil, fmt.Errorf("ctxcode: unknown variant %d", variant)
	}
}

func passThroughStream(plain []byte) []byte {
	return append([]byte{selectorPassThrough}, plain...)
}

// DecodeStream inverts EncodeStream, dispatching on the leading selector
// byte.
func DecodeStream(data []byte, nc *NybbleCoder, lc *LZWCoder) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrMalformedStream
	}
	switch data[0] {
	case selectorPassThrough:
		return data[1:], nil
	case selectorNybble:
		return nc.DecodeNybbleStream(data[1:])
	case selectorLZW:
		return lc.DecodeLZW(data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown selector byte 0x%02x", ErrMalformedStream, data[0])
	}
}
