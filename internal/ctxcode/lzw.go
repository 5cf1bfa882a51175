package ctxcode

import "bytes"

// This file is C8: a per-context LZW dictionary coder. The prefix/suffix
// table shape and the KωK self-reference recovery are grounded directly
// on internal/sit/lzc.go's compress(1) decoder (prefixtab/suffixtab,
// stack-based string reconstruction, the `code >= free_ent` branch);
// that decoder is generalized here into K parallel per-context tables
// with an encoder side added (the teacher only ever reads LZW, never
// writes it).

const (
	firstFree = 0x80
	lastFree  = 0xfe
	numSlots  = lastFree - firstFree + 1
	endMarker = 0x00
)

// lzwContext is one context's growable dictionary. Entries are indexed
// 0x80..0xfe; 0x00..0x7f are implicit literals representing themselves.
type lzwContext struct {
	prefix    [numSlots]int  // the code this slot extends
	suffix    [numSlots]byte // the byte appended to prefix
	leaf      [numSlots]bool // true if nothing currently extends this slot
	allocated [numSlots]bool
	child     map[[2]int]int // (prefix code, byte) -> child code
	nextAlloc int            // next slot index to try, in 0x80..0xfe
}

func newLZWContext() *lzwContext {
	return &lzwContext{child: make(map[[2]int]int), nextAlloc: firstFree}
}

func (ctx *lzwContext) lookup(prefixCode int, b byte) (int, bool) {
	code, ok := ctx.child[[2]int{prefixCode, int(b)}]
	return code, ok
}

// allocate installs a new entry extending prefixCode by b, pruning the
// next reclaimable leaf slot per spec.md §4.8. It reports whether a slot
// was found; on failure the table is left unchanged.
func (ctx *lzwContext) allocate(prefixCode int, b byte) bool {
	start := ctx.nextAlloc
	for {
		i := ctx.nextAlloc
		slot := i - firstFree
		ctx.nextAlloc++
		if ctx.nextAlloc > lastFree {
			ctx.nextAlloc = firstFree
		}

		if (!ctx.allocated[slot] || ctx.leaf[slot]) && i != prefixCode {
			if ctx.allocated[slot] {
				delete(ctx.child, [2]int{ctx.prefix[slot], int(ctx.suffix[slot])})
			}
			if prefixCode >= firstFree {
				ctx.leaf[prefixCode-firstFree] = false
			}
			ctx.prefix[slot] = prefixCode
			ctx.suffix[slot] = b
			ctx.leaf[slot] = true
			ctx.allocated[slot] = true
			ctx.child[[2]int{prefixCode, int(b)}] = i
			return true
		}

		if ctx.nextAlloc == start {
			return false
		}
	}
}

func (ctx *lzwContext) isAllocated(code int) bool {
	if code < firstFree {
		return true
	}
	return ctx.allocated[code-firstFree]
}

// stringOf reconstructs the byte string a code represents by walking
// prefix links back to a literal root, then reversing the result.
func (ctx *lzwContext) stringOf(code int) []byte {
	var stack []byte
	for code >= firstFree {
		slot := code - firstFree
		stack = append(stack, ctx.suffix[slot])
		code = ctx.prefix[slot]
	}
	stack = append(stack, byte(code))
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

// LZWCoder holds K parallel per-context dictionaries, plus any
// pre-seeded digraphs mirrored identically by encoder and decoder.
type LZWCoder struct {
	k    int
	ctxs []*lzwContext
}

// NewLZWCoder returns a coder with k contexts and no pre-seeded digraphs.
func NewLZWCoder(k int) *LZWCoder {
	c := &LZWCoder{k: k, ctxs: make([]*lzwContext, k)}
	for i := range c.ctxs {
		c.ctxs[i] = newLZWContext()
	}
	return c
}

// Seed pre-populates every context with the same digraphs (root byte,
// next byte), applied in order. A decoder must call Seed identically,
// before decoding, to stay in lockstep with the encoder.
func (c *LZWCoder) Seed(digraphs [][2]byte) {
	for _, ctx := range c.ctxs {
		for _, dg := range digraphs {
			ctx.allocate(int(dg[0]), dg[1])
		}
	}
}

func (c *LZWCoder) context(p byte) int {
	return int(p>>3) & (c.k - 1)
}

// EncodeLZW compresses plain into a sequence of one-byte indices
// (0x00..0x7f literal, 0x80..0xfe dictionary) followed by a trailing
// end marker. plain must not contain a zero byte (spec.md §9 reserves
// it for end-of-stream); ErrZeroByte signals the caller to fall back to
// a pass-through block instead.
//
// If a context's dictionary has no slot left to reclaim, the rest of
// plain is coded as literal indices and ErrDictionaryExhausted is
// returned alongside the otherwise-complete output: the stream remains
// valid, just less compressed than it could have been.
func (c *LZWCoder) EncodeLZW(plain []byte) ([]byte, error) {
	if bytes.IndexByte(plain, 0) >= 0 {
		return nil, ErrZeroByte
	}

	var out []byte
	var p byte
	exhausted := false

	i := 0
	for i < len(plain) {
		ctx := c.ctxs[c.context(p)]

		code := int(plain[i])
		j := i + 1
		for !exhausted && j < len(plain) {
			next, ok := ctx.lookup(code, plain[j])
			if !ok {
				break
			}
			code = next
			j++
		}
		out = append(out, byte(code))

		if !exhausted && j < len(plain) {
			if !ctx.allocate(code, plain[j]) {
				exhausted = true
			}
		}

		p = plain[j-1]
		i = j
	}
	out = append(out, endMarker)

	if exhausted {
		return out, ErrDictionaryExhausted
	}
	return out, nil
}

// DecodeLZW inverts EncodeLZW, applying the KωK rule when a code refers
// to the entry still being defined on the very step that names it.
func (c *LZWCoder) DecodeLZW(coded []byte) ([]byte, error) {
	var out []byte
	var p byte
	prevCode := -1
	var prevStr []byte
	var prevCtx *lzwContext

	pos := 0
	for {
		if pos >= len(coded) {
			return nil, ErrMalformedStream
		}
		code := int(coded[pos])
		pos++
		if code == endMarker {
			break
		}

		curCtx := c.ctxs[c.context(p)]

		// The previous step's entry, completed below once str[0] is known,
		// goes into the slot allocate's scan reaches first. A code naming
		// that slot in the same context is the KωK case, even when the slot
		// still holds an older entry that is about to be pruned.
		pending := -1
		if prevCode >= 0 && curCtx == prevCtx {
			i := curCtx.nextAlloc
			for range numSlots {
				slot := i - firstFree
				if (!curCtx.allocated[slot] || curCtx.leaf[slot]) && i != prevCode {
					pending = i
					break
				}
				i++
				if i > lastFree {
					i = firstFree
				}
			}
		}

		var str []byte
		if code == pending || (code >= firstFree && !curCtx.isAllocated(code)) {
			if prevCode < 0 {
				return nil, ErrMalformedStream
			}
			str = append(append([]byte{}, prevStr...), prevStr[0])
		} else {
			str = curCtx.stringOf(code)
		}
		out = append(out, str...)

		if prevCode >= 0 {
			prevCtx.allocate(prevCode, str[0])
		}

		prevCode = code
		prevStr = str
		prevCtx = curCtx
		p = str[len(str)-1]
	}
	return out, nil
}
