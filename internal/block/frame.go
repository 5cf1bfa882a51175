package block

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/elliotnunn/ncodec/internal/huffman"
)

// Writer emits a stream of netstring blocks for one (n, r) Huffman
// configuration. It re-emits an X table block only when the canonical
// lengths change from the last block written, so after the first block a
// stream of blocks sharing one table carries only a Z block per block,
// with no repeated X block.
type Writer struct {
	w       io.Writer
	n, r    int
	sMax    int
	lastKey uint64
	haveKey bool
}

// NewWriter returns a Writer coding blocks with Huffman arity n, output
// print radix r, and symbol space [0, sMax].
func NewWriter(w io.Writer, n, r, sMax int) *Writer {
	return &Writer{w: w, n: n, r: r, sMax: sMax}
}

// WriteComment emits an ignored metadata block.
func (bw *Writer) WriteComment(data []byte) error {
	return writeNetstring(bw.w, append([]byte(tagComment), data...))
}

// WritePassThrough emits data verbatim, undoing no framing cost beyond
// the netstring envelope itself.
func (bw *Writer) WritePassThrough(data []byte) error {
	return writeNetstring(bw.w, append([]byte(tagPassThrough), data...))
}

// WriteBlock Huffman-codes block and writes it, falling back to a
// pass-through block per spec.md §4.6 when the coded form (including any
// newly required table) would not beat plaintext size.
func (bw *Writer) WriteBlock(plain []byte) error {
	freq := huffman.Histogram(plain, bw.sMax)
	tree, err := huffman.BuildTree(freq, bw.sMax, bw.n)
	if err != nil {
		return bw.WritePassThrough(plain)
	}
	lengths := huffman.Lengths(tree, bw.sMax)
	code, err := huffman.Canonical(lengths, bw.n)
	if err != nil {
		return bw.WritePassThrough(plain)
	}

	var digits []byte
	for _, s := range plain {
		digits = append(digits, huffman.CodewordDigits(code.Values[s], code.Lengths[s], bw.n)...)
	}
	packed, digitCount, err := huffman.PackDigits(digits, bw.n, bw.r)
	if err != nil {
		return bw.WritePassThrough(plain)
	}

	key := huffman.Digest(lengths, bw.n)
	needTable := !bw.haveKey || key != bw.lastKey

	headerCost := 0
	if needTable {
		headerCost = tableBlockCost(lengths)
	}
	codedCost := codedBlockCost(digitCount, len(packed))
	if headerCost+codedCost >= len(plain) {
		return bw.WritePassThrough(plain)
	}

	if needTable {
		if err := bw.writeTable(lengths); err != nil {
			return err
		}
		bw.lastKey = key
		bw.haveKey = true
	}
	return bw.writeCoded(digitCount, packed)
}

func (bw *Writer) writeTable(lengths []int) error {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(bw.sMax))
	sb.WriteByte(':')
	for i, l := range lengths {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(l))
	}
	sb.WriteByte(',')
	return writeNetstring(bw.w, append([]byte(tagTable), sb.String()...))
}

func (bw *Writer) writeCoded(digitCount int, packed []byte) error {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(digitCount))
	sb.WriteByte(':')
	sb.Write(packed)
	sb.WriteByte(',')
	return writeNetstring(bw.w, append([]byte(tagCoded), sb.String()...))
}

// tableBlockCost and codedBlockCost estimate framing+payload byte cost
// for the fallback comparison in WriteBlock; they need not be exact,
// only consistent with what writeTable/writeCoded actually emit.
func tableBlockCost(lengths []int) int {
	n := 2 + 1 + len(strconv.Itoa(len(lengths)-1)) + 1 // tag + ':' + smax digits + trailing ','
	for _, l := range lengths {
		n += len(strconv.Itoa(l)) + 1 // digit(s) plus separator/terminator
	}
	return n
}

func codedBlockCost(digitCount, packedLen int) int {
	return 2 + len(strconv.Itoa(digitCount)) + 1 + packedLen + 1
}

// Reader decodes a stream of netstring blocks written by Writer, tracking
// the most recently seen X table as stream state.
type Reader struct {
	c     *countingReader
	n, r  int
	table *huffman.Code
	sMax  int
	cache *huffman.TableCache
}

// NewReader returns a Reader expecting Huffman arity n and output print
// radix r; sMax is read from each X block, so it may vary across a
// stream's tables.
func NewReader(r io.Reader, n, radix int) *Reader {
	return &Reader{c: &countingReader{r: bufio.NewReader(r)}, n: n, r: radix, cache: huffman.NewTableCache(8)}
}

// ReadBlock returns the next block's decoded payload. Comment blocks and
// table blocks are consumed internally; the first data-bearing block
// (pass-through or coded) is returned. io.EOF signals a clean stream end.
func (br *Reader) ReadBlock() ([]byte, error) {
	for {
		payload, err := readNetstring(br.c)
		if err != nil {
			return nil, err
		}
		if len(payload) < 2 {
			return nil, fmt.Errorf("%w: at offset %d: payload too short for a type tag", ErrMalformedStream, br.c.pos)
		}
		tag := string(payload[:2])
		body := payload[2:]

		switch tag {
		case tagPassThrough:
			return body, nil
		case tagComment:
			continue
		case tagTable:
			if err := br.readTable(body); err != nil {
				return nil, err
			}
			continue
		case tagCoded:
			return br.readCoded(body)
		default:
			return nil, fmt.Errorf("%w: at offset %d: tag %q", ErrUnknownBlockType, br.c.pos, tag)
		}
	}
}

func (br *Reader) readTable(body []byte) error {
	colon := bytes.IndexByte(body, ':')
	if colon < 0 || len(body) == 0 || body[len(body)-1] != ',' {
		return fmt.Errorf("%w: at offset %d: malformed table block", ErrMalformedStream, br.c.pos)
	}
	sMax, err := strconv.Atoi(string(body[:colon]))
	if err != nil || sMax < 0 {
		return fmt.Errorf("%w: at offset %d: bad S_max field: %v", ErrMalformedStream, br.c.pos, err)
	}
	fields := strings.Split(string(body[colon+1:len(body)-1]), ",")
	if len(fields) != sMax+1 {
		return fmt.Errorf("%w: at offset %d: table has %d lengths, want %d", ErrMalformedStream, br.c.pos, len(fields), sMax+1)
	}
	lengths := make([]int, sMax+1)
	for i, f := range fields {
		l, err := strconv.Atoi(f)
		if err != nil || l < 0 {
			return fmt.Errorf("%w: at offset %d: bad length field %q", ErrMalformedStream, br.c.pos, f)
		}
		lengths[i] = l
	}

	code, ok := br.cache.Lookup(lengths, br.n)
	if !ok || code.N != br.n || !slices.Equal(code.Lengths, lengths) {
		var err error
		code, err = huffman.Canonical(lengths, br.n)
		if err != nil {
			return fmt.Errorf("%w: at offset %d", err, br.c.pos)
		}
		br.cache.Store(lengths, br.n, code)
	}
	br.table = code
	br.sMax = sMax
	return nil
}

func (br *Reader) readCoded(body []byte) ([]byte, error) {
	if br.table == nil {
		return nil, fmt.Errorf("%w: at offset %d", ErrMissingTable, br.c.pos)
	}
	colon := bytes.IndexByte(body, ':')
	if colon < 0 || len(body) == 0 || body[len(body)-1] != ',' {
		return nil, fmt.Errorf("%w: at offset %d: malformed coded block", ErrMalformedStream, br.c.pos)
	}
	digitCount, err := strconv.Atoi(string(body[:colon]))
	if err != nil || digitCount < 0 {
		return nil, fmt.Errorf("%w: at offset %d: bad digit count field: %v", ErrMalformedStream, br.c.pos, err)
	}
	packed := body[colon+1 : len(body)-1]

	digits, err := huffman.UnpackDigits(packed, br.n, br.r, digitCount)
	if err != nil {
		return nil, fmt.Errorf("%w: at offset %d: %v", ErrMalformedStream, br.c.pos, err)
	}
	symbols, err := huffman.DecodeDigits(br.table, digits, br.n)
	if err != nil {
		return nil, fmt.Errorf("%w: at offset %d: %v", ErrMalformedStream, br.c.pos, err)
	}
	out := make([]byte, len(symbols))
	for i, s := range symbols {
		out[i] = byte(s)
	}
	return out, nil
}
