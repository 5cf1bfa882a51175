// Package block implements C6: the netstring-delimited block framing that
// sits above internal/huffman's coding primitives. Each payload begins
// with a two-byte type tag ("\n\n", "\n#", "\nX", "\nZ"); blocks are
// independently re-synchronisable at any netstring header.
package block

import "errors"

var (
	ErrMalformedStream  = errors.New("block: malformed netstring framing")
	ErrUnknownBlockType = errors.New("block: unknown block type tag")
	ErrMissingTable     = errors.New("block: coded block with no preceding table")
)

// maxBlockLen is the framer's block size cap: a netstring length prefix
// above this is always malformed.
const maxBlockLen = 1 << 15

const (
	tagPassThrough = "\n\n"
	tagComment     = "\n#"
	tagTable       = "\nX"
	tagCoded       = "\nZ"
)
