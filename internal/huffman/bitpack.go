package huffman

// This file is C5: it turns the (value, length) pairs from Canonical
// into a concatenated stream of n-ary digits, and packs/unpacks that
// stream into characters of an arbitrary output radix r (64 for
// base64url, 9 for packed-base-9, 81 for base-81, and so on).
//
// Packing policy (spec.md §4.5/§9): digits are grouped k at a time, MSB
// first within each group, where n^k == r; the final group is zero-padded
// at its low (least-significant, "little") end so the packed byte count
// is always an integer number of r-ary characters. The true n-ary digit
// count is carried alongside the packed bytes (not recoverable from byte
// count alone, since padding can add up to k-1 extra digits) so a
// decoder can stop before consuming padding.

// alphabet maps an r-ary digit value to a printable ASCII byte. It
// supports r up to len(alphabet).
var alphabet = buildAlphabet()

func buildAlphabet() []byte {
	var b []byte
	for c := byte('0'); c <= '9'; c++ {
		b = append(b, c)
	}
	for c := byte('a'); c <= 'z'; c++ {
		b = append(b, c)
	}
	for c := byte('A'); c <= 'Z'; c++ {
		b = append(b, c)
	}
	b = append(b, "!#$%&()*+-./;<=>?@[]^_`{|}~"...)
	return b
}

var alphabetIndex = func() map[byte]int {
	m := make(map[byte]int, len(alphabet))
	for i, c := range alphabet {
		m[c] = i
	}
	return m
}()

// radixExponent returns k such that n^k == r, the number of n-ary digits
// packed into one r-ary character.
func radixExponent(n, r int) (int, error) {
	if n < 2 || r < n || r > len(alphabet) {
		return 0, ErrRadix
	}
	k, x := 0, 1
	for x < r {
		x *= n
		k++
		if k > maxLength {
			return 0, ErrRadix
		}
	}
	if x != r {
		return 0, ErrRadix
	}
	return k, nil
}

// CodewordDigits decomposes a canonical code value into its `length`
// n-ary digits, most significant digit first.
func CodewordDigits(value uint64, length, n int) []byte {
	digits := make([]byte, length)
	v := value
	for i := length - 1; i >= 0; i-- {
		digits[i] = byte(v % uint64(n))
		v /= uint64(n)
	}
	return digits
}

// PackDigits packs an n-ary digit stream into r-ary output characters.
// It returns the packed bytes and the true digit count (excluding any
// padding), which the caller must store alongside the bytes (the block
// framer's nested netstring header field) since it cannot be recovered
// from len(packed) alone.
func PackDigits(digits []byte, n, r int) (packed []byte, digitCount int, err error) {
	k, err := radixExponent(n, r)
	if err != nil {
		return nil, 0, err
	}

	digitCount = len(digits)
	padded := digits
	if rem := len(digits) % k; rem != 0 {
		padded = make([]byte, len(digits)+(k-rem))
		copy(padded, digits)
	}

	packed = make([]byte, len(padded)/k)
	for i := 0; i < len(packed); i++ {
		var v int
		for j := 0; j < k; j++ {
			v = v*n + int(padded[i*k+j])
		}
		if v < 0 || v >= len(alphabet) {
			return nil, 0, ErrRadix
		}
		packed[i] = alphabet[v]
	}
	return packed, digitCount, nil
}

// UnpackDigits inverts PackDigits, trimming back to exactly digitCount
// n-ary digits and returning ErrTruncatedPayload if fewer are available
// than claimed.
func UnpackDigits(packed []byte, n, r, digitCount int) ([]byte, error) {
	k, err := radixExponent(n, r)
	if err != nil {
		return nil, err
	}

	digits := make([]byte, 0, len(packed)*k)
	for _, c := range packed {
		v, ok := alphabetIndex[c]
		if !ok || v >= r {
			return nil, ErrTruncatedPayload
		}
		group := make([]byte, k)
		for j := k - 1; j >= 0; j-- {
			group[j] = byte(v % n)
			v /= n
		}
		digits = append(digits, group...)
	}

	if digitCount > len(digits) {
		return nil, ErrTruncatedPayload
	}
	return digits[:digitCount], nil
}

// DecodeDigits greedily decodes symbols from an n-ary digit stream using
// code's offset-arithmetic decode structure, consuming exactly
// len(digits) digits across whole codewords. A remainder that cannot
// complete a codeword is ErrTruncatedPayload.
func DecodeDigits(code *Code, digits []byte, n int) ([]int, error) {
	var out []int
	pos := 0
	for pos < len(digits) {
		matched := false
		var value uint64
		for length := 1; pos+length <= len(digits) && length <= code.LMax; length++ {
			value = value*uint64(n) + uint64(digits[pos+length-1])
			if length < code.LMin {
				continue
			}
			if s, ok := code.Decode(length, value); ok {
				out = append(out, s)
				pos += length
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrTruncatedPayload
		}
	}
	return out, nil
}
