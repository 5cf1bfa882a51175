package huffman

import "math/big"

// Code is the canonical assignment produced from a length vector: an
// encode table (symbol -> value, length) and a decode structure that
// recovers a symbol from (length, value) by offset arithmetic, with no
// tree walk required at decode time.
type Code struct {
	N       int
	Lengths []int    // per symbol, 0 = absent; same indexing as the input
	Values  []uint64 // per symbol, valid only where Lengths[s] > 0
	LMin    int
	LMax    int

	// decode support: symbols sorted by (length asc, symbol asc),
	// concatenated across lengths LMin..LMax.
	symsByLength []int
	firstIndex   []int    // firstIndex[l] = offset into symsByLength for length l
	firstCode    []uint64 // firstCode[l] = value assigned to the first symbol of length l
}

// Canonical assigns canonical (value, length) pairs to every symbol with
// nonzero length, per spec.md §4.4: shortest codes get the smallest
// values, ties broken by ascending symbol order, and the running code is
// multiplied by n (a zero-digit append) on every length increase.
func Canonical(lengths []int, n int) (*Code, error) {
	if n < 2 {
		return nil, ErrRadix
	}

	lmin, lmax := 0, 0
	nPresent := 0
	for _, l := range lengths {
		if l < 0 || l > maxLength {
			return nil, ErrBadLengthVector
		}
		if l == 0 {
			continue
		}
		nPresent++
		if lmin == 0 || l < lmin {
			lmin = l
		}
		if l > lmax {
			lmax = l
		}
	}

	code := &Code{N: n, Lengths: append([]int(nil), lengths...), Values: make([]uint64, len(lengths)), LMin: lmin, LMax: lmax}
	if nPresent == 0 {
		return code, nil
	}

	if err := checkKraft(lengths, n, lmax); err != nil {
		return nil, err
	}

	code.firstIndex = make([]int, lmax+1)
	code.firstCode = make([]uint64, lmax+1)
	code.symsByLength = make([]int, 0, nPresent)

	nBig := big.NewInt(int64(n))
	c := big.NewInt(0)
	for l := lmin; l <= lmax; l++ {
		code.firstIndex[l] = len(code.symsByLength)
		if !c.IsUint64() {
			return nil, ErrBadLengthVector
		}
		code.firstCode[l] = c.Uint64()

		for s, sl := range lengths {
			if sl != l {
				continue
			}
			if !c.IsUint64() {
				return nil, ErrBadLengthVector
			}
			code.Values[s] = c.Uint64()
			code.symsByLength = append(code.symsByLength, s)
			c.Add(c, big.NewInt(1))
		}
		c.Mul(c, nBig)
	}

	return code, nil
}

// checkKraft verifies Σ n^(lmax-length(s)) <= n^lmax using exact integer
// arithmetic (spec.md P2 demands exactness, so floating point Kraft sums
// are not acceptable here).
func checkKraft(lengths []int, n, lmax int) error {
	nBig := big.NewInt(int64(n))
	budget := new(big.Int).Exp(nBig, big.NewInt(int64(lmax)), nil)
	sum := big.NewInt(0)
	term := new(big.Int)
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		term.Exp(nBig, big.NewInt(int64(lmax-l)), nil)
		sum.Add(sum, term)
		if sum.Cmp(budget) > 0 {
			return ErrBadLengthVector
		}
	}
	return nil
}

// Decode recovers the symbol assigned to value at the given length. ok is
// false if no symbol has that (length, value) pair.
func (c *Code) Decode(length int, value uint64) (symbol int, ok bool) {
	if length < c.LMin || length > c.LMax {
		return 0, false
	}
	first := c.firstCode[length]
	if value < first {
		return 0, false
	}
	rank := value - first
	start := c.firstIndex[length]
	var count int
	if length == c.LMax {
		count = len(c.symsByLength) - start
	} else {
		count = c.firstIndex[length+1] - start
	}
	if rank >= uint64(count) {
		return 0, false
	}
	return c.symsByLength[start+int(rank)], true
}
