package huffman

import (
	"errors"
	"testing"
)

// scenario 1 (spec.md): "abab", n=2, S_max=255 -> a=0/len1, b=1/len1,
// digit stream "0101".
func TestCanonicalScenario1(t *testing.T) {
	sMax := 255
	freq := Histogram([]byte("abab"), sMax)
	tr, err := BuildTree(freq, sMax, 2)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 2)
	if err != nil {
		t.Fatal(err)
	}

	if code.Lengths['a'] != 1 || code.Lengths['b'] != 1 {
		t.Fatalf("lengths: a=%d b=%d, want 1,1", code.Lengths['a'], code.Lengths['b'])
	}
	if code.Values['a'] != 0 || code.Values['b'] != 1 {
		t.Fatalf("values: a=%d b=%d, want 0,1", code.Values['a'], code.Values['b'])
	}

	var digits []byte
	for _, s := range []byte("abab") {
		digits = append(digits, CodewordDigits(code.Values[s], code.Lengths[s], 2)...)
	}
	want := "0101"
	if string(digitsToASCII(digits)) != want {
		t.Fatalf("digit stream = %q, want %q", digitsToASCII(digits), want)
	}
}

// scenario 2 (spec.md): "aaab", n=2 -> same canonical assignment (a=0,
// b=1), payload "0001".
func TestCanonicalScenario2(t *testing.T) {
	sMax := 255
	freq := Histogram([]byte("aaab"), sMax)
	tr, err := BuildTree(freq, sMax, 2)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 2)
	if err != nil {
		t.Fatal(err)
	}

	if code.Values['a'] != 0 || code.Values['b'] != 1 {
		t.Fatalf("values: a=%d b=%d, want 0,1", code.Values['a'], code.Values['b'])
	}

	var digits []byte
	for _, s := range []byte("aaab") {
		digits = append(digits, CodewordDigits(code.Values[s], code.Lengths[s], 2)...)
	}
	want := "0001"
	if string(digitsToASCII(digits)) != want {
		t.Fatalf("digit stream = %q, want %q", digitsToASCII(digits), want)
	}
}

// P4: shorter-length symbols always get smaller values than any
// longer-length symbol, and within a length values rise with symbol order.
func TestCanonicalMonotonicity(t *testing.T) {
	sMax := 255
	freq := Histogram([]byte("the quick brown fox jumps over the lazy dog"), sMax)
	tr, err := BuildTree(freq, sMax, 2)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 2)
	if err != nil {
		t.Fatal(err)
	}

	type entry struct {
		sym    int
		length int
		value  uint64
	}
	var entries []entry
	for s, l := range lengths {
		if l > 0 {
			entries = append(entries, entry{s, l, code.Values[s]})
		}
	}

	for i := range entries {
		for j := range entries {
			if entries[i].length < entries[j].length && entries[i].value >= entries[j].value {
				t.Errorf("shorter code %d (len %d, val %d) not < longer code %d (len %d, val %d)",
					entries[i].sym, entries[i].length, entries[i].value,
					entries[j].sym, entries[j].length, entries[j].value)
			}
			if entries[i].length == entries[j].length && entries[i].sym < entries[j].sym && entries[i].value >= entries[j].value {
				t.Errorf("ascending symbol %d (val %d) not < %d (val %d) at equal length %d",
					entries[i].sym, entries[i].value, entries[j].sym, entries[j].value, entries[i].length)
			}
		}
	}
}

func TestCanonicalKraftViolation(t *testing.T) {
	// Three symbols all at length 1 under a binary code: 3*(1/2) > 1, one
	// more leaf than a binary tree has room for.
	lengths := make([]int, 256)
	lengths['a'] = 1
	lengths['b'] = 1
	lengths['c'] = 1
	_, err := Canonical(lengths, 2)
	if !errors.Is(err, ErrBadLengthVector) {
		t.Fatalf("err = %v, want ErrBadLengthVector", err)
	}
}

func TestCanonicalDecodeRoundTrip(t *testing.T) {
	sMax := 255
	freq := Histogram([]byte("mississippi river"), sMax)
	tr, err := BuildTree(freq, sMax, 3)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 3)
	if err != nil {
		t.Fatal(err)
	}

	for s, l := range lengths {
		if l == 0 {
			continue
		}
		got, ok := code.Decode(l, code.Values[s])
		if !ok || got != s {
			t.Errorf("Decode(%d, %d) = %d, %v; want %d, true", l, code.Values[s], got, ok, s)
		}
	}
}

func digitsToASCII(digits []byte) []byte {
	out := make([]byte, len(digits))
	for i, d := range digits {
		out[i] = '0' + d
	}
	return out
}
