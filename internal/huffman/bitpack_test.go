package huffman

import (
	"bytes"
	"errors"
	"testing"
)

func TestRadixExponent(t *testing.T) {
	cases := []struct {
		n, r, wantK int
		wantErr     bool
	}{
		{2, 64, 6, false},
		{3, 81, 4, false},
		{2, 2, 1, false},
		{2, 3, 0, true},  // 3 is not a power of 2
		{2, 1, 0, true},  // r < n
		{10, 1000, 0, true}, // 10^3 == 1000, but r exceeds the 89-character alphabet
	}
	for _, c := range cases {
		k, err := radixExponent(c.n, c.r)
		if c.wantErr {
			if !errors.Is(err, ErrRadix) {
				t.Errorf("radixExponent(%d,%d) err = %v, want ErrRadix", c.n, c.r, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("radixExponent(%d,%d) unexpected err %v", c.n, c.r, err)
			continue
		}
		if k != c.wantK {
			t.Errorf("radixExponent(%d,%d) = %d, want %d", c.n, c.r, k, c.wantK)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		digits  []byte
		n, r    int
	}{
		{"binary-to-64", []byte{0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 1}, 2, 64},
		{"ternary-to-81", []byte{0, 1, 2, 2, 1, 0, 1, 1, 2, 0}, 3, 81},
		{"binary-to-2-identity", []byte{1, 0, 1, 1, 0, 0, 1}, 2, 2},
		{"empty", nil, 2, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			packed, digitCount, err := PackDigits(c.digits, c.n, c.r)
			if err != nil {
				t.Fatal(err)
			}
			if digitCount != len(c.digits) {
				t.Fatalf("digitCount = %d, want %d", digitCount, len(c.digits))
			}
			got, err := UnpackDigits(packed, c.n, c.r, digitCount)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, c.digits) {
				t.Fatalf("round trip = %v, want %v", got, c.digits)
			}
		})
	}
}

// Scenario 1's digit stream "0101" packed to base 64 (k=6) requires one
// zero-padded character; digitCount must still read back as 4, not 6.
func TestPackScenario1Padding(t *testing.T) {
	digits := []byte{0, 1, 0, 1}
	packed, digitCount, err := PackDigits(digits, 2, 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 1 {
		t.Fatalf("packed length = %d, want 1", len(packed))
	}
	if digitCount != 4 {
		t.Fatalf("digitCount = %d, want 4", digitCount)
	}
	got, err := UnpackDigits(packed, 2, 64, digitCount)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, digits) {
		t.Fatalf("unpacked = %v, want %v", got, digits)
	}
}

func TestUnpackTruncatedPayload(t *testing.T) {
	packed, _, err := PackDigits([]byte{0, 1, 0, 1}, 2, 64)
	if err != nil {
		t.Fatal(err)
	}
	// Claim more digits than the packed bytes can possibly hold.
	_, err = UnpackDigits(packed, 2, 64, 100)
	if !errors.Is(err, ErrTruncatedPayload) {
		t.Fatalf("err = %v, want ErrTruncatedPayload", err)
	}
}

func TestUnpackBadCharacter(t *testing.T) {
	_, err := UnpackDigits([]byte{0xff}, 2, 64, 1)
	if !errors.Is(err, ErrTruncatedPayload) {
		t.Fatalf("err = %v, want ErrTruncatedPayload", err)
	}
}

func TestDecodeDigitsRoundTrip(t *testing.T) {
	sMax := 255
	block := "abracadabra"
	freq := Histogram([]byte(block), sMax)
	tr, err := BuildTree(freq, sMax, 2)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 2)
	if err != nil {
		t.Fatal(err)
	}

	var digits []byte
	for _, s := range []byte(block) {
		digits = append(digits, CodewordDigits(code.Values[s], code.Lengths[s], 2)...)
	}

	symbols, err := DecodeDigits(code, digits, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(symbols) != len(block) {
		t.Fatalf("decoded %d symbols, want %d", len(symbols), len(block))
	}
	for i, s := range symbols {
		if byte(s) != block[i] {
			t.Fatalf("symbol %d = %q, want %q", i, byte(s), block[i])
		}
	}
}

func TestDecodeDigitsTruncated(t *testing.T) {
	sMax := 255
	// a=4, b=3, c=1: a gets length 1, b and c get length 2, so LMin != LMax.
	freq := Histogram([]byte("aaaabbbc"), sMax)
	tr, err := BuildTree(freq, sMax, 2)
	if err != nil {
		t.Fatal(err)
	}
	lengths := Lengths(tr, sMax)
	code, err := Canonical(lengths, 2)
	if err != nil {
		t.Fatal(err)
	}
	// A single digit that matches no length-1 codeword and has no
	// successor digit to complete a length-2 codeword.
	_, err = DecodeDigits(code, []byte{1}, 2)
	if err == nil {
		t.Fatal("expected error for undecodable trailing digit")
	}
}
