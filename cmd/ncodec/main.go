// Command ncodec is a debug-print CLI over the two codec cores; it is
// out of scope per spec.md and exists only to drive the library by hand.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/elliotnunn/ncodec/internal/block"
	"github.com/elliotnunn/ncodec/internal/ctxcode"
)

func main() {
	var (
		core    = flag.String("core", "a", "codec core: a (n-ary Huffman) or b (context-mixing)")
		variant = flag.String("variant", "nybble", "core b variant: nybble or lzw")
		decode  = flag.Bool("d", false, "decode instead of encode")
		n       = flag.Int("n", 2, "core a output alphabet size")
		r       = flag.Int("r", 64, "core a output print radix")
		sMax    = flag.Int("smax", 255, "core a symbol space size")
	)
	flag.Parse()

	var paths []string
	for _, pat := range flag.Args() {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ncodec: bad pattern %q: %v\n", pat, err)
			os.Exit(1)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "ncodec: no input files matched")
		os.Exit(1)
	}

	for _, path := range paths {
		if err := run(path, *core, *variant, *decode, *n, *r, *sMax); err != nil {
			fmt.Fprintf(os.Stderr, "ncodec: %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func run(path, core, variant string, decode bool, n, r, sMax int) error {
	switch core {
	case "a":
		return runCoreA(path, os.Stdout, decode, n, r, sMax)
	case "b":
		return runCoreB(path, os.Stdout, decode, variant)
	default:
		return fmt.Errorf("unknown core %q", core)
	}
}

func runCoreA(path string, out *os.File, decode bool, n, r, sMax int) error {
	if decode {
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		rd := block.NewReader(in, n, r)
		for {
			payload, err := rd.ReadBlock()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := out.Write(payload); err != nil {
				return err
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	wr := block.NewWriter(out, n, r, sMax)
	if err := wr.WriteComment(fmt.Appendf(nil, "source %d bytes, n=%d r=%d", len(data), n, r)); err != nil {
		return err
	}
	return wr.WriteBlock(data)
}

func runCoreB(path string, out *os.File, decode bool, variant string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	nc := ctxcode.NewNybbleCoder(16)
	lc := ctxcode.NewLZWCoder(32)

	if decode {
		plain, err := ctxcode.DecodeStream(data, nc, lc)
		if err != nil {
			return err
		}
		_, err = out.Write(plain)
		return err
	}

	v := ctxcode.VariantNybble
	if variant == "lzw" {
		v = ctxcode.VariantLZW
	}
	coded, err := ctxcode.EncodeStream(data, v, nc, lc)
	if err != nil {
		return err
	}
	_, err = out.Write(coded)
	return err
}
