// xml2abx converts textual XML documents to Android Binary XML streams.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/netcfg/abx"
	"github.com/netcfg/abx/xmltree"
)

type optsType struct {
	inPlace            bool
	collapseWhitespace bool
}

func main() {
	var opts optsType

	flag.BoolVar(&opts.inPlace, "i", false, "Overwrite the input file instead of writing to stdout")
	flag.BoolVar(&opts.collapseWhitespace, "collapse-whitespace", false, "Drop whitespace-only text nodes instead of encoding them")
	flag.Parse()

	if len(flag.Args()) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-i] [-collapse-whitespace] INPUT...\n", os.Args[0])
		os.Exit(1)
	}

	exitcode := 0
	for _, input := range flag.Args() {
		if err := processInput(input, &opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitcode = 1
		}
	}
	os.Exit(exitcode)
}

func processInput(input string, opts *optsType) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	doc, err := xmltree.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	w, closeW, err := openOutput(input, opts.inPlace)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	defer closeW()

	bw := bufio.NewWriter(w)
	enc, err := abx.NewEncoder(bw)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	abxOpts := abx.Options{
		CollapseWhitespace: opts.collapseWhitespace,
		WarningCallback: func(category, message string) {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", category, message)
		},
	}
	if err := xmltree.Walk(doc, enc, abxOpts); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	return bw.Flush()
}

func readInput(input string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if strings.HasSuffix(input, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

func openOutput(input string, inPlace bool) (w io.Writer, closeFn func(), err error) {
	if !inPlace || input == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(input)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(input, ".gz") {
		gz := gzip.NewWriter(f)
		return gz, func() { gz.Close(); f.Close() }, nil
	}
	return f, func() { f.Close() }, nil
}
