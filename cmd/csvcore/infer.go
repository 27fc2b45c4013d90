package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/deephaven/csvcore"
)

func runInfer(args []string) {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	delimiter := fs.String("delimiter", ",", "field delimiter")
	noHeader := fs.Bool("no-header", false, "treat the first row as data, not a header")
	showProgress := fs.Bool("progress", false, "show a progress spinner while reading")
	if err := fs.Parse(args); err != nil {
		fatalf("%v", err)
	}
	if fs.NArg() < 1 {
		fatalf("usage: csvcore infer [options] <file>")
	}
	path := fs.Arg(0)

	f, err := openInput(path)
	if err != nil {
		fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	bar := newProgress(*showProgress)
	opts := csvcore.NewReadOptions(
		csvcore.WithDelimiter((*delimiter)[0]),
		csvcore.WithHeader(!*noHeader),
	)
	result, err := csvcore.Read(context.Background(), f, nil, opts)
	bar.finish()
	if err != nil {
		fatalf("reading %s: %v", path, err)
	}

	fmt.Printf("%d rows, %d columns\n", result.NumRows, len(result.ColumnNames))
	for i, name := range result.ColumnNames {
		fmt.Fprintf(os.Stdout, "  %-24s %s\n", name, result.ColumnTypes[i])
	}
}
