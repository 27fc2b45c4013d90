package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/deephaven/csvcore"
)

func runArrow(args []string) {
	fs := flag.NewFlagSet("arrow", flag.ExitOnError)
	delimiter := fs.String("delimiter", ",", "field delimiter")
	noHeader := fs.Bool("no-header", false, "treat the first row as data, not a header")
	out := fs.String("out", "", "output .arrow file path (required)")
	if err := fs.Parse(args); err != nil {
		fatalf("%v", err)
	}
	if fs.NArg() < 1 || *out == "" {
		fatalf("usage: csvcore arrow [options] -out <path> <file>")
	}
	path := fs.Arg(0)

	in, err := openInput(path)
	if err != nil {
		fatalf("opening %s: %v", path, err)
	}
	defer in.Close()

	opts := csvcore.NewReadOptions(
		csvcore.WithDelimiter((*delimiter)[0]),
		csvcore.WithHeader(!*noHeader),
		csvcore.WithDefaultSinkFactory(csvcore.ArrowSinkFactory()),
	)

	result, err := csvcore.Read(context.Background(), in, nil, opts)
	if err != nil {
		fatalf("reading %s: %v", path, err)
	}

	fields := make([]arrow.Field, len(result.Sinks))
	cols := make([]arrow.Array, len(result.Sinks))
	for i, sink := range result.Sinks {
		as, ok := sink.(*csvcore.ArrowSink)
		if !ok {
			fatalf("column %q did not produce an arrow sink", result.ColumnNames[i])
		}
		arr := as.NewArray()
		defer arr.Release()
		cols[i] = arr
		fields[i] = arrow.Field{Name: result.ColumnNames[i], Type: arr.DataType(), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)
	record := array.NewRecord(schema, cols, result.NumRows)
	defer record.Release()

	f, err := os.Create(*out)
	if err != nil {
		fatalf("creating %s: %v", *out, err)
	}
	defer f.Close()

	writer, err := ipc.NewFileWriter(f, ipc.WithSchema(schema))
	if err != nil {
		fatalf("opening arrow writer: %v", err)
	}
	if err := writer.Write(record); err != nil {
		fatalf("writing arrow record: %v", err)
	}
	if err := writer.Close(); err != nil {
		fatalf("closing arrow writer: %v", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %d rows, %d columns to %s\n", result.NumRows, len(fields), *out)
}
