// Command csvcore demonstrates the library end to end: it reads a CSV or
// TSV file, runs type inference, and either prints the result or exports
// it as an Arrow IPC file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "infer":
		runInfer(os.Args[2:])
	case "arrow":
		runArrow(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "csvcore - high-throughput CSV type inference")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  csvcore <command> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  infer   Read a file and print inferred column names, types and row count")
	fmt.Fprintln(os.Stderr, "  arrow   Read a file and write it as an Arrow IPC file")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'csvcore <command> -h' for command-specific options.")
}
