package csvcore

import (
	"runtime"
	"time"
)

const (
	defaultBufferSize = 1 << 16 // 64 KiB, grounded on tsv_parser.go's BufferSize
	defaultBatchRows  = 1024
	defaultChanDepth  = 2
)

// RowWidthPolicy governs what happens when a row has a different number of
// fields than the header (spec.md §4.B/§6).
type RowWidthPolicy int

const (
	// RowWidthStrict rejects any row whose width differs from the header.
	RowWidthStrict RowWidthPolicy = iota
	// RowWidthAllowMissing pads short rows with empty, unquoted cells.
	RowWidthAllowMissing
	// RowWidthIgnoreExcess truncates rows with more fields than the header.
	RowWidthIgnoreExcess
)

// ReadOptions configures a Read call: delimiter/quote handling, header
// behavior, leniency flags and concurrency knobs (spec.md §6).
type ReadOptions struct {
	Tokenizer TokenizerOptions

	HasHeader bool
	SkipRows  int
	NumRows   int64 // 0 means unbounded

	// Headers, when non-nil, supplies header names outright: it replaces
	// whatever HasHeader would otherwise have produced (a parsed file
	// row or a synthesized "ColumnN"), though the file's header row is
	// still consumed and discarded when HasHeader is true. A short or
	// empty entry falls back to the file/synthesized name for that
	// ordinal (spec.md §6 "headers").
	Headers []string

	// HeaderForIndex overrides a single column's resolved name by
	// 0-based ordinal, applied after Headers/HasHeader/synthesis
	// (spec.md §4.F step 1 "header_for_index").
	HeaderForIndex map[int]string

	// HeaderLegalizer rewrites each header name parsed from the file
	// before HeaderValidator and duplicate/empty rejection run. Nil
	// means identity. Not applied to Headers or to synthesized names.
	HeaderLegalizer func(string) string

	// HeaderValidator runs once the header has been legalized; an error
	// fails Read with ErrKindHeaderInvalid. Nil means always valid.
	HeaderValidator func([]string) error

	// ParserForName and ParserForIndex force a column's parser by name or
	// 0-based ordinal, name taking precedence, for auto-generated
	// ColumnSpecs (spec.md §6 "parser_for_name"/"parser_for_index").
	ParserForName  map[string]ValueParser
	ParserForIndex map[int]ValueParser

	// NullValueLiteral is the default null literal applied to every
	// auto-generated column; NullLiteralForName/NullLiteralForIndex
	// override it per column, name taking precedence over index
	// (spec.md §6 "null_value_literal").
	NullValueLiteral   *string
	NullLiteralForName map[string]string
	NullLiteralForIndex map[int]string

	// NullParser is committed to for an auto-generated column whose
	// every cell was null. Nil means StringParser{} (spec.md §6
	// "null_parser").
	NullParser ValueParser

	// CustomDoubleParser and CustomTimezoneParser replace the default
	// strconv/time.RFC3339 parsing used by the float and timestamp
	// candidates generated for auto columns (spec.md §6
	// "custom_double_parser"/"custom_timezone_parser").
	CustomDoubleParser   DoubleParser
	CustomTimezoneParser TimezoneParser

	// Candidates overrides the default bool/int/float/timestamp/string
	// inference ladder used for auto-generated ColumnSpecs.
	Candidates []ValueParser

	RowWidth RowWidthPolicy

	BufferSize int
	BatchRows  int

	// Concurrent selects the two-stage pipeline (tokenizer goroutine + one
	// goroutine per column) versus a single-goroutine synchronous drain
	// (spec.md §5).
	Concurrent bool
	Workers    int

	Timeout time.Duration

	// DefaultNewSink overrides the sink factory used for auto-generated
	// ColumnSpecs (when Read is called with columns == nil). Nil means
	// DefaultSinkFactory(64).
	DefaultNewSink NewSinkFunc

	// Verbose logs a one-line summary of each column's committed type to
	// stderr after Read completes.
	Verbose bool
}

// Option mutates a ReadOptions under construction, mirroring tsv_parser.go's
// chainable With* methods but as free functions so callers can compose
// them: csvcore.NewReadOptions(csvcore.WithDelimiter('\t')).
type Option func(*ReadOptions)

// NewReadOptions returns DefaultReadOptions with opts applied in order.
func NewReadOptions(opts ...Option) ReadOptions {
	o := DefaultReadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DefaultReadOptions returns a comma-delimited, headered, strict-width,
// concurrent baseline.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Tokenizer:  DefaultTokenizerOptions(),
		HasHeader:  true,
		RowWidth:   RowWidthStrict,
		BufferSize: defaultBufferSize,
		BatchRows:  defaultBatchRows,
		Concurrent: true,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

func WithDelimiter(d byte) Option {
	return func(o *ReadOptions) { o.Tokenizer.Delimiter = d }
}

func WithQuote(q byte) Option {
	return func(o *ReadOptions) { o.Tokenizer.Quote = q }
}

func WithIgnoreSurroundingSpaces(ignore bool) Option {
	return func(o *ReadOptions) { o.Tokenizer.IgnoreSurroundingSpaces = ignore }
}

func WithTrim(trim bool) Option {
	return func(o *ReadOptions) { o.Tokenizer.Trim = trim }
}

func WithIgnoreEmptyLines(ignore bool) Option {
	return func(o *ReadOptions) { o.Tokenizer.IgnoreEmptyLines = ignore }
}

func WithHeader(has bool) Option {
	return func(o *ReadOptions) { o.HasHeader = has }
}

// WithHeaders supplies explicit header names, overriding any header row
// present in the file or supplying one when HasHeader is false.
func WithHeaders(names []string) Option {
	return func(o *ReadOptions) { o.Headers = names }
}

// WithHeaderForIndex overrides a single resolved header name by its
// 0-based ordinal.
func WithHeaderForIndex(index int, name string) Option {
	return func(o *ReadOptions) {
		if o.HeaderForIndex == nil {
			o.HeaderForIndex = make(map[int]string)
		}
		o.HeaderForIndex[index] = name
	}
}

func WithHeaderLegalizer(f func(string) string) Option {
	return func(o *ReadOptions) { o.HeaderLegalizer = f }
}

func WithHeaderValidator(f func([]string) error) Option {
	return func(o *ReadOptions) { o.HeaderValidator = f }
}

// WithParserForName forces the named auto-generated column to use parser
// instead of running inference.
func WithParserForName(name string, parser ValueParser) Option {
	return func(o *ReadOptions) {
		if o.ParserForName == nil {
			o.ParserForName = make(map[string]ValueParser)
		}
		o.ParserForName[name] = parser
	}
}

// WithParserForIndex forces the auto-generated column at index to use
// parser instead of running inference.
func WithParserForIndex(index int, parser ValueParser) Option {
	return func(o *ReadOptions) {
		if o.ParserForIndex == nil {
			o.ParserForIndex = make(map[int]ValueParser)
		}
		o.ParserForIndex[index] = parser
	}
}

// WithNullValueLiteral sets the default null literal applied to every
// auto-generated column.
func WithNullValueLiteral(literal string) Option {
	return func(o *ReadOptions) { o.NullValueLiteral = &literal }
}

func WithNullLiteralForName(name, literal string) Option {
	return func(o *ReadOptions) {
		if o.NullLiteralForName == nil {
			o.NullLiteralForName = make(map[string]string)
		}
		o.NullLiteralForName[name] = literal
	}
}

func WithNullLiteralForIndex(index int, literal string) Option {
	return func(o *ReadOptions) {
		if o.NullLiteralForIndex == nil {
			o.NullLiteralForIndex = make(map[int]string)
		}
		o.NullLiteralForIndex[index] = literal
	}
}

func WithNullParser(parser ValueParser) Option {
	return func(o *ReadOptions) { o.NullParser = parser }
}

func WithCustomDoubleParser(parse DoubleParser) Option {
	return func(o *ReadOptions) { o.CustomDoubleParser = parse }
}

func WithCustomTimezoneParser(parse TimezoneParser) Option {
	return func(o *ReadOptions) { o.CustomTimezoneParser = parse }
}

// WithCandidates overrides the default inference ladder used for
// auto-generated ColumnSpecs.
func WithCandidates(candidates []ValueParser) Option {
	return func(o *ReadOptions) { o.Candidates = candidates }
}

func WithSkipRows(n int) Option {
	return func(o *ReadOptions) { o.SkipRows = n }
}

func WithNumRows(n int64) Option {
	return func(o *ReadOptions) { o.NumRows = n }
}

func WithRowWidthPolicy(p RowWidthPolicy) Option {
	return func(o *ReadOptions) { o.RowWidth = p }
}

func WithConcurrent(concurrent bool) Option {
	return func(o *ReadOptions) { o.Concurrent = concurrent }
}

func WithWorkers(n int) Option {
	return func(o *ReadOptions) { o.Workers = n }
}

func WithBatchRows(n int) Option {
	return func(o *ReadOptions) { o.BatchRows = n }
}

func WithTimeout(d time.Duration) Option {
	return func(o *ReadOptions) { o.Timeout = d }
}

// WithDefaultSinkFactory sets the sink factory applied to auto-generated
// ColumnSpecs, for example csvcore.ArrowSinkFactory() to have an
// inference-only Read call materialize Arrow arrays instead of slices.
func WithDefaultSinkFactory(f NewSinkFunc) Option {
	return func(o *ReadOptions) { o.DefaultNewSink = f }
}

func WithVerbose(v bool) Option {
	return func(o *ReadOptions) { o.Verbose = v }
}

func (o ReadOptions) withDefaults() ReadOptions {
	if o.BufferSize <= 0 {
		o.BufferSize = defaultBufferSize
	}
	if o.BatchRows <= 0 {
		o.BatchRows = defaultBatchRows
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Tokenizer.Delimiter == 0 {
		o.Tokenizer.Delimiter = ','
	}
	if o.Tokenizer.Quote == 0 {
		o.Tokenizer.Quote = '"'
	}
	return o
}
