package csvcore

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Result is what a completed Read returns: the row count actually
// consumed and one populated Sink per resolved column, in column order
// (spec.md §6).
type Result struct {
	NumRows     int64
	ColumnNames []string
	ColumnTypes []string
	Sinks       []Sink
}

// DefaultCandidates returns the standard type-inference ladder: bool,
// int, float, timestamp, string. String never fails, so it always
// terminates the chain (spec.md §4.E).
func DefaultCandidates() []ValueParser {
	return []ValueParser{
		BoolParser{},
		IntParser{},
		NewFloatParser(nil),
		NewTimestampParser(nil),
		StringParser{},
	}
}

// candidatesForOptions is DefaultCandidates with opts.Candidates,
// opts.CustomDoubleParser and opts.CustomTimezoneParser threaded through
// for auto-generated ColumnSpecs (spec.md §6).
func candidatesForOptions(opts ReadOptions) []ValueParser {
	if len(opts.Candidates) > 0 {
		return opts.Candidates
	}
	return []ValueParser{
		BoolParser{},
		IntParser{},
		NewFloatParser(opts.CustomDoubleParser),
		NewTimestampParser(opts.CustomTimezoneParser),
		StringParser{},
	}
}

// Read tokenizes r and infers/parses each column according to columns and
// opts, returning one sink per column. If columns is empty, one
// default-inference ColumnSpec is synthesized per field using the
// resolved header (opts.Headers, the file's header row, or "Column1",
// "Column2", ... if opts.HasHeader is false and no names were given).
//
// When opts.Concurrent is true (the default) a tokenizer goroutine and one
// goroutine per column run as a two-stage pipeline connected by a bounded
// per-column batch channel (spec.md §5); otherwise everything runs
// synchronously on the calling goroutine, reusing the same per-batch step.
func Read(ctx context.Context, r io.Reader, columns []ColumnSpec, opts ReadOptions) (Result, error) {
	opts = opts.withDefaults()

	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	tok := newTokenizer(r, opts.BufferSize, opts.Tokenizer)

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := tok.nextRow(newStringPool(64)); err != nil {
			if err == io.EOF {
				break
			}
			return Result{}, err
		}
	}

	var fileHeader []string
	if opts.HasHeader {
		headerPool := newStringPool(256)
		cells, err := tok.nextRow(headerPool)
		if err != nil && err != io.EOF {
			return Result{}, err
		}
		fileHeader = make([]string, len(cells))
		for i, c := range cells {
			fileHeader[i] = string(c.Bytes)
		}
		if opts.HeaderLegalizer != nil {
			for i, name := range fileHeader {
				fileHeader[i] = opts.HeaderLegalizer(name)
			}
		}
		if opts.HeaderValidator != nil {
			if err := opts.HeaderValidator(fileHeader); err != nil {
				return Result{}, newParseError(ErrKindHeaderInvalid, -1, "", "", err)
			}
		}
	}

	numColumns := len(columns)
	if numColumns == 0 {
		numColumns = len(opts.Headers)
		if len(fileHeader) > numColumns {
			numColumns = len(fileHeader)
		}
	}
	if numColumns == 0 {
		numColumns = len(fileHeader)
	}
	if numColumns == 0 {
		// No header and no explicit columns: peek the first data row to
		// learn the column count, then push it back so it is read again
		// as real row 0 by readSequential/readConcurrent.
		probePool := newStringPool(256)
		cells, err := tok.nextRow(probePool)
		if err != nil {
			if err == io.EOF {
				return Result{}, newParseError(ErrKindHeaderInvalid, -1, "", "", ErrHeaderInvalid)
			}
			return Result{}, err
		}
		numColumns = len(cells)
		tok.unread(cells)
	}

	header, err := resolveHeader(opts, fileHeader, numColumns)
	if err != nil {
		return Result{}, err
	}

	specs := resolveColumnSpecs(columns, header, numColumns, opts)

	workers := make([]*columnWorker, numColumns)
	for i, spec := range specs {
		w, err := newColumnWorker(spec)
		if err != nil {
			return Result{}, err
		}
		workers[i] = w
	}

	var (
		numRows int64
		readErr error
	)
	if opts.Concurrent {
		numRows, readErr = readConcurrent(ctx, tok, workers, opts)
	} else {
		numRows, readErr = readSequential(ctx, tok, workers, opts)
	}
	if readErr != nil {
		return Result{}, readErr
	}

	result := Result{NumRows: numRows, ColumnNames: make([]string, numColumns), ColumnTypes: make([]string, numColumns), Sinks: make([]Sink, numColumns)}
	for i, w := range workers {
		if err := w.finalize(); err != nil {
			return Result{}, err
		}
		result.ColumnNames[i] = w.spec.Name
		result.ColumnTypes[i] = w.current.Name()
		result.Sinks[i] = w.sink
		if opts.Verbose {
			logf("csvcore: column %q committed to %s", w.spec.Name, w.current.Name())
		}
	}
	return result, nil
}

// resolveHeader applies spec.md §4.F step 1: Headers (if set) supersede
// the file header or synthesized names; HeaderForIndex then overrides by
// ordinal; the result must be free of empty or duplicate names.
func resolveHeader(opts ReadOptions, fileHeader []string, numColumns int) ([]string, error) {
	header := make([]string, numColumns)
	for i := range header {
		switch {
		case i < len(opts.Headers) && opts.Headers[i] != "":
			header[i] = opts.Headers[i]
		case i < len(fileHeader):
			header[i] = fileHeader[i]
		default:
			header[i] = columnName(i)
		}
	}
	for i, name := range opts.HeaderForIndex {
		if i >= 0 && i < numColumns {
			header[i] = name
		}
	}

	seen := make(map[string]int, numColumns)
	for i, name := range header {
		if name == "" {
			return nil, newParseError(ErrKindHeaderInvalid, -1, "", "",
				fmt.Errorf("csvcore: column %d has an empty header name", i))
		}
		if prev, ok := seen[name]; ok {
			return nil, newParseError(ErrKindHeaderInvalid, -1, "", "",
				fmt.Errorf("csvcore: duplicate header name %q at columns %d and %d", name, prev, i))
		}
		seen[name] = i
	}
	return header, nil
}

// resolveColumnSpecs synthesizes one ColumnSpec per column when the
// caller didn't supply columns explicitly, applying the per-name/
// per-index parser and null-literal overrides from opts (spec.md §4.F
// step 2). Explicit columns pass through unchanged: opts' per-column
// overrides only apply to auto-generated specs.
func resolveColumnSpecs(columns []ColumnSpec, header []string, numColumns int, opts ReadOptions) []ColumnSpec {
	if len(columns) > 0 {
		return columns
	}
	newSink := opts.DefaultNewSink
	candidates := candidatesForOptions(opts)
	specs := make([]ColumnSpec, numColumns)
	for i := range specs {
		name := columnName(i)
		if i < len(header) {
			name = header[i]
		}

		spec := ColumnSpec{
			Name:       name,
			Ordinal:    i,
			Candidates: candidates,
			NewSink:    newSink,
			NullParser: opts.NullParser,
		}

		if forced, ok := opts.ParserForName[name]; ok {
			spec.Forced = forced
		} else if forced, ok := opts.ParserForIndex[i]; ok {
			spec.Forced = forced
		}

		if literal, ok := opts.NullLiteralForName[name]; ok {
			spec.NullLiteral = &literal
		} else if literal, ok := opts.NullLiteralForIndex[i]; ok {
			spec.NullLiteral = &literal
		} else {
			spec.NullLiteral = opts.NullValueLiteral
		}

		specs[i] = spec
	}
	return specs
}

// columnName synthesizes the header for column i (0-based) when neither
// a file header nor an explicit override supplies one: "Column1",
// "Column2", ... (spec.md §4.F step 1).
func columnName(i int) string {
	return "Column" + itoa(i+1)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// readSequential drains the tokenizer and feeds every column worker from a
// single goroutine, the non-concurrent path required by spec.md §5.
func readSequential(ctx context.Context, tok *tokenizer, workers []*columnWorker, opts ReadOptions) (int64, error) {
	pool := newStringPool(opts.BufferSize)
	var row int64
	for {
		if ctx.Err() != nil {
			return row, ctx.Err()
		}
		if opts.NumRows > 0 && row >= opts.NumRows {
			return row, nil
		}
		cells, err := tok.nextRow(pool)
		if err == io.EOF {
			return row, nil
		}
		if err != nil {
			return row, err
		}
		cells, err = applyRowWidth(cells, len(workers), opts.RowWidth, row)
		if err != nil {
			return row, err
		}
		for i, w := range workers {
			if err := w.processBatch(cells[i:i+1], row); err != nil {
				return row, err
			}
		}
		row++
		pool.reset()
	}
}

// readConcurrent runs the two-stage pipeline: a tokenizer goroutine fills
// rowBatches and fans each one out to every column's channel; one
// goroutine per column drains its channel and drives its columnWorker
// (spec.md §5), grounded on tsv_parser.go's ParseTSV shape.
func readConcurrent(ctx context.Context, tok *tokenizer, workers []*columnWorker, opts ReadOptions) (int64, error) {
	numColumns := len(workers)
	batches := newRowBatchChannel(defaultChanDepth, numColumns, opts.BatchRows)

	var fe firstError
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var producerErr error
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		producerErr = produceBatches(ctx, tok, batches, opts)
		if producerErr != nil && fe.set(producerErr) {
			cancel()
		}
		batches.close()
	}()

	var wg sync.WaitGroup
	var rowsSeen [1]int64 // updated only by column 0, the others agree by construction
	for i := 0; i < numColumns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := workers[i]
			for b := range batches.column(i) {
				if fe.get() == nil {
					cells := b.column(i)
					if err := w.processBatch(cells, b.startRow); err != nil {
						if fe.set(err) {
							cancel()
						}
					} else if i == 0 {
						rowsSeen[0] = b.startRow + int64(b.rowCount)
					}
				}
				batches.release(b)
			}
		}(i)
	}
	wg.Wait()
	<-producerDone

	if err := fe.get(); err != nil {
		return rowsSeen[0], err
	}
	if ctx.Err() != nil {
		return rowsSeen[0], ctx.Err()
	}
	return rowsSeen[0], nil
}

// produceBatches tokenizes rows into column-major batches of opts.BatchRows
// and publishes each to every column channel as it fills.
func produceBatches(ctx context.Context, tok *tokenizer, batches *rowBatchChannel, opts ReadOptions) error {
	numColumns := batches.numColumns()
	var row int64
	b := batches.acquire(row)

	flush := func() error {
		if b.rowCount == 0 {
			return nil
		}
		if err := batches.publish(ctx, b); err != nil {
			return err
		}
		b = batches.acquire(row)
		return nil
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if opts.NumRows > 0 && row >= opts.NumRows {
			break
		}
		cells, err := tok.nextRow(b.pool)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		cells, err = applyRowWidth(cells, numColumns, opts.RowWidth, row)
		if err != nil {
			return err
		}
		for col, cell := range cells {
			b.cells[col][b.rowCount] = cell
		}
		b.rowCount++
		row++
		if b.rowCount >= len(b.cells[0]) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	b.last = true
	return flush()
}

func applyRowWidth(cells []Cell, numColumns int, policy RowWidthPolicy, row int64) ([]Cell, error) {
	if len(cells) == numColumns {
		return cells, nil
	}
	if len(cells) < numColumns {
		switch policy {
		case RowWidthAllowMissing:
			padded := make([]Cell, numColumns)
			copy(padded, cells)
			return padded, nil
		default:
			return nil, newParseError(ErrKindTooFewColumns, row, "", "", ErrTooFewColumns)
		}
	}
	switch policy {
	case RowWidthIgnoreExcess:
		return cells[:numColumns], nil
	default:
		return nil, newParseError(ErrKindTooManyColumns, row, "", "", ErrTooManyColumns)
	}
}
