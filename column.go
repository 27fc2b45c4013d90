package csvcore

import "fmt"

// NewSinkFunc builds the sink a parser needs to hold its values. The column
// worker calls it every time inference moves to a different candidate,
// since each candidate owns a distinct value type and therefore a distinct
// concrete sink type (spec.md §4.H).
type NewSinkFunc func(parser ValueParser) Sink

// DefaultSinkFactory returns a NewSinkFunc producing the library's built-in
// SliceSink family, each pre-sized with capacityHint rows.
func DefaultSinkFactory(capacityHint int) NewSinkFunc {
	return func(parser ValueParser) Sink {
		switch parser.(type) {
		case BoolParser:
			return NewBoolSliceSink(capacityHint)
		case IntParser:
			return NewIntSliceSink(capacityHint)
		case FloatParser:
			return NewFloatSliceSink(capacityHint)
		case TimestampParser:
			return NewTimestampSliceSink(capacityHint)
		default:
			return NewStringSliceSink(capacityHint)
		}
	}
}

// ColumnSpec configures how one output column is inferred and where its
// values land.
type ColumnSpec struct {
	Name    string
	Ordinal int

	// Candidates are tried in order on the first cell that discriminates the
	// type, demoting to the next entry whenever the current one fails.
	// A StringParser is appended when the list does not already end with
	// one, so inference always terminates: it never fails.
	Candidates []ValueParser

	// Forced, when set, skips inference: every cell is parsed with this
	// parser and a mismatch is a hard error rather than a demotion trigger.
	Forced ValueParser

	// NullLiteral is the unquoted byte sequence that denotes a null cell.
	// Nil means the column recognizes no null literal.
	NullLiteral *string

	// NullParser is committed to at EOF if every cell the column ever saw
	// was null, since an all-null column cannot discriminate a type. Nil
	// defaults to StringParser{}.
	NullParser ValueParser

	// NewSink builds the sink for a given parser. Nil defaults to
	// DefaultSinkFactory(64).
	NewSink NewSinkFunc
}

type cachedCell struct {
	data   []byte
	quoted bool
}

// columnWorker drives one column's candidate-parser state machine. It is
// not safe for concurrent use; the reader gives each column its own
// goroutine (spec.md §4.E/§5).
type columnWorker struct {
	spec         ColumnSpec
	candidates   []ValueParser
	candidateIdx int
	current      ValueParser
	sink         Sink
	cache        []cachedCell
	sawNonNull   bool
	committed    bool
}

func newColumnWorker(spec ColumnSpec) (*columnWorker, error) {
	if spec.NewSink == nil {
		spec.NewSink = DefaultSinkFactory(64)
	}
	w := &columnWorker{spec: spec}

	if spec.Forced != nil {
		w.current = spec.Forced
		w.committed = true
	} else {
		if len(spec.Candidates) == 0 {
			return nil, fmt.Errorf("csvcore: column %q has no candidate parsers", spec.Name)
		}
		w.candidates = spec.Candidates
		if _, ok := w.candidates[len(w.candidates)-1].(StringParser); !ok {
			w.candidates = append(append([]ValueParser(nil), w.candidates...), StringParser{})
		}
		w.current = w.candidates[0]
		w.committed = len(w.candidates) == 1
	}
	w.sink = spec.NewSink(w.current)
	return w, nil
}

// processBatch feeds cells, starting at absolute row firstRow, through the
// column's current candidate, demoting and replaying the full cache from
// row 0 as many times as needed until every cell is accounted for.
func (w *columnWorker) processBatch(cells []Cell, firstRow int64) error {
	for _, c := range cells {
		if !isNullCell(c, w.spec.NullLiteral) {
			w.sawNonNull = true
		}
	}
	if !w.committed || (w.spec.Forced == nil && !w.sawNonNull) {
		w.cacheAppend(cells)
	}
	return w.driveToSuccess(cells, firstRow)
}

func (w *columnWorker) driveToSuccess(cells []Cell, firstRow int64) error {
	for {
		n, ok, err := w.current.TryParseBatch(cells, w.spec.NullLiteral, w.sink, firstRow)
		if err != nil {
			return err
		}
		if ok {
			if w.committed && w.sawNonNull {
				w.cache = nil
			}
			return nil
		}
		if w.spec.Forced != nil {
			return newParseError(ErrKindNoParserMatched, firstRow+int64(n), w.spec.Name,
				string(cells[n].Bytes), ErrNoParserMatched)
		}
		if w.committed {
			// current was the last candidate (String), which never fails.
			return newParseError(ErrKindNoParserMatched, firstRow+int64(n), w.spec.Name,
				string(cells[n].Bytes), ErrNoParserMatched)
		}
		w.demote()
		cells = cachedToCells(w.cache)
		firstRow = 0
	}
}

func (w *columnWorker) demote() {
	w.candidateIdx++
	if w.candidateIdx >= len(w.candidates) {
		w.current = StringParser{}
		w.committed = true
	} else {
		w.current = w.candidates[w.candidateIdx]
		w.committed = w.candidateIdx == len(w.candidates)-1
	}
	w.sink = w.spec.NewSink(w.current)
}

// finalize resolves the all-null special case: a column whose every cell
// was the null literal never produces a discriminating failure, so it
// would otherwise silently commit to whichever candidate came first. At
// EOF such a column commits to spec.NullParser (default StringParser)
// instead (spec.md §4.E).
func (w *columnWorker) finalize() error {
	if w.spec.Forced != nil || w.sawNonNull {
		w.cache = nil
		return nil
	}

	nullParser := w.spec.NullParser
	if nullParser == nil {
		nullParser = StringParser{}
	}
	if w.current != nil && w.current.Name() == nullParser.Name() {
		w.committed = true
		w.cache = nil
		return nil
	}

	newSink := w.spec.NewSink(nullParser)
	cells := cachedToCells(w.cache)
	if len(cells) > 0 {
		if _, ok, err := nullParser.TryParseBatch(cells, w.spec.NullLiteral, newSink, 0); err != nil {
			return err
		} else if !ok {
			return newParseError(ErrKindNoParserMatched, 0, w.spec.Name, "", ErrNoParserMatched)
		}
	}
	w.sink = newSink
	w.current = nullParser
	w.committed = true
	w.cache = nil
	return nil
}

func (w *columnWorker) cacheAppend(cells []Cell) {
	for _, c := range cells {
		owned := make([]byte, len(c.Bytes))
		copy(owned, c.Bytes)
		w.cache = append(w.cache, cachedCell{data: owned, quoted: c.Quoted})
	}
}

func cachedToCells(cache []cachedCell) []Cell {
	cells := make([]Cell, len(cache))
	for i, c := range cache {
		cells[i] = Cell{Bytes: c.data, Quoted: c.quoted}
	}
	return cells
}
