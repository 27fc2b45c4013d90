package csvcore

import "io"

// tokenizerState tracks position within a field the way readBatches
// tracks tail-carry state across reads, but at byte granularity and
// aware of quoting (spec.md §4.B). Grounded on the zero-copy field
// scanners in the shapestone fastparser package: explicit states,
// slice the read buffer directly for the common case, and fall back to
// a pooled copy only when a doubled quote or a buffer refill splits a
// field across two backing arrays.
type tokenizerState int

const (
	stateFieldStart tokenizerState = iota
	stateInUnquoted
	stateInQuoted
	stateAfterQuote
)

// TokenizerOptions controls the byte-level scan: delimiter, quote
// character, and the three leniency knobs spec.md §4.B/§6 define for
// whitespace and blank lines.
type TokenizerOptions struct {
	Delimiter byte
	Quote     byte

	// IgnoreSurroundingSpaces trims ASCII spaces that surround an
	// unquoted field: leading spaces before the field starts, trailing
	// spaces before the delimiter or line break, and spaces between a
	// closing quote and the delimiter or line break (which would
	// otherwise raise ErrJunkAfterClosingQuote).
	IgnoreSurroundingSpaces bool

	// Trim trims ASCII spaces from both ends of a quoted field's
	// interior, after unescaping, before the cell is emitted.
	Trim bool

	// IgnoreEmptyLines drops rows whose raw form is exactly a line
	// break ("\n" or "\r\n") instead of emitting them as a one-cell row
	// containing an empty field.
	IgnoreEmptyLines bool
}

// DefaultTokenizerOptions returns comma-delimited, double-quoted defaults.
func DefaultTokenizerOptions() TokenizerOptions {
	return TokenizerOptions{Delimiter: ',', Quote: '"'}
}

// tokenizer scans bytes into one row of cells at a time. A bare '\r' is
// standardized as a row terminator, consuming a following '\n' if present
// (spec.md's resolution of the open question on line endings).
//
// tokenizer owns its read buffer rather than wrapping a *bufio.Reader so
// that a Cell's Bytes can slice directly into it: growing the buffer
// never overwrites memory a previously returned Cell still points at,
// since a full buffer is replaced by allocating a fresh array and
// copying only the unconsumed tail forward, never compacted in place.
// A cell is only ever copied into the batch's stringPool when a doubled
// quote needs unescaping or when the field's scan straddled one of
// those reallocations; every other cell is emitted as a direct slice of
// the buffer that was read from the source (spec.md §1, §8 Property 1).
type tokenizer struct {
	r    io.Reader
	opts TokenizerOptions

	buf     []byte
	pos     int // next unscanned byte
	filled  int // valid bytes are buf[:filled]
	readErr error

	scratch []byte // accumulates a field's bytes once it must be copied

	row int64

	pending    []Cell // set by unread, consumed by the next nextRow call
	hasPending bool
}

func newTokenizer(r io.Reader, bufferSize int, opts TokenizerOptions) *tokenizer {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &tokenizer{
		r:       r,
		opts:    opts,
		buf:     make([]byte, bufferSize),
		scratch: make([]byte, 0, 64),
	}
}

// fill makes room for more bytes at buf[filled:] and reads into it. If the
// buffer is already full it allocates a fresh array (twice the size when
// buf[keepFrom:filled] would fill it on its own) and copies
// buf[keepFrom:filled] into its start -- the caller passes the
// earliest index it still needs contiguous, and gets back how far
// everything shifted so it can adjust its own saved indices. err is
// non-nil only when no further bytes are available at all (io.EOF once
// the source is exhausted, or a genuine read error).
func (t *tokenizer) fill(keepFrom int) (shift int, reallocated bool, err error) {
	if t.filled >= len(t.buf) {
		size := len(t.buf)
		if t.filled-keepFrom >= size {
			size *= 2
		}
		newBuf := make([]byte, size)
		n := copy(newBuf, t.buf[keepFrom:t.filled])
		shift = keepFrom
		t.buf = newBuf
		t.pos -= shift
		t.filled = n
		reallocated = true
	}
	if t.pos < t.filled {
		return shift, reallocated, nil
	}
	if t.readErr != nil {
		return shift, reallocated, t.readErr
	}
	n, rerr := t.r.Read(t.buf[t.filled:])
	t.filled += n
	if rerr != nil {
		t.readErr = rerr
	}
	if n == 0 {
		if rerr == nil {
			rerr = io.ErrNoProgress
		}
		return shift, reallocated, rerr
	}
	return shift, reallocated, nil
}

// nextRow scans one logical row and returns its cells. Most cells are
// slices of the tokenizer's own read buffer; see the tokenizer doc
// comment for when a cell is copied into pool instead. It returns
// io.EOF once no further row is available, and a *ParseError wrapping
// ErrMalformedQuotedField or ErrJunkAfterClosingQuote on malformed
// input.
func (t *tokenizer) nextRow(pool *stringPool) ([]Cell, error) {
	if t.hasPending {
		t.hasPending = false
		cells := t.pending
		t.pending = nil
		return cells, nil
	}
	if t.readErr == io.EOF && t.pos >= t.filled {
		return nil, io.EOF
	}

scanRow:
	var cells []Cell
	state := stateFieldStart
	fieldStart := t.pos
	quoteAt := -1
	copying := false
	t.scratch = t.scratch[:0]

	// startCopying switches a field from buf-slicing to an accumulated
	// copy, seeding scratch with everything captured so far up to (not
	// including) upto.
	startCopying := func(upto int) {
		if !copying {
			t.scratch = append(t.scratch[:0], t.buf[fieldStart:upto]...)
			copying = true
		}
	}

	capture := func(b byte) {
		if copying {
			t.scratch = append(t.scratch, b)
		}
	}

	// flush emits the field ending at buf index end (ignored once
	// copying, since scratch already holds exactly the content bytes).
	flush := func(quoted bool, end int) {
		var bytes []byte
		if copying {
			bytes = t.scratch
		} else {
			bytes = t.buf[fieldStart:end]
		}
		if quoted {
			if t.opts.Trim {
				bytes = trimSpacesBothEnds(bytes)
			}
		} else if t.opts.IgnoreSurroundingSpaces {
			bytes = trimTrailingSpaces(bytes)
		}
		if copying {
			bytes = pool.materialize(bytes)
			copying = false
			t.scratch = t.scratch[:0]
		}
		cells = append(cells, Cell{Bytes: bytes, Quoted: quoted})
	}

	for {
		if t.pos >= t.filled {
			keepFrom := fieldStart
			if copying {
				keepFrom = t.pos
			}
			shift, reallocated, ferr := t.fill(keepFrom)
			if shift > 0 {
				fieldStart -= shift
				if quoteAt >= 0 {
					quoteAt -= shift
				}
			}
			if reallocated && !copying && state != stateFieldStart {
				// A reallocation mid-field means the field's bytes no
				// longer all live in the buffer that was originally read
				// for them; treat it the same as a doubled-quote
				// unescape and route the rest of the field through the
				// pool.
				upto := t.pos
				if state == stateAfterQuote {
					upto = quoteAt
				}
				startCopying(upto)
			}
			if ferr != nil {
				if ferr != io.EOF {
					return nil, ferr
				}
				if state == stateInQuoted {
					return nil, newParseError(ErrKindMalformedQuotedField, t.row, "", "", ErrMalformedQuotedField)
				}
				if state == stateFieldStart && len(cells) == 0 {
					return nil, io.EOF
				}
				if state == stateAfterQuote {
					flush(true, quoteAt)
				} else {
					flush(false, t.pos)
				}
				t.row++
				if t.opts.IgnoreEmptyLines && isBlankLine(cells) {
					goto scanRow
				}
				return cells, nil
			}
			continue
		}

		b := t.buf[t.pos]
		t.pos++

		switch state {
		case stateFieldStart:
			if t.opts.IgnoreSurroundingSpaces && b == ' ' {
				fieldStart = t.pos
				continue
			}
			switch b {
			case t.opts.Quote:
				fieldStart = t.pos
				state = stateInQuoted
			case t.opts.Delimiter:
				flush(false, t.pos-1)
				fieldStart = t.pos
			case '\n':
				flush(false, t.pos-1)
				t.row++
				if t.opts.IgnoreEmptyLines && isBlankLine(cells) {
					goto scanRow
				}
				return cells, nil
			case '\r':
				flush(false, t.pos-1)
				t.consumeLF()
				t.row++
				if t.opts.IgnoreEmptyLines && isBlankLine(cells) {
					goto scanRow
				}
				return cells, nil
			default:
				capture(b)
				state = stateInUnquoted
			}
		case stateInUnquoted:
			switch b {
			case t.opts.Delimiter:
				flush(false, t.pos-1)
				state = stateFieldStart
				fieldStart = t.pos
			case '\n':
				flush(false, t.pos-1)
				t.row++
				return cells, nil
			case '\r':
				flush(false, t.pos-1)
				t.consumeLF()
				t.row++
				return cells, nil
			default:
				capture(b)
			}
		case stateInQuoted:
			if b == t.opts.Quote {
				quoteAt = t.pos - 1
				state = stateAfterQuote
			} else {
				capture(b)
			}
		case stateAfterQuote:
			switch {
			case b == t.opts.Quote:
				startCopying(quoteAt)
				capture(b)
				state = stateInQuoted
			case b == t.opts.Delimiter:
				flush(true, quoteAt)
				state = stateFieldStart
				fieldStart = t.pos
			case b == '\n':
				flush(true, quoteAt)
				t.row++
				return cells, nil
			case b == '\r':
				flush(true, quoteAt)
				t.consumeLF()
				t.row++
				return cells, nil
			case b == ' ' && t.opts.IgnoreSurroundingSpaces:
				// skippable space between a closing quote and the next
				// delimiter or line break
			default:
				return nil, newParseError(ErrKindJunkAfterClosingQuote, t.row, "", string(b), ErrJunkAfterClosingQuote)
			}
		}
	}
}

// consumeLF absorbs a '\n' immediately following a bare '\r', so CRLF
// collapses to one row terminator like a lone '\r' or '\n' does. Called
// only after the row's last field has already been flushed, so a
// reallocation here never needs to preserve anything but the unread
// tail.
func (t *tokenizer) consumeLF() {
	for t.pos >= t.filled {
		if _, _, err := t.fill(t.pos); err != nil {
			return
		}
	}
	if t.buf[t.pos] == '\n' {
		t.pos++
	}
}

// isBlankLine reports whether cells is the one-cell, empty-field row
// produced by a line break with nothing before it.
func isBlankLine(cells []Cell) bool {
	return len(cells) == 1 && len(cells[0].Bytes) == 0 && !cells[0].Quoted
}

func trimSpacesBothEnds(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && b[start] == ' ' {
		start++
	}
	for end > start && b[end-1] == ' ' {
		end--
	}
	return b[start:end]
}

func trimTrailingSpaces(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return b[:end]
}

// unread pushes cells back so the next nextRow call returns them again,
// used by the reader to peek a row to learn column count without losing
// it as data.
func (t *tokenizer) unread(cells []Cell) {
	t.pending = cells
	t.hasPending = true
}
