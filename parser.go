package csvcore

// ValueParser is the leaf parsing contract from spec.md §4.D. Implementations
// must be pure and idempotent with respect to the sink region they write:
// calling TryParseBatch twice with the same arguments produces the same sink
// state.
//
// TryParseBatch attempts to convert cells[0:len(cells)] and write each
// result into sink starting at absolute row firstRow. It returns the number
// of cells consumed and ok==true if every cell in the batch was handled
// (written, as a value or a null); otherwise it returns ok==false and n is
// the index of the first cell it could not convert, with no further writes
// attempted beyond that point within this call. err is non-nil only when the
// sink itself rejected a write (ErrKindSinkWriteFailure) -- that is never a
// candidate-parser failure and must not trigger demotion.
type ValueParser interface {
	// Name identifies the parser for error messages and for reporting which
	// type a column committed to.
	Name() string
	TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (n int, ok bool, err error)
}

// isNullCell reports whether cell denotes the column's null literal: an
// unquoted cell whose bytes equal the configured null literal. A quoted
// empty cell is never null (spec.md §3).
func isNullCell(cell Cell, nullLiteral *string) bool {
	if nullLiteral == nil || cell.Quoted {
		return false
	}
	return string(cell.Bytes) == *nullLiteral
}
