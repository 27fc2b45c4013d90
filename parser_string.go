package csvcore

// StringParser is the parser of last resort: every cell, quoted or not,
// converts to a string, so it never fails and guarantees that column
// inference terminates (spec.md §4.E).
type StringParser struct{}

func (StringParser) Name() string { return "string" }

func (StringParser) TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (int, bool, error) {
	ss, ok := sink.(StringSink)
	if !ok {
		return 0, false, nil
	}
	for i, cell := range cells {
		row := firstRow + int64(i)
		if isNullCell(cell, nullLiteral) {
			if err := ss.AppendNull(row); err != nil {
				return i, false, wrapSinkErr(err)
			}
			continue
		}
		if err := ss.AppendString(row, string(cell.Bytes)); err != nil {
			return i, false, wrapSinkErr(err)
		}
	}
	return len(cells), true, nil
}
