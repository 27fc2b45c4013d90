package csvcore

import "strconv"

// DoubleParser is the pluggable numeric parser hook from spec.md §6
// (custom_double_parser). The default is strconv.ParseFloat.
type DoubleParser func(s string) (float64, bool)

// DefaultDoubleParser delegates to strconv.ParseFloat.
func DefaultDoubleParser(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FloatParser converts cells to float64 via a pluggable DoubleParser.
type FloatParser struct {
	Parse DoubleParser
}

// NewFloatParser returns a FloatParser using DefaultDoubleParser when parse
// is nil.
func NewFloatParser(parse DoubleParser) FloatParser {
	if parse == nil {
		parse = DefaultDoubleParser
	}
	return FloatParser{Parse: parse}
}

func (p FloatParser) Name() string { return "float" }

func (p FloatParser) TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (int, bool, error) {
	fs, ok := sink.(FloatSink)
	if !ok {
		return 0, false, nil
	}
	parse := p.Parse
	if parse == nil {
		parse = DefaultDoubleParser
	}
	for i, cell := range cells {
		row := firstRow + int64(i)
		if isNullCell(cell, nullLiteral) {
			if err := fs.AppendNull(row); err != nil {
				return i, false, wrapSinkErr(err)
			}
			continue
		}
		v, parsed := parse(string(cell.Bytes))
		if !parsed {
			return i, false, nil
		}
		if err := fs.AppendFloat(row, v); err != nil {
			return i, false, wrapSinkErr(err)
		}
	}
	return len(cells), true, nil
}
