package csvcore

import "math"

// IntParser converts cells into signed 64-bit integers by scanning digits
// byte-by-byte, rejecting overflow explicitly rather than relying on the
// error text from strconv.ParseInt (spec.md §4.D).
type IntParser struct{}

func (IntParser) Name() string { return "int" }

func (IntParser) TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (int, bool, error) {
	is, ok := sink.(IntSink)
	if !ok {
		return 0, false, nil
	}
	for i, cell := range cells {
		row := firstRow + int64(i)
		if isNullCell(cell, nullLiteral) {
			if err := is.AppendNull(row); err != nil {
				return i, false, wrapSinkErr(err)
			}
			continue
		}
		v, parsed := parseInt64(cell.Bytes)
		if !parsed {
			return i, false, nil
		}
		if err := is.AppendInt(row, v); err != nil {
			return i, false, wrapSinkErr(err)
		}
	}
	return len(cells), true, nil
}

// parseInt64 accepts an optional leading '+'/'-' followed by one or more
// ASCII digits, rejecting anything else (including empty input) and
// rejecting values that overflow int64.
func parseInt64(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	neg := false
	i := 0
	switch b[0] {
	case '-':
		neg = true
		i = 1
	case '+':
		i = 1
	}
	if i >= len(b) {
		return 0, false
	}

	var v uint64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}

	if neg {
		if v > -(math.MinInt64) {
			return 0, false
		}
		return -int64(v), true
	}
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
