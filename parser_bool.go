package csvcore

import "fmt"

// BoolParser converts cells spelling "true"/"false" (case-insensitive) into
// booleans.
type BoolParser struct{}

func (BoolParser) Name() string { return "bool" }

func (BoolParser) TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (int, bool, error) {
	bs, ok := sink.(BoolSink)
	if !ok {
		return 0, false, nil
	}
	for i, cell := range cells {
		row := firstRow + int64(i)
		if isNullCell(cell, nullLiteral) {
			if err := bs.AppendNull(row); err != nil {
				return i, false, wrapSinkErr(err)
			}
			continue
		}
		v, parsed := parseBool(cell.Bytes)
		if !parsed {
			return i, false, nil
		}
		if err := bs.AppendBool(row, v); err != nil {
			return i, false, wrapSinkErr(err)
		}
	}
	return len(cells), true, nil
}

// parseBool does a case-insensitive byte comparison against "true"/"false"
// without allocating a string, the way the tokenizer avoids allocating for
// plain field bytes.
func parseBool(b []byte) (bool, bool) {
	switch len(b) {
	case 4:
		if equalFoldASCII(b, "true") {
			return true, true
		}
	case 5:
		if equalFoldASCII(b, "false") {
			return false, true
		}
	}
	return false, false
}

func equalFoldASCII(b []byte, want string) bool {
	if len(b) != len(want) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != want[i] {
			return false
		}
	}
	return true
}

func wrapSinkErr(err error) error {
	return fmt.Errorf("%w: %v", ErrSinkWriteFailure, err)
}
