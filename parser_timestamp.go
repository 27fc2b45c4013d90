package csvcore

import "time"

// TimezoneParser is the pluggable timestamp parser hook from spec.md §6
// (custom_timezone_parser). The default parses RFC3339.
type TimezoneParser func(s string) (time.Time, bool)

// DefaultTimezoneParser parses time.RFC3339 timestamps.
func DefaultTimezoneParser(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TimestampParser converts cells to time.Time via a pluggable
// TimezoneParser.
type TimestampParser struct {
	Parse TimezoneParser
}

// NewTimestampParser returns a TimestampParser using DefaultTimezoneParser
// when parse is nil.
func NewTimestampParser(parse TimezoneParser) TimestampParser {
	if parse == nil {
		parse = DefaultTimezoneParser
	}
	return TimestampParser{Parse: parse}
}

func (p TimestampParser) Name() string { return "timestamp" }

func (p TimestampParser) TryParseBatch(cells []Cell, nullLiteral *string, sink Sink, firstRow int64) (int, bool, error) {
	ts, ok := sink.(TimestampSink)
	if !ok {
		return 0, false, nil
	}
	parse := p.Parse
	if parse == nil {
		parse = DefaultTimezoneParser
	}
	for i, cell := range cells {
		row := firstRow + int64(i)
		if isNullCell(cell, nullLiteral) {
			if err := ts.AppendNull(row); err != nil {
				return i, false, wrapSinkErr(err)
			}
			continue
		}
		v, parsed := parse(string(cell.Bytes))
		if !parsed {
			return i, false, nil
		}
		if err := ts.AppendTimestamp(row, v); err != nil {
			return i, false, wrapSinkErr(err)
		}
	}
	return len(cells), true, nil
}
