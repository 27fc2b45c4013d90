package csvcore

import "time"

// Sink is the contract every caller-provided column destination must
// satisfy: append_value is specialized per primitive below, but null
// handling and fallback replay are common to all of them.
//
// Indexing is absolute within the overall output, not within a batch, so
// that TruncateAndReopen can be driven idempotently after a demotion
// (spec.md §4.E).
type Sink interface {
	// AppendNull marks row as null. row is absolute.
	AppendNull(row int64) error
	// TruncateAndReopen discards every row previously written to this sink
	// and resets it to empty, ready to be rewritten from row 0 by a demoted
	// (or, for all-null columns, the null) parser.
	TruncateAndReopen() error
}

// BoolSink accepts boolean values.
type BoolSink interface {
	Sink
	AppendBool(row int64, v bool) error
}

// IntSink accepts signed 64-bit integers.
type IntSink interface {
	Sink
	AppendInt(row int64, v int64) error
}

// FloatSink accepts 64-bit floating point values.
type FloatSink interface {
	Sink
	AppendFloat(row int64, v float64) error
}

// TimestampSink accepts timestamps.
type TimestampSink interface {
	Sink
	AppendTimestamp(row int64, v time.Time) error
}

// StringSink accepts raw strings; every column eventually falls back to one
// of these since String is the parser of last resort.
type StringSink interface {
	Sink
	AppendString(row int64, v string) error
}
