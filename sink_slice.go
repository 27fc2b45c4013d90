package csvcore

import "time"

// growTo extends a sink's pair of parallel slices so index
// row is addressable, the way SliceSink variants below all grow on demand:
// the inference engine writes by absolute row index and rows may arrive out
// of the order a plain append would assume once a demotion replays them.

// BoolSliceSink is the default in-memory destination for boolean columns.
type BoolSliceSink struct {
	Values []bool
	Valid  []bool
}

// NewBoolSliceSink returns an empty sink pre-sized for capacity rows.
func NewBoolSliceSink(capacity int) *BoolSliceSink {
	return &BoolSliceSink{Values: make([]bool, 0, capacity), Valid: make([]bool, 0, capacity)}
}

func (s *BoolSliceSink) growTo(row int64) {
	for int64(len(s.Values)) <= row {
		s.Values = append(s.Values, false)
		s.Valid = append(s.Valid, false)
	}
}

func (s *BoolSliceSink) AppendBool(row int64, v bool) error {
	s.growTo(row)
	s.Values[row] = v
	s.Valid[row] = true
	return nil
}

func (s *BoolSliceSink) AppendNull(row int64) error {
	s.growTo(row)
	s.Values[row] = false
	s.Valid[row] = false
	return nil
}

func (s *BoolSliceSink) TruncateAndReopen() error {
	s.Values = s.Values[:0]
	s.Valid = s.Valid[:0]
	return nil
}

// IntSliceSink is the default in-memory destination for integer columns.
type IntSliceSink struct {
	Values []int64
	Valid  []bool
}

func NewIntSliceSink(capacity int) *IntSliceSink {
	return &IntSliceSink{Values: make([]int64, 0, capacity), Valid: make([]bool, 0, capacity)}
}

func (s *IntSliceSink) growTo(row int64) {
	for int64(len(s.Values)) <= row {
		s.Values = append(s.Values, 0)
		s.Valid = append(s.Valid, false)
	}
}

func (s *IntSliceSink) AppendInt(row int64, v int64) error {
	s.growTo(row)
	s.Values[row] = v
	s.Valid[row] = true
	return nil
}

func (s *IntSliceSink) AppendNull(row int64) error {
	s.growTo(row)
	s.Values[row] = 0
	s.Valid[row] = false
	return nil
}

func (s *IntSliceSink) TruncateAndReopen() error {
	s.Values = s.Values[:0]
	s.Valid = s.Valid[:0]
	return nil
}

// FloatSliceSink is the default in-memory destination for floating point
// columns.
type FloatSliceSink struct {
	Values []float64
	Valid  []bool
}

func NewFloatSliceSink(capacity int) *FloatSliceSink {
	return &FloatSliceSink{Values: make([]float64, 0, capacity), Valid: make([]bool, 0, capacity)}
}

func (s *FloatSliceSink) growTo(row int64) {
	for int64(len(s.Values)) <= row {
		s.Values = append(s.Values, 0)
		s.Valid = append(s.Valid, false)
	}
}

func (s *FloatSliceSink) AppendFloat(row int64, v float64) error {
	s.growTo(row)
	s.Values[row] = v
	s.Valid[row] = true
	return nil
}

func (s *FloatSliceSink) AppendNull(row int64) error {
	s.growTo(row)
	s.Values[row] = 0
	s.Valid[row] = false
	return nil
}

func (s *FloatSliceSink) TruncateAndReopen() error {
	s.Values = s.Values[:0]
	s.Valid = s.Valid[:0]
	return nil
}

// TimestampSliceSink is the default in-memory destination for timestamp
// columns.
type TimestampSliceSink struct {
	Values []time.Time
	Valid  []bool
}

func NewTimestampSliceSink(capacity int) *TimestampSliceSink {
	return &TimestampSliceSink{Values: make([]time.Time, 0, capacity), Valid: make([]bool, 0, capacity)}
}

func (s *TimestampSliceSink) growTo(row int64) {
	for int64(len(s.Values)) <= row {
		s.Values = append(s.Values, time.Time{})
		s.Valid = append(s.Valid, false)
	}
}

func (s *TimestampSliceSink) AppendTimestamp(row int64, v time.Time) error {
	s.growTo(row)
	s.Values[row] = v
	s.Valid[row] = true
	return nil
}

func (s *TimestampSliceSink) AppendNull(row int64) error {
	s.growTo(row)
	s.Values[row] = time.Time{}
	s.Valid[row] = false
	return nil
}

func (s *TimestampSliceSink) TruncateAndReopen() error {
	s.Values = s.Values[:0]
	s.Valid = s.Valid[:0]
	return nil
}

// StringSliceSink is the default in-memory destination for string columns,
// and the universal destination once a column falls back to the parser of
// last resort.
type StringSliceSink struct {
	Values []string
	Valid  []bool
}

func NewStringSliceSink(capacity int) *StringSliceSink {
	return &StringSliceSink{Values: make([]string, 0, capacity), Valid: make([]bool, 0, capacity)}
}

func (s *StringSliceSink) growTo(row int64) {
	for int64(len(s.Values)) <= row {
		s.Values = append(s.Values, "")
		s.Valid = append(s.Valid, false)
	}
}

func (s *StringSliceSink) AppendString(row int64, v string) error {
	s.growTo(row)
	s.Values[row] = v
	s.Valid[row] = true
	return nil
}

func (s *StringSliceSink) AppendNull(row int64) error {
	s.growTo(row)
	s.Values[row] = ""
	s.Valid[row] = false
	return nil
}

func (s *StringSliceSink) TruncateAndReopen() error {
	s.Values = s.Values[:0]
	s.Valid = s.Valid[:0]
	return nil
}
