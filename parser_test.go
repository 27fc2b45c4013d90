package csvcore

import (
	"testing"
	"time"
)

func cellsOf(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Bytes: []byte(v)}
	}
	return cells
}

func TestBoolParser(t *testing.T) {
	sink := NewBoolSliceSink(4)
	p := BoolParser{}
	n, ok, err := p.TryParseBatch(cellsOf("true", "FALSE", "True"), nil, sink, 0)
	if err != nil || !ok || n != 3 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
	if !sink.Values[0] || sink.Values[1] || !sink.Values[2] {
		t.Fatalf("got %v", sink.Values)
	}
}

func TestBoolParserRejectsNonBool(t *testing.T) {
	sink := NewBoolSliceSink(4)
	p := BoolParser{}
	n, ok, err := p.TryParseBatch(cellsOf("true", "maybe"), nil, sink, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok || n != 1 {
		t.Fatalf("n=%d ok=%v, want n=1 ok=false", n, ok)
	}
}

func TestIntParserOverflowRejected(t *testing.T) {
	sink := NewIntSliceSink(4)
	p := IntParser{}
	_, ok, err := p.TryParseBatch(cellsOf("99999999999999999999"), nil, sink, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected overflow to be rejected")
	}
}

func TestIntParserSignsAndBounds(t *testing.T) {
	sink := NewIntSliceSink(4)
	p := IntParser{}
	n, ok, err := p.TryParseBatch(cellsOf("-42", "+7", "9223372036854775807", "-9223372036854775808"), nil, sink, 0)
	if err != nil || !ok || n != 4 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
	want := []int64{-42, 7, 9223372036854775807, -9223372036854775808}
	for i, w := range want {
		if sink.Values[i] != w {
			t.Fatalf("index %d: got %d, want %d", i, sink.Values[i], w)
		}
	}
}

func TestFloatParser(t *testing.T) {
	sink := NewFloatSliceSink(4)
	p := NewFloatParser(nil)
	n, ok, err := p.TryParseBatch(cellsOf("3.14", "-2.5e3"), nil, sink, 0)
	if err != nil || !ok || n != 2 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
	if sink.Values[0] != 3.14 || sink.Values[1] != -2500 {
		t.Fatalf("got %v", sink.Values)
	}
}

func TestFloatParserRejectsNonNumeric(t *testing.T) {
	sink := NewFloatSliceSink(4)
	p := NewFloatParser(nil)
	_, ok, err := p.TryParseBatch(cellsOf("not-a-number"), nil, sink, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected rejection")
	}
}

func TestTimestampParserDefaultRFC3339(t *testing.T) {
	sink := NewTimestampSliceSink(4)
	p := NewTimestampParser(nil)
	n, ok, err := p.TryParseBatch(cellsOf("2024-01-15T10:30:00Z"), nil, sink, 0)
	if err != nil || !ok || n != 1 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !sink.Values[0].Equal(want) {
		t.Fatalf("got %v, want %v", sink.Values[0], want)
	}
}

func TestStringParserNeverFails(t *testing.T) {
	sink := NewStringSliceSink(4)
	p := StringParser{}
	n, ok, err := p.TryParseBatch(cellsOf("", "anything at all", "123"), nil, sink, 0)
	if err != nil || !ok || n != 3 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
}

func TestNullLiteralHandling(t *testing.T) {
	na := "NA"
	sink := NewIntSliceSink(4)
	p := IntParser{}
	cells := []Cell{{Bytes: []byte("NA")}, {Bytes: []byte("42")}}
	n, ok, err := p.TryParseBatch(cells, &na, sink, 0)
	if err != nil || !ok || n != 2 {
		t.Fatalf("n=%d ok=%v err=%v", n, ok, err)
	}
	if sink.Valid[0] {
		t.Fatalf("row 0 should be null")
	}
	if !sink.Valid[1] || sink.Values[1] != 42 {
		t.Fatalf("row 1 should be 42")
	}
}

func TestQuotedNullLiteralIsNotNull(t *testing.T) {
	na := "NA"
	sink := NewIntSliceSink(4)
	p := IntParser{}
	cells := []Cell{{Bytes: []byte("NA"), Quoted: true}}
	_, ok, err := p.TryParseBatch(cells, &na, sink, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("quoted NA is not an int and not null, should fail")
	}
}
