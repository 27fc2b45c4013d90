package csvcore

import "testing"

func TestDefaultReadOptions(t *testing.T) {
	o := DefaultReadOptions()
	if !o.HasHeader || !o.Concurrent || o.RowWidth != RowWidthStrict {
		t.Fatalf("got %+v", o)
	}
	if o.Tokenizer.Delimiter != ',' || o.Tokenizer.Quote != '"' {
		t.Fatalf("got tokenizer opts %+v", o.Tokenizer)
	}
}

func TestNewReadOptionsAppliesInOrder(t *testing.T) {
	o := NewReadOptions(
		WithDelimiter('\t'),
		WithHeader(false),
		WithConcurrent(false),
		WithBatchRows(16),
		WithRowWidthPolicy(RowWidthAllowMissing),
	)
	if o.Tokenizer.Delimiter != '\t' || o.HasHeader || o.Concurrent {
		t.Fatalf("got %+v", o)
	}
	if o.BatchRows != 16 || o.RowWidth != RowWidthAllowMissing {
		t.Fatalf("got %+v", o)
	}
}

func TestWithDefaultSinkFactoryAndVerbose(t *testing.T) {
	called := false
	factory := func(ValueParser) Sink {
		called = true
		return NewIntSliceSink(1)
	}
	o := NewReadOptions(WithDefaultSinkFactory(factory), WithVerbose(true))
	if !o.Verbose || o.DefaultNewSink == nil {
		t.Fatalf("got %+v", o)
	}
	o.DefaultNewSink(IntParser{})
	if !called {
		t.Fatalf("factory was not wired through")
	}
}

func TestWithDefaultsFillsZeroValues(t *testing.T) {
	o := ReadOptions{}.withDefaults()
	if o.BufferSize != defaultBufferSize || o.BatchRows != defaultBatchRows {
		t.Fatalf("got %+v", o)
	}
	if o.Tokenizer.Delimiter != ',' || o.Tokenizer.Quote != '"' {
		t.Fatalf("got %+v", o.Tokenizer)
	}
	if o.Workers <= 0 {
		t.Fatalf("got Workers=%d, want > 0", o.Workers)
	}
}
