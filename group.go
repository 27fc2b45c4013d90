package csvcore

import "sync"

// firstError is the "first error wins, cancel the rest" join point used to
// coordinate the tokenizer goroutine and the column worker goroutines,
// grounded on tsv_parser.go's consumeResults compare-and-set-then-cancel
// pattern (spec.md §9, GroupWaiter).
type firstError struct {
	mu  sync.Mutex
	err error
}

// set records err as the group's failure if nothing has failed yet. It
// reports whether this call was the one that recorded the error.
func (f *firstError) set(err error) bool {
	if err == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false
	}
	f.err = err
	return true
}

func (f *firstError) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
