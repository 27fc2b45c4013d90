package csvcore

import (
	"context"
	"sync"
	"sync/atomic"
)

// rowBatchChannel is the bounded handoff between the tokenizer goroutine
// and the per-column worker goroutines, grounded on tsv_parser.go's
// batches/results channel pair. A batch is column-major and every column
// worker needs to see every batch, so rather than one channel racing N
// receivers for each value, each column gets its own bounded channel and
// the same *rowBatch pointer is fanned out to all of them. The batch
// carries a reference count, one per column; each worker releases its own
// reference when done, and the batch returns to the pool only once every
// reference is released -- the same shape as bufferRef.release().
type rowBatchChannel struct {
	chs  []chan *rowBatch
	pool *sync.Pool
}

func newRowBatchChannel(depth, numColumns, batchRows int) *rowBatchChannel {
	pool := &sync.Pool{
		New: func() any { return newRowBatch(numColumns, batchRows) },
	}
	chs := make([]chan *rowBatch, numColumns)
	for i := range chs {
		chs[i] = make(chan *rowBatch, depth)
	}
	return &rowBatchChannel{chs: chs, pool: pool}
}

func (c *rowBatchChannel) numColumns() int { return len(c.chs) }

// acquire returns a batch from the pool, reset for startRow.
func (c *rowBatchChannel) acquire(startRow int64) *rowBatch {
	b := c.pool.Get().(*rowBatch)
	b.reset(startRow)
	return b
}

// publish sets the batch's reference count to the number of column
// workers and fans it out to every column channel, respecting
// cancellation. If cancelled partway, the reference count is corrected
// for the channels that never received the batch.
func (c *rowBatchChannel) publish(ctx context.Context, b *rowBatch) error {
	atomic.StoreInt32(&b.refCount, int32(len(c.chs)))
	for i, ch := range c.chs {
		select {
		case ch <- b:
		case <-ctx.Done():
			remaining := len(c.chs) - i
			if atomic.AddInt32(&b.refCount, -int32(remaining)) == 0 {
				c.pool.Put(b)
			}
			return ctx.Err()
		}
	}
	return nil
}

// release drops one reference; the batch returns to the pool once every
// column worker has released it.
func (c *rowBatchChannel) release(b *rowBatch) {
	if atomic.AddInt32(&b.refCount, -1) == 0 {
		c.pool.Put(b)
	}
}

func (c *rowBatchChannel) column(idx int) <-chan *rowBatch { return c.chs[idx] }

func (c *rowBatchChannel) close() {
	for _, ch := range c.chs {
		close(ch)
	}
}
