package uniset

import (
	"context"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	pool "github.com/jolestar/go-commons-pool"
)

// offsetQueue is the worklist of a Contained span. It holds text offsets reachable
// by a concatenation of set elements, together with the minimum number of elements
// needed to reach them. Offsets are popped nearest-first: ascending for forward
// spans, descending for backward spans. As every element has a length > 0, an
// offset's count is final by the time it is popped.
type offsetQueue struct {
	heap   *binaryheap.Heap
	counts map[int]int
}

func newOffsetQueue() *offsetQueue {
	return &offsetQueue{
		heap:   binaryheap.NewWith(utils.IntComparator),
		counts: make(map[int]int),
	}
}

func descending(a, b interface{}) int {
	return -utils.IntComparator(a, b)
}

// push enqueues an offset. Known offsets are not queued twice; only their count
// is lowered if possible.
func (q *offsetQueue) push(offset, count int) {
	if c, ok := q.counts[offset]; ok {
		if count < c {
			q.counts[offset] = count
		}
		return
	}
	q.counts[offset] = count
	q.heap.Push(offset)
}

func (q *offsetQueue) pop() (offset, count int, ok bool) {
	var v interface{}
	if v, ok = q.heap.Pop(); !ok {
		return 0, 0, false
	}
	offset = v.(int)
	return offset, q.counts[offset], true
}

func (q *offsetQueue) size() int {
	return q.heap.Size()
}

// Offset queues are short-lived objects, needed once per Contained span. To avoid
// multiple allocation of heaps and maps we will pool them.
type queuePool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalQueuePool *queuePool

func init() {
	globalQueuePool = &queuePool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newOffsetQueue(), nil
		})
	globalQueuePool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalQueuePool.opool = pool.NewObjectPool(globalQueuePool.ctx, factory, config)
}

// borrowQueue returns an empty offset queue from the pool, ordered for the given
// span direction.
func borrowQueue(backward bool) *offsetQueue {
	o, err := globalQueuePool.opool.BorrowObject(globalQueuePool.ctx)
	if err != nil {
		CT().Errorf("cannot borrow offset queue: %v", err)
		o = newOffsetQueue()
	}
	q := o.(*offsetQueue)
	if backward {
		q.heap.Comparator = descending
	} else {
		q.heap.Comparator = utils.IntComparator
	}
	return q
}

// releaseIntoPool clears q and puts it back into the pool.
func (q *offsetQueue) releaseIntoPool() {
	q.heap.Clear()
	for k := range q.counts {
		delete(q.counts, k)
	}
	_ = globalQueuePool.opool.ReturnObject(globalQueuePool.ctx, q)
}
