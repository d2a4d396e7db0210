package queue

import (
	"context"
	"math/bits"
	"runtime"
	"sync/atomic"

	"sol-dex-parser/internal/logic/core"
)

// EventQueue 是有界无锁 MPMC 环形队列（序号槽位方案）。
// 每个槽位携带一个序号：seq == pos 表示可写，seq == pos+1 表示可读，
// 生产与消费只推进各自的游标，整个路径无互斥量。
//
// 约定：
//   - Push 永不阻塞；队列满时丢弃并累加溢出计数，绝不静默重排；
//   - 单生产者范围内严格 FIFO，跨生产者不保证全局序；
//   - 接口层面支持 MPMC，典型部署为 SPMC（一个解析任务，多个消费者）。
type EventQueue struct {
	mask  uint64
	slots []slot

	_       [64]byte // 游标各占一条 cache line，避免伪共享
	enqPos  atomic.Uint64
	_       [64]byte
	deqPos  atomic.Uint64
	_       [64]byte
	dropped atomic.Uint64
}

type slot struct {
	seq atomic.Uint64
	ev  core.DexEvent
}

// DefaultCapacity 默认队列容量
const DefaultCapacity = 100_000

// DefaultSpinBudget 消费端自旋预算：连续空轮询超过该次数后让出调度器。
const DefaultSpinBudget = 1000

// New 创建容量至少为 capacity 的队列（内部取整到 2 的幂）。
func New(capacity int) *EventQueue {
	if capacity < 2 {
		capacity = 2
	}
	size := uint64(1) << bits.Len64(uint64(capacity-1))
	q := &EventQueue{
		mask:  size - 1,
		slots: make([]slot, size),
	}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Push 非阻塞入队。队列满时返回 false，事件被丢弃并计入溢出计数。
func (q *EventQueue) Push(ev core.DexEvent) bool {
	pos := q.enqPos.Load()
	for {
		s := &q.slots[pos&q.mask]
		seq := s.seq.Load()
		switch {
		case seq == pos:
			if q.enqPos.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(pos + 1)
				return true
			}
			pos = q.enqPos.Load()
		case seq < pos:
			// 槽位还没被消费者腾出，队列已满
			q.dropped.Add(1)
			return false
		default:
			pos = q.enqPos.Load()
		}
	}
}

// Pop 非阻塞出队，队列空时返回 (nil, false)。
func (q *EventQueue) Pop() (core.DexEvent, bool) {
	pos := q.deqPos.Load()
	for {
		s := &q.slots[pos&q.mask]
		seq := s.seq.Load()
		switch {
		case seq == pos+1:
			if q.deqPos.CompareAndSwap(pos, pos+1) {
				ev := s.ev
				s.ev = nil
				s.seq.Store(pos + q.mask + 1)
				return ev, true
			}
			pos = q.deqPos.Load()
		case seq <= pos:
			return nil, false
		default:
			pos = q.deqPos.Load()
		}
	}
}

// PopWait 混合等待出队：先自旋 spinBudget 次空轮询压延迟，
// 超出预算后让出调度器并重置计数，平衡尾延迟与 CPU 占用。
// ctx 取消时返回 (nil, false)。
func (q *EventQueue) PopWait(ctx context.Context, spinBudget int) (core.DexEvent, bool) {
	if spinBudget <= 0 {
		spinBudget = DefaultSpinBudget
	}
	spins := 0
	for {
		if ev, ok := q.Pop(); ok {
			return ev, true
		}
		if ctx.Err() != nil {
			return nil, false
		}
		spins++
		if spins >= spinBudget {
			runtime.Gosched()
			spins = 0
		}
	}
}

// Len 返回当前排队事件数（并发下为近似值），上界恒为容量。
func (q *EventQueue) Len() int {
	enq := q.enqPos.Load()
	deq := q.deqPos.Load()
	if enq <= deq {
		return 0
	}
	n := enq - deq
	if n > q.mask+1 {
		n = q.mask + 1
	}
	return int(n)
}

// Capacity 返回实际容量（2 的幂）。
func (q *EventQueue) Capacity() int { return int(q.mask + 1) }

// Dropped 返回因队列满被丢弃的事件总数。
func (q *EventQueue) Dropped() uint64 { return q.dropped.Load() }
