package progress

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"sol-dex-parser/pkg/logger"
)

// watermarkKey 记录最近解析到的 slot 高水位。
// 仅做可观测用途：进程重启或断流后，消费方可据此识别 slot 缺口；
// 引擎本身不回放，不保证恰好一次。
const watermarkKey = "parser:slot:watermark"

const defaultFlushInterval = time.Second

// Tracker 周期性把内存中的 slot 高水位刷入 Redis。
type Tracker struct {
	rdb      *redis.Client
	interval time.Duration
	highSlot atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
}

func NewTracker(addr string, flushIntervalMs int) *Tracker {
	interval := defaultFlushInterval
	if flushIntervalMs > 0 {
		interval = time.Duration(flushIntervalMs) * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		rdb:      redis.NewClient(&redis.Options{Addr: addr}),
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Observe 更新高水位（单调递增），热路径上仅一次原子比较。
func (t *Tracker) Observe(slot uint64) {
	for {
		cur := t.highSlot.Load()
		if slot <= cur {
			return
		}
		if t.highSlot.CompareAndSwap(cur, slot) {
			return
		}
	}
}

func (t *Tracker) Start() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var flushed uint64
	for {
		select {
		case <-t.ctx.Done():
			t.flush(flushed)
			return
		case <-ticker.C:
			slot := t.highSlot.Load()
			if slot != flushed {
				t.flush(slot)
				flushed = slot
			}
		}
	}
}

func (t *Tracker) flush(slot uint64) {
	if slot == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := t.rdb.Set(ctx, watermarkKey, strconv.FormatUint(slot, 10), 0).Err(); err != nil {
		logger.Warnf("[progress] watermark flush failed: %v", err)
	}
}

// LastSlot 读取 Redis 中的水位，不存在时返回 0。
func (t *Tracker) LastSlot(ctx context.Context) (uint64, error) {
	val, err := t.rdb.Get(ctx, watermarkKey).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func (t *Tracker) Stop() {
	t.cancel()
	_ = t.rdb.Close()
}
