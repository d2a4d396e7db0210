package grpc

import (
	"context"

	"sol-dex-parser/internal/logic/core"
)

// RegisterCallback 以回调方式消费事件（兼容层）。
// 内部起一个协程按混合等待策略轮询队列并逐个回调；
// 回调在该协程内串行执行，慢回调会使队列积压直至溢出丢弃。
// 延迟敏感的消费方应直接持有队列调用 Pop / PopWait。
func (m *GrpcStreamManager) RegisterCallback(ctx context.Context, cb func(core.DexEvent)) {
	go func() {
		for {
			ev, ok := m.out.PopWait(ctx, m.cfg.QueueConf.SpinBudget)
			if !ok {
				return
			}
			cb(ev)
		}
	}()
}
