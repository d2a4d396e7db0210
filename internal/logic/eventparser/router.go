package eventparser

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/logic/eventparser/pumpfun"
	"sol-dex-parser/internal/logic/eventparser/raydiumclmm"
	"sol-dex-parser/internal/logic/eventparser/raydiumcpmm"
	"sol-dex-parser/internal/types"
)

// handlers 是 ProgramID → 指令解析 handler 的路由表，按 32 字节值精确匹配。
// 各协议模块通过 RegisterHandlers 注册进该表，进程启动时初始化一次。
var handlers = map[types.Pubkey]common.InstructionRoute{}

// Init 注册所有指令 handler。须在首次 ParseUpdate 之前调用一次。
func Init() {
	pumpfun.RegisterHandlers(handlers)
	raydiumcpmm.RegisterHandlers(handlers)
	raydiumclmm.RegisterHandlers(handlers)
}

// routeInstructions 对更新中的指令按 ProgramID 路由解码。
// 日志侧已产出事件的协议整体跳过，避免同一动作以两种来源重复发布。
func routeInstructions(
	u *core.RawUpdate,
	meta core.EventMetadata,
	filter *core.EventTypeFilter,
	seenDex uint32,
	emit EmitFunc,
) (n int) {
	for i := range u.Instructions {
		ix := &u.Instructions[i]
		route, ok := handlers[ix.ProgramID]
		if !ok {
			continue
		}
		if seenDex&(1<<uint(route.Dex)) != 0 || !filter.AllowsDex(route.Dex) {
			continue
		}
		ev := route.Handler(ix, meta)
		if ev == nil {
			continue
		}
		if filter.Allows(ev.Kind()) {
			emit(ev)
			n++
		}
	}
	return n
}
