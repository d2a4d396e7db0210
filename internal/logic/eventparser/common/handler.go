package common

import "sol-dex-parser/internal/logic/core"

// InstructionHandler 是统一的指令解析函数签名。
// 入参为单条已展平的指令与本次更新的事件元信息模板；
// 识别失败或载荷非法时返回 nil，不产生副作用。
type InstructionHandler func(ix *core.Instruction, meta core.EventMetadata) core.DexEvent

// InstructionRoute 将 handler 与其所属协议绑定，路由表按 32 字节 ProgramID 精确匹配。
type InstructionRoute struct {
	Dex     int
	Handler InstructionHandler
}
