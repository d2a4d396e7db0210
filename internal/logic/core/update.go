package core

import "sol-dex-parser/internal/types"

// Instruction 表示一条已解析账户引用的指令（主指令或 inner 指令，按执行顺序展平）。
type Instruction struct {
	ProgramID types.Pubkey
	Accounts  []types.Pubkey
	Data      []byte
}

// RawUpdate 是一次交易更新的借用视图，仅在单次解析调用期间有效。
// 字段直接引用 gRPC 消息内存，解析结束后不得保留。
type RawUpdate struct {
	Slot         uint64
	Signature    types.Signature
	BlockTime    int64 // Unix 秒，0 表示所在 slot 的 BlockMeta 尚未到达
	GrpcRecvUs   int64 // 订阅编排器在 Recv 返回后立即打点，链路内不可变
	Logs         []string
	Instructions []Instruction
}

// Metadata 构造本次更新对应的事件元信息模板。
func (u *RawUpdate) Metadata() EventMetadata {
	return EventMetadata{
		Signature:  u.Signature,
		Slot:       u.Slot,
		BlockTime:  u.BlockTime,
		GrpcRecvUs: u.GrpcRecvUs,
	}
}
