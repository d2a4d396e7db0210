package meteoradamm

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID（DAMM v2 的事件名带 Evt 前缀）
const (
	SwapEvent            uint64 = 0x1b3c15d58aaabb93
	AddLiquidityEvent    uint64 = 0xaff2089d1ef7b9a9
	RemoveLiquidityEvent uint64 = 0x572e5862af60225b
	InitializePoolEvent  uint64 = 0xe432f655cb428625
)

const bufCap = 1024

// ParseLog 解析一行已归类为 Meteora DAMM v2 的日志。
func ParseLog(line string, meta core.EventMetadata) core.DexEvent {
	tail, ok := common.LogTail(line, common.ProgramDataMarker)
	if !ok {
		return nil
	}
	var buf [bufCap]byte
	data, ok := common.DecodeBase64(buf[:], tail)
	if !ok {
		return nil
	}
	disc, ok := common.Discriminator(data)
	if !ok {
		return nil
	}

	switch disc {
	case SwapEvent:
		return parseSwap(data[8:], meta)
	case AddLiquidityEvent:
		return parseLiquidity(data[8:], meta, true)
	case RemoveLiquidityEvent:
		return parseLiquidity(data[8:], meta, false)
	case InitializePoolEvent:
		return parseInitializePool(data[8:], meta)
	default:
		return nil
	}
}

// 布局：pool(32) user(32) amount_in(8) amount_out(8) a_to_b(1)
func parseSwap(data []byte, meta core.EventMetadata) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	amountIn, ok := common.ReadU64(data, 64)
	if !ok {
		return nil
	}
	amountOut, ok := common.ReadU64(data, 72)
	if !ok {
		return nil
	}
	aToB, ok := common.ReadBool(data, 80)
	if !ok {
		return nil
	}
	return &core.MeteoraDammSwapEvent{
		EventMetadata: meta,
		Pool:          pool,
		User:          user,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		AToB:          aToB,
	}
}

// 布局：pool(32) user(32) token_a_amount(8) token_b_amount(8)
func parseLiquidity(data []byte, meta core.EventMetadata, add bool) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	tokenA, ok := common.ReadU64(data, 64)
	if !ok {
		return nil
	}
	tokenB, ok := common.ReadU64(data, 72)
	if !ok {
		return nil
	}
	if add {
		return &core.MeteoraDammAddLiquidityEvent{
			EventMetadata: meta,
			Pool:          pool,
			User:          user,
			TokenAAmount:  tokenA,
			TokenBAmount:  tokenB,
		}
	}
	return &core.MeteoraDammRemoveLiquidityEvent{
		EventMetadata: meta,
		Pool:          pool,
		User:          user,
		TokenAAmount:  tokenA,
		TokenBAmount:  tokenB,
	}
}

// 布局：pool(32) creator(32) token_a(32) token_b(32)
func parseInitializePool(data []byte, meta core.EventMetadata) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	creator, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	tokenA, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	tokenB, ok := common.ReadPubkey(data, 96)
	if !ok {
		return nil
	}
	return &core.MeteoraDammInitializePoolEvent{
		EventMetadata: meta,
		Pool:          pool,
		Creator:       creator,
		TokenA:        tokenA,
		TokenB:        tokenB,
	}
}
