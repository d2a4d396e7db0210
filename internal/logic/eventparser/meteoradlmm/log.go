package meteoradlmm

import (
	"github.com/near/borsh-go"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID
const (
	SwapEvent            uint64 = 0x8fbe5adac41e33de
	AddLiquidityEvent    uint64 = 0xb59d59438fb63448
	RemoveLiquidityEvent uint64 = 0x5055d14818ce23b2
	InitializePoolEvent  uint64 = 0x5fb40aac54aee828
	CreatePositionEvent  uint64 = 0x7be90b2b92b46177
	ClosePositionEvent   uint64 = 0x5ea8662d3b7a8936
	ClaimFeeEvent        uint64 = 0x9846d06f685b2c01
)

const bufCap = 1024

// liquidityPayload 是 Add/RemoveLiquidity 事件的 borsh 布局。
type liquidityPayload struct {
	LbPair      [32]uint8
	From        [32]uint8
	Position    [32]uint8
	AmountX     uint64
	AmountY     uint64
	ActiveBinID int32
}

// ParseLog 解析一行已归类为 Meteora DLMM 的日志。
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
	case CreatePositionEvent:
		return parseCreatePosition(data[8:], meta)
	case ClosePositionEvent:
		return parseClosePosition(data[8:], meta)
	case ClaimFeeEvent:
		return parseClaimFee(data[8:], meta)
	default:
		return nil
	}
}

// 布局：lb_pair(32) from(32) start_bin(4) end_bin(4) amount_in(8) amount_out(8)
// swap_for_y(1) fee(8) protocol_fee(8)
func parseSwap(data []byte, meta core.EventMetadata) core.DexEvent {
	lbPair, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	from, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	startBin, ok := common.ReadI32(data, 64)
	if !ok {
		return nil
	}
	endBin, ok := common.ReadI32(data, 68)
	if !ok {
		return nil
	}
	amountIn, ok := common.ReadU64(data, 72)
	if !ok {
		return nil
	}
	amountOut, ok := common.ReadU64(data, 80)
	if !ok {
		return nil
	}
	swapForY, ok := common.ReadBool(data, 88)
	if !ok {
		return nil
	}
	fee, ok := common.ReadU64(data, 89)
	if !ok {
		return nil
	}
	protocolFee, ok := common.ReadU64(data, 97)
	if !ok {
		return nil
	}
	return &core.MeteoraDlmmSwapEvent{
		EventMetadata: meta,
		LbPair:        lbPair,
		From:          from,
		StartBinID:    startBin,
		EndBinID:      endBin,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		SwapForY:      swapForY,
		Fee:           fee,
		ProtocolFee:   protocolFee,
	}
}

func parseLiquidity(data []byte, meta core.EventMetadata, add bool) core.DexEvent {
	var p liquidityPayload
	if err := borsh.Deserialize(&p, data); err != nil {
		return nil
	}
	if add {
		return &core.MeteoraDlmmAddLiquidityEvent{
			EventMetadata: meta,
			LbPair:        p.LbPair,
			From:          p.From,
			Position:      p.Position,
			AmountX:       p.AmountX,
			AmountY:       p.AmountY,
			ActiveBinID:   p.ActiveBinID,
		}
	}
	return &core.MeteoraDlmmRemoveLiquidityEvent{
		EventMetadata: meta,
		LbPair:        p.LbPair,
		From:          p.From,
		Position:      p.Position,
		AmountX:       p.AmountX,
		AmountY:       p.AmountY,
		ActiveBinID:   p.ActiveBinID,
	}
}

// 布局：lb_pair(32) bin_step(2) token_x(32) token_y(32)
func parseInitializePool(data []byte, meta core.EventMetadata) core.DexEvent {
	lbPair, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	binStep, ok := common.ReadU16(data, 32)
	if !ok {
		return nil
	}
	tokenX, ok := common.ReadPubkey(data, 34)
	if !ok {
		return nil
	}
	tokenY, ok := common.ReadPubkey(data, 66)
	if !ok {
		return nil
	}
	return &core.MeteoraDlmmInitializePoolEvent{
		EventMetadata: meta,
		LbPair:        lbPair,
		BinStep:       binStep,
		TokenX:        tokenX,
		TokenY:        tokenY,
	}
}

// 布局：lb_pair(32) position(32) owner(32)
func parseCreatePosition(data []byte, meta core.EventMetadata) core.DexEvent {
	lbPair, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	position, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	owner, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	return &core.MeteoraDlmmCreatePositionEvent{
		EventMetadata: meta,
		LbPair:        lbPair,
		Position:      position,
		Owner:         owner,
	}
}

// 布局：position(32) owner(32)
func parseClosePosition(data []byte, meta core.EventMetadata) core.DexEvent {
	position, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	owner, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	return &core.MeteoraDlmmClosePositionEvent{
		EventMetadata: meta,
		Position:      position,
		Owner:         owner,
	}
}

// 布局：lb_pair(32) position(32) owner(32) fee_x(8) fee_y(8)
func parseClaimFee(data []byte, meta core.EventMetadata) core.DexEvent {
	lbPair, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	position, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	owner, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	feeX, ok := common.ReadU64(data, 96)
	if !ok {
		return nil
	}
	feeY, ok := common.ReadU64(data, 104)
	if !ok {
		return nil
	}
	return &core.MeteoraDlmmClaimFeeEvent{
		EventMetadata: meta,
		LbPair:        lbPair,
		Position:      position,
		Owner:         owner,
		FeeX:          feeX,
		FeeY:          feeY,
	}
}
