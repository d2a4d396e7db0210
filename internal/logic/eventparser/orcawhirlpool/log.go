package orcawhirlpool

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID
const (
	TradedEvent             uint64 = 0xe1ca49af932ba096
	LiquidityIncreasedEvent uint64 = 0x1e0790b566fe9ba1
	LiquidityDecreasedEvent uint64 = 0xa601244770cab5ab
	PoolInitializedEvent    uint64 = 0x6476ad570cc6fee5
)

const bufCap = 512

// ParseLog 解析一行已归类为 Orca Whirlpool 的日志。
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
	case TradedEvent:
		return parseTraded(data[8:], meta)
	case LiquidityIncreasedEvent:
		return parseLiquidity(data[8:], meta, true)
	case LiquidityDecreasedEvent:
		return parseLiquidity(data[8:], meta, false)
	case PoolInitializedEvent:
		return parsePoolInitialized(data[8:], meta)
	default:
		return nil
	}
}

// 布局：whirlpool(32) a_to_b(1) pre_sqrt_price(16) post_sqrt_price(16)
// input_amount(8) output_amount(8) input_transfer_fee(8) output_transfer_fee(8)
// lp_fee(8) protocol_fee(8)
func parseTraded(data []byte, meta core.EventMetadata) core.DexEvent {
	whirlpool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	aToB, ok := common.ReadBool(data, 32)
	if !ok {
		return nil
	}
	preSqrt, ok := common.ReadU128(data, 33)
	if !ok {
		return nil
	}
	postSqrt, ok := common.ReadU128(data, 49)
	if !ok {
		return nil
	}
	inputAmount, ok := common.ReadU64(data, 65)
	if !ok {
		return nil
	}
	outputAmount, ok := common.ReadU64(data, 73)
	if !ok {
		return nil
	}
	inputFee, ok := common.ReadU64(data, 81)
	if !ok {
		return nil
	}
	outputFee, ok := common.ReadU64(data, 89)
	if !ok {
		return nil
	}
	lpFee, ok := common.ReadU64(data, 97)
	if !ok {
		return nil
	}
	protocolFee, ok := common.ReadU64(data, 105)
	if !ok {
		return nil
	}
	return &core.OrcaWhirlpoolSwapEvent{
		EventMetadata:     meta,
		Whirlpool:         whirlpool,
		AToB:              aToB,
		PreSqrtPrice:      preSqrt,
		PostSqrtPrice:     postSqrt,
		InputAmount:       inputAmount,
		OutputAmount:      outputAmount,
		InputTransferFee:  inputFee,
		OutputTransferFee: outputFee,
		LpFee:             lpFee,
		ProtocolFee:       protocolFee,
	}
}

// 布局：whirlpool(32) position(32) tick_lower(4) tick_upper(4) liquidity(16)
// token_a_amount(8) token_b_amount(8)
func parseLiquidity(data []byte, meta core.EventMetadata, increased bool) core.DexEvent {
	whirlpool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	position, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	tickLower, ok := common.ReadI32(data, 64)
	if !ok {
		return nil
	}
	tickUpper, ok := common.ReadI32(data, 68)
	if !ok {
		return nil
	}
	liquidity, ok := common.ReadU128(data, 72)
	if !ok {
		return nil
	}
	tokenA, ok := common.ReadU64(data, 88)
	if !ok {
		return nil
	}
	tokenB, ok := common.ReadU64(data, 96)
	if !ok {
		return nil
	}

	if increased {
		return &core.OrcaWhirlpoolLiquidityIncreasedEvent{
			EventMetadata:  meta,
			Whirlpool:      whirlpool,
			Position:       position,
			TickLowerIndex: tickLower,
			TickUpperIndex: tickUpper,
			Liquidity:      liquidity,
			TokenAAmount:   tokenA,
			TokenBAmount:   tokenB,
		}
	}
	return &core.OrcaWhirlpoolLiquidityDecreasedEvent{
		EventMetadata:  meta,
		Whirlpool:      whirlpool,
		Position:       position,
		TickLowerIndex: tickLower,
		TickUpperIndex: tickUpper,
		Liquidity:      liquidity,
		TokenAAmount:   tokenA,
		TokenBAmount:   tokenB,
	}
}

// 布局：whirlpool(32) token_mint_a(32) token_mint_b(32) tick_spacing(2) initial_sqrt_price(16)
func parsePoolInitialized(data []byte, meta core.EventMetadata) core.DexEvent {
	whirlpool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	mintA, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	mintB, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	tickSpacing, ok := common.ReadU16(data, 96)
	if !ok {
		return nil
	}
	sqrtPrice, ok := common.ReadU128(data, 98)
	if !ok {
		return nil
	}
	return &core.OrcaWhirlpoolPoolInitializedEvent{
		EventMetadata:    meta,
		Whirlpool:        whirlpool,
		TokenMintA:       mintA,
		TokenMintB:       mintB,
		TickSpacing:      tickSpacing,
		InitialSqrtPrice: sqrtPrice,
	}
}
