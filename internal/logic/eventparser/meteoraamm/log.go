package meteoraamm

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID。
// Meteora pools 程序的事件不携带池子地址，按协议原样透传纯数量字段。
const (
	SwapEvent            uint64 = 0x516ce3becdd00ac4
	AddLiquidityEvent    uint64 = 0x1f5e7d5ae3343dba
	RemoveLiquidityEvent uint64 = 0x74f461e8671f983a
)

const bufCap = 256

// ParseLog 解析一行已归类为 Meteora AMM (pools) 的日志。
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
		return parseAddLiquidity(data[8:], meta)
	case RemoveLiquidityEvent:
		return parseRemoveLiquidity(data[8:], meta)
	default:
		return nil
	}
}

// 布局：in_amount(8) out_amount(8) trade_fee(8) protocol_fee(8) host_fee(8)
func parseSwap(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 40 {
		return nil
	}
	inAmount, _ := common.ReadU64(data, 0)
	outAmount, _ := common.ReadU64(data, 8)
	tradeFee, _ := common.ReadU64(data, 16)
	protocolFee, _ := common.ReadU64(data, 24)
	hostFee, _ := common.ReadU64(data, 32)
	return &core.MeteoraAmmSwapEvent{
		EventMetadata: meta,
		InAmount:      inAmount,
		OutAmount:     outAmount,
		TradeFee:      tradeFee,
		ProtocolFee:   protocolFee,
		HostFee:       hostFee,
	}
}

// 布局：lp_mint_amount(8) token_a_amount(8) token_b_amount(8)
func parseAddLiquidity(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 24 {
		return nil
	}
	lpMint, _ := common.ReadU64(data, 0)
	tokenA, _ := common.ReadU64(data, 8)
	tokenB, _ := common.ReadU64(data, 16)
	return &core.MeteoraAmmAddLiquidityEvent{
		EventMetadata: meta,
		LpMintAmount:  lpMint,
		TokenAAmount:  tokenA,
		TokenBAmount:  tokenB,
	}
}

// 布局：lp_unmint_amount(8) token_a_out(8) token_b_out(8)
func parseRemoveLiquidity(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 24 {
		return nil
	}
	lpUnmint, _ := common.ReadU64(data, 0)
	tokenAOut, _ := common.ReadU64(data, 8)
	tokenBOut, _ := common.ReadU64(data, 16)
	return &core.MeteoraAmmRemoveLiquidityEvent{
		EventMetadata:   meta,
		LpUnmintAmount:  lpUnmint,
		TokenAOutAmount: tokenAOut,
		TokenBOutAmount: tokenBOut,
	}
}
