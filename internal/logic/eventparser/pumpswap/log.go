package pumpswap

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID
const (
	BuyEvent        uint64 = 0x66063d1201daebea
	SellEvent       uint64 = 0x33e685a4017f83ad
	CreatePoolEvent uint64 = 0xe992d18ecf6840bc
	DepositEvent    uint64 = 0x78f83d531f8e6b90
	WithdrawEvent   uint64 = 0x1609851aa02c47c0
)

const bufCap = 1024

// ParseLog 解析一行已归类为 PumpSwap（Pump.fun AMM）的日志。
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
	case BuyEvent:
		return parseSwap(data[8:], meta, true)
	case SellEvent:
		return parseSwap(data[8:], meta, false)
	case CreatePoolEvent:
		return parseCreatePool(data[8:], meta)
	case DepositEvent:
		return parseLiquidity(data[8:], meta, true)
	case WithdrawEvent:
		return parseLiquidity(data[8:], meta, false)
	default:
		return nil
	}
}

// 布局：pool(32) user(32) token_mint(32) sol_amount(8) token_amount(8)
func parseSwap(data []byte, meta core.EventMetadata, isBuy bool) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	tokenMint, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	solAmount, ok := common.ReadU64(data, 96)
	if !ok {
		return nil
	}
	tokenAmount, ok := common.ReadU64(data, 104)
	if !ok {
		return nil
	}

	if isBuy {
		return &core.PumpSwapBuyEvent{
			EventMetadata: meta,
			Pool:          pool,
			User:          user,
			TokenMint:     tokenMint,
			SolAmount:     solAmount,
			TokenAmount:   tokenAmount,
		}
	}
	return &core.PumpSwapSellEvent{
		EventMetadata: meta,
		Pool:          pool,
		User:          user,
		TokenMint:     tokenMint,
		SolAmount:     solAmount,
		TokenAmount:   tokenAmount,
	}
}

// 布局：pool(32) creator(32) token_mint(32) initial_sol(8) initial_token(8) fee_rate(2)
func parseCreatePool(data []byte, meta core.EventMetadata) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	creator, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	tokenMint, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	initialSol, ok := common.ReadU64(data, 96)
	if !ok {
		return nil
	}
	initialToken, ok := common.ReadU64(data, 104)
	if !ok {
		return nil
	}
	feeRate, ok := common.ReadU16(data, 112)
	if !ok {
		return nil
	}
	return &core.PumpSwapCreatePoolEvent{
		EventMetadata:      meta,
		Pool:               pool,
		Creator:            creator,
		TokenMint:          tokenMint,
		InitialSolAmount:   initialSol,
		InitialTokenAmount: initialToken,
		FeeRate:            feeRate,
	}
}

// 布局：pool(32) user(32) amount(8)
func parseLiquidity(data []byte, meta core.EventMetadata, isDeposit bool) core.DexEvent {
	pool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	amount, ok := common.ReadU64(data, 64)
	if !ok {
		return nil
	}
	if isDeposit {
		return &core.PumpSwapDepositEvent{EventMetadata: meta, Pool: pool, User: user, Amount: amount}
	}
	return &core.PumpSwapWithdrawEvent{EventMetadata: meta, Pool: pool, User: user, Amount: amount}
}
