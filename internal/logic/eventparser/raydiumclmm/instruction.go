package raydiumclmm

import (
	"sol-dex-parser/internal/consts"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/types"
)

// 指令方法 ID
const (
	SwapIx              uint64 = 0xf8c69e91e17587c8
	IncreaseLiquidityIx uint64 = 0x851d59df45eeb00a
	DecreaseLiquidityIx uint64 = 0xa026d06f685b2c01
	CreatePoolIx        uint64 = 0xe992d18ecf6840bc
	OpenPositionIx      uint64 = 0x87802f4d0f98f031
	ClosePositionIx     uint64 = 0x7b86510031446262
)

// RegisterHandlers 注册 Raydium CLMM Program 的指令解析器
func RegisterHandlers(m map[types.Pubkey]common.InstructionRoute) {
	m[consts.RaydiumCLMMProgram] = common.InstructionRoute{
		Dex:     consts.DexRaydiumCLMM,
		Handler: handleInstruction,
	}
}

func handleInstruction(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	disc, ok := common.Discriminator(ix.Data)
	if !ok {
		return nil
	}
	switch disc {
	case SwapIx:
		return parseSwapIx(ix, meta)
	case IncreaseLiquidityIx:
		return parseIncreaseLiquidityIx(ix, meta)
	case DecreaseLiquidityIx:
		return parseDecreaseLiquidityIx(ix, meta)
	case CreatePoolIx:
		return parseCreatePoolIx(ix, meta)
	case OpenPositionIx:
		return parseOpenPositionIx(ix, meta)
	case ClosePositionIx:
		return parseClosePositionIx(ix, meta)
	default:
		return nil
	}
}

// swap 指令账户：0 payer，1 amm_config，2 pool_state，…
// 参数：amount(8) other_amount_threshold(8) sqrt_price_limit_x64(16) is_base_input(1)
func parseSwapIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 3 {
		return nil
	}
	amount, ok := common.ReadU64(ix.Data, 8)
	if !ok {
		return nil
	}
	threshold, ok := common.ReadU64(ix.Data, 16)
	if !ok {
		return nil
	}
	sqrtLimit, ok := common.ReadU128(ix.Data, 24)
	if !ok {
		return nil
	}
	isBaseInput, ok := common.ReadBool(ix.Data, 40)
	if !ok {
		return nil
	}
	return &core.RaydiumClmmSwapEvent{
		EventMetadata:        meta,
		Pool:                 ix.Accounts[2],
		User:                 ix.Accounts[0],
		Amount:               amount,
		OtherAmountThreshold: threshold,
		SqrtPriceLimitX64:    sqrtLimit,
		IsBaseInput:          isBaseInput,
	}
}

// increase_liquidity 指令账户：0 nft_owner，1 nft_account，2 pool_state，…
// 参数：liquidity(16) amount_0_max(8) amount_1_max(8)
func parseIncreaseLiquidityIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 3 {
		return nil
	}
	liquidity, ok := common.ReadU128(ix.Data, 8)
	if !ok {
		return nil
	}
	amount0Max, ok := common.ReadU64(ix.Data, 24)
	if !ok {
		return nil
	}
	amount1Max, ok := common.ReadU64(ix.Data, 32)
	if !ok {
		return nil
	}
	return &core.RaydiumClmmIncreaseLiquidityEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[2],
		User:          ix.Accounts[0],
		Liquidity:     liquidity,
		Amount0Max:    amount0Max,
		Amount1Max:    amount1Max,
	}
}

// decrease_liquidity 指令账户：0 nft_owner，1 nft_account，2 personal_position，3 pool_state，…
// 参数：liquidity(16) amount_0_min(8) amount_1_min(8)
func parseDecreaseLiquidityIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 4 {
		return nil
	}
	liquidity, ok := common.ReadU128(ix.Data, 8)
	if !ok {
		return nil
	}
	amount0Min, ok := common.ReadU64(ix.Data, 24)
	if !ok {
		return nil
	}
	amount1Min, ok := common.ReadU64(ix.Data, 32)
	if !ok {
		return nil
	}
	return &core.RaydiumClmmDecreaseLiquidityEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[3],
		User:          ix.Accounts[0],
		Liquidity:     liquidity,
		Amount0Min:    amount0Min,
		Amount1Min:    amount1Min,
	}
}

// create_pool 指令账户：0 pool_creator，1 amm_config，2 pool_state，…
// 参数：sqrt_price_x64(16) open_time(8)
func parseCreatePoolIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 3 {
		return nil
	}
	sqrtPrice, ok := common.ReadU128(ix.Data, 8)
	if !ok {
		return nil
	}
	openTime, ok := common.ReadU64(ix.Data, 24)
	if !ok {
		return nil
	}
	return &core.RaydiumClmmCreatePoolEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[2],
		Creator:       ix.Accounts[0],
		SqrtPriceX64:  sqrtPrice,
		OpenTime:      openTime,
	}
}

// open_position 指令账户：0 payer，1 position_nft_owner，2 position_nft_mint，…，5 pool_state
// 参数：tick_lower(4) tick_upper(4) tick_array_lower_start(4) tick_array_upper_start(4)
// liquidity(16) amount_0_max(8) amount_1_max(8)
func parseOpenPositionIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 6 {
		return nil
	}
	tickLower, ok := common.ReadI32(ix.Data, 8)
	if !ok {
		return nil
	}
	tickUpper, ok := common.ReadI32(ix.Data, 12)
	if !ok {
		return nil
	}
	liquidity, ok := common.ReadU128(ix.Data, 24)
	if !ok {
		return nil
	}
	return &core.RaydiumClmmOpenPositionEvent{
		EventMetadata:   meta,
		Pool:            ix.Accounts[5],
		User:            ix.Accounts[1],
		PositionNftMint: ix.Accounts[2],
		TickLowerIndex:  tickLower,
		TickUpperIndex:  tickUpper,
		Liquidity:       liquidity,
	}
}

// close_position 指令账户：0 nft_owner，1 position_nft_mint，…
func parseClosePositionIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 2 {
		return nil
	}
	return &core.RaydiumClmmClosePositionEvent{
		EventMetadata:   meta,
		User:            ix.Accounts[0],
		PositionNftMint: ix.Accounts[1],
	}
}
