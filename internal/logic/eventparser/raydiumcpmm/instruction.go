package raydiumcpmm

import (
	"sol-dex-parser/internal/consts"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/types"
)

// 指令方法 ID
const (
	SwapBaseInIx  uint64 = 0x8fbe5adac41e33de
	SwapBaseOutIx uint64 = 0x37d96256a34ab4ad
	InitializeIx  uint64 = 0xafaf6d1f0d989bed
	DepositIx     uint64 = 0xf223c68952e1f2b6
	WithdrawIx    uint64 = 0xb712469c946da122
)

// RegisterHandlers 注册 Raydium CPMM Program 的指令解析器
func RegisterHandlers(m map[types.Pubkey]common.InstructionRoute) {
	m[consts.RaydiumCPMMProgram] = common.InstructionRoute{
		Dex:     consts.DexRaydiumCPMM,
		Handler: handleInstruction,
	}
}

func handleInstruction(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	disc, ok := common.Discriminator(ix.Data)
	if !ok {
		return nil
	}
	switch disc {
	case SwapBaseInIx:
		return parseSwapIx(ix, meta, true)
	case SwapBaseOutIx:
		return parseSwapIx(ix, meta, false)
	case DepositIx:
		return parseDepositIx(ix, meta)
	case WithdrawIx:
		return parseWithdrawIx(ix, meta)
	case InitializeIx:
		return parseInitializeIx(ix, meta)
	default:
		return nil
	}
}

// swap 指令账户：0 payer，1 authority，2 amm_config，3 pool_state，
// 4 input_token_account，5 output_token_account，…
// 参数：amount(8) other_amount_threshold(8)
func parseSwapIx(ix *core.Instruction, meta core.EventMetadata, baseInput bool) core.DexEvent {
	if len(ix.Accounts) < 6 {
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

	ev := &core.RaydiumCpmmSwapEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[3],
		User:          ix.Accounts[0],
		IsBaseInput:   baseInput,
	}
	if baseInput {
		ev.AmountIn = amount
		ev.AmountOut = threshold // minimum_amount_out，成交额以链上余额为准
	} else {
		ev.AmountIn = threshold // max_amount_in
		ev.AmountOut = amount
	}
	return ev
}

// deposit 指令账户：0 owner，1 authority，2 pool_state，…
// 参数：lp_token_amount(8) maximum_token_0_amount(8) maximum_token_1_amount(8)
func parseDepositIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 3 {
		return nil
	}
	lpAmount, ok := common.ReadU64(ix.Data, 8)
	if !ok {
		return nil
	}
	amount0, ok := common.ReadU64(ix.Data, 16)
	if !ok {
		return nil
	}
	amount1, ok := common.ReadU64(ix.Data, 24)
	if !ok {
		return nil
	}
	return &core.RaydiumCpmmDepositEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[2],
		User:          ix.Accounts[0],
		LpTokenAmount: lpAmount,
		Token0Amount:  amount0,
		Token1Amount:  amount1,
	}
}

// withdraw 指令账户与 deposit 相同。
// 参数：lp_token_amount(8) minimum_token_0_amount(8) minimum_token_1_amount(8)
func parseWithdrawIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 3 {
		return nil
	}
	lpAmount, ok := common.ReadU64(ix.Data, 8)
	if !ok {
		return nil
	}
	amount0, ok := common.ReadU64(ix.Data, 16)
	if !ok {
		return nil
	}
	amount1, ok := common.ReadU64(ix.Data, 24)
	if !ok {
		return nil
	}
	return &core.RaydiumCpmmWithdrawEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[2],
		User:          ix.Accounts[0],
		LpTokenAmount: lpAmount,
		Token0Amount:  amount0,
		Token1Amount:  amount1,
	}
}

// initialize 指令账户：0 creator，1 amm_config，2 authority，3 pool_state，…
// 参数：init_amount_0(8) init_amount_1(8) open_time(8)
func parseInitializeIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 4 {
		return nil
	}
	initAmount0, ok := common.ReadU64(ix.Data, 8)
	if !ok {
		return nil
	}
	initAmount1, ok := common.ReadU64(ix.Data, 16)
	if !ok {
		return nil
	}
	return &core.RaydiumCpmmInitializeEvent{
		EventMetadata: meta,
		Pool:          ix.Accounts[3],
		Creator:       ix.Accounts[0],
		InitAmount0:   initAmount0,
		InitAmount1:   initAmount1,
	}
}
