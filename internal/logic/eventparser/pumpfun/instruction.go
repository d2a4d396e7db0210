package pumpfun

import (
	"sol-dex-parser/internal/consts"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/types"
)

// 指令方法 ID（Anchor instruction discriminator）
const (
	CreateIx  uint64 = 0x181ec828051c0777
	BuyIx     uint64 = 0x66063d1201daebea
	SellIx    uint64 = 0x33e685a4017f83ad
	MigrateIx uint64 = 0x9beae792ec9ea21e
)

// RegisterHandlers 注册 Pump.fun Program 的指令解析器
func RegisterHandlers(m map[types.Pubkey]common.InstructionRoute) {
	m[consts.PumpFunProgram] = common.InstructionRoute{
		Dex:     consts.DexPumpfun,
		Handler: handleInstruction,
	}
}

// Pump.fun 交易指令账户布局：
//  0. Global 配置账户
//  1. 手续费账户
//  2. 被交易代币的 Mint
//  3. Bonding Curve 主账户（池子地址）
//  4. Bonding Curve Vault（池子 TokenAccount）
//  5. 用户 Associated Token Account
//  6. 用户主账户
func handleInstruction(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	disc, ok := common.Discriminator(ix.Data)
	if !ok {
		return nil
	}
	switch disc {
	case BuyIx:
		return parseTradeIx(ix, meta, true)
	case SellIx:
		return parseTradeIx(ix, meta, false)
	case CreateIx:
		return parseCreateIx(ix, meta)
	case MigrateIx:
		return parseMigrateIx(ix, meta)
	default:
		return nil
	}
}

// parseTradeIx 从 buy/sell 指令还原交易事件。
// 指令参数只有数量与滑点上限，储备快照等字段以日志事件为准，这里保留零值。
func parseTradeIx(ix *core.Instruction, meta core.EventMetadata, isBuy bool) core.DexEvent {
	if len(ix.Accounts) < 7 {
		return nil
	}
	tokenAmount, ok := common.ReadU64(ix.Data, 8)
	if !ok {
		return nil
	}
	limit, ok := common.ReadU64(ix.Data, 16)
	if !ok {
		return nil
	}

	ev := &core.PumpFunTradeEvent{
		EventMetadata: meta,
		Mint:          ix.Accounts[2],
		TokenAmount:   tokenAmount,
		IsBuy:         isBuy,
		User:          ix.Accounts[6],
	}
	if isBuy {
		ev.SolAmount = limit // max_sol_cost，成交额以日志为准
	}
	return ev
}

// create 指令携带 name/symbol/uri 参数，mint 为第 0 个账户。
func parseCreateIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 8 {
		return nil
	}
	off := 8
	name, n, ok := common.ReadString(ix.Data, off, common.MaxShortStringLen)
	if !ok {
		return nil
	}
	off += n
	symbol, n, ok := common.ReadString(ix.Data, off, common.MaxShortStringLen)
	if !ok {
		return nil
	}
	off += n
	uri, _, ok := common.ReadString(ix.Data, off, common.MaxURILen)
	if !ok {
		return nil
	}

	return &core.PumpFunCreateEvent{
		EventMetadata: meta,
		Name:          name,
		Symbol:        symbol,
		Uri:           uri,
		Mint:          ix.Accounts[0],
		BondingCurve:  ix.Accounts[2],
		User:          ix.Accounts[7],
		Creator:       ix.Accounts[7],
	}
}

func parseMigrateIx(ix *core.Instruction, meta core.EventMetadata) core.DexEvent {
	if len(ix.Accounts) < 4 {
		return nil
	}
	return &core.PumpFunMigrateEvent{
		EventMetadata: meta,
		Mint:          ix.Accounts[2],
		BondingCurve:  ix.Accounts[3],
		User:          ix.Accounts[0],
	}
}
