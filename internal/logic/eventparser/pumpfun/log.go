package pumpfun

import (
	"strings"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID（Anchor event discriminator，前 8 字节按大端序打包）
const (
	CreateEvent   uint64 = 0x1b72a94ddeeb6376
	TradeEvent    uint64 = 0xbddb7fd34ee661ee
	CompleteEvent uint64 = 0x5f72619cd42e9808
	MigrateEvent  uint64 = 0xbde95db95c94ea94
)

// TradeMarker 是 Trade 事件 discriminator 经 base64 编码后的稳定前缀，
// 单类别快路径直接用它筛行，省掉解码与查表。
const TradeMarker = common.ProgramDataMarker + "vdt/007mYe"

// CreateMarker 同理，用于交易级 create-then-buy 关联预扫描。
const CreateMarker = common.ProgramDataMarker + "G3KpTd7rY3"

// tradeBufCap 为 Trade 热路径的栈缓冲区容量。
// Trade 事件载荷约 250 字节（base64 编码 ~340 字符），留出余量。
const tradeBufCap = 512

// ParseLog 解析一行已归类为 Pump.fun 的日志，createdInTx 表示本交易中
// 已检测到 Create 事件（用于标记 created-then-buy）。
func ParseLog(line string, meta core.EventMetadata, createdInTx bool) core.DexEvent {
	tail, ok := common.LogTail(line, common.ProgramDataMarker)
	if !ok {
		return nil
	}

	var buf [tradeBufCap]byte
	data, ok := common.DecodeBase64(buf[:], tail)
	if !ok {
		return nil
	}
	disc, ok := common.Discriminator(data)
	if !ok {
		return nil
	}

	switch disc {
	case TradeEvent:
		return parseTrade(data[8:], meta, createdInTx)
	case CreateEvent:
		return parseCreate(data[8:], meta)
	case CompleteEvent:
		return parseComplete(data[8:], meta)
	case MigrateEvent:
		return parseMigrate(data[8:], meta)
	default:
		return nil
	}
}

// ParseTradeLog 是单类别快路径：过滤器只保留 PumpFunTrade 时由编排器直接调用。
// 先用 base64 前缀粗筛，命中后才解码，非 Trade 行的成本仅为一次子串查找。
func ParseTradeLog(line string, meta core.EventMetadata, createdInTx bool) core.DexEvent {
	if !strings.Contains(line, TradeMarker) {
		return nil
	}
	tail, ok := common.LogTail(line, common.ProgramDataMarker)
	if !ok {
		return nil
	}
	var buf [tradeBufCap]byte
	data, ok := common.DecodeBase64(buf[:], tail)
	if !ok || len(data) < 8 {
		return nil
	}
	return parseTrade(data[8:], meta, createdInTx)
}

// parseTrade 按固定偏移解析 Trade 事件。
// 链上布局：mint(32) sol_amount(8) token_amount(8) is_buy(1) user(32)
// timestamp(8) virtual_sol(8) virtual_token(8) real_sol(8) real_token(8)
// fee_recipient(32) fee_basis_points(8) fee(8) creator(32)
// creator_fee_basis_points(8) creator_fee(8)，后续字段为协议升级新增，按可选处理。
func parseTrade(data []byte, meta core.EventMetadata, createdInTx bool) core.DexEvent {
	mint, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	solAmount, ok := common.ReadU64(data, 32)
	if !ok {
		return nil
	}
	tokenAmount, ok := common.ReadU64(data, 40)
	if !ok {
		return nil
	}
	isBuy, ok := common.ReadBool(data, 48)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 49)
	if !ok {
		return nil
	}
	timestamp, ok := common.ReadI64(data, 81)
	if !ok {
		return nil
	}
	virtualSol, ok := common.ReadU64(data, 89)
	if !ok {
		return nil
	}
	virtualToken, ok := common.ReadU64(data, 97)
	if !ok {
		return nil
	}

	ev := &core.PumpFunTradeEvent{
		EventMetadata:        meta,
		Mint:                 mint,
		SolAmount:            solAmount,
		TokenAmount:          tokenAmount,
		IsBuy:                isBuy,
		IsCreatedBuy:         isBuy && createdInTx,
		User:                 user,
		Timestamp:            timestamp,
		VirtualSolReserves:   virtualSol,
		VirtualTokenReserves: virtualToken,
	}

	// 旧版本事件到此为止；以下字段缺失时保留零值
	ev.RealSolReserves, _ = common.ReadU64(data, 105)
	ev.RealTokenReserves, _ = common.ReadU64(data, 113)
	ev.FeeRecipient, _ = common.ReadPubkey(data, 121)
	ev.FeeBasisPoints, _ = common.ReadU64(data, 153)
	ev.Fee, _ = common.ReadU64(data, 161)
	ev.Creator, _ = common.ReadPubkey(data, 169)
	ev.CreatorFeeBasisPoints, _ = common.ReadU64(data, 201)
	ev.CreatorFee, _ = common.ReadU64(data, 209)
	return ev
}

// parseCreate 解析 Create 事件：三段变长字符串后接四个公钥与数值区。
func parseCreate(data []byte, meta core.EventMetadata) core.DexEvent {
	off := 0
	name, n, ok := common.ReadString(data, off, common.MaxShortStringLen)
	if !ok {
		return nil
	}
	off += n
	symbol, n, ok := common.ReadString(data, off, common.MaxShortStringLen)
	if !ok {
		return nil
	}
	off += n
	uri, n, ok := common.ReadString(data, off, common.MaxURILen)
	if !ok {
		return nil
	}
	off += n

	mint, ok := common.ReadPubkey(data, off)
	if !ok {
		return nil
	}
	bondingCurve, ok := common.ReadPubkey(data, off+32)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, off+64)
	if !ok {
		return nil
	}
	creator, ok := common.ReadPubkey(data, off+96)
	if !ok {
		return nil
	}
	off += 128

	timestamp, ok := common.ReadI64(data, off)
	if !ok {
		return nil
	}
	virtualToken, ok := common.ReadU64(data, off+8)
	if !ok {
		return nil
	}
	virtualSol, ok := common.ReadU64(data, off+16)
	if !ok {
		return nil
	}
	realToken, ok := common.ReadU64(data, off+24)
	if !ok {
		return nil
	}
	totalSupply, ok := common.ReadU64(data, off+32)
	if !ok {
		return nil
	}

	return &core.PumpFunCreateEvent{
		EventMetadata:        meta,
		Name:                 name,
		Symbol:               symbol,
		Uri:                  uri,
		Mint:                 mint,
		BondingCurve:         bondingCurve,
		User:                 user,
		Creator:              creator,
		Timestamp:            timestamp,
		VirtualTokenReserves: virtualToken,
		VirtualSolReserves:   virtualSol,
		RealTokenReserves:    realToken,
		TokenTotalSupply:     totalSupply,
	}
}

func parseComplete(data []byte, meta core.EventMetadata) core.DexEvent {
	user, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	mint, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	bondingCurve, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	timestamp, ok := common.ReadI64(data, 96)
	if !ok {
		return nil
	}
	return &core.PumpFunCompleteEvent{
		EventMetadata: meta,
		User:          user,
		Mint:          mint,
		BondingCurve:  bondingCurve,
		Timestamp:     timestamp,
	}
}

func parseMigrate(data []byte, meta core.EventMetadata) core.DexEvent {
	user, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	mint, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	mintAmount, ok := common.ReadU64(data, 64)
	if !ok {
		return nil
	}
	solAmount, ok := common.ReadU64(data, 72)
	if !ok {
		return nil
	}
	migrationFee, ok := common.ReadU64(data, 80)
	if !ok {
		return nil
	}
	bondingCurve, ok := common.ReadPubkey(data, 88)
	if !ok {
		return nil
	}
	timestamp, ok := common.ReadI64(data, 120)
	if !ok {
		return nil
	}
	pool, ok := common.ReadPubkey(data, 128)
	if !ok {
		return nil
	}
	return &core.PumpFunMigrateEvent{
		EventMetadata:    meta,
		User:             user,
		Mint:             mint,
		MintAmount:       mintAmount,
		SolAmount:        solAmount,
		PoolMigrationFee: migrationFee,
		BondingCurve:     bondingCurve,
		Timestamp:        timestamp,
		Pool:             pool,
	}
}
