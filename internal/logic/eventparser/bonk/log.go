package bonk

import (
	"github.com/near/borsh-go"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// 事件方法 ID。
// 该协议版本的 discriminator 取值沿用上游既定契约，与程序地址表同属配置。
const (
	PoolCreateEvent uint64 = 0x0102030405060708
	TradeEvent      uint64 = 0x0203040506070809
	MigrateAmmEvent uint64 = 0x030405060708090a
)

const bufCap = 1024

// poolCreatePayload 是 PoolCreate 事件的 borsh 布局：
// 池子与创建者公钥后接 base mint 参数（变长字符串 + 精度）。
type poolCreatePayload struct {
	PoolState [32]uint8
	Creator   [32]uint8
	Symbol    string
	Name      string
	Uri       string
	Decimals  uint8
}

// ParseLog 解析一行已归类为 Bonk（Raydium Launchpad）的日志。
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
	case TradeEvent:
		return parseTrade(data[8:], meta)
	case PoolCreateEvent:
		return parsePoolCreate(data[8:], meta)
	case MigrateAmmEvent:
		return parseMigrateAmm(data[8:], meta)
	default:
		return nil
	}
}

// 布局：pool_state(32) user(32) amount_in(8) amount_out(8) is_buy(1) exact_in(1)
func parseTrade(data []byte, meta core.EventMetadata) core.DexEvent {
	poolState, ok := common.ReadPubkey(data, 0)
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
	isBuy, ok := common.ReadBool(data, 80)
	if !ok {
		return nil
	}
	exactIn, ok := common.ReadBool(data, 81)
	if !ok {
		return nil
	}
	return &core.BonkTradeEvent{
		EventMetadata: meta,
		PoolState:     poolState,
		User:          user,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		IsBuy:         isBuy,
		ExactIn:       exactIn,
	}
}

// parsePoolCreate 经 borsh 反序列化取出 mint 参数，字符串上限事后校验。
func parsePoolCreate(data []byte, meta core.EventMetadata) core.DexEvent {
	var p poolCreatePayload
	if err := borsh.Deserialize(&p, data); err != nil {
		return nil
	}
	if len(p.Symbol) > common.MaxShortStringLen ||
		len(p.Name) > common.MaxShortStringLen ||
		len(p.Uri) > common.MaxURILen {
		return nil
	}
	return &core.BonkPoolCreateEvent{
		EventMetadata: meta,
		PoolState:     p.PoolState,
		Creator:       p.Creator,
		Symbol:        p.Symbol,
		Name:          p.Name,
		Uri:           p.Uri,
		Decimals:      p.Decimals,
	}
}

// 布局：old_pool(32) new_pool(32) user(32) liquidity_amount(8)
func parseMigrateAmm(data []byte, meta core.EventMetadata) core.DexEvent {
	oldPool, ok := common.ReadPubkey(data, 0)
	if !ok {
		return nil
	}
	newPool, ok := common.ReadPubkey(data, 32)
	if !ok {
		return nil
	}
	user, ok := common.ReadPubkey(data, 64)
	if !ok {
		return nil
	}
	liquidity, ok := common.ReadU64(data, 96)
	if !ok {
		return nil
	}
	return &core.BonkMigrateAmmEvent{
		EventMetadata:   meta,
		OldPool:         oldPool,
		NewPool:         newPool,
		User:            user,
		LiquidityAmount: liquidity,
	}
}
