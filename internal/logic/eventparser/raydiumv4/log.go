package raydiumv4

import (
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
)

// ray_log 类型字节。Raydium V4 不是 Anchor 程序，
// 日志以 "ray_log: <base64>" 输出，首字节标识记录类型。
const (
	logInit        = 0
	logDeposit     = 1
	logWithdraw    = 2
	logSwapBaseIn  = 3
	logSwapBaseOut = 4
)

// ray_log 记录最大约 90 字节（init 含 market 公钥），256 足够
const bufCap = 256

// ParseLog 解析一行已归类为 Raydium AMM V4 的日志。
func ParseLog(line string, meta core.EventMetadata) core.DexEvent {
	tail, ok := common.LogTail(line, common.RayLogMarker)
	if !ok {
		return nil
	}
	var buf [bufCap]byte
	data, ok := common.DecodeBase64(buf[:], tail)
	if !ok || len(data) < 1 {
		return nil
	}

	switch data[0] {
	case logSwapBaseIn:
		return parseSwapBaseIn(data[1:], meta)
	case logSwapBaseOut:
		return parseSwapBaseOut(data[1:], meta)
	case logDeposit:
		return parseDeposit(data[1:], meta)
	case logWithdraw:
		return parseWithdraw(data[1:], meta)
	case logInit:
		return parseInit(data[1:], meta)
	default:
		return nil
	}
}

// 布局：amount_in(8) minimum_out(8) direction(8) user_source(8) pool_coin(8) pool_pc(8) out_amount(8)
func parseSwapBaseIn(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 56 {
		return nil
	}
	amountIn, _ := common.ReadU64(data, 0)
	minimumOut, _ := common.ReadU64(data, 8)
	direction, _ := common.ReadU64(data, 16)
	userSource, _ := common.ReadU64(data, 24)
	poolCoin, _ := common.ReadU64(data, 32)
	poolPc, _ := common.ReadU64(data, 40)
	outAmount, _ := common.ReadU64(data, 48)
	return &core.RaydiumV4SwapBaseInEvent{
		EventMetadata: meta,
		AmountIn:      amountIn,
		MinimumOut:    minimumOut,
		Direction:     direction,
		UserSource:    userSource,
		PoolCoin:      poolCoin,
		PoolPc:        poolPc,
		OutAmount:     outAmount,
	}
}

// 布局：max_in(8) amount_out(8) direction(8) user_source(8) pool_coin(8) pool_pc(8) deduct_in(8)
func parseSwapBaseOut(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 56 {
		return nil
	}
	maxIn, _ := common.ReadU64(data, 0)
	amountOut, _ := common.ReadU64(data, 8)
	direction, _ := common.ReadU64(data, 16)
	userSource, _ := common.ReadU64(data, 24)
	poolCoin, _ := common.ReadU64(data, 32)
	poolPc, _ := common.ReadU64(data, 40)
	deductIn, _ := common.ReadU64(data, 48)
	return &core.RaydiumV4SwapBaseOutEvent{
		EventMetadata: meta,
		MaxIn:         maxIn,
		AmountOut:     amountOut,
		Direction:     direction,
		UserSource:    userSource,
		PoolCoin:      poolCoin,
		PoolPc:        poolPc,
		DeductIn:      deductIn,
	}
}

// 布局：max_coin(8) max_pc(8) base(8) pool_coin(8) pool_pc(8) pool_lp(8)
func parseDeposit(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 48 {
		return nil
	}
	maxCoin, _ := common.ReadU64(data, 0)
	maxPc, _ := common.ReadU64(data, 8)
	base, _ := common.ReadU64(data, 16)
	poolCoin, _ := common.ReadU64(data, 24)
	poolPc, _ := common.ReadU64(data, 32)
	poolLp, _ := common.ReadU64(data, 40)
	return &core.RaydiumV4DepositEvent{
		EventMetadata: meta,
		MaxCoin:       maxCoin,
		MaxPc:         maxPc,
		Base:          base,
		PoolCoin:      poolCoin,
		PoolPc:        poolPc,
		PoolLp:        poolLp,
	}
}

// 布局：withdraw_lp(8) user_lp(8) pool_coin(8) pool_pc(8) pool_lp(8) out_coin(8) out_pc(8)
func parseWithdraw(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 56 {
		return nil
	}
	withdrawLp, _ := common.ReadU64(data, 0)
	userLp, _ := common.ReadU64(data, 8)
	poolCoin, _ := common.ReadU64(data, 16)
	poolPc, _ := common.ReadU64(data, 24)
	poolLp, _ := common.ReadU64(data, 32)
	outCoin, _ := common.ReadU64(data, 40)
	outPc, _ := common.ReadU64(data, 48)
	return &core.RaydiumV4WithdrawEvent{
		EventMetadata: meta,
		WithdrawLp:    withdrawLp,
		UserLp:        userLp,
		PoolCoin:      poolCoin,
		PoolPc:        poolPc,
		PoolLp:        poolLp,
		OutCoin:       outCoin,
		OutPc:         outPc,
	}
}

// 布局：time(8) pc_decimals(1) coin_decimals(1) pc_lot_size(8) coin_lot_size(8)
// pc_amount(8) coin_amount(8) market(32)
func parseInit(data []byte, meta core.EventMetadata) core.DexEvent {
	if len(data) < 74 {
		return nil
	}
	t, _ := common.ReadU64(data, 0)
	pcDecimals, _ := common.ReadU8(data, 8)
	coinDecimals, _ := common.ReadU8(data, 9)
	pcLotSize, _ := common.ReadU64(data, 10)
	coinLotSize, _ := common.ReadU64(data, 18)
	pcAmount, _ := common.ReadU64(data, 26)
	coinAmount, _ := common.ReadU64(data, 34)
	market, _ := common.ReadPubkey(data, 42)
	return &core.RaydiumV4Initialize2Event{
		EventMetadata: meta,
		Time:          t,
		PcDecimals:    pcDecimals,
		CoinDecimals:  coinDecimals,
		PcLotSize:     pcLotSize,
		CoinLotSize:   coinLotSize,
		PcAmount:      pcAmount,
		CoinAmount:    coinAmount,
		Market:        market,
	}
}
