package core

import (
	"sol-dex-parser/internal/consts"
	"sol-dex-parser/internal/types"
)

// EventKind 是封闭的事件类别枚举。每个协议拥有固定的一组事件类别，
// 新增协议属于代码变更而非运行时注册。
// 取值必须保持在 64 以内，过滤器用单个 uint64 位图表示集合。
type EventKind uint8

const (
	KindUnknown EventKind = iota

	// PumpFun
	KindPumpFunTrade
	KindPumpFunCreate
	KindPumpFunComplete
	KindPumpFunMigrate

	// PumpSwap
	KindPumpSwapBuy
	KindPumpSwapSell
	KindPumpSwapCreatePool
	KindPumpSwapDeposit
	KindPumpSwapWithdraw

	// Bonk
	KindBonkTrade
	KindBonkPoolCreate
	KindBonkMigrateAmm

	// Raydium AMM V4（ray_log）
	KindRaydiumV4SwapBaseIn
	KindRaydiumV4SwapBaseOut
	KindRaydiumV4Deposit
	KindRaydiumV4Withdraw
	KindRaydiumV4Initialize2

	// Raydium CPMM
	KindRaydiumCpmmSwap
	KindRaydiumCpmmDeposit
	KindRaydiumCpmmWithdraw
	KindRaydiumCpmmInitialize

	// Raydium CLMM
	KindRaydiumClmmSwap
	KindRaydiumClmmCreatePool
	KindRaydiumClmmIncreaseLiquidity
	KindRaydiumClmmDecreaseLiquidity
	KindRaydiumClmmOpenPosition
	KindRaydiumClmmClosePosition

	// Orca Whirlpool
	KindOrcaWhirlpoolSwap
	KindOrcaWhirlpoolLiquidityIncreased
	KindOrcaWhirlpoolLiquidityDecreased
	KindOrcaWhirlpoolPoolInitialized

	// Meteora DLMM
	KindMeteoraDlmmSwap
	KindMeteoraDlmmAddLiquidity
	KindMeteoraDlmmRemoveLiquidity
	KindMeteoraDlmmInitializePool
	KindMeteoraDlmmCreatePosition
	KindMeteoraDlmmClosePosition
	KindMeteoraDlmmClaimFee

	// Meteora DAMM v2
	KindMeteoraDammSwap
	KindMeteoraDammAddLiquidity
	KindMeteoraDammRemoveLiquidity
	KindMeteoraDammInitializePool

	// Meteora AMM (pools)
	KindMeteoraAmmSwap
	KindMeteoraAmmAddLiquidity
	KindMeteoraAmmRemoveLiquidity

	kindCount
)

// KindCount 返回事件类别总数（含 KindUnknown）。
func KindCount() int { return int(kindCount) }

// kindDex 是 EventKind → 协议标识的查找表，与上方枚举顺序严格对应。
var kindDex = [kindCount]uint8{
	KindUnknown: consts.DexUnknown,

	KindPumpFunTrade:    consts.DexPumpfun,
	KindPumpFunCreate:   consts.DexPumpfun,
	KindPumpFunComplete: consts.DexPumpfun,
	KindPumpFunMigrate:  consts.DexPumpfun,

	KindPumpSwapBuy:        consts.DexPumpSwap,
	KindPumpSwapSell:       consts.DexPumpSwap,
	KindPumpSwapCreatePool: consts.DexPumpSwap,
	KindPumpSwapDeposit:    consts.DexPumpSwap,
	KindPumpSwapWithdraw:   consts.DexPumpSwap,

	KindBonkTrade:      consts.DexBonk,
	KindBonkPoolCreate: consts.DexBonk,
	KindBonkMigrateAmm: consts.DexBonk,

	KindRaydiumV4SwapBaseIn:  consts.DexRaydiumV4,
	KindRaydiumV4SwapBaseOut: consts.DexRaydiumV4,
	KindRaydiumV4Deposit:     consts.DexRaydiumV4,
	KindRaydiumV4Withdraw:    consts.DexRaydiumV4,
	KindRaydiumV4Initialize2: consts.DexRaydiumV4,

	KindRaydiumCpmmSwap:       consts.DexRaydiumCPMM,
	KindRaydiumCpmmDeposit:    consts.DexRaydiumCPMM,
	KindRaydiumCpmmWithdraw:   consts.DexRaydiumCPMM,
	KindRaydiumCpmmInitialize: consts.DexRaydiumCPMM,

	KindRaydiumClmmSwap:              consts.DexRaydiumCLMM,
	KindRaydiumClmmCreatePool:        consts.DexRaydiumCLMM,
	KindRaydiumClmmIncreaseLiquidity: consts.DexRaydiumCLMM,
	KindRaydiumClmmDecreaseLiquidity: consts.DexRaydiumCLMM,
	KindRaydiumClmmOpenPosition:      consts.DexRaydiumCLMM,
	KindRaydiumClmmClosePosition:     consts.DexRaydiumCLMM,

	KindOrcaWhirlpoolSwap:               consts.DexOrcaWhirlpool,
	KindOrcaWhirlpoolLiquidityIncreased: consts.DexOrcaWhirlpool,
	KindOrcaWhirlpoolLiquidityDecreased: consts.DexOrcaWhirlpool,
	KindOrcaWhirlpoolPoolInitialized:    consts.DexOrcaWhirlpool,

	KindMeteoraDlmmSwap:            consts.DexMeteoraDLMM,
	KindMeteoraDlmmAddLiquidity:    consts.DexMeteoraDLMM,
	KindMeteoraDlmmRemoveLiquidity: consts.DexMeteoraDLMM,
	KindMeteoraDlmmInitializePool:  consts.DexMeteoraDLMM,
	KindMeteoraDlmmCreatePosition:  consts.DexMeteoraDLMM,
	KindMeteoraDlmmClosePosition:   consts.DexMeteoraDLMM,
	KindMeteoraDlmmClaimFee:        consts.DexMeteoraDLMM,

	KindMeteoraDammSwap:           consts.DexMeteoraDAMM,
	KindMeteoraDammAddLiquidity:   consts.DexMeteoraDAMM,
	KindMeteoraDammRemoveLiquidity: consts.DexMeteoraDAMM,
	KindMeteoraDammInitializePool: consts.DexMeteoraDAMM,

	KindMeteoraAmmSwap:            consts.DexMeteoraAMM,
	KindMeteoraAmmAddLiquidity:    consts.DexMeteoraAMM,
	KindMeteoraAmmRemoveLiquidity: consts.DexMeteoraAMM,
}

// dexKindMask 是协议标识 → 该协议全部事件类别位图的查找表，
// 供过滤器在解码前做协议级预判。长度覆盖全部 Dex* 枚举并留余量。
var dexKindMask [16]uint64

func init() {
	for k := EventKind(1); k < kindCount; k++ {
		dexKindMask[kindDex[k]] |= uint64(1) << k
	}
}

// Dex 返回事件类别所属的协议标识（consts.Dex*）。
func (k EventKind) Dex() int {
	if k < kindCount {
		return int(kindDex[k])
	}
	return consts.DexUnknown
}

var kindNames = [kindCount]string{
	KindUnknown: "Unknown",

	KindPumpFunTrade:    "PumpFunTrade",
	KindPumpFunCreate:   "PumpFunCreate",
	KindPumpFunComplete: "PumpFunComplete",
	KindPumpFunMigrate:  "PumpFunMigrate",

	KindPumpSwapBuy:        "PumpSwapBuy",
	KindPumpSwapSell:       "PumpSwapSell",
	KindPumpSwapCreatePool: "PumpSwapCreatePool",
	KindPumpSwapDeposit:    "PumpSwapDeposit",
	KindPumpSwapWithdraw:   "PumpSwapWithdraw",

	KindBonkTrade:      "BonkTrade",
	KindBonkPoolCreate: "BonkPoolCreate",
	KindBonkMigrateAmm: "BonkMigrateAmm",

	KindRaydiumV4SwapBaseIn:  "RaydiumV4SwapBaseIn",
	KindRaydiumV4SwapBaseOut: "RaydiumV4SwapBaseOut",
	KindRaydiumV4Deposit:     "RaydiumV4Deposit",
	KindRaydiumV4Withdraw:    "RaydiumV4Withdraw",
	KindRaydiumV4Initialize2: "RaydiumV4Initialize2",

	KindRaydiumCpmmSwap:       "RaydiumCpmmSwap",
	KindRaydiumCpmmDeposit:    "RaydiumCpmmDeposit",
	KindRaydiumCpmmWithdraw:   "RaydiumCpmmWithdraw",
	KindRaydiumCpmmInitialize: "RaydiumCpmmInitialize",

	KindRaydiumClmmSwap:              "RaydiumClmmSwap",
	KindRaydiumClmmCreatePool:        "RaydiumClmmCreatePool",
	KindRaydiumClmmIncreaseLiquidity: "RaydiumClmmIncreaseLiquidity",
	KindRaydiumClmmDecreaseLiquidity: "RaydiumClmmDecreaseLiquidity",
	KindRaydiumClmmOpenPosition:      "RaydiumClmmOpenPosition",
	KindRaydiumClmmClosePosition:     "RaydiumClmmClosePosition",

	KindOrcaWhirlpoolSwap:               "OrcaWhirlpoolSwap",
	KindOrcaWhirlpoolLiquidityIncreased: "OrcaWhirlpoolLiquidityIncreased",
	KindOrcaWhirlpoolLiquidityDecreased: "OrcaWhirlpoolLiquidityDecreased",
	KindOrcaWhirlpoolPoolInitialized:    "OrcaWhirlpoolPoolInitialized",

	KindMeteoraDlmmSwap:            "MeteoraDlmmSwap",
	KindMeteoraDlmmAddLiquidity:    "MeteoraDlmmAddLiquidity",
	KindMeteoraDlmmRemoveLiquidity: "MeteoraDlmmRemoveLiquidity",
	KindMeteoraDlmmInitializePool:  "MeteoraDlmmInitializePool",
	KindMeteoraDlmmCreatePosition:  "MeteoraDlmmCreatePosition",
	KindMeteoraDlmmClosePosition:   "MeteoraDlmmClosePosition",
	KindMeteoraDlmmClaimFee:        "MeteoraDlmmClaimFee",

	KindMeteoraDammSwap:            "MeteoraDammSwap",
	KindMeteoraDammAddLiquidity:    "MeteoraDammAddLiquidity",
	KindMeteoraDammRemoveLiquidity: "MeteoraDammRemoveLiquidity",
	KindMeteoraDammInitializePool:  "MeteoraDammInitializePool",

	KindMeteoraAmmSwap:            "MeteoraAmmSwap",
	KindMeteoraAmmAddLiquidity:    "MeteoraAmmAddLiquidity",
	KindMeteoraAmmRemoveLiquidity: "MeteoraAmmRemoveLiquidity",
}

func (k EventKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// KindFromName 按名称反查事件类别（配置加载路径使用），未知名称返回 false。
func KindFromName(name string) (EventKind, bool) {
	for k := EventKind(1); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// EventMetadata 是所有事件共享的元信息。
// GrpcRecvUs 由订阅编排器在收到消息后立即打点，解析链路只读不改，
// 消费端据此计算端到端延迟。
type EventMetadata struct {
	Signature  types.Signature // 交易签名（64 字节）
	Slot       uint64          // 所属 slot
	BlockTime  int64           // 区块时间戳（Unix 秒），0 表示上游未提供
	GrpcRecvUs int64           // gRPC 收到该更新的时间（微秒）
}

func (m *EventMetadata) Meta() *EventMetadata { return m }

// DexEvent 是解码完成的事件。每个 EventKind 对应一个具体结构体，
// 结构体内嵌 EventMetadata 并实现 Kind()。
type DexEvent interface {
	Kind() EventKind
	Meta() *EventMetadata
}
