package core

import "sol-dex-parser/internal/types"

// 各协议事件的载荷结构。全部为扁平记录：32 字节公钥、定长整数、
// 一字节布尔与受限长度的 UTF-8 字符串，不含嵌套堆结构。
// 金额一律为链上最小单位，不在此处做精度换算或定价。

// ---------- PumpFun ----------

// PumpFunTradeEvent 对应 bonding curve 上的一笔买入或卖出。
// IsCreatedBuy 表示同一笔交易里先创建了该代币再买入（狙击盘特征）。
type PumpFunTradeEvent struct {
	EventMetadata
	Mint                 types.Pubkey
	SolAmount            uint64
	TokenAmount          uint64
	IsBuy                bool
	IsCreatedBuy         bool
	User                 types.Pubkey
	Timestamp            int64
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64
	FeeRecipient         types.Pubkey
	FeeBasisPoints       uint64
	Fee                  uint64
	Creator              types.Pubkey
	CreatorFeeBasisPoints uint64
	CreatorFee           uint64
}

func (*PumpFunTradeEvent) Kind() EventKind { return KindPumpFunTrade }

type PumpFunCreateEvent struct {
	EventMetadata
	Name                 string
	Symbol               string
	Uri                  string
	Mint                 types.Pubkey
	BondingCurve         types.Pubkey
	User                 types.Pubkey
	Creator              types.Pubkey
	Timestamp            int64
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	TokenTotalSupply     uint64
}

func (*PumpFunCreateEvent) Kind() EventKind { return KindPumpFunCreate }

// PumpFunCompleteEvent 表示 bonding curve 毕业（迁移前的完成标记）。
type PumpFunCompleteEvent struct {
	EventMetadata
	User         types.Pubkey
	Mint         types.Pubkey
	BondingCurve types.Pubkey
	Timestamp    int64
}

func (*PumpFunCompleteEvent) Kind() EventKind { return KindPumpFunComplete }

type PumpFunMigrateEvent struct {
	EventMetadata
	User             types.Pubkey
	Mint             types.Pubkey
	MintAmount       uint64
	SolAmount        uint64
	PoolMigrationFee uint64
	BondingCurve     types.Pubkey
	Timestamp        int64
	Pool             types.Pubkey
}

func (*PumpFunMigrateEvent) Kind() EventKind { return KindPumpFunMigrate }

// ---------- PumpSwap ----------

type PumpSwapBuyEvent struct {
	EventMetadata
	Pool        types.Pubkey
	User        types.Pubkey
	TokenMint   types.Pubkey
	SolAmount   uint64
	TokenAmount uint64
}

func (*PumpSwapBuyEvent) Kind() EventKind { return KindPumpSwapBuy }

type PumpSwapSellEvent struct {
	EventMetadata
	Pool        types.Pubkey
	User        types.Pubkey
	TokenMint   types.Pubkey
	SolAmount   uint64
	TokenAmount uint64
}

func (*PumpSwapSellEvent) Kind() EventKind { return KindPumpSwapSell }

type PumpSwapCreatePoolEvent struct {
	EventMetadata
	Pool               types.Pubkey
	Creator            types.Pubkey
	TokenMint          types.Pubkey
	InitialSolAmount   uint64
	InitialTokenAmount uint64
	FeeRate            uint16
}

func (*PumpSwapCreatePoolEvent) Kind() EventKind { return KindPumpSwapCreatePool }

type PumpSwapDepositEvent struct {
	EventMetadata
	Pool   types.Pubkey
	User   types.Pubkey
	Amount uint64
}

func (*PumpSwapDepositEvent) Kind() EventKind { return KindPumpSwapDeposit }

type PumpSwapWithdrawEvent struct {
	EventMetadata
	Pool   types.Pubkey
	User   types.Pubkey
	Amount uint64
}

func (*PumpSwapWithdrawEvent) Kind() EventKind { return KindPumpSwapWithdraw }

// ---------- Bonk ----------

type BonkTradeEvent struct {
	EventMetadata
	PoolState types.Pubkey
	User      types.Pubkey
	AmountIn  uint64
	AmountOut uint64
	IsBuy     bool
	ExactIn   bool
}

func (*BonkTradeEvent) Kind() EventKind { return KindBonkTrade }

type BonkPoolCreateEvent struct {
	EventMetadata
	PoolState types.Pubkey
	Creator   types.Pubkey
	Symbol    string
	Name      string
	Uri       string
	Decimals  uint8
}

func (*BonkPoolCreateEvent) Kind() EventKind { return KindBonkPoolCreate }

type BonkMigrateAmmEvent struct {
	EventMetadata
	OldPool         types.Pubkey
	NewPool         types.Pubkey
	User            types.Pubkey
	LiquidityAmount uint64
}

func (*BonkMigrateAmmEvent) Kind() EventKind { return KindBonkMigrateAmm }

// ---------- Raydium AMM V4（ray_log）----------

type RaydiumV4SwapBaseInEvent struct {
	EventMetadata
	AmountIn   uint64
	MinimumOut uint64
	Direction  uint64 // 0: coin→pc，1: pc→coin
	UserSource uint64
	PoolCoin   uint64
	PoolPc     uint64
	OutAmount  uint64
}

func (*RaydiumV4SwapBaseInEvent) Kind() EventKind { return KindRaydiumV4SwapBaseIn }

type RaydiumV4SwapBaseOutEvent struct {
	EventMetadata
	MaxIn      uint64
	AmountOut  uint64
	Direction  uint64
	UserSource uint64
	PoolCoin   uint64
	PoolPc     uint64
	DeductIn   uint64
}

func (*RaydiumV4SwapBaseOutEvent) Kind() EventKind { return KindRaydiumV4SwapBaseOut }

type RaydiumV4DepositEvent struct {
	EventMetadata
	MaxCoin  uint64
	MaxPc    uint64
	Base     uint64
	PoolCoin uint64
	PoolPc   uint64
	PoolLp   uint64
}

func (*RaydiumV4DepositEvent) Kind() EventKind { return KindRaydiumV4Deposit }

type RaydiumV4WithdrawEvent struct {
	EventMetadata
	WithdrawLp uint64
	UserLp     uint64
	PoolCoin   uint64
	PoolPc     uint64
	PoolLp     uint64
	OutCoin    uint64
	OutPc      uint64
}

func (*RaydiumV4WithdrawEvent) Kind() EventKind { return KindRaydiumV4Withdraw }

type RaydiumV4Initialize2Event struct {
	EventMetadata
	Time         uint64
	PcDecimals   uint8
	CoinDecimals uint8
	PcLotSize    uint64
	CoinLotSize  uint64
	PcAmount     uint64
	CoinAmount   uint64
	Market       types.Pubkey
}

func (*RaydiumV4Initialize2Event) Kind() EventKind { return KindRaydiumV4Initialize2 }

// ---------- Raydium CPMM ----------

type RaydiumCpmmSwapEvent struct {
	EventMetadata
	Pool        types.Pubkey
	User        types.Pubkey
	AmountIn    uint64
	AmountOut   uint64
	IsBaseInput bool
}

func (*RaydiumCpmmSwapEvent) Kind() EventKind { return KindRaydiumCpmmSwap }

type RaydiumCpmmDepositEvent struct {
	EventMetadata
	Pool          types.Pubkey
	User          types.Pubkey
	LpTokenAmount uint64
	Token0Amount  uint64
	Token1Amount  uint64
}

func (*RaydiumCpmmDepositEvent) Kind() EventKind { return KindRaydiumCpmmDeposit }

type RaydiumCpmmWithdrawEvent struct {
	EventMetadata
	Pool          types.Pubkey
	User          types.Pubkey
	LpTokenAmount uint64
	Token0Amount  uint64
	Token1Amount  uint64
}

func (*RaydiumCpmmWithdrawEvent) Kind() EventKind { return KindRaydiumCpmmWithdraw }

type RaydiumCpmmInitializeEvent struct {
	EventMetadata
	Pool        types.Pubkey
	Creator     types.Pubkey
	InitAmount0 uint64
	InitAmount1 uint64
}

func (*RaydiumCpmmInitializeEvent) Kind() EventKind { return KindRaydiumCpmmInitialize }

// ---------- Raydium CLMM ----------

type RaydiumClmmSwapEvent struct {
	EventMetadata
	Pool                 types.Pubkey
	User                 types.Pubkey
	Amount               uint64
	OtherAmountThreshold uint64
	SqrtPriceLimitX64    types.Uint128
	IsBaseInput          bool
}

func (*RaydiumClmmSwapEvent) Kind() EventKind { return KindRaydiumClmmSwap }

type RaydiumClmmCreatePoolEvent struct {
	EventMetadata
	Pool         types.Pubkey
	Creator      types.Pubkey
	SqrtPriceX64 types.Uint128
	OpenTime     uint64
}

func (*RaydiumClmmCreatePoolEvent) Kind() EventKind { return KindRaydiumClmmCreatePool }

type RaydiumClmmIncreaseLiquidityEvent struct {
	EventMetadata
	Pool       types.Pubkey
	User       types.Pubkey
	Liquidity  types.Uint128
	Amount0Max uint64
	Amount1Max uint64
}

func (*RaydiumClmmIncreaseLiquidityEvent) Kind() EventKind { return KindRaydiumClmmIncreaseLiquidity }

type RaydiumClmmDecreaseLiquidityEvent struct {
	EventMetadata
	Pool       types.Pubkey
	User       types.Pubkey
	Liquidity  types.Uint128
	Amount0Min uint64
	Amount1Min uint64
}

func (*RaydiumClmmDecreaseLiquidityEvent) Kind() EventKind { return KindRaydiumClmmDecreaseLiquidity }

type RaydiumClmmOpenPositionEvent struct {
	EventMetadata
	Pool           types.Pubkey
	User           types.Pubkey
	PositionNftMint types.Pubkey
	TickLowerIndex int32
	TickUpperIndex int32
	Liquidity      types.Uint128
}

func (*RaydiumClmmOpenPositionEvent) Kind() EventKind { return KindRaydiumClmmOpenPosition }

type RaydiumClmmClosePositionEvent struct {
	EventMetadata
	Pool            types.Pubkey
	User            types.Pubkey
	PositionNftMint types.Pubkey
}

func (*RaydiumClmmClosePositionEvent) Kind() EventKind { return KindRaydiumClmmClosePosition }

// ---------- Orca Whirlpool ----------

type OrcaWhirlpoolSwapEvent struct {
	EventMetadata
	Whirlpool         types.Pubkey
	AToB              bool
	PreSqrtPrice      types.Uint128
	PostSqrtPrice     types.Uint128
	InputAmount       uint64
	OutputAmount      uint64
	InputTransferFee  uint64
	OutputTransferFee uint64
	LpFee             uint64
	ProtocolFee       uint64
}

func (*OrcaWhirlpoolSwapEvent) Kind() EventKind { return KindOrcaWhirlpoolSwap }

type OrcaWhirlpoolLiquidityIncreasedEvent struct {
	EventMetadata
	Whirlpool      types.Pubkey
	Position       types.Pubkey
	TickLowerIndex int32
	TickUpperIndex int32
	Liquidity      types.Uint128
	TokenAAmount   uint64
	TokenBAmount   uint64
}

func (*OrcaWhirlpoolLiquidityIncreasedEvent) Kind() EventKind { return KindOrcaWhirlpoolLiquidityIncreased }

type OrcaWhirlpoolLiquidityDecreasedEvent struct {
	EventMetadata
	Whirlpool      types.Pubkey
	Position       types.Pubkey
	TickLowerIndex int32
	TickUpperIndex int32
	Liquidity      types.Uint128
	TokenAAmount   uint64
	TokenBAmount   uint64
}

func (*OrcaWhirlpoolLiquidityDecreasedEvent) Kind() EventKind { return KindOrcaWhirlpoolLiquidityDecreased }

type OrcaWhirlpoolPoolInitializedEvent struct {
	EventMetadata
	Whirlpool    types.Pubkey
	TokenMintA   types.Pubkey
	TokenMintB   types.Pubkey
	TickSpacing  uint16
	InitialSqrtPrice types.Uint128
}

func (*OrcaWhirlpoolPoolInitializedEvent) Kind() EventKind { return KindOrcaWhirlpoolPoolInitialized }

// ---------- Meteora DLMM ----------

type MeteoraDlmmSwapEvent struct {
	EventMetadata
	LbPair      types.Pubkey
	From        types.Pubkey
	StartBinID  int32
	EndBinID    int32
	AmountIn    uint64
	AmountOut   uint64
	SwapForY    bool
	Fee         uint64
	ProtocolFee uint64
}

func (*MeteoraDlmmSwapEvent) Kind() EventKind { return KindMeteoraDlmmSwap }

type MeteoraDlmmAddLiquidityEvent struct {
	EventMetadata
	LbPair      types.Pubkey
	From        types.Pubkey
	Position    types.Pubkey
	AmountX     uint64
	AmountY     uint64
	ActiveBinID int32
}

func (*MeteoraDlmmAddLiquidityEvent) Kind() EventKind { return KindMeteoraDlmmAddLiquidity }

type MeteoraDlmmRemoveLiquidityEvent struct {
	EventMetadata
	LbPair      types.Pubkey
	From        types.Pubkey
	Position    types.Pubkey
	AmountX     uint64
	AmountY     uint64
	ActiveBinID int32
}

func (*MeteoraDlmmRemoveLiquidityEvent) Kind() EventKind { return KindMeteoraDlmmRemoveLiquidity }

type MeteoraDlmmInitializePoolEvent struct {
	EventMetadata
	LbPair  types.Pubkey
	BinStep uint16
	TokenX  types.Pubkey
	TokenY  types.Pubkey
}

func (*MeteoraDlmmInitializePoolEvent) Kind() EventKind { return KindMeteoraDlmmInitializePool }

type MeteoraDlmmCreatePositionEvent struct {
	EventMetadata
	LbPair   types.Pubkey
	Position types.Pubkey
	Owner    types.Pubkey
}

func (*MeteoraDlmmCreatePositionEvent) Kind() EventKind { return KindMeteoraDlmmCreatePosition }

type MeteoraDlmmClosePositionEvent struct {
	EventMetadata
	Position types.Pubkey
	Owner    types.Pubkey
}

func (*MeteoraDlmmClosePositionEvent) Kind() EventKind { return KindMeteoraDlmmClosePosition }

type MeteoraDlmmClaimFeeEvent struct {
	EventMetadata
	LbPair   types.Pubkey
	Position types.Pubkey
	Owner    types.Pubkey
	FeeX     uint64
	FeeY     uint64
}

func (*MeteoraDlmmClaimFeeEvent) Kind() EventKind { return KindMeteoraDlmmClaimFee }

// ---------- Meteora DAMM v2 ----------

type MeteoraDammSwapEvent struct {
	EventMetadata
	Pool      types.Pubkey
	User      types.Pubkey
	AmountIn  uint64
	AmountOut uint64
	AToB      bool
}

func (*MeteoraDammSwapEvent) Kind() EventKind { return KindMeteoraDammSwap }

type MeteoraDammAddLiquidityEvent struct {
	EventMetadata
	Pool         types.Pubkey
	User         types.Pubkey
	TokenAAmount uint64
	TokenBAmount uint64
}

func (*MeteoraDammAddLiquidityEvent) Kind() EventKind { return KindMeteoraDammAddLiquidity }

type MeteoraDammRemoveLiquidityEvent struct {
	EventMetadata
	Pool         types.Pubkey
	User         types.Pubkey
	TokenAAmount uint64
	TokenBAmount uint64
}

func (*MeteoraDammRemoveLiquidityEvent) Kind() EventKind { return KindMeteoraDammRemoveLiquidity }

type MeteoraDammInitializePoolEvent struct {
	EventMetadata
	Pool    types.Pubkey
	Creator types.Pubkey
	TokenA  types.Pubkey
	TokenB  types.Pubkey
}

func (*MeteoraDammInitializePoolEvent) Kind() EventKind { return KindMeteoraDammInitializePool }

// ---------- Meteora AMM (pools) ----------

type MeteoraAmmSwapEvent struct {
	EventMetadata
	InAmount      uint64
	OutAmount     uint64
	TradeFee      uint64
	ProtocolFee   uint64
	HostFee       uint64
}

func (*MeteoraAmmSwapEvent) Kind() EventKind { return KindMeteoraAmmSwap }

type MeteoraAmmAddLiquidityEvent struct {
	EventMetadata
	LpMintAmount uint64
	TokenAAmount uint64
	TokenBAmount uint64
}

func (*MeteoraAmmAddLiquidityEvent) Kind() EventKind { return KindMeteoraAmmAddLiquidity }

type MeteoraAmmRemoveLiquidityEvent struct {
	EventMetadata
	LpUnmintAmount uint64
	TokenAOutAmount uint64
	TokenBOutAmount uint64
}

func (*MeteoraAmmRemoveLiquidityEvent) Kind() EventKind { return KindMeteoraAmmRemoveLiquidity }
