package consts

import "sol-dex-parser/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	//  Programs
	SystemProgramStr          = "11111111111111111111111111111111"
	TokenProgramStr           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	AssociatedTokenProgramStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	ComputeBudgetProgramStr   = "ComputeBudget111111111111111111111111111111"

	// 常用报价币
	WSOLMintStr = "So11111111111111111111111111111111111111112"
	USDCMintStr = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDTMintStr = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"

	// DEX: PumpFun 系
	PumpFunProgramStr  = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	PumpSwapProgramStr = "PSwapMdSai8tjrEXcxFeQth87xC4rRsa4VA5mhGhXkP"

	// DEX: Bonk (Launchpad)
	BonkProgramStr = "BSwp6bEBihVLdqJRKS58NaebUBSDNjN7MdpFwNaR6gn3"

	// DEX: Raydium
	RaydiumV4ProgramStr   = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	RaydiumCPMMProgramStr = "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"
	RaydiumCLMMProgramStr = "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"

	// DEX: Orca
	OrcaWhirlpoolProgramStr = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"

	// DEX: Meteora
	MeteoraAMMProgramStr  = "Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB"
	MeteoraDAMMProgramStr = "cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG"
	MeteoraDLMMProgramStr = "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"
)

// 公钥形式的程序地址表。指令路由按 32 字节值比较，不走 base58。
// 改动该表属于 API 变更。
var (
	SystemProgram          = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram           = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022       = types.PubkeyFromBase58(TokenProgram2022Str)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)

	WSOLMint = types.PubkeyFromBase58(WSOLMintStr)
	USDCMint = types.PubkeyFromBase58(USDCMintStr)
	USDTMint = types.PubkeyFromBase58(USDTMintStr)

	PumpFunProgram  = types.PubkeyFromBase58(PumpFunProgramStr)
	PumpSwapProgram = types.PubkeyFromBase58(PumpSwapProgramStr)
	BonkProgram     = types.PubkeyFromBase58(BonkProgramStr)

	RaydiumV4Program   = types.PubkeyFromBase58(RaydiumV4ProgramStr)
	RaydiumCPMMProgram = types.PubkeyFromBase58(RaydiumCPMMProgramStr)
	RaydiumCLMMProgram = types.PubkeyFromBase58(RaydiumCLMMProgramStr)

	OrcaWhirlpoolProgram = types.PubkeyFromBase58(OrcaWhirlpoolProgramStr)

	MeteoraAMMProgram  = types.PubkeyFromBase58(MeteoraAMMProgramStr)
	MeteoraDAMMProgram = types.PubkeyFromBase58(MeteoraDAMMProgramStr)
	MeteoraDLMMProgram = types.PubkeyFromBase58(MeteoraDLMMProgramStr)
)

// DexProgramStrs 列出全部受支持 DEX 的程序地址（base58），
// 用于构造订阅过滤器与 programcheck 工具的校验清单。
var DexProgramStrs = []string{
	PumpFunProgramStr,
	PumpSwapProgramStr,
	BonkProgramStr,
	RaydiumV4ProgramStr,
	RaydiumCPMMProgramStr,
	RaydiumCLMMProgramStr,
	OrcaWhirlpoolProgramStr,
	MeteoraAMMProgramStr,
	MeteoraDAMMProgramStr,
	MeteoraDLMMProgramStr,
}
