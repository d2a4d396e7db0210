package eventparser

import (
	"strings"

	"sol-dex-parser/internal/consts"
)

// 协议标记：程序地址的 base58 串只会出现在 "Program <id> invoke/success" 行中，
// 子串命中即可定界协议。strings.Contains 底层是运行时的向量化扫描
// （SSE2/AVX2 批量比较），单次未命中代价约为 O(n/W)。
//
// 扫描顺序按真实流量排定：PumpFun 与 Raydium 系最热，命中即返回；
// 同一行出现多个标记时，序列靠前者生效。分类器无状态且对同一输入恒定。
var protocolMarkers = []struct {
	marker string
	dex    int
}{
	{consts.PumpFunProgramStr, consts.DexPumpfun},
	{consts.RaydiumV4ProgramStr, consts.DexRaydiumV4},
	{consts.RaydiumCLMMProgramStr, consts.DexRaydiumCLMM},
	{consts.RaydiumCPMMProgramStr, consts.DexRaydiumCPMM},
	{consts.OrcaWhirlpoolProgramStr, consts.DexOrcaWhirlpool},
	{consts.MeteoraDLMMProgramStr, consts.DexMeteoraDLMM},
	{consts.MeteoraDAMMProgramStr, consts.DexMeteoraDAMM},
	{consts.MeteoraAMMProgramStr, consts.DexMeteoraAMM},
	{consts.BonkProgramStr, consts.DexBonk},
	{consts.PumpSwapProgramStr, consts.DexPumpSwap},
}

// minMarkerLogLen 低于该长度的行不可能包含 43~44 字符的程序地址
const minMarkerLogLen = 40

// DetectProtocol 对单行日志做协议归类，无匹配时返回 DexUnknown。永不失败。
func DetectProtocol(log string) int {
	if len(log) < minMarkerLogLen {
		return consts.DexUnknown
	}
	for _, m := range protocolMarkers {
		if strings.Contains(log, m.marker) {
			return m.dex
		}
	}
	return consts.DexUnknown
}
