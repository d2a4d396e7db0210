package eventparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sol-dex-parser/internal/consts"
)

// 各协议 invoke 行归类正确
func TestDetectProtocol(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"Program 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P invoke [1]", consts.DexPumpfun},
		{"Program 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P success", consts.DexPumpfun},
		{"Program 675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8 invoke [2]", consts.DexRaydiumV4},
		{"Program CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK invoke [1]", consts.DexRaydiumCLMM},
		{"Program CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C invoke [1]", consts.DexRaydiumCPMM},
		{"Program whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc invoke [1]", consts.DexOrcaWhirlpool},
		{"Program LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo invoke [1]", consts.DexMeteoraDLMM},
		{"Program cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG invoke [1]", consts.DexMeteoraDAMM},
		{"Program Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB invoke [1]", consts.DexMeteoraAMM},
		{"Program BSwp6bEBihVLdqJRKS58NaebUBSDNjN7MdpFwNaR6gn3 invoke [1]", consts.DexBonk},
		{"Program PSwapMdSai8tjrEXcxFeQth87xC4rRsa4VA5mhGhXkP invoke [1]", consts.DexPumpSwap},
		{"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA invoke [2]", consts.DexUnknown},
		{"Program log: Instruction: Transfer", consts.DexUnknown},
		{"short line", consts.DexUnknown},
		{"", consts.DexUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectProtocol(tc.line), "line=%q", tc.line)
	}
}

// 同一输入恒定归类
func TestDetectProtocol_Deterministic(t *testing.T) {
	line := "Program 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P invoke [1]"
	first := DetectProtocol(line)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, DetectProtocol(line))
	}
}

// 一行出现多个标记时，优先序靠前者生效（PumpFun 最先检查）
func TestDetectProtocol_PriorityOrder(t *testing.T) {
	line := "Program 675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8 invoke " +
		"Program 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P invoke"
	assert.Equal(t, consts.DexPumpfun, DetectProtocol(line))
}
