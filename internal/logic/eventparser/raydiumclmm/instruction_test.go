package raydiumclmm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/types"
)

var (
	payer = types.PubkeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	pool  = types.PubkeyFromBase58("So11111111111111111111111111111111111111112")
)

func ixData(disc uint64, body []byte) []byte {
	var d [8]byte
	binary.BigEndian.PutUint64(d[:], disc)
	return append(d[:], body...)
}

func TestHandleInstruction_Swap(t *testing.T) {
	body := make([]byte, 41)
	binary.LittleEndian.PutUint64(body[0:], 5555)  // amount
	binary.LittleEndian.PutUint64(body[8:], 5000)  // threshold
	binary.LittleEndian.PutUint64(body[16:], 1234) // sqrt_price_limit lo
	binary.LittleEndian.PutUint64(body[24:], 1)    // sqrt_price_limit hi
	body[40] = 1                                   // is_base_input

	ix := &core.Instruction{
		Accounts: []types.Pubkey{payer, {}, pool},
		Data:     ixData(SwapIx, body),
	}
	ev := handleInstruction(ix, core.EventMetadata{Slot: 3})
	require.NotNil(t, ev)

	swap := ev.(*core.RaydiumClmmSwapEvent)
	assert.Equal(t, pool, swap.Pool)
	assert.Equal(t, payer, swap.User)
	assert.Equal(t, uint64(5555), swap.Amount)
	assert.Equal(t, uint64(5000), swap.OtherAmountThreshold)
	assert.Equal(t, types.Uint128{Lo: 1234, Hi: 1}, swap.SqrtPriceLimitX64)
	assert.True(t, swap.IsBaseInput)
}

func TestHandleInstruction_Liquidity(t *testing.T) {
	body := make([]byte, 32)
	binary.LittleEndian.PutUint64(body[0:], 42) // liquidity lo
	binary.LittleEndian.PutUint64(body[16:], 7) // amount0
	binary.LittleEndian.PutUint64(body[24:], 8) // amount1

	ix := &core.Instruction{
		Accounts: []types.Pubkey{payer, {}, pool},
		Data:     ixData(IncreaseLiquidityIx, body),
	}
	ev := handleInstruction(ix, core.EventMetadata{})
	require.NotNil(t, ev)
	inc := ev.(*core.RaydiumClmmIncreaseLiquidityEvent)
	assert.Equal(t, types.Uint128{Lo: 42}, inc.Liquidity)
	assert.Equal(t, uint64(7), inc.Amount0Max)
	assert.Equal(t, uint64(8), inc.Amount1Max)

	ix = &core.Instruction{
		Accounts: []types.Pubkey{payer, {}, {}, pool},
		Data:     ixData(DecreaseLiquidityIx, body),
	}
	ev = handleInstruction(ix, core.EventMetadata{})
	require.NotNil(t, ev)
	dec := ev.(*core.RaydiumClmmDecreaseLiquidityEvent)
	assert.Equal(t, pool, dec.Pool)
}

func TestHandleInstruction_Invalid(t *testing.T) {
	meta := core.EventMetadata{}

	// 数据过短
	assert.Nil(t, handleInstruction(&core.Instruction{Data: []byte{1}}, meta))

	// 未知方法 ID
	assert.Nil(t, handleInstruction(&core.Instruction{
		Accounts: []types.Pubkey{payer, {}, pool},
		Data:     ixData(0xabcdef, make([]byte, 48)),
	}, meta))

	// 账户不足
	assert.Nil(t, handleInstruction(&core.Instruction{
		Accounts: []types.Pubkey{payer},
		Data:     ixData(SwapIx, make([]byte, 41)),
	}, meta))
}

// 路由注册按 32 字节程序地址精确匹配
func TestRegisterHandlers(t *testing.T) {
	m := map[types.Pubkey]common.InstructionRoute{}
	RegisterHandlers(m)
	route, ok := m[types.PubkeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")]
	assert.True(t, ok)
	assert.NotNil(t, route.Handler)
}
