package meteoradlmm

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/types"
)

var (
	lbPair = types.PubkeyFromBase58("So11111111111111111111111111111111111111112")
	trader = types.PubkeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func line(disc uint64, body []byte) string {
	var d [8]byte
	binary.BigEndian.PutUint64(d[:], disc)
	return "Program data: " + base64.StdEncoding.EncodeToString(append(d[:], body...))
}

func TestParseLog_Swap(t *testing.T) {
	body := append([]byte{}, lbPair[:]...)
	body = append(body, trader[:]...)
	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(100)) // start bin
	body = append(body, b4[:]...)
	binary.LittleEndian.PutUint32(b4[:], uint32(105)) // end bin
	body = append(body, b4[:]...)
	var b8 [8]byte
	for _, v := range []uint64{5000, 4900} {
		binary.LittleEndian.PutUint64(b8[:], v)
		body = append(body, b8[:]...)
	}
	body = append(body, 1) // swap_for_y
	for _, v := range []uint64{30, 3} {
		binary.LittleEndian.PutUint64(b8[:], v)
		body = append(body, b8[:]...)
	}

	ev := ParseLog(line(SwapEvent, body), core.EventMetadata{Slot: 8})
	require.NotNil(t, ev)
	swap := ev.(*core.MeteoraDlmmSwapEvent)
	assert.Equal(t, lbPair, swap.LbPair)
	assert.Equal(t, trader, swap.From)
	assert.Equal(t, int32(100), swap.StartBinID)
	assert.Equal(t, int32(105), swap.EndBinID)
	assert.Equal(t, uint64(5000), swap.AmountIn)
	assert.Equal(t, uint64(4900), swap.AmountOut)
	assert.True(t, swap.SwapForY)
	assert.Equal(t, uint64(30), swap.Fee)
	assert.Equal(t, uint64(3), swap.ProtocolFee)
}

// Add/RemoveLiquidity 走 borsh 往返
func TestParseLog_LiquidityRoundTrip(t *testing.T) {
	src := liquidityPayload{
		AmountX:     111,
		AmountY:     222,
		ActiveBinID: -5,
	}
	src.LbPair[5] = 1
	src.From[6] = 2
	src.Position[7] = 3

	body, err := borsh.Serialize(src)
	require.NoError(t, err)

	ev := ParseLog(line(AddLiquidityEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	add := ev.(*core.MeteoraDlmmAddLiquidityEvent)
	assert.Equal(t, types.Pubkey(src.LbPair), add.LbPair)
	assert.Equal(t, uint64(111), add.AmountX)
	assert.Equal(t, int32(-5), add.ActiveBinID)

	ev = ParseLog(line(RemoveLiquidityEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, core.KindMeteoraDlmmRemoveLiquidity, ev.Kind())
}

func TestParseLog_Positions(t *testing.T) {
	body := append([]byte{}, lbPair[:]...)
	body = append(body, trader[:]...)
	body = append(body, trader[:]...)

	ev := ParseLog(line(CreatePositionEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, core.KindMeteoraDlmmCreatePosition, ev.Kind())

	ev = ParseLog(line(ClosePositionEvent, body[:64]), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, core.KindMeteoraDlmmClosePosition, ev.Kind())
}

func TestParseLog_Malformed(t *testing.T) {
	meta := core.EventMetadata{}
	assert.Nil(t, ParseLog("Program log: something else", meta))
	assert.Nil(t, ParseLog(line(SwapEvent, []byte{1, 2}), meta))
	assert.Nil(t, ParseLog(line(0xdeadbeef, make([]byte, 96)), meta))
}
