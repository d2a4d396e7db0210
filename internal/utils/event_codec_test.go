package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sugawarayuuta/sonnet"

	"sol-dex-parser/internal/logic/core"
)

func TestEncodeEvent(t *testing.T) {
	ev := &core.PumpFunTradeEvent{
		SolAmount:   1_000_000,
		TokenAmount: 2_000_000,
		IsBuy:       true,
	}
	ev.Slot = 123

	data, err := EncodeEvent(ev)
	require.NoError(t, err)

	kind, body, ok := DecodeEventKind(data)
	require.True(t, ok)
	assert.Equal(t, core.KindPumpFunTrade, kind)

	var got core.PumpFunTradeEvent
	require.NoError(t, sonnet.Unmarshal(body, &got))
	assert.Equal(t, ev.SolAmount, got.SolAmount)
	assert.Equal(t, ev.TokenAmount, got.TokenAmount)
	assert.Equal(t, uint64(123), got.Slot)
	assert.True(t, got.IsBuy)
}

func TestDecodeEventKind_Short(t *testing.T) {
	_, _, ok := DecodeEventKind([]byte{1, 2})
	assert.False(t, ok)
}

func TestPartitionHashBytes(t *testing.T) {
	sig := make([]byte, 64)
	for i := range sig {
		sig[i] = byte(i)
	}
	p := PartitionHashBytes(sig, 8)
	assert.Less(t, p, uint32(8))
	// 相同输入稳定
	assert.Equal(t, p, PartitionHashBytes(sig, 8))
	// 短输入与零分区兜底
	assert.Equal(t, uint32(0), PartitionHashBytes([]byte{1, 2, 3}, 8))
	assert.Equal(t, uint32(0), PartitionHashBytes(sig, 0))
}
