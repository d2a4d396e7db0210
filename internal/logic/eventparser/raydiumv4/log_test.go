package raydiumv4

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dex-parser/internal/logic/core"
)

func rayLine(body []byte) string {
	return "Program log: ray_log: " + base64.StdEncoding.EncodeToString(body)
}

func u64s(logType byte, vals ...uint64) []byte {
	body := []byte{logType}
	for _, v := range vals {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		body = append(body, b[:]...)
	}
	return body
}

func TestParseLog_SwapBaseIn(t *testing.T) {
	meta := core.EventMetadata{Slot: 1, GrpcRecvUs: 99}
	ev := ParseLog(rayLine(u64s(logSwapBaseIn, 10, 9, 1, 100, 200, 300, 8)), meta)
	require.NotNil(t, ev)

	swap := ev.(*core.RaydiumV4SwapBaseInEvent)
	assert.Equal(t, uint64(10), swap.AmountIn)
	assert.Equal(t, uint64(9), swap.MinimumOut)
	assert.Equal(t, uint64(1), swap.Direction)
	assert.Equal(t, uint64(100), swap.UserSource)
	assert.Equal(t, uint64(200), swap.PoolCoin)
	assert.Equal(t, uint64(300), swap.PoolPc)
	assert.Equal(t, uint64(8), swap.OutAmount)
	assert.Equal(t, int64(99), swap.GrpcRecvUs)
}

func TestParseLog_SwapBaseOut(t *testing.T) {
	ev := ParseLog(rayLine(u64s(logSwapBaseOut, 11, 7, 0, 1, 2, 3, 5)), core.EventMetadata{})
	require.NotNil(t, ev)

	swap := ev.(*core.RaydiumV4SwapBaseOutEvent)
	assert.Equal(t, uint64(11), swap.MaxIn)
	assert.Equal(t, uint64(7), swap.AmountOut)
	assert.Equal(t, uint64(5), swap.DeductIn)
}

func TestParseLog_DepositWithdraw(t *testing.T) {
	ev := ParseLog(rayLine(u64s(logDeposit, 1, 2, 3, 4, 5, 6)), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, core.KindRaydiumV4Deposit, ev.Kind())

	ev = ParseLog(rayLine(u64s(logWithdraw, 1, 2, 3, 4, 5, 6, 7)), core.EventMetadata{})
	require.NotNil(t, ev)
	wd := ev.(*core.RaydiumV4WithdrawEvent)
	assert.Equal(t, uint64(6), wd.OutCoin)
	assert.Equal(t, uint64(7), wd.OutPc)
}

// 截断与未知类型返回 nil
func TestParseLog_Invalid(t *testing.T) {
	meta := core.EventMetadata{}
	assert.Nil(t, ParseLog("Program log: Instruction: Swap", meta))
	assert.Nil(t, ParseLog(rayLine([]byte{logSwapBaseIn, 1, 2}), meta))
	assert.Nil(t, ParseLog(rayLine([]byte{99}), meta))
	assert.Nil(t, ParseLog("Program log: ray_log: %%%", meta))
}
