package pumpswap

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/types"
)

var (
	pool = types.PubkeyFromBase58("So11111111111111111111111111111111111111112")
	user = types.PubkeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	mint = types.PubkeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

func line(disc uint64, body []byte) string {
	var d [8]byte
	binary.BigEndian.PutUint64(d[:], disc)
	return "Program data: " + base64.StdEncoding.EncodeToString(append(d[:], body...))
}

func swapBody(solAmount, tokenAmount uint64) []byte {
	body := append([]byte{}, pool[:]...)
	body = append(body, user[:]...)
	body = append(body, mint[:]...)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], solAmount)
	body = append(body, b[:]...)
	binary.LittleEndian.PutUint64(b[:], tokenAmount)
	body = append(body, b[:]...)
	return body
}

func TestParseLog_BuySell(t *testing.T) {
	ev := ParseLog(line(BuyEvent, swapBody(100, 200)), core.EventMetadata{Slot: 2})
	require.NotNil(t, ev)
	buy := ev.(*core.PumpSwapBuyEvent)
	assert.Equal(t, pool, buy.Pool)
	assert.Equal(t, user, buy.User)
	assert.Equal(t, mint, buy.TokenMint)
	assert.Equal(t, uint64(100), buy.SolAmount)
	assert.Equal(t, uint64(200), buy.TokenAmount)

	ev = ParseLog(line(SellEvent, swapBody(300, 400)), core.EventMetadata{})
	require.NotNil(t, ev)
	sell := ev.(*core.PumpSwapSellEvent)
	assert.Equal(t, uint64(300), sell.SolAmount)
	assert.Equal(t, uint64(400), sell.TokenAmount)
}

func TestParseLog_CreatePool(t *testing.T) {
	body := append([]byte{}, pool[:]...)
	body = append(body, user[:]...)
	body = append(body, mint[:]...)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], 1_000_000)
	body = append(body, b[:]...)
	binary.LittleEndian.PutUint64(b[:], 2_000_000)
	body = append(body, b[:]...)
	body = append(body, 0x19, 0x00) // fee_rate = 25

	ev := ParseLog(line(CreatePoolEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	cp := ev.(*core.PumpSwapCreatePoolEvent)
	assert.Equal(t, pool, cp.Pool)
	assert.Equal(t, user, cp.Creator)
	assert.Equal(t, uint64(1_000_000), cp.InitialSolAmount)
	assert.Equal(t, uint64(2_000_000), cp.InitialTokenAmount)
	assert.Equal(t, uint16(25), cp.FeeRate)
}

func TestParseLog_DepositWithdraw(t *testing.T) {
	body := append([]byte{}, pool[:]...)
	body = append(body, user[:]...)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], 777)
	body = append(body, b[:]...)

	ev := ParseLog(line(DepositEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, uint64(777), ev.(*core.PumpSwapDepositEvent).Amount)

	ev = ParseLog(line(WithdrawEvent, body), core.EventMetadata{})
	require.NotNil(t, ev)
	assert.Equal(t, uint64(777), ev.(*core.PumpSwapWithdrawEvent).Amount)
}

func TestParseLog_Malformed(t *testing.T) {
	meta := core.EventMetadata{}
	assert.Nil(t, ParseLog("no payload here", meta))
	assert.Nil(t, ParseLog(line(BuyEvent, []byte{1}), meta))
	assert.Nil(t, ParseLog(line(0x1234, swapBody(1, 2)), meta))
}
