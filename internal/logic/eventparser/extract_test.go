package eventparser

import (
	"encoding/base64"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/pumpfun"
	"sol-dex-parser/internal/logic/eventparser/raydiumcpmm"
	"sol-dex-parser/internal/types"
)

const (
	pumpFunInvokeLine   = "Program 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P invoke [1]"
	raydiumV4InvokeLine = "Program 675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8 invoke [1]"
	orcaInvokeLine      = "Program whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc invoke [1]"
)

var (
	mintA = types.PubkeyFromBase58("So11111111111111111111111111111111111111112")
	mintB = types.PubkeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	userX = types.PubkeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

func init() {
	Init()
}

func newUpdate(logs []string) *core.RawUpdate {
	var sig types.Signature
	sig[0] = 0xAB
	sig[63] = 0xCD
	return &core.RawUpdate{
		Slot:       359100321,
		Signature:  sig,
		BlockTime:  1754000000,
		GrpcRecvUs: 1754000000123456,
		Logs:       logs,
	}
}

func collect(u *core.RawUpdate, filter *core.EventTypeFilter) []core.DexEvent {
	var out []core.DexEvent
	ParseUpdate(u, filter, func(ev core.DexEvent) { out = append(out, ev) })
	return out
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func programData(disc uint64, body []byte) string {
	var d [8]byte
	binary.BigEndian.PutUint64(d[:], disc)
	return "Program data: " + base64.StdEncoding.EncodeToString(append(d[:], body...))
}

// pumpFunTradeLine 构造最小完整的 Trade 事件行（到 virtual reserves 为止）
func pumpFunTradeLine(mint, user types.Pubkey, isBuy bool, solAmount, tokenAmount uint64) string {
	body := append([]byte{}, mint[:]...)
	body = appendU64(body, solAmount)
	body = appendU64(body, tokenAmount)
	if isBuy {
		body = append(body, 1)
	} else {
		body = append(body, 0)
	}
	body = append(body, user[:]...)
	body = appendU64(body, 1754000000)      // timestamp
	body = appendU64(body, 30_000_000_000)  // virtual sol
	body = appendU64(body, 1_073_000_000_000_000) // virtual token
	return programData(pumpfun.TradeEvent, body)
}

func pumpFunCreateLine(mint, user types.Pubkey) string {
	var body []byte
	putStr := func(s string) {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		body = append(body, l[:]...)
		body = append(body, s...)
	}
	putStr("New Token")
	putStr("NEW")
	putStr("https://example.com/new.json")
	body = append(body, mint[:]...)
	body = append(body, user[:]...) // bonding curve
	body = append(body, user[:]...) // user
	body = append(body, user[:]...) // creator
	body = appendU64(body, 1754000000)
	body = appendU64(body, 1_073_000_000_000_000)
	body = appendU64(body, 30_000_000_000)
	body = appendU64(body, 793_100_000_000_000)
	body = appendU64(body, 1_000_000_000_000_000)
	return programData(pumpfun.CreateEvent, body)
}

func rayLogSwapBaseInLine(amountIn, outAmount uint64) string {
	body := []byte{3} // swap base in
	body = appendU64(body, amountIn)
	body = appendU64(body, 1)   // minimum_out
	body = appendU64(body, 0)   // direction
	body = appendU64(body, 100) // user_source
	body = appendU64(body, 200) // pool_coin
	body = appendU64(body, 300) // pool_pc
	body = appendU64(body, outAmount)
	return "Program log: ray_log: " + base64.StdEncoding.EncodeToString(body)
}

func orcaTradedLine(pool types.Pubkey, inAmount, outAmount uint64) string {
	body := append([]byte{}, pool[:]...)
	body = append(body, 1)                // a_to_b
	body = append(body, make([]byte, 32)...) // pre/post sqrt price
	body = appendU64(body, inAmount)
	body = appendU64(body, outAmount)
	body = appendU64(body, 0) // input transfer fee
	body = appendU64(body, 0) // output transfer fee
	body = appendU64(body, 5) // lp fee
	body = appendU64(body, 1) // protocol fee
	return programData(0xe1ca49af932ba096, body)
}

// 场景一：单类别快路径。IncludeOnly({PumpFunTrade})，恰好一个 Trade 事件。
func TestParseUpdate_SingleKindFastPath(t *testing.T) {
	filter := core.NewIncludeFilter(core.KindPumpFunTrade)
	u := newUpdate([]string{
		pumpFunInvokeLine,
		pumpFunTradeLine(mintA, userX, true, 1_000_000, 500_000_000),
	})

	events := collect(u, filter)
	require.Len(t, events, 1)

	trade := events[0].(*core.PumpFunTradeEvent)
	assert.Equal(t, mintA, trade.Mint)
	assert.Equal(t, userX, trade.User)
	assert.True(t, trade.IsBuy)
	assert.False(t, trade.IsCreatedBuy)
	assert.Equal(t, uint64(1_000_000), trade.SolAmount)
	assert.Equal(t, uint64(500_000_000), trade.TokenAmount)
	assert.Equal(t, u.Signature, trade.Signature)
	assert.Equal(t, u.Slot, trade.Slot)
	assert.Equal(t, u.GrpcRecvUs, trade.GrpcRecvUs)
}

// 场景二：同交易 Create+Buy，Trade 标记 IsCreatedBuy
func TestParseUpdate_CreateThenBuyCorrelation(t *testing.T) {
	u := newUpdate([]string{
		pumpFunInvokeLine,
		pumpFunCreateLine(mintB, userX),
		pumpFunTradeLine(mintB, userX, true, 2_000_000, 900_000_000),
	})

	events := collect(u, nil)
	require.Len(t, events, 2)

	create, ok := events[0].(*core.PumpFunCreateEvent)
	require.True(t, ok)
	assert.Equal(t, mintB, create.Mint)

	trade, ok := events[1].(*core.PumpFunTradeEvent)
	require.True(t, ok)
	assert.Equal(t, mintB, trade.Mint)
	assert.True(t, trade.IsBuy)
	assert.True(t, trade.IsCreatedBuy)
}

// 场景三：Exclude({PumpFunTrade}) 下与场景一相同输入产出零事件
func TestParseUpdate_ExcludeFilter(t *testing.T) {
	filter := core.NewExcludeFilter(core.KindPumpFunTrade)
	u := newUpdate([]string{
		pumpFunInvokeLine,
		pumpFunTradeLine(mintA, userX, true, 1_000_000, 500_000_000),
	})
	assert.Empty(t, collect(u, filter))
}

// 场景五：非法 base64 载荷零事件零 panic，跳过计数递增
func TestParseUpdate_MalformedPayload(t *testing.T) {
	before := DecodeSkips()
	u := newUpdate([]string{
		pumpFunInvokeLine,
		"Program data: !!!not-base64!!!",
	})
	assert.Empty(t, collect(u, nil))
	assert.Greater(t, DecodeSkips(), before)
}

// 场景六：同交易 Raydium V4 swap 后接 Orca swap，两个事件按序产出且元信息一致
func TestParseUpdate_MultiProtocol(t *testing.T) {
	u := newUpdate([]string{
		raydiumV4InvokeLine,
		rayLogSwapBaseInLine(1111, 2222),
		orcaInvokeLine,
		orcaTradedLine(mintA, 3333, 4444),
	})

	events := collect(u, nil)
	require.Len(t, events, 2)

	raySwap, ok := events[0].(*core.RaydiumV4SwapBaseInEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(1111), raySwap.AmountIn)
	assert.Equal(t, uint64(2222), raySwap.OutAmount)

	orcaSwap, ok := events[1].(*core.OrcaWhirlpoolSwapEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(3333), orcaSwap.InputAmount)
	assert.Equal(t, uint64(4444), orcaSwap.OutputAmount)

	for _, ev := range events {
		assert.Equal(t, u.Signature, ev.Meta().Signature)
		assert.Equal(t, u.Slot, ev.Meta().Slot)
		assert.Equal(t, u.GrpcRecvUs, ev.Meta().GrpcRecvUs)
	}
}

// 重复载荷行各自独立发布
func TestParseUpdate_DuplicateLines(t *testing.T) {
	line := pumpFunTradeLine(mintA, userX, false, 5, 6)
	u := newUpdate([]string{pumpFunInvokeLine, line, line})

	events := collect(u, nil)
	require.Len(t, events, 2)
	assert.Equal(t, events[0], events[1])
}

// 指令路由：无日志事件时从指令解码（Raydium CPMM swap）
func TestParseUpdate_InstructionRouting(t *testing.T) {
	u := newUpdate(nil)
	data := make([]byte, 8, 24)
	binary.BigEndian.PutUint64(data, raydiumcpmm.SwapBaseInIx)
	data = appendU64(data, 12345) // amount_in
	data = appendU64(data, 1)     // minimum_amount_out

	accounts := make([]types.Pubkey, 6)
	accounts[0] = userX
	accounts[3] = mintB // pool_state
	u.Instructions = []core.Instruction{{
		ProgramID: types.PubkeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"),
		Accounts:  accounts,
		Data:      data,
	}}

	events := collect(u, nil)
	require.Len(t, events, 1)
	swap := events[0].(*core.RaydiumCpmmSwapEvent)
	assert.Equal(t, mintB, swap.Pool)
	assert.Equal(t, userX, swap.User)
	assert.Equal(t, uint64(12345), swap.AmountIn)
	assert.True(t, swap.IsBaseInput)
	assert.Equal(t, u.GrpcRecvUs, swap.GrpcRecvUs)
}

// 日志已产出某协议事件时，该协议的指令不再重复发布
func TestParseUpdate_InstructionSuppressedByLogs(t *testing.T) {
	u := newUpdate([]string{
		pumpFunInvokeLine,
		pumpFunTradeLine(mintA, userX, true, 10, 20),
	})

	ixData := make([]byte, 8, 24)
	binary.BigEndian.PutUint64(ixData, pumpfun.BuyIx)
	ixData = appendU64(ixData, 20)
	ixData = appendU64(ixData, 10)
	accounts := make([]types.Pubkey, 7)
	accounts[2] = mintA
	accounts[6] = userX
	u.Instructions = []core.Instruction{{
		ProgramID: types.PubkeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"),
		Accounts:  accounts,
		Data:      ixData,
	}}

	events := collect(u, nil)
	require.Len(t, events, 1)
	assert.Equal(t, core.KindPumpFunTrade, events[0].Kind())
}

// 未知程序的指令被忽略
func TestParseUpdate_UnknownProgramInstruction(t *testing.T) {
	u := newUpdate(nil)
	u.Instructions = []core.Instruction{{
		ProgramID: types.PubkeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
		Accounts:  nil,
		Data:      []byte{1, 2, 3},
	}}
	assert.Empty(t, collect(u, nil))
}

// 随机日志灌入整条流水线：永不 panic
func TestParseUpdate_RandomLogsNeverPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		lines := make([]string, rng.Intn(5))
		for j := range lines {
			raw := make([]byte, rng.Intn(200))
			rng.Read(raw)
			switch rng.Intn(3) {
			case 0:
				lines[j] = pumpFunInvokeLine
			case 1:
				lines[j] = "Program data: " + base64.StdEncoding.EncodeToString(raw)
			default:
				lines[j] = string(raw)
			}
		}
		collect(newUpdate(lines), nil)
	}
}
