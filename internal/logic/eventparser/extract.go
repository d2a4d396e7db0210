package eventparser

import (
	"runtime/debug"
	"strings"
	"sync/atomic"

	"sol-dex-parser/internal/consts"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser/bonk"
	"sol-dex-parser/internal/logic/eventparser/common"
	"sol-dex-parser/internal/logic/eventparser/meteoraamm"
	"sol-dex-parser/internal/logic/eventparser/meteoradamm"
	"sol-dex-parser/internal/logic/eventparser/meteoradlmm"
	"sol-dex-parser/internal/logic/eventparser/orcawhirlpool"
	"sol-dex-parser/internal/logic/eventparser/pumpfun"
	"sol-dex-parser/internal/logic/eventparser/pumpswap"
	"sol-dex-parser/internal/logic/eventparser/raydiumv4"
	"sol-dex-parser/pkg/logger"
)

// EmitFunc 接收解码完成的事件，由调用方决定去向（通常是无锁队列的 Push）。
type EmitFunc func(core.DexEvent)

// decodeSkips 统计带载荷标记但解码失败的行数（截断、未知方法 ID、非法 base64 等）。
var decodeSkips atomic.Uint64

func DecodeSkips() uint64 { return decodeSkips.Load() }

// ParseUpdate 将一次交易更新走完 分类 → 过滤 → 解码 → 发布 流程，返回产出事件数。
// 解析错误一律坍缩为"无事件"，不向上传播；panic 被兜底捕获。
func ParseUpdate(u *core.RawUpdate, filter *core.EventTypeFilter, emit EmitFunc) (n int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[eventparser] panic tx=%s: %+v\nstack: %s", u.Signature, r, debug.Stack())
		}
	}()

	meta := u.Metadata()

	// 单类别快路径：过滤器只留 PumpFunTrade 时跳过逐行分类与方法 ID 查表
	if k, ok := filter.SoleKind(); ok && k == core.KindPumpFunTrade {
		created := hasPumpFunCreate(u.Logs)
		for _, line := range u.Logs {
			if ev := pumpfun.ParseTradeLog(line, meta, created); ev != nil {
				emit(ev)
				n++
			}
		}
		return n
	}

	// create-then-buy 关联预扫描，仅在 PumpFun 类别未被整体排除时执行
	created := false
	if filter.AllowsDex(consts.DexPumpfun) {
		created = hasPumpFunCreate(u.Logs)
	}

	// seenDex 记录日志侧已产出事件的协议，指令路由据此跳过以免同一动作重复发布
	var seenDex uint32

	current := consts.DexUnknown
	for _, line := range u.Logs {
		// 归类只依据 invoke/success 行中的程序地址；
		// 载荷行（Program data / ray_log）归属最近一次归类结果
		if tag := DetectProtocol(line); tag != consts.DexUnknown {
			current = tag
		}
		if current == consts.DexUnknown || !filter.AllowsDex(current) {
			continue
		}

		ev := parseLogForDex(current, line, meta, created)
		if ev == nil {
			if hasPayloadMarker(current, line) {
				decodeSkips.Add(1)
			}
			continue
		}
		seenDex |= 1 << uint(current)
		if filter.Allows(ev.Kind()) {
			emit(ev)
			n++
		}
	}

	if len(u.Instructions) > 0 {
		n += routeInstructions(u, meta, filter, seenDex, emit)
	}
	return n
}

// parseLogForDex 按协议归类结果分发到对应解码器。
// 重复的载荷行各自独立解码、独立发布，不做去重。
func parseLogForDex(dex int, line string, meta core.EventMetadata, created bool) core.DexEvent {
	switch dex {
	case consts.DexPumpfun:
		return pumpfun.ParseLog(line, meta, created)
	case consts.DexPumpSwap:
		return pumpswap.ParseLog(line, meta)
	case consts.DexBonk:
		return bonk.ParseLog(line, meta)
	case consts.DexRaydiumV4:
		return raydiumv4.ParseLog(line, meta)
	case consts.DexOrcaWhirlpool:
		return orcawhirlpool.ParseLog(line, meta)
	case consts.DexMeteoraDLMM:
		return meteoradlmm.ParseLog(line, meta)
	case consts.DexMeteoraDAMM:
		return meteoradamm.ParseLog(line, meta)
	case consts.DexMeteoraAMM:
		return meteoraamm.ParseLog(line, meta)
	default:
		// Raydium CPMM / CLMM 的事件由指令路由产出
		return nil
	}
}

// hasPayloadMarker 判断该行是否携带当前协议的载荷标记（用于 DecodeSkip 计数）。
func hasPayloadMarker(dex int, line string) bool {
	if dex == consts.DexRaydiumV4 {
		return strings.Contains(line, common.RayLogMarker)
	}
	return strings.Contains(line, common.ProgramDataMarker)
}
