package eventparser

import (
	"strings"

	"sol-dex-parser/internal/logic/eventparser/pumpfun"
)

// hasPumpFunCreate 对交易的全部日志做一次预扫描，
// 判断是否包含 Pump.fun Create 事件（按 discriminator 的 base64 稳定前缀匹配）。
// 结果传入同交易的 Trade 解码，标记 created-then-buy，免去二次扫描。
func hasPumpFunCreate(logs []string) bool {
	for _, line := range logs {
		if strings.Contains(line, pumpfun.CreateMarker) {
			return true
		}
	}
	return false
}
