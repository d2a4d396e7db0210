package utils

import (
	"encoding/binary"
	"fmt"

	"github.com/sugawarayuuta/sonnet"

	"sol-dex-parser/internal/logic/core"
)

// EncodeEvent 将事件编码为带类别前缀的二进制数据：
// - 前 4 字节为事件类别（uint32，小端序）
// - 后续为 JSON 序列化的载荷
// 下游按前缀分流，无需反序列化即可路由。
func EncodeEvent(ev core.DexEvent) ([]byte, error) {
	body, err := sonnet.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("EncodeEvent: marshal %T: %w", ev, err)
	}
	buf := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(buf[:4], uint32(ev.Kind()))
	return append(buf, body...), nil
}

// DecodeEventKind 从编码数据中取出事件类别与载荷体。
func DecodeEventKind(b []byte) (core.EventKind, []byte, bool) {
	if len(b) < 4 {
		return core.KindUnknown, nil, false
	}
	return core.EventKind(binary.LittleEndian.Uint32(b[:4])), b[4:], true
}
