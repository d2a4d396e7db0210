package types

import "encoding/binary"

// Uint128 表示链上 128 位无符号整数（小端序存储）。
// Go 没有原生 u128，这里保留高低 64 位，不做运算，仅透传。
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Uint128FromLE 从 16 字节小端序数据构造 Uint128，长度不足返回 false。
func Uint128FromLE(b []byte) (Uint128, bool) {
	if len(b) < 16 {
		return Uint128{}, false
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}, true
}

func (u Uint128) IsZero() bool {
	return u.Lo == 0 && u.Hi == 0
}
