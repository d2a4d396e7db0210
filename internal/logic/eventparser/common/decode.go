package common

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"unsafe"

	"sol-dex-parser/internal/types"
)

// 日志载荷标记。Anchor 程序经 sol_log_data 输出 "Program data: <base64>"，
// Raydium V4 沿用自有的 "ray_log: <base64>" 格式。
const (
	ProgramDataMarker = "Program data: "
	RayLogMarker      = "ray_log: "
)

// 变长字符串上限：普通字段（name/symbol）与 URI 分开限制，
// 超限视为非法载荷整体丢弃。
const (
	MaxShortStringLen = 256
	MaxURILen         = 4096
)

// LogTail 在日志行中定位 marker，返回其后的 base64 载荷（去除首尾空白）。
func LogTail(log, marker string) (string, bool) {
	i := strings.Index(log, marker)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(log[i+len(marker):]), true
}

// DecodeBase64 将 base64 载荷解码进调用方提供的定长缓冲区（通常为栈上数组）。
// 载荷超出缓冲区容量或内容非法时返回 false，不产生任何堆分配。
func DecodeBase64(dst []byte, tail string) ([]byte, bool) {
	if len(tail) == 0 || base64.StdEncoding.DecodedLen(len(tail)) > len(dst) {
		return nil, false
	}
	n, err := base64.StdEncoding.Decode(dst, stringBytes(tail))
	if err != nil || n == 0 {
		return nil, false
	}
	return dst[:n], true
}

// stringBytes 取得字符串底层字节的只读视图，调用方不得修改。
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Discriminator 读取载荷前 8 字节并按大端序打包为 uint64，
// 与各协议包内的方法 ID 常量（0x... 形式）直接比较。
func Discriminator(data []byte) (uint64, bool) {
	if len(data) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(data[:8]), true
}

// 以下按小端序读取定长字段，越界一律返回 false，调用方据此整体放弃该载荷。

func ReadU8(data []byte, off int) (uint8, bool) {
	if off < 0 || off >= len(data) {
		return 0, false
	}
	return data[off], true
}

func ReadBool(data []byte, off int) (bool, bool) {
	b, ok := ReadU8(data, off)
	return b != 0, ok
}

func ReadU16(data []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[off:]), true
}

func ReadU32(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[off:]), true
}

func ReadI32(data []byte, off int) (int32, bool) {
	v, ok := ReadU32(data, off)
	return int32(v), ok
}

func ReadU64(data []byte, off int) (uint64, bool) {
	if off < 0 || off+8 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data[off:]), true
}

func ReadI64(data []byte, off int) (int64, bool) {
	v, ok := ReadU64(data, off)
	return int64(v), ok
}

func ReadU128(data []byte, off int) (types.Uint128, bool) {
	if off < 0 || off+16 > len(data) {
		return types.Uint128{}, false
	}
	return types.Uint128{
		Lo: binary.LittleEndian.Uint64(data[off:]),
		Hi: binary.LittleEndian.Uint64(data[off+8:]),
	}, true
}

func ReadPubkey(data []byte, off int) (types.Pubkey, bool) {
	if off < 0 || off+32 > len(data) {
		return types.Pubkey{}, false
	}
	var p types.Pubkey
	copy(p[:], data[off:off+32])
	return p, true
}

// ReadString 读取 u32 长度前缀的 UTF-8 字符串，返回值、消耗的字节数与是否成功。
// 长度超过 maxLen 或越过载荷边界时失败。
func ReadString(data []byte, off int, maxLen int) (string, int, bool) {
	n, ok := ReadU32(data, off)
	if !ok || int(n) > maxLen || off+4+int(n) > len(data) {
		return "", 0, false
	}
	return string(data[off+4 : off+4+int(n)]), 4 + int(n), true
}
