package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Signature 表示交易的 64 字节 ed25519 签名，是一笔交易的全局唯一标识。
type Signature [64]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

// SignatureFromBytes 从原始字节构造 Signature，长度不为 64 时返回零值与 false
func SignatureFromBytes(b []byte) (Signature, bool) {
	if len(b) != 64 {
		return Signature{}, false
	}
	var s Signature
	copy(s[:], b)
	return s, true
}

// TrySignatureFromBase58 解析 base58 字符串为 Signature（测试与工具路径使用）
func TrySignatureFromBase58(str string) (Signature, error) {
	data, err := base58.Decode(str)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to decode base58 signature %q: %w", str, err)
	}
	s, ok := SignatureFromBytes(data)
	if !ok {
		return Signature{}, fmt.Errorf("invalid signature length: got %d, want 64", len(data))
	}
	return s, nil
}
