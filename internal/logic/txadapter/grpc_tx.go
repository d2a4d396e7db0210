package txadapter

import (
	"fmt"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/types"
)

// buildFullAccountKeys 构造交易中完整的账户 Pubkey 列表。
// 拼接 message.accountKeys 与 Address Lookup Table 中的 writable / readonly 地址，
// 供后续通过 accountIndex 高效索引使用。一次性预分配，顺序写入。
func buildFullAccountKeys(
	accountKeys, loadedWritable, loadedReadonly [][]byte,
) ([]types.Pubkey, error) {
	total := len(accountKeys) + len(loadedWritable) + len(loadedReadonly)
	pubkeys := make([]types.Pubkey, total)

	i := 0
	for _, group := range [][][]byte{accountKeys, loadedWritable, loadedReadonly} {
		for _, b := range group {
			if len(b) != 32 {
				return nil, fmt.Errorf("invalid pubkey length %d at account index %d", len(b), i)
			}
			copy(pubkeys[i][:], b)
			i++
		}
	}
	return pubkeys, nil
}

// buildInstructions 扁平化主指令与 inner 指令，按 Solana 执行顺序输出。
// inner 列表按主指令索引递增排列，顺序匹配即可，无需建表。
func buildInstructions(
	tx *pb.SubscribeUpdateTransactionInfo,
	accountKeys []types.Pubkey,
) ([]core.Instruction, error) {
	rawInstructions := tx.Transaction.Message.Instructions
	rawInners := tx.Meta.InnerInstructions

	instructions := make([]core.Instruction, 0, len(rawInstructions)*2)
	innerIndex := 0

	resolve := func(programIdIndex uint32, accountIdx []byte, data []byte) (core.Instruction, error) {
		if int(programIdIndex) >= len(accountKeys) {
			return core.Instruction{}, fmt.Errorf("program id index %d out of range", programIdIndex)
		}
		accounts := make([]types.Pubkey, 0, len(accountIdx))
		for _, idx := range accountIdx {
			if int(idx) >= len(accountKeys) {
				return core.Instruction{}, fmt.Errorf("account index %d out of range", idx)
			}
			accounts = append(accounts, accountKeys[idx])
		}
		return core.Instruction{
			ProgramID: accountKeys[programIdIndex],
			Accounts:  accounts,
			Data:      data,
		}, nil
	}

	for i, inst := range rawInstructions {
		ix, err := resolve(inst.ProgramIdIndex, inst.Accounts, inst.Data)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)

		if innerIndex < len(rawInners) && int(rawInners[innerIndex].Index) == i {
			for _, inner := range rawInners[innerIndex].Instructions {
				ix, err := resolve(inner.ProgramIdIndex, inner.Accounts, inner.Data)
				if err != nil {
					return nil, err
				}
				instructions = append(instructions, ix)
			}
			innerIndex++
		}
	}
	return instructions, nil
}

// IsValidGrpcTx 校验 gRPC 推送的交易结构是否完整可解析。
func IsValidGrpcTx(tx *pb.SubscribeUpdateTransactionInfo) bool {
	if tx == nil ||
		tx.Transaction == nil ||
		tx.Transaction.Message == nil ||
		len(tx.Transaction.Signatures) == 0 ||
		len(tx.Transaction.Signatures[0]) != 64 ||
		tx.IsVote ||
		tx.Meta == nil ||
		tx.Meta.Err != nil {
		return false
	}
	return true
}

// AdaptGrpcTx 将 gRPC 推送的交易转为解析引擎的 RawUpdate 借用视图。
// blockTime 由调用方按 slot 从 BlockMeta 流补充，未知时传 0；
// recvUs 为编排器在 Recv 返回后立即打点的接收时间。
func AdaptGrpcTx(
	slot uint64,
	blockTime int64,
	recvUs int64,
	tx *pb.SubscribeUpdateTransactionInfo,
) (_ *core.RawUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("AdaptGrpcTx panic: %v", r)
		}
	}()

	if !IsValidGrpcTx(tx) {
		return nil, fmt.Errorf("invalid transaction structure")
	}

	accountKeys, err := buildFullAccountKeys(
		tx.Transaction.Message.AccountKeys,
		tx.Meta.LoadedWritableAddresses,
		tx.Meta.LoadedReadonlyAddresses,
	)
	if err != nil {
		return nil, fmt.Errorf("buildFullAccountKeys error: %w", err)
	}
	if len(accountKeys) == 0 {
		return nil, fmt.Errorf("invalid transaction: empty accountKeys")
	}

	instructions, err := buildInstructions(tx, accountKeys)
	if err != nil {
		return nil, fmt.Errorf("buildInstructions error: %w", err)
	}

	sig, ok := types.SignatureFromBytes(tx.Transaction.Signatures[0])
	if !ok {
		return nil, fmt.Errorf("invalid signature length")
	}

	return &core.RawUpdate{
		Slot:         slot,
		Signature:    sig,
		BlockTime:    blockTime,
		GrpcRecvUs:   recvUs,
		Logs:         tx.Meta.LogMessages,
		Instructions: instructions,
	}, nil
}
