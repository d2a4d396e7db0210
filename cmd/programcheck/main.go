package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"

	"sol-dex-parser/internal/consts"
)

// programcheck 用链上 RPC 校验程序地址表：
// 每个受支持 DEX 的地址必须存在且为可执行账户。
// 地址表属于编译期配置，上线前跑一遍，防止带着错误地址进生产。
func main() {
	endpoint := flag.String("rpc", rpc.MainnetRPCEndpoint, "solana rpc endpoint")
	timeout := flag.Duration("timeout", 30*time.Second, "total timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.NewClient(*endpoint)
	failed := 0

	for _, addr := range consts.DexProgramStrs {
		info, err := c.GetAccountInfo(ctx, addr)
		if err != nil {
			fmt.Printf("FAIL %s: rpc error: %v\n", addr, err)
			failed++
			continue
		}
		if len(info.Data) == 0 {
			fmt.Printf("FAIL %s: account not found\n", addr)
			failed++
			continue
		}
		if !info.Executable {
			fmt.Printf("FAIL %s: not executable (owner=%s)\n", addr, info.Owner.ToBase58())
			failed++
			continue
		}
		fmt.Printf("OK   %s (owner=%s)\n", addr, info.Owner.ToBase58())
	}

	if failed > 0 {
		fmt.Printf("%d/%d program ids failed verification\n", failed, len(consts.DexProgramStrs))
		os.Exit(1)
	}
	fmt.Printf("all %d program ids verified\n", len(consts.DexProgramStrs))
}
