package grpc

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	"sol-dex-parser/internal/config"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser"
	"sol-dex-parser/internal/logic/queue"
	"sol-dex-parser/internal/logic/txadapter"
	"sol-dex-parser/pkg/logger"
)

// maxReconnectBackoff 重连退避上限
const maxReconnectBackoff = 30 * time.Second

// blockTimeCacheSize 保留最近若干 slot 的 BlockMeta 时间戳，用于补充交易事件的 BlockTime
const blockTimeCacheSize = 256

// GrpcStreamManager 负责 Yellowstone 订阅流的全生命周期：
// 建连、订阅、心跳、过滤器热更新、断流指数退避重连，以及把每条交易更新
// 内联走完解析流水线后推入无锁队列。
//
// 接收时间戳（GrpcRecvUs）在 Recv 返回后第一时间打点，之后在链路中只读。
type GrpcStreamManager struct {
	mu                sync.Mutex
	conn              *grpc.ClientConn
	client            pb.GeyserClient
	stream            pb.Geyser_SubscribeClient
	stopped           bool
	reconnectAttempts int
	connCtx           context.Context
	connCancel        context.CancelFunc

	cfg    config.GrpcConfig
	filter *core.EventTypeFilter
	out    *queue.EventQueue

	// 当前生效的服务端过滤器，UpdateSubscription 热更新后重连沿用
	txFilter   config.SubscribeConfig
	lastRecvUs atomic.Int64

	// blockTimes 缓存 slot → blockTime（仅 recv 协程写入）
	blockTimes map[uint64]int64

	// slotObs 可选的 slot 观察者（进度水位等），每条交易更新解析后回调
	slotObs SlotObserver

	// 计数器
	txUpdates      atomic.Uint64
	accountUpdates atomic.Uint64
	parsedEvents   atomic.Uint64
}

// NewGrpcStreamManager 建立 gRPC 连接并构造流管理器。仅连接，不订阅。
func NewGrpcStreamManager(
	cfg config.GrpcConfig,
	filter *core.EventTypeFilter,
	out *queue.EventQueue,
) (*GrpcStreamManager, error) {
	grpcConf := cfg.Grpc

	creds := insecure.NewCredentials()
	if grpcConf.UseTLS {
		creds = credentials.NewTLS(&tls.Config{InsecureSkipVerify: true})
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(grpcConf.ConnectTimeoutSec)*time.Second)
	defer cancel()

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                time.Duration(grpcConf.KeepalivePingIntervalSec) * time.Second,
			Timeout:             time.Duration(grpcConf.KeepalivePingTimeoutSec) * time.Second,
			PermitWithoutStream: true,
		}),
	}
	if grpcConf.InitialWindowSize > 0 {
		opts = append(opts, grpc.WithInitialWindowSize(int32(grpcConf.InitialWindowSize)))
	}
	if grpcConf.InitialConnWindowSize > 0 {
		opts = append(opts, grpc.WithInitialConnWindowSize(int32(grpcConf.InitialConnWindowSize)))
	}
	if grpcConf.MaxCallSendMsgSize > 0 || grpcConf.MaxCallRecvMsgSize > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(grpcConf.MaxCallSendMsgSize),
			grpc.MaxCallRecvMsgSize(grpcConf.MaxCallRecvMsgSize),
		))
	}

	conn, err := grpc.DialContext(dialCtx, grpcConf.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &GrpcStreamManager{
		conn:       conn,
		client:     pb.NewGeyserClient(conn),
		cfg:        cfg,
		filter:     filter,
		out:        out,
		txFilter:   cfg.SubscribeConf,
		blockTimes: make(map[uint64]int64, blockTimeCacheSize),
	}, nil
}

// SlotObserver 观察已解析的 slot 推进（进度水位等旁路组件实现）。
type SlotObserver interface {
	Observe(slot uint64)
}

// SetSlotObserver 注册 slot 观察者，须在 Start 之前调用。
func (m *GrpcStreamManager) SetSlotObserver(o SlotObserver) { m.slotObs = o }

// Queue 返回事件投递队列，消费端直接 Pop / PopWait。
func (m *GrpcStreamManager) Queue() *queue.EventQueue { return m.out }

func (m *GrpcStreamManager) Start() {
	m.mustConnect()
}

func (m *GrpcStreamManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
	}
}

// mustConnect 内部循环直到连接成功，退避间隔按 2^n 递增、封顶 30 秒。
func (m *GrpcStreamManager) mustConnect() {
	for {
		m.mu.Lock()
		if m.stopped {
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		if m.reconnectAttempts > 0 {
			backoff := time.Duration(m.cfg.Grpc.ReconnectIntervalSec) * time.Second
			for i := 1; i < m.reconnectAttempts && backoff < maxReconnectBackoff; i++ {
				backoff *= 2
			}
			if backoff > maxReconnectBackoff {
				backoff = maxReconnectBackoff
			}
			time.Sleep(backoff)
		}
		logger.Infof("[grpc] connecting... attempt %d", m.reconnectAttempts+1)
		m.reconnectAttempts++
		if err := m.connect(); err == nil {
			return
		} else {
			logger.Warnf("[grpc] connect failed: %v, will retry", err)
		}
	}
}

// buildSubscribeRequest 按当前过滤器构造订阅请求。
func (m *GrpcStreamManager) buildSubscribeRequest() *pb.SubscribeRequest {
	sub := m.txFilter

	transactions := map[string]*pb.SubscribeRequestFilterTransactions{
		"transactions": {
			Vote:            boolPtr(false),
			Failed:          boolPtr(false),
			AccountInclude:  sub.AccountInclude,
			AccountExclude:  sub.AccountExclude,
			AccountRequired: sub.AccountRequired,
		},
	}

	accounts := map[string]*pb.SubscribeRequestFilterAccounts{}
	if len(sub.Accounts) > 0 || len(sub.AccountOwners) > 0 {
		accounts["accounts"] = &pb.SubscribeRequestFilterAccounts{
			Account: sub.Accounts,
			Owner:   sub.AccountOwners,
		}
	}

	// BlockMeta 用于补充交易事件的 blockTime
	blocksMeta := map[string]*pb.SubscribeRequestFilterBlocksMeta{
		"blocks_meta": {},
	}

	commitment := pb.CommitmentLevel_CONFIRMED
	return &pb.SubscribeRequest{
		Transactions: transactions,
		Accounts:     accounts,
		BlocksMeta:   blocksMeta,
		Commitment:   &commitment,
	}
}

// connect 只尝试一次连接与订阅。
func (m *GrpcStreamManager) connect() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return errors.New("manager is stopped")
	}
	defer m.mu.Unlock()

	// 先关闭旧的 context，优雅退出旧协程
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	m.connCtx, m.connCancel = context.WithCancel(context.Background())

	metaCtx := m.connCtx
	if m.cfg.Grpc.XToken != "" {
		metaCtx = metadata.NewOutgoingContext(
			m.connCtx,
			metadata.New(map[string]string{"x-token": m.cfg.Grpc.XToken}),
		)
	}
	stream, err := m.client.Subscribe(metaCtx)
	if err != nil {
		return err
	}

	req := m.buildSubscribeRequest()
	if err := sendWithTimeout(m.connCtx, stream.Send, req, time.Duration(m.cfg.Grpc.SendTimeoutSec)*time.Second); err != nil {
		return err
	}

	m.stream = stream
	m.reconnectAttempts = 0
	m.lastRecvUs.Store(time.Now().UnixMicro())
	logger.Infof("[grpc] subscription established")

	go m.pingLoop(m.connCtx)
	go m.recvLoop(m.connCtx, stream)
	return nil
}

// UpdateSubscription 在不断开订阅流的前提下热更新服务端过滤器。
// 新过滤器同时记入内存，后续重连沿用。
func (m *GrpcStreamManager) UpdateSubscription(sub config.SubscribeConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return errors.New("manager is stopped")
	}
	if m.stream == nil {
		return errors.New("no active stream")
	}
	m.txFilter = sub
	req := m.buildSubscribeRequest()
	return sendWithTimeout(m.connCtx, m.stream.Send, req, time.Duration(m.cfg.Grpc.SendTimeoutSec)*time.Second)
}

// recvLoop 读流并内联解析。解码为微秒级工作量，不做二次分发，
// 调度开销反而会淹没解码本身。
func (m *GrpcStreamManager) recvLoop(ctx context.Context, stream pb.Geyser_SubscribeClient) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		update, err := stream.Recv()
		recvUs := time.Now().UnixMicro() // 最早打点，贯穿整条链路
		if err != nil {
			if ctx.Err() != nil {
				return // 连接已被替换或停止，重连由发起方负责
			}
			if errors.Is(err, io.EOF) {
				logger.Warnf("[grpc] stream closed by server (EOF), will reconnect")
			} else {
				logger.Warnf("[grpc] stream error: %v, will reconnect", err)
			}
			m.reconnect()
			return
		}
		m.lastRecvUs.Store(recvUs)

		switch u := update.GetUpdateOneof().(type) {
		case *pb.SubscribeUpdate_Transaction:
			m.handleTransaction(u.Transaction, recvUs)
		case *pb.SubscribeUpdate_BlockMeta:
			m.handleBlockMeta(u.BlockMeta)
		case *pb.SubscribeUpdate_Account:
			// 账户更新仅透传计数，核心不解码
			m.accountUpdates.Add(1)
		case *pb.SubscribeUpdate_Ping:
			// 服务端心跳，无需处理
		}
	}
}

func (m *GrpcStreamManager) handleTransaction(txUpdate *pb.SubscribeUpdateTransaction, recvUs int64) {
	m.txUpdates.Add(1)
	if txUpdate == nil || txUpdate.Transaction == nil {
		return
	}

	slot := txUpdate.Slot
	raw, err := txadapter.AdaptGrpcTx(slot, m.blockTimes[slot], recvUs, txUpdate.Transaction)
	if err != nil {
		return
	}

	var parseStart time.Time
	if m.cfg.EnableMetrics {
		parseStart = time.Now()
	}

	n := eventparser.ParseUpdate(raw, m.filter, func(ev core.DexEvent) {
		m.out.Push(ev)
	})
	m.parsedEvents.Add(uint64(n))
	if m.slotObs != nil {
		m.slotObs.Observe(slot)
	}

	if m.cfg.EnableMetrics && n > 0 {
		logger.Debugf("[grpc] slot=%d events=%d parse=%v queue_len=%d dropped=%d",
			slot, n, time.Since(parseStart), m.out.Len(), m.out.Dropped())
	}
}

func (m *GrpcStreamManager) handleBlockMeta(meta *pb.SubscribeUpdateBlockMeta) {
	if meta == nil || meta.BlockTime == nil {
		return
	}
	// 粗暴限容：超过阈值整体重建，保留 map 小而热
	if len(m.blockTimes) >= blockTimeCacheSize {
		m.blockTimes = make(map[uint64]int64, blockTimeCacheSize)
	}
	m.blockTimes[meta.Slot] = meta.BlockTime.Timestamp
}

// pingLoop 周期发送应用层心跳，并承担接收超时看门狗：
// 超过 recv_timeout 未收到任何消息则触发重连。
func (m *GrpcStreamManager) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(m.cfg.Grpc.StreamPingIntervalSec) * time.Second)
	defer ticker.Stop()

	recvTimeout := time.Duration(m.cfg.Grpc.RecvTimeoutSec) * time.Second
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Since(time.UnixMicro(m.lastRecvUs.Load())) > recvTimeout {
				logger.Warnf("[grpc] no message within %v, reconnecting", recvTimeout)
				m.reconnect()
				return
			}

			pingReq := &pb.SubscribeRequest{
				Ping: &pb.SubscribeRequestPing{Id: 1},
			}
			m.mu.Lock()
			stream := m.stream
			m.mu.Unlock()
			if stream == nil {
				continue
			}
			if err := sendWithTimeout(ctx, stream.Send, pingReq, time.Duration(m.cfg.Grpc.SendTimeoutSec)*time.Second); err != nil {
				logger.Warnf("[grpc] ping failed: %v", err)
				// 只记录，不触发重连；断流由 recvLoop 与看门狗判定
			}
		}
	}
}

func (m *GrpcStreamManager) reconnect() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	m.stream = nil
	m.mu.Unlock()

	go m.mustConnect()
}

// Stats 返回累计计数：交易更新、账户更新、已发布事件、队列溢出丢弃。
func (m *GrpcStreamManager) Stats() (txUpdates, accountUpdates, parsed, dropped uint64) {
	return m.txUpdates.Load(), m.accountUpdates.Load(), m.parsedEvents.Load(), m.out.Dropped()
}

// sendWithTimeout 带超时的 Send。
func sendWithTimeout[T any](ctx context.Context, sendFunc func(T) error, req T, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- sendFunc(req)
	}()

	select {
	case <-timeoutCtx.Done():
		return timeoutCtx.Err()
	case err := <-done:
		return err
	}
}

func boolPtr(b bool) *bool {
	return &b
}
