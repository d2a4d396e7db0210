package config

import (
	"fmt"

	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/queue"
	"sol-dex-parser/pkg/logger"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径）
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// SubscribeConfig 透传给服务端的交易/账户过滤器。
type SubscribeConfig struct {
	// 交易过滤：按涉及账户（通常填 DEX 程序地址）筛选
	AccountInclude  []string `yaml:"account_include"`
	AccountExclude  []string `yaml:"account_exclude"`
	AccountRequired []string `yaml:"account_required"`

	// 账户订阅过滤（核心只透传计数，不解码账户更新）
	Accounts      []string `yaml:"accounts"`
	AccountOwners []string `yaml:"account_owners"`
}

// EventFilterConfig 事件类别过滤配置，include_only 与 exclude 互斥。
type EventFilterConfig struct {
	IncludeOnly []string `yaml:"include_only"`
	Exclude     []string `yaml:"exclude"`
}

func (c *EventFilterConfig) Build() (*core.EventTypeFilter, error) {
	return core.NewFilterFromNames(c.IncludeOnly, c.Exclude)
}

// QueueConfig 事件投递队列配置
type QueueConfig struct {
	Capacity   int `yaml:"capacity"`    // 队列容量，默认 100000
	SpinBudget int `yaml:"spin_budget"` // 消费端自旋预算（空轮询次数），默认 1000
}

// 预设档位：低延迟压缩队列与自旋窗口，高吞吐放大缓冲。
const (
	PresetLowLatency     = "low_latency"
	PresetHighThroughput = "high_throughput"
)

// Normalize 应用预设档位并填充默认值。未知档位报错。
func (c *QueueConfig) Normalize(preset string) error {
	switch preset {
	case PresetLowLatency:
		if c.Capacity <= 0 {
			c.Capacity = 16_384
		}
		if c.SpinBudget <= 0 {
			c.SpinBudget = 4_000
		}
	case PresetHighThroughput:
		if c.Capacity <= 0 {
			c.Capacity = 1 << 20
		}
		if c.SpinBudget <= 0 {
			c.SpinBudget = 200
		}
	case "":
		if c.Capacity <= 0 {
			c.Capacity = queue.DefaultCapacity
		}
		if c.SpinBudget <= 0 {
			c.SpinBudget = queue.DefaultSpinBudget
		}
	default:
		return fmt.Errorf("unknown preset %q", preset)
	}
	return nil
}

// KafkaProducerConfig 表示可选 Kafka 下游的生产者配置
type KafkaProducerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Brokers   string `yaml:"brokers"`    // Kafka broker 地址，多个用英文逗号分隔
	BatchSize int    `yaml:"batch_size"` // 批处理大小（单位字节）
	LingerMs  int    `yaml:"linger_ms"`  // 批处理最大延迟（毫秒）

	Topic      string `yaml:"topic"`      // 事件 topic
	Partitions int    `yaml:"partitions"` // topic 分区数
}

// ProgressConfig 表示 slot 进度水位配置（Redis，可选）
type ProgressConfig struct {
	Enabled         bool   `yaml:"enabled"`
	RedisAddr       string `yaml:"redis_addr"`
	FlushIntervalMs int    `yaml:"flush_interval_ms"` // 水位写入间隔（毫秒）
}

// GrpcConfig 是主配置结构体，用于驱动解析服务
type GrpcConfig struct {
	LogConf           LogConfig           `yaml:"logger"`
	SubscribeConf     SubscribeConfig     `yaml:"subscribe"`
	EventFilterConf   EventFilterConfig   `yaml:"event_filter"`
	QueueConf         QueueConfig         `yaml:"queue"`
	KafkaProducerConf KafkaProducerConfig `yaml:"kafka_producer"`
	ProgressConf      ProgressConfig      `yaml:"progress"`

	Preset        string `yaml:"preset"`         // low_latency / high_throughput，留空用默认档
	EnableMetrics bool   `yaml:"enable_metrics"` // 打开后输出逐更新解析耗时与计数

	// gRPC 客户端连接相关配置
	Grpc struct {
		Endpoint string `yaml:"endpoint"` // gRPC 服务端地址
		XToken   string `yaml:"x_token"`  // x-token 认证
		UseTLS   bool   `yaml:"use_tls"`  // 是否走 TLS

		// 应用级逻辑心跳（ping）配置
		StreamPingIntervalSec int `yaml:"stream_ping_interval_sec"` // 应用层 ping 心跳间隔（秒）

		// gRPC Keepalive 底层连接检测配置
		KeepalivePingIntervalSec int `yaml:"keepalive_ping_interval_sec"` // 底层 keepalive 间隔（秒）
		KeepalivePingTimeoutSec  int `yaml:"keepalive_ping_timeout_sec"`  // 底层 keepalive 超时（秒）

		// gRPC 窗口大小调优（用于大数据流推送）
		InitialWindowSize     int `yaml:"initial_window_size"`      // 单流窗口大小（字节）
		InitialConnWindowSize int `yaml:"initial_conn_window_size"` // 整体连接窗口大小（字节）

		// 消息体大小限制
		MaxCallSendMsgSize int `yaml:"max_call_send_msg_size"` // 单条消息最大发送字节数
		MaxCallRecvMsgSize int `yaml:"max_call_recv_msg_size"` // 单条消息最大接收字节数

		// 超时与重连策略
		ReconnectIntervalSec int `yaml:"reconnect_interval_sec"` // 重连基础间隔（秒），指数退避上限 30s
		ConnectTimeoutSec    int `yaml:"connect_timeout_sec"`    // 连接建立超时（秒），默认 5
		SendTimeoutSec       int `yaml:"send_timeout_sec"`       // 发送超时（秒）
		RecvTimeoutSec       int `yaml:"recv_timeout_sec"`       // 接收超时（秒），默认 30
	} `yaml:"grpc"`
}

// FillDefaults 补全缺省项，返回配置错误。
func (c *GrpcConfig) FillDefaults() error {
	if c.Grpc.Endpoint == "" {
		return fmt.Errorf("grpc.endpoint is required")
	}
	if c.Grpc.ConnectTimeoutSec <= 0 {
		c.Grpc.ConnectTimeoutSec = 5
	}
	if c.Grpc.RecvTimeoutSec <= 0 {
		c.Grpc.RecvTimeoutSec = 30
	}
	if c.Grpc.SendTimeoutSec <= 0 {
		c.Grpc.SendTimeoutSec = 10
	}
	if c.Grpc.ReconnectIntervalSec <= 0 {
		c.Grpc.ReconnectIntervalSec = 1
	}
	if c.Grpc.StreamPingIntervalSec <= 0 {
		c.Grpc.StreamPingIntervalSec = 30
	}
	return c.QueueConf.Normalize(c.Preset)
}
