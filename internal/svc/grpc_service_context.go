package svc

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"sol-dex-parser/internal/config"
	"sol-dex-parser/internal/logic/core"
	"sol-dex-parser/internal/logic/eventparser"
	"sol-dex-parser/internal/logic/progress"
	"sol-dex-parser/internal/logic/queue"
	"sol-dex-parser/internal/mq"
	"sol-dex-parser/pkg/logger"
)

// GrpcServiceContext 聚合解析服务的全部资源：
// 事件过滤器、无锁队列，以及可选的 Kafka 生产者与进度水位。
type GrpcServiceContext struct {
	Config   config.GrpcConfig
	Filter   *core.EventTypeFilter
	Queue    *queue.EventQueue
	Producer *kafka.Producer    // 可选
	Progress *progress.Tracker  // 可选
}

// NewGrpcServiceContext 构造服务上下文。配置错误同步返回，不进入运行期。
func NewGrpcServiceContext(c config.GrpcConfig) (*GrpcServiceContext, error) {
	if err := c.FillDefaults(); err != nil {
		return nil, err
	}
	logger.Init(c.LogConf.ToLogOption())

	filter, err := c.EventFilterConf.Build()
	if err != nil {
		return nil, err
	}

	// 指令路由表初始化一次，进程生命周期内只读
	eventparser.Init()

	ctx := &GrpcServiceContext{
		Config: c,
		Filter: filter,
		Queue:  queue.New(c.QueueConf.Capacity),
	}

	if c.KafkaProducerConf.Enabled {
		producer, err := mq.NewKafkaProducer(mq.KafkaProducerOption{
			Brokers:    c.KafkaProducerConf.Brokers,
			BatchSize:  c.KafkaProducerConf.BatchSize,
			LingerMs:   c.KafkaProducerConf.LingerMs,
			Topic:      c.KafkaProducerConf.Topic,
			Partitions: c.KafkaProducerConf.Partitions,
		})
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.Producer = producer
	}

	if c.ProgressConf.Enabled {
		ctx.Progress = progress.NewTracker(c.ProgressConf.RedisAddr, c.ProgressConf.FlushIntervalMs)
	}

	logger.Infof("GRPC 服务上下文初始化完成, queue_capacity=%d", ctx.Queue.Capacity())
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *GrpcServiceContext) Close() {
	if ctx.Producer != nil {
		ctx.Producer.Close()
	}
}
