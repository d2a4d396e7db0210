package mq

import (
	"context"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"sol-dex-parser/internal/logic/queue"
	"sol-dex-parser/internal/utils"
	"sol-dex-parser/pkg/logger"
)

// EventSink 把队列中的事件持续转投到 Kafka。
// 这是一个普通消费者：按签名哈希选分区，同一交易的事件落在同一分区内保序。
type EventSink struct {
	producer   *kafka.Producer
	topic      string
	partitions uint32
	q          *queue.EventQueue
	spinBudget int

	ctx      context.Context
	cancel   context.CancelFunc
	sent     atomic.Uint64
	sendFail atomic.Uint64
}

func NewEventSink(producer *kafka.Producer, topic string, partitions int, q *queue.EventQueue, spinBudget int) *EventSink {
	if partitions <= 0 {
		partitions = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EventSink{
		producer:   producer,
		topic:      topic,
		partitions: uint32(partitions),
		q:          q,
		spinBudget: spinBudget,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *EventSink) Start() {
	for {
		ev, ok := s.q.PopWait(s.ctx, s.spinBudget)
		if !ok {
			return
		}
		payload, err := utils.EncodeEvent(ev)
		if err != nil {
			s.sendFail.Add(1)
			continue
		}

		meta := ev.Meta()
		partition := int32(utils.PartitionHashBytes(meta.Signature[:], s.partitions))
		err = s.producer.Produce(&kafka.Message{
			TopicPartition: kafka.TopicPartition{
				Topic:     &s.topic,
				Partition: partition,
			},
			Key:   meta.Signature[:],
			Value: payload,
		}, nil)
		if err != nil {
			s.sendFail.Add(1)
			logger.Warnf("[mq] produce failed: %v", err)
			continue
		}
		s.sent.Add(1)
	}
}

func (s *EventSink) Stop() {
	s.cancel()
	s.producer.Flush(3000)
	logger.Infof("[mq] event sink stopped, sent=%d failed=%d", s.sent.Load(), s.sendFail.Load())
}
