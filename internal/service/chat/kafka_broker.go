// Package chat 实现房间事件的实时扇出
// kafka_broker.go
// 核心职责：分布式模式下的事件代理实现
// 事件先写入 Kafka，各实例的消费循环再分发到本地 Hub，
// 保证多实例部署时每个实例的订阅者都能收到事件
package chat

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

// KafkaBroker 分布式事件代理
type KafkaBroker struct {
	hub    *Hub
	client *KafkaClient
	cancel context.CancelFunc
	ctx    context.Context
}

// NewKafkaBroker 创建 KafkaBroker 实例
func NewKafkaBroker(hub *Hub, client *KafkaClient) *KafkaBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaBroker{
		hub:    hub,
		client: client,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Publish 发布事件到 Kafka
// 以房间 ID 作为分区键，同一房间的事件保持分区内有序
func (b *KafkaBroker) Publish(ctx context.Context, ev *RoomEvent) error {
	data, err := ev.Encode()
	if err != nil {
		return err
	}
	return b.client.SendMessage(ctx, []byte(ev.RoomId), data)
}

// Start 启动消费循环
// 后台死循环：从 Kafka 拿事件 -> 反序列化 -> 分发到本地 Hub
func (b *KafkaBroker) Start() {
	for {
		msg, err := b.client.Consumer.ReadMessage(b.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("kafka read message failed", zap.Error(err))
			continue
		}
		ev, err := DecodeRoomEvent(msg.Value)
		if err != nil {
			zap.L().Error("kafka event decode failed", zap.Error(err))
			continue
		}
		b.hub.Dispatch(ev)
	}
}

// Close 关闭代理资源
func (b *KafkaBroker) Close() {
	b.cancel()
	b.client.KafkaClose()
}
