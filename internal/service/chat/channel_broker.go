// Package chat 实现房间事件的实时扇出
// channel_broker.go
// 核心职责：单机模式下的事件代理实现
// 1. 事件经内存通道进入分发循环
// 2. 不依赖外部消息队列，适合单实例或开发环境
package chat

import (
	"context"

	"ignite_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// ChannelBroker 单机事件代理
type ChannelBroker struct {
	hub      *Hub
	transmit chan *RoomEvent
	done     chan struct{}
}

// NewChannelBroker 创建 ChannelBroker 实例
func NewChannelBroker(hub *Hub) *ChannelBroker {
	return &ChannelBroker{
		hub:      hub,
		transmit: make(chan *RoomEvent, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
	}
}

// Publish 发布事件到内存通道
// 通道满时降级为同步分发，事件不丢但会阻塞发布方少许
func (b *ChannelBroker) Publish(ctx context.Context, ev *RoomEvent) error {
	select {
	case b.transmit <- ev:
		return nil
	default:
		zap.L().Warn("event channel full, dispatching synchronously", zap.String("type", ev.Type))
		b.hub.Dispatch(ev)
		return nil
	}
}

// Start 启动事件分发循环
func (b *ChannelBroker) Start() {
	for {
		select {
		case ev, ok := <-b.transmit:
			if !ok {
				return
			}
			b.hub.Dispatch(ev)
		case <-b.done:
			return
		}
	}
}

// Close 关闭代理资源
func (b *ChannelBroker) Close() {
	close(b.done)
}
