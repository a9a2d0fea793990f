// Package chat 实现房间事件的实时扇出
// broker.go
// 核心职责：定义事件代理接口
// 抽象事件发布与分发，支持 Kafka 和 Channel 两种实现
package chat

import "context"

// Publisher 事件发布接口
// Service 层只依赖发布能力，不关心扇出方式
type Publisher interface {
	// Publish 发布一条房间事件
	Publish(ctx context.Context, ev *RoomEvent) error
}

// EventBroker 事件代理接口
// 支持多种实现：KafkaBroker (分布式)、ChannelBroker (单机)
type EventBroker interface {
	Publisher
	// Start 启动事件分发循环
	Start()
	// Close 关闭代理资源
	Close()
}
