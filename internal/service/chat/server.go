// server.go
// ChatServer 聚合实时层的所有组件：订阅中心 Hub 与事件代理 EventBroker
// 根据配置的 messageMode 选择单机内存通道或 Kafka 两种扇出模式
package chat

import (
	"ignite_chat_server/internal/config"

	"go.uber.org/zap"
)

// ChatServer 实时消息服务器
type ChatServer struct {
	Hub    *Hub
	Broker EventBroker
}

// NewChatServer 根据配置创建实时服务器
// messageMode 为 "kafka" 时走 Kafka 扇出，其余情况走内存通道
func NewChatServer() *ChatServer {
	hub := NewHub()
	conf := config.GetConfig()

	var broker EventBroker
	if conf.KafkaConfig.MessageMode == "kafka" {
		client := NewKafkaClient()
		client.KafkaInit()
		broker = NewKafkaBroker(hub, client)
		zap.L().Info("chat server running in kafka mode",
			zap.String("hostPort", conf.KafkaConfig.HostPort),
			zap.String("topic", conf.KafkaConfig.EventTopic))
	} else {
		broker = NewChannelBroker(hub)
		zap.L().Info("chat server running in channel mode")
	}

	return &ChatServer{
		Hub:    hub,
		Broker: broker,
	}
}

// Start 启动事件代理的后台循环
func (s *ChatServer) Start() {
	go s.Broker.Start()
}

// Close 关闭实时服务器
func (s *ChatServer) Close() {
	s.Broker.Close()
}
