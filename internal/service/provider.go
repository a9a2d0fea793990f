// Package service 业务逻辑层聚合与构造
package service

import (
	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dao/redis"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/internal/service/media"
	"ignite_chat_server/internal/service/message"
	"ignite_chat_server/internal/service/room"
	"ignite_chat_server/internal/service/roomindex"
)

// Services 聚合所有业务服务实例
// 作为依赖注入的入口，Handler 层通过此结构访问业务层
type Services struct {
	Room      RoomService
	RoomIndex RoomIndexService
	Message   MessageService
	Media     MediaService
}

// NewServices 创建所有业务服务实例
// repos: 数据访问层聚合
// cache: 异步缓存服务
// publisher: 房间事件发布器
func NewServices(repos *postgres.Repositories, cache redis.AsyncCacheService, publisher chat.Publisher) *Services {
	return &Services{
		Room:      room.NewService(repos, cache, publisher),
		RoomIndex: roomindex.NewService(repos, cache),
		Message:   message.NewService(repos, publisher),
		Media:     media.NewService(media.NewSupabaseUploader()),
	}
}
