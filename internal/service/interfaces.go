// Package service 定义业务逻辑层接口和聚合结构
// 遵循依赖倒置原则，Handler 层依赖这些接口而非具体实现，
// 测试时可用桩实现替换
package service

import (
	"context"
	"io"

	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/dto/respond"
)

// RoomService 房间业务接口
// 覆盖房间会话的完整生命周期：解析/创建、加入、心跳、离开
type RoomService interface {
	// JoinRoom 按会话码加入房间
	// 房间不存在且请求未携带 room_type 时返回 CodeRoomNotExist，
	// 由调用方确认可见性后携带 room_type 重试（此时创建房间）
	JoinRoom(ctx context.Context, req *request.JoinRoomRequest) (*respond.JoinRoomRespond, error)

	// LeaveRoom 主动离开房间
	// 先播报离开消息再删除成员行，保证离开者和旁观者都能看到播报
	LeaveRoom(ctx context.Context, roomId, userName string) error

	// Heartbeat 刷新成员的最近活跃时间
	Heartbeat(ctx context.Context, roomId, userName string) error

	// CleanupUserFromRoom 清除用户在房间内的在场记录
	// 幂等操作，页面卸载 beacon 和正常离开共用
	CleanupUserFromRoom(ctx context.Context, roomId, userName string) error

	// GetRoomMembers 获取房间成员列表，按加入时间升序
	GetRoomMembers(ctx context.Context, roomId string) ([]respond.RoomUserRespond, error)

	// GenerateSessionCode 生成一个当前未被占用的会话码
	GenerateSessionCode(ctx context.Context) (string, error)
}

// RoomIndexService 公开房间索引接口
type RoomIndexService interface {
	// ListPublicRooms 列出公开房间及其活跃人数
	// query 非空时按房间名/会话码/房主名做大小写不敏感的包含过滤
	// 结果按活跃人数降序排列
	ListPublicRooms(ctx context.Context, query string) ([]respond.PublicRoomRespond, error)

	// ActiveUserCount 统计房间内活跃窗口内的成员数（短时缓存）
	ActiveUserCount(ctx context.Context, roomId string) (int64, error)
}

// MessageService 消息业务接口
type MessageService interface {
	// ListMessages 获取房间全部消息，按创建时间升序
	ListMessages(ctx context.Context, roomId string) ([]respond.MessageRespond, error)

	// SendMessage 发送消息并实时扇出
	// 文本和媒体至少要有一个，否则返回 CodeEmptyMessage
	SendMessage(ctx context.Context, req *request.SendMessageRequest) (*respond.MessageRespond, error)
}

// MediaService 媒体上传接口
type MediaService interface {
	// Upload 校验并上传媒体文件到对象存储，返回公开访问链接
	// 超过大小上限返回 CodeMediaTooLarge，非图片/视频返回 CodeMediaBadType
	Upload(ctx context.Context, roomId, fileName, contentType string, size int64, r io.Reader) (*respond.UploadRespond, error)
}
