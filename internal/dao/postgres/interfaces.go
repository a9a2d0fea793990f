// Package postgres 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package postgres

import (
	"time"

	"ignite_chat_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	// FindBySessionCode 根据会话码查找房间（加入房间的唯一查找键）
	FindBySessionCode(code string) (*model.ChatRoom, error)
	// FindById 根据房间 UUID 查找房间
	FindById(id string) (*model.ChatRoom, error)
	// FindPublic 查找所有公开房间
	FindPublic() ([]model.ChatRoom, error)
	// Create 创建新房间
	Create(room *model.ChatRoom) error
}

// RoomUserRepository 房间成员数据访问接口
// 管理用户在房间内的在场记录
type RoomUserRepository interface {
	// Exists 检查 (房间, 用户名) 是否已有成员行
	Exists(roomId, userName string) (bool, error)
	// FindByRoomId 查找房间所有成员，按加入时间升序
	FindByRoomId(roomId string) ([]model.RoomUser, error)
	// Create 插入成员行
	Create(user *model.RoomUser) error
	// DeleteByRoomAndUser 直接删除 (房间, 用户名) 的所有成员行
	DeleteByRoomAndUser(roomId, userName string) error
	// DeleteIdle 删除 (房间, 用户名) 中最近活跃早于 cutoff 的行
	// 闲置/重复清理过程的第一阶段，失败可容忍
	DeleteIdle(roomId, userName string, cutoff time.Time) error
	// TouchActivity 刷新成员行的最近活跃时间，行不存在则插入
	TouchActivity(user *model.RoomUser) error
	// CountActive 统计房间内最近活跃晚于 cutoff 的成员数
	CountActive(roomId string, cutoff time.Time) (int64, error)
	// FindIdleBefore 查找全库中最近活跃早于 cutoff 的成员行（闲置清扫用）
	FindIdleBefore(cutoff time.Time) ([]model.RoomUser, error)
	// DeleteByIds 按主键批量删除成员行
	DeleteByIds(ids []string) error
}

// MessageRepository 消息数据访问接口
// 消息只追加，没有更新和删除
type MessageRepository interface {
	// FindByRoomId 查找房间所有消息，按创建时间升序
	FindByRoomId(roomId string) ([]model.Message, error)
	// Create 追加新消息
	Create(message *model.Message) error
}
