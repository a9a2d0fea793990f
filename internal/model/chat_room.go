// Package model 定义数据库实体模型
// 本文件定义聊天房间模型
package model

import (
	"time"
)

// ChatRoom 房间模型
// 对应数据库 chat_rooms 表
// 房间创建后不会被客户端删除，闲置房间由外部运维回收
type ChatRoom struct {
	// Id 房间唯一标识，服务端生成的 UUID
	// 客户端在创建/解析之前不知道该值，加入只凭会话码
	Id string `gorm:"column:id;primaryKey;type:uuid"`

	// SessionId 会话码，人工输入的 8 位 [A-Z0-9] 码
	// 加入房间的唯一查找键
	// 唯一索引兜住两个客户端用同一新码并发建房的竞争
	SessionId string `gorm:"column:session_id;uniqueIndex;type:char(8);not null"`

	// RoomName 房间显示名，默认 Room-<会话码>
	RoomName string `gorm:"column:room_name;type:varchar(100);not null"`

	// RoomType 可见性，public 或 private
	// 加入已有房间时不会更新该字段
	RoomType string `gorm:"column:room_type;type:varchar(10);default:public;not null"`

	// OwnerName 房主显示名，即创建房间的用户
	OwnerName string `gorm:"column:owner_name;type:varchar(50);not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// 房间可见性取值
const (
	RoomTypePublic  = "public"
	RoomTypePrivate = "private"
)

// TableName 指定表名
func (ChatRoom) TableName() string {
	return "chat_rooms"
}
