package model

import (
	"time"
)

// RoomUser 房间成员模型
// 对应数据库 room_users 表，记录用户当前在某个房间内的在场状态
// 同一 (房间, 用户名) 同时最多应只有一行，靠先删后插的尽力而为去重，
// 没有唯一约束，多标签页并发下可能出现重复行
type RoomUser struct {
	Id string `gorm:"column:id;primaryKey;type:uuid"`

	// RoomId 所属房间 UUID
	RoomId string `gorm:"column:room_id;index;type:uuid;not null"`

	// UserName 用户显示名，没有账号体系，名字即身份
	UserName string `gorm:"column:user_name;type:varchar(50);not null"`

	// IsOwner 插入时用户名等于房主名则为 true
	IsOwner bool `gorm:"column:is_owner;default:false"`

	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime"`

	// LastActivity 最近活跃时间，心跳时刷新
	// 闲置清扫以此判断是否回收
	LastActivity time.Time `gorm:"column:last_activity;index"`
}

// TableName 指定表名
func (RoomUser) TableName() string {
	return "room_users"
}
