// Package model 定义数据库实体模型
// 本文件定义消息模型，消息只追加，客户端从不编辑或删除
package model

import (
	"time"
)

// Message 消息模型
// 对应数据库 messages 表
// 普通消息必须有文本或媒体（或二者都有）；系统消息只有文本
type Message struct {
	// Id 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Id int64 `gorm:"column:id;primaryKey;type:bigint"`

	// RoomId 所属房间 UUID
	RoomId string `gorm:"column:room_id;index;type:uuid;not null"`

	// UserName 作者显示名
	// 生命周期播报使用固定哨兵值 "System"
	UserName string `gorm:"column:user_name;type:varchar(50);not null"`

	// Content 消息文本内容，可为空
	Content string `gorm:"column:message;type:TEXT"`

	// MediaUrl 媒体公开访问链接
	// 媒体文件先上传到对象存储，这里只存生成的 URL
	MediaUrl string `gorm:"column:media_url;type:varchar(255)"`

	// MediaType 媒体种类，image 或 video，无媒体时为空
	MediaType string `gorm:"column:media_type;type:varchar(10)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// 媒体种类取值
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
