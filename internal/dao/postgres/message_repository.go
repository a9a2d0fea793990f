// Package postgres 提供数据访问层的具体实现
// 本文件实现 MessageRepository 接口
package postgres

import (
	"ignite_chat_server/internal/model"

	"gorm.io/gorm"
)

// messageRepository MessageRepository 接口的实现
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindByRoomId 查找房间所有消息，按创建时间升序
func (r *messageRepository) FindByRoomId(roomId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("room_id = ?", roomId).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间消息 room_id=%s", roomId)
	}
	return messages, nil
}

// Create 追加新消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}
