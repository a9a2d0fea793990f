// Package postgres 提供数据访问层的具体实现
// 本文件实现 RoomRepository 接口
package postgres

import (
	"ignite_chat_server/internal/model"

	"gorm.io/gorm"
)

// roomRepository RoomRepository 接口的实现
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建 RoomRepository 实例
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// FindBySessionCode 根据会话码查找房间
// 未找到时返回 CodeNotFound 包装错误，调用方据此走建房流程
func (r *roomRepository) FindBySessionCode(code string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.Where("session_id = ?", code).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间 session_id=%s", code)
	}
	return &room, nil
}

// FindById 根据房间 UUID 查找房间
func (r *roomRepository) FindById(id string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.db.Where("id = ?", id).First(&room).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间 id=%s", id)
	}
	return &room, nil
}

// FindPublic 查找所有公开房间
func (r *roomRepository) FindPublic() ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	if err := r.db.Where("room_type = ?", model.RoomTypePublic).Find(&rooms).Error; err != nil {
		return nil, wrapDBError(err, "查询公开房间列表")
	}
	return rooms, nil
}

// Create 创建新房间
// session_id 上的唯一索引会把并发撞码的第二个插入打回来，
// 调用方捕获后重新按会话码查询、加入胜出的那间
func (r *roomRepository) Create(room *model.ChatRoom) error {
	if err := r.db.Create(room).Error; err != nil {
		return wrapDBErrorf(err, "创建房间 session_id=%s", room.SessionId)
	}
	return nil
}
