// Package postgres 提供数据访问层的具体实现
// 本文件实现 RoomUserRepository 接口，处理房间成员的在场记录
package postgres

import (
	"time"

	"ignite_chat_server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// roomUserRepository RoomUserRepository 接口的实现
type roomUserRepository struct {
	db *gorm.DB
}

// NewRoomUserRepository 创建 RoomUserRepository 实例
func NewRoomUserRepository(db *gorm.DB) RoomUserRepository {
	return &roomUserRepository{db: db}
}

// Exists 检查 (房间, 用户名) 是否已有成员行
func (r *roomUserRepository) Exists(roomId, userName string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.RoomUser{}).
		Where("room_id = ? AND user_name = ?", roomId, userName).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询成员 room_id=%s user_name=%s", roomId, userName)
	}
	return count > 0, nil
}

// FindByRoomId 查找房间所有成员，按加入时间升序
func (r *roomUserRepository) FindByRoomId(roomId string) ([]model.RoomUser, error) {
	var users []model.RoomUser
	if err := r.db.Where("room_id = ?", roomId).
		Order("joined_at asc").
		Find(&users).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询房间成员 room_id=%s", roomId)
	}
	return users, nil
}

// Create 插入成员行
func (r *roomUserRepository) Create(user *model.RoomUser) error {
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	if user.LastActivity.IsZero() {
		user.LastActivity = time.Now()
	}
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建房间成员")
	}
	return nil
}

// DeleteByRoomAndUser 直接删除 (房间, 用户名) 的所有成员行
// 先删后插去重的第二阶段，也是离开房间的兜底删除
func (r *roomUserRepository) DeleteByRoomAndUser(roomId, userName string) error {
	if err := r.db.Where("room_id = ? AND user_name = ?", roomId, userName).
		Delete(&model.RoomUser{}).Error; err != nil {
		return wrapDBErrorf(err, "删除成员 room_id=%s user_name=%s", roomId, userName)
	}
	return nil
}

// DeleteIdle 删除 (房间, 用户名) 中最近活跃早于 cutoff 的行
func (r *roomUserRepository) DeleteIdle(roomId, userName string, cutoff time.Time) error {
	if err := r.db.Where("room_id = ? AND user_name = ? AND last_activity < ?", roomId, userName, cutoff).
		Delete(&model.RoomUser{}).Error; err != nil {
		return wrapDBErrorf(err, "清理闲置成员 room_id=%s user_name=%s", roomId, userName)
	}
	return nil
}

// TouchActivity 刷新成员行的最近活跃时间
// 行存在则只更新 last_activity，不存在则整行插入（upsert 语义）
func (r *roomUserRepository) TouchActivity(user *model.RoomUser) error {
	res := r.db.Model(&model.RoomUser{}).
		Where("room_id = ? AND user_name = ?", user.RoomId, user.UserName).
		Update("last_activity", user.LastActivity)
	if res.Error != nil {
		return wrapDBError(res.Error, "刷新成员活跃时间")
	}
	if res.RowsAffected == 0 {
		return r.Create(user)
	}
	return nil
}

// CountActive 统计房间内最近活跃晚于 cutoff 的成员数
func (r *roomUserRepository) CountActive(roomId string, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomUser{}).
		Where("room_id = ? AND last_activity > ?", roomId, cutoff).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计活跃成员 room_id=%s", roomId)
	}
	return count, nil
}

// FindIdleBefore 查找全库中最近活跃早于 cutoff 的成员行
// 闲置清扫先查出受影响的行，删除后才能对每个房间发成员变更事件
func (r *roomUserRepository) FindIdleBefore(cutoff time.Time) ([]model.RoomUser, error) {
	var users []model.RoomUser
	if err := r.db.Where("last_activity < ?", cutoff).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "查询闲置成员")
	}
	return users, nil
}

// DeleteByIds 按主键批量删除成员行
func (r *roomUserRepository) DeleteByIds(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&model.RoomUser{}).Error; err != nil {
		return wrapDBError(err, "批量删除成员")
	}
	return nil
}
