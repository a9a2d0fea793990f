// Package postgres 提供 Repository 层聚合与构造
package postgres

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db       *gorm.DB
	Room     RoomRepository
	RoomUser RoomUserRepository
	Message  MessageRepository
}

// NewRepositories 创建所有 Repository 实例
// db: GORM 数据库实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		Room:     NewRoomRepository(db),
		RoomUser: NewRoomUserRepository(db),
		Message:  NewMessageRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// 未绑定数据库的聚合（注入桩实现时）直接执行回调，不提供回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
