// Package postgres 提供数据访问层的初始化
// 负责建立 Postgres 连接、自动迁移表结构、初始化 Repository 层
package postgres

import (
	"fmt"

	"ignite_chat_server/internal/config"
	"ignite_chat_server/internal/model"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 执行步骤：
//  1. 从配置读取 Postgres 连接信息
//  2. 构建 DSN 连接字符串
//  3. 使用 GORM 建立数据库连接
//  4. 执行 AutoMigrate 自动迁移表结构
//  5. 创建并返回 Repository 实例
func Init() *Repositories {
	conf := config.GetConfig()

	sslMode := conf.PostgresConfig.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		conf.PostgresConfig.Host,
		conf.PostgresConfig.User,
		conf.PostgresConfig.Password,
		conf.PostgresConfig.DatabaseName,
		conf.PostgresConfig.Port,
		sslMode,
	)

	// TranslateError 让并发建房时的唯一索引冲突以 gorm.ErrDuplicatedKey 暴露
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		// 连接失败，记录致命错误并退出程序
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate 自动迁移表结构
	// 如果表不存在则创建，如果字段变更则更新结构
	// 注意：不会删除已有字段或数据
	err = db.AutoMigrate(
		&model.ChatRoom{}, // 房间表
		&model.RoomUser{}, // 房间成员表
		&model.Message{},  // 消息表
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return NewRepositories(db)
}
