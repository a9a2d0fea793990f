// Package router 提供 HTTP 路由注册
// 本文件定义房间相关的路由
package router

import (
	"ignite_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes 注册房间相关路由
// 加入、公开索引和生成会话码是公开接口，令牌是加入之后才有的
func (rt *Router) RegisterRoomRoutes(r *gin.Engine) {
	// 公开接口 (无需认证)
	r.POST("/room/join", rt.handlers.Room.Join)
	r.GET("/room/publicRooms", rt.handlers.RoomIndex.PublicRooms)
	r.GET("/room/generateCode", rt.handlers.Room.GenerateCode)

	// 需要认证的接口
	roomGroup := r.Group("/room")
	roomGroup.Use(middleware.RoomAuth())
	{
		roomGroup.POST("/leave", rt.handlers.Room.Leave)         // 主动离开房间
		roomGroup.POST("/heartbeat", rt.handlers.Room.Heartbeat) // 活跃心跳
		roomGroup.GET("/members", rt.handlers.Room.Members)      // 房间成员列表
	}
}
