// Package router 提供 HTTP 路由注册
// 本文件定义 RPC 风格的清理和计数路由
// beacon 入口刻意不挂认证中间件：sendBeacon 无法携带请求头
package router

import (
	"ignite_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRpcRoutes 注册 RPC 风格路由
func (rt *Router) RegisterRpcRoutes(r *gin.Engine) {
	// 公开接口
	r.POST("/rpc/cleanup_user_from_room_beacon", rt.handlers.Cleanup.CleanupBeacon)
	r.GET("/rpc/get_active_room_user_count", rt.handlers.RoomIndex.ActiveUserCount)

	// 需要认证的接口
	rpcGroup := r.Group("/rpc")
	rpcGroup.Use(middleware.RoomAuth())
	{
		rpcGroup.POST("/cleanup_user_from_room", rt.handlers.Cleanup.Cleanup)
	}
}
