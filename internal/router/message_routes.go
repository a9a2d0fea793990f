// Package router 提供 HTTP 路由注册
// 本文件定义消息相关的路由
package router

import (
	"ignite_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由（需要认证）
func (rt *Router) RegisterMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.RoomAuth())
	{
		messageGroup.POST("/send", rt.handlers.Message.Send) // 发送消息
		messageGroup.GET("/list", rt.handlers.Message.List)  // 获取房间消息记录
	}
}
