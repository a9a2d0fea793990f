// Package router 提供 HTTP 路由注册
// 本文件定义媒体上传的路由
package router

import (
	"ignite_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMediaRoutes 注册媒体相关路由（需要认证）
func (rt *Router) RegisterMediaRoutes(r *gin.Engine) {
	mediaGroup := r.Group("/media")
	mediaGroup.Use(middleware.RoomAuth())
	{
		mediaGroup.POST("/upload", rt.handlers.Media.Upload) // 上传聊天媒体文件
	}
}
