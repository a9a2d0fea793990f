// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"ignite_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 http_server.Init() 中调用
// 按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterRoomRoutes(r)      // 房间生命周期路由
	rt.RegisterMessageRoutes(r)   // 消息路由
	rt.RegisterMediaRoutes(r)     // 媒体上传路由
	rt.RegisterRpcRoutes(r)       // RPC 风格清理/计数路由
	rt.RegisterWebSocketRoutes(r) // WebSocket 路由
}
