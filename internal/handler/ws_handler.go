// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	gateway "ignite_chat_server/internal/gateway/websocket"

	"github.com/gin-gonic/gin"
)

// WsHandler WebSocket 升级处理器
// 实际的连接管理在 gateway 包，这里只做路由挂载
type WsHandler struct {
	gateway *gateway.Gateway
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(gw *gateway.Gateway) *WsHandler {
	return &WsHandler{gateway: gw}
}

// Connect 将 HTTP 连接升级为 WebSocket 连接
// GET /ws?token=xxx
// token 为 Join 时签发的房间令牌，浏览器 WebSocket API 加不了请求头，
// 所以令牌走查询串
func (h *WsHandler) Connect(c *gin.Context) {
	h.gateway.Handle(c)
}
