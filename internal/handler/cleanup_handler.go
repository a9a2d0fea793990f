// Package handler 提供 HTTP 请求处理器
// 本文件处理成员清理的 RPC 风格接口
// beacon 变体专为浏览器 sendBeacon 设计：不带认证头、固定 204、错误只记日志，
// 页面卸载瞬间发出的请求没有任何重试机会
package handler

import (
	"net/http"

	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CleanupHandler 成员清理处理器
type CleanupHandler struct {
	roomSvc service.RoomService
}

// NewCleanupHandler 创建清理处理器实例
func NewCleanupHandler(roomSvc service.RoomService) *CleanupHandler {
	return &CleanupHandler{roomSvc: roomSvc}
}

// Cleanup 清除用户在房间内的在场记录
// POST /rpc/cleanup_user_from_room
// 请求体: request.CleanupRequest
// 幂等，用户不在场时同样返回成功
func (h *CleanupHandler) Cleanup(c *gin.Context) {
	var req request.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.CleanupUserFromRoom(c.Request.Context(), req.RoomId, req.UserName); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CleanupBeacon 页面卸载时的清理入口
// POST /rpc/cleanup_user_from_room_beacon
// 无论成败都返回 204：发出 beacon 的页面已经在关闭，没人会读响应体
func (h *CleanupHandler) CleanupBeacon(c *gin.Context) {
	var req request.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("beacon cleanup bad payload", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.roomSvc.CleanupUserFromRoom(c.Request.Context(), req.RoomId, req.UserName); err != nil {
		zap.L().Warn("beacon cleanup failed",
			zap.String("roomId", req.RoomId), zap.String("userName", req.UserName), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
