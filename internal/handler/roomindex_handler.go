// Package handler 提供 HTTP 请求处理器
// 本文件处理公开房间索引相关的 API 请求
package handler

import (
	"ignite_chat_server/internal/service"
	"ignite_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RoomIndexHandler 公开房间索引处理器
type RoomIndexHandler struct {
	indexSvc service.RoomIndexService
}

// NewRoomIndexHandler 创建公开房间索引处理器实例
func NewRoomIndexHandler(indexSvc service.RoomIndexService) *RoomIndexHandler {
	return &RoomIndexHandler{indexSvc: indexSvc}
}

// PublicRooms 公开房间列表
// GET /room/publicRooms?query=xxx
// 响应: []respond.PublicRoomRespond，按活跃人数降序
// query 可选，对房间名/会话码/房主名做大小写不敏感过滤
func (h *RoomIndexHandler) PublicRooms(c *gin.Context) {
	data, err := h.indexSvc.ListPublicRooms(c.Request.Context(), c.Query("query"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ActiveUserCount 房间活跃人数
// GET /rpc/get_active_room_user_count?room_id=xxx
// 响应: {"count": 3}
func (h *RoomIndexHandler) ActiveUserCount(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	count, err := h.indexSvc.ActiveUserCount(c.Request.Context(), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": count})
}
