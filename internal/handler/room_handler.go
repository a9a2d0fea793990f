// Package handler 提供 HTTP 请求处理器
// 本文件处理房间生命周期相关的 API 请求
package handler

import (
	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/service"
	"ignite_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RoomHandler 房间请求处理器
// 通过构造函数注入 RoomService，遵循依赖倒置原则
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建房间处理器实例
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Join 按会话码加入房间
// POST /room/join
// 请求体: request.JoinRoomRequest
// 响应: respond.JoinRoomRespond (房间 + 初始视图 + 访问令牌)
// 房间不存在且未携带 room_type 时返回 CodeRoomNotExist，
// 前端据此弹出可见性确认后带 room_type 重试
func (h *RoomHandler) Join(c *gin.Context) {
	var req request.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.JoinRoom(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Leave 主动离开房间
// POST /room/leave
// 请求体: request.LeaveRoomRequest
func (h *RoomHandler) Leave(c *gin.Context) {
	var req request.LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.LeaveRoom(c.Request.Context(), req.RoomId, req.UserName); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Heartbeat 活跃心跳
// POST /room/heartbeat
// 请求体: request.HeartbeatRequest
func (h *RoomHandler) Heartbeat(c *gin.Context) {
	var req request.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.Heartbeat(c.Request.Context(), req.RoomId, req.UserName); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Members 获取房间成员列表
// GET /room/members?room_id=xxx
// 响应: []respond.RoomUserRespond
func (h *RoomHandler) Members(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.roomSvc.GetRoomMembers(c.Request.Context(), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GenerateCode 生成一个未被占用的会话码
// GET /room/generateCode
// 响应: {"session_id": "A1B2C3D4"}
func (h *RoomHandler) GenerateCode(c *gin.Context) {
	code, err := h.roomSvc.GenerateSessionCode(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"session_id": code})
}
