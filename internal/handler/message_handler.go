// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/service"
	"ignite_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// Send 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond
func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.SendMessage(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// List 获取房间全部消息
// GET /message/list?room_id=xxx
// 响应: []respond.MessageRespond，按创建时间升序
func (h *MessageHandler) List(c *gin.Context) {
	roomId := c.Query("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.messageSvc.ListMessages(c.Request.Context(), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
