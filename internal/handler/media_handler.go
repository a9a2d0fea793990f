// Package handler 提供 HTTP 请求处理器
// 本文件处理媒体上传的 API 请求
package handler

import (
	"ignite_chat_server/internal/service"
	"ignite_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaHandler 媒体上传处理器
type MediaHandler struct {
	mediaSvc service.MediaService
}

// NewMediaHandler 创建媒体处理器实例
func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload 上传媒体文件
// POST /media/upload  multipart 表单
// 表单字段: room_id, file
// 响应: respond.UploadRespond (公开链接 + 媒体种类)
// 大小和类型在服务端先行校验，不合格的文件不会发往对象存储
func (h *MediaHandler) Upload(c *gin.Context) {
	roomId := c.PostForm("room_id")
	if roomId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		HandleParamError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zap.L().Error("open uploaded file failed", zap.Error(err))
		HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := h.mediaSvc.Upload(
		c.Request.Context(),
		roomId,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
