// Package message 实现消息的业务逻辑
// 消息只追加，发送成功后通过事件代理实时扇出到房间订阅者
package message

import (
	"context"
	"strings"
	"time"

	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/dto/respond"
	"ignite_chat_server/internal/model"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/errorx"
	"ignite_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

// Service 消息业务实现
type Service struct {
	repos     *postgres.Repositories
	publisher chat.Publisher
}

// NewService 创建消息业务实例
func NewService(repos *postgres.Repositories, publisher chat.Publisher) *Service {
	return &Service{
		repos:     repos,
		publisher: publisher,
	}
}

// ListMessages 获取房间全部消息，按创建时间升序
func (s *Service) ListMessages(_ context.Context, roomId string) ([]respond.MessageRespond, error) {
	messages, err := s.repos.Message.FindByRoomId(roomId)
	if err != nil {
		return nil, err
	}
	return respond.NewMessageRespondList(messages), nil
}

// SendMessage 发送消息并实时扇出
// 不变量：文本和媒体至少要有一个；带媒体时必须指明媒体种类
// 落库失败返回错误，扇出失败只记录日志（消息已持久化，拉取可补齐）
func (s *Service) SendMessage(ctx context.Context, req *request.SendMessageRequest) (*respond.MessageRespond, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && req.MediaUrl == "" {
		return nil, errorx.New(errorx.CodeEmptyMessage, "消息内容和媒体不能同时为空")
	}
	if req.MediaUrl != "" && req.MediaType == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "媒体消息缺少媒体种类")
	}

	// 房间必须存在，防止向已失效的房间追加消息
	if _, err := s.repos.Room.FindById(req.RoomId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.ErrRoomNotExist
		}
		return nil, err
	}

	message := &model.Message{
		Id:        snowflake.GenerateID(),
		RoomId:    req.RoomId,
		UserName:  req.UserName,
		Content:   content,
		MediaUrl:  req.MediaUrl,
		MediaType: req.MediaType,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Message.Create(message); err != nil {
		return nil, err
	}

	rsp := respond.NewMessageRespond(message)
	ev := chat.NewRoomEvent(chat.EventMessageInsert, req.RoomId, rsp)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		zap.L().Warn("message fanout failed", zap.String("roomId", req.RoomId), zap.Error(err))
	}
	return &rsp, nil
}
