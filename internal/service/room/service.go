// Package room 实现房间会话的业务逻辑
// 覆盖房间的解析与创建、加入、心跳、清理、离开整个生命周期
// 成员去重靠先清后插的尽力而为策略，没有唯一约束兜底
package room

import (
	"context"
	"errors"
	"time"

	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dao/redis"
	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/dto/respond"
	"ignite_chat_server/internal/model"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/constants"
	"ignite_chat_server/pkg/errorx"
	"ignite_chat_server/pkg/util/jwt"
	"ignite_chat_server/pkg/util/random"
	"ignite_chat_server/pkg/util/snowflake"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 生成空闲会话码的最大尝试次数
const maxCodeAttempts = 10

// Service 房间业务实现
type Service struct {
	repos     *postgres.Repositories
	cache     redis.AsyncCacheService
	publisher chat.Publisher
}

// NewService 创建房间业务实例
func NewService(repos *postgres.Repositories, cache redis.AsyncCacheService, publisher chat.Publisher) *Service {
	return &Service{
		repos:     repos,
		cache:     cache,
		publisher: publisher,
	}
}

// JoinRoom 按会话码加入房间
// 处理流程：
//  1. 按会话码查找房间，不存在且带了 room_type 则创建
//  2. 记录加入前是否已在场（决定是否播报加入消息）
//  3. 在一个事务里清理旧成员行并插入新鲜成员行
//  4. 签发房间令牌，带回完整初始视图
func (s *Service) JoinRoom(ctx context.Context, req *request.JoinRoomRequest) (*respond.JoinRoomRespond, error) {
	room, created, err := s.resolveRoom(ctx, req)
	if err != nil {
		return nil, err
	}

	// 加入前的在场状态，决定要不要播报加入消息
	// 刷新页面重进时已在场，不重复播报
	wasPresent, err := s.repos.RoomUser.Exists(room.Id, req.UserName)
	if err != nil {
		zap.L().Warn("presence check failed, assuming absent",
			zap.String("roomId", room.Id), zap.Error(err))
		wasPresent = false
	}

	if created {
		s.broadcastSystemMessage(ctx, room.Id, req.UserName+" created the room")
	}

	now := time.Now()
	member := &model.RoomUser{
		Id:           uuid.NewString(),
		RoomId:       room.Id,
		UserName:     req.UserName,
		IsOwner:      req.UserName == room.OwnerName,
		JoinedAt:     now,
		LastActivity: now,
	}

	// 两阶段清理加插入新鲜行在一个事务里提交：
	// 先清闲置行（失败可容忍），再删残留行，最后落新行，
	// 不留下删了旧行却没插上新行的缺席窗口
	err = s.repos.Transaction(func(tx *postgres.Repositories) error {
		cutoff := now.Add(-constants.INACTIVITY_TIMEOUT)
		if err := tx.RoomUser.DeleteIdle(room.Id, req.UserName, cutoff); err != nil {
			zap.L().Warn("idle member cleanup failed",
				zap.String("roomId", room.Id), zap.String("userName", req.UserName), zap.Error(err))
		}
		if err := tx.RoomUser.DeleteByRoomAndUser(room.Id, req.UserName); err != nil {
			return err
		}
		return tx.RoomUser.Create(member)
	})
	if err != nil {
		return nil, err
	}

	if !created && !wasPresent {
		s.broadcastSystemMessage(ctx, room.Id, req.UserName+" joined the room")
	}

	s.publishMemberChange(ctx, room, chat.EventMemberInsert)

	token, err := jwt.GenerateRoomToken(room.Id, req.UserName)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "签发房间令牌失败")
	}

	messages, err := s.repos.Message.FindByRoomId(room.Id)
	if err != nil {
		return nil, err
	}
	members, err := s.repos.RoomUser.FindByRoomId(room.Id)
	if err != nil {
		return nil, err
	}

	return &respond.JoinRoomRespond{
		Room:      respond.NewRoomRespond(room),
		Created:   created,
		Token:     token,
		Messages:  respond.NewMessageRespondList(messages),
		RoomUsers: respond.NewRoomUserRespondList(members),
	}, nil
}

// resolveRoom 按会话码解析房间，必要时创建
// 返回值第二项表示本次调用是否新建了房间
func (s *Service) resolveRoom(_ context.Context, req *request.JoinRoomRequest) (*model.ChatRoom, bool, error) {
	room, err := s.repos.Room.FindBySessionCode(req.SessionId)
	if err == nil {
		return room, false, nil
	}
	if !errorx.IsNotFound(err) {
		return nil, false, err
	}

	// 房间不存在且没带可见性，交给调用方确认后重试
	if req.RoomType == "" {
		return nil, false, errorx.ErrRoomNotExist
	}

	newRoom := &model.ChatRoom{
		Id:        uuid.NewString(),
		SessionId: req.SessionId,
		RoomName:  "Room-" + req.SessionId,
		RoomType:  req.RoomType,
		OwnerName: req.UserName,
	}
	err = s.repos.Room.Create(newRoom)
	if err == nil {
		return newRoom, true, nil
	}

	// 两个客户端用同一个新码并发建房，输家改走加入路径
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, readErr := s.repos.Room.FindBySessionCode(req.SessionId)
		if readErr != nil {
			return nil, false, readErr
		}
		return existing, false, nil
	}
	return nil, false, err
}

// LeaveRoom 主动离开房间
// 先播报离开消息再删除成员行，中间留出推送扩散的时间，
// 让离开者自己也能看到播报（尽力而为，不提供保证）
func (s *Service) LeaveRoom(ctx context.Context, roomId, userName string) error {
	room, err := s.repos.Room.FindById(roomId)
	if err != nil {
		return err
	}

	s.broadcastSystemMessage(ctx, roomId, userName+" left the room")
	time.Sleep(constants.FANOUT_SETTLE_DELAY)

	if err := s.cleanupMember(ctx, roomId, userName); err != nil {
		return err
	}
	time.Sleep(constants.FANOUT_SETTLE_DELAY)

	s.publishMemberChange(ctx, room, chat.EventMemberDelete)
	return nil
}

// Heartbeat 刷新成员的最近活跃时间
// 先清掉自己的闲置残留行，再落新的活跃时间；
// 成员行被清扫掉之后的心跳会重新插入在场记录
func (s *Service) Heartbeat(_ context.Context, roomId, userName string) error {
	room, err := s.repos.Room.FindById(roomId)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-constants.INACTIVITY_TIMEOUT)
	if err := s.repos.RoomUser.DeleteIdle(roomId, userName, cutoff); err != nil {
		zap.L().Warn("idle member cleanup failed",
			zap.String("roomId", roomId), zap.String("userName", userName), zap.Error(err))
	}
	return s.repos.RoomUser.TouchActivity(&model.RoomUser{
		Id:           uuid.NewString(),
		RoomId:       roomId,
		UserName:     userName,
		IsOwner:      userName == room.OwnerName,
		LastActivity: time.Now(),
	})
}

// CleanupUserFromRoom 清除用户在房间内的在场记录并扇出成员变更
// 幂等，用户不在场时也返回成功
func (s *Service) CleanupUserFromRoom(ctx context.Context, roomId, userName string) error {
	if err := s.cleanupMember(ctx, roomId, userName); err != nil {
		return err
	}
	room, err := s.repos.Room.FindById(roomId)
	if err != nil {
		// 房间查不到时成员变更照常扇出，只是无法判断要不要刷新公开索引
		zap.L().Warn("room lookup failed during cleanup", zap.String("roomId", roomId), zap.Error(err))
		s.publishEvent(ctx, chat.NewRoomEvent(chat.EventMemberDelete, roomId, nil))
		return nil
	}
	s.publishMemberChange(ctx, room, chat.EventMemberDelete)
	return nil
}

// GetRoomMembers 获取房间成员列表
func (s *Service) GetRoomMembers(_ context.Context, roomId string) ([]respond.RoomUserRespond, error) {
	members, err := s.repos.RoomUser.FindByRoomId(roomId)
	if err != nil {
		return nil, err
	}
	return respond.NewRoomUserRespondList(members), nil
}

// GenerateSessionCode 生成一个当前未被占用的会话码
// 36^8 的码空间下碰撞极少，循环只是兜底
func (s *Service) GenerateSessionCode(_ context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := random.GenerateSessionCode(constants.SESSION_CODE_LENGTH)
		_, err := s.repos.Room.FindBySessionCode(code)
		if errorx.IsNotFound(err) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errorx.New(errorx.CodeServerBusy, "会话码生成失败，请重试")
}

// cleanupMember 两阶段清理成员行
// 第一阶段删闲置行，失败只记录日志；第二阶段直接删除，失败才算失败
func (s *Service) cleanupMember(ctx context.Context, roomId, userName string) error {
	cutoff := time.Now().Add(-constants.INACTIVITY_TIMEOUT)
	if err := s.repos.RoomUser.DeleteIdle(roomId, userName, cutoff); err != nil {
		zap.L().Warn("idle member cleanup failed",
			zap.String("roomId", roomId), zap.String("userName", userName), zap.Error(err))
	}
	if err := s.repos.RoomUser.DeleteByRoomAndUser(roomId, userName); err != nil {
		return err
	}
	// 成员变了，活跃人数缓存立刻失效
	s.cache.SubmitTask(func() {
		_ = s.cache.Delete(context.Background(), constants.ACTIVE_COUNT_KEY_PREFIX+roomId)
	})
	return nil
}

// broadcastSystemMessage 落库并扇出一条系统消息
// 播报失败不阻断主流程
func (s *Service) broadcastSystemMessage(ctx context.Context, roomId, content string) {
	message := &model.Message{
		Id:        snowflake.GenerateID(),
		RoomId:    roomId,
		UserName:  constants.SYSTEM_USER_NAME,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Message.Create(message); err != nil {
		zap.L().Warn("system message insert failed",
			zap.String("roomId", roomId), zap.String("content", content), zap.Error(err))
		return
	}
	s.publishEvent(ctx, chat.NewRoomEvent(chat.EventMessageInsert, roomId, respond.NewMessageRespond(message)))
}

// publishMemberChange 扇出成员变更事件
// 公开房间的成员变化还会联动刷新公开房间索引
func (s *Service) publishMemberChange(ctx context.Context, room *model.ChatRoom, eventType string) {
	s.publishEvent(ctx, chat.NewRoomEvent(eventType, room.Id, nil))
	s.cache.SubmitTask(func() {
		_ = s.cache.Delete(context.Background(), constants.ACTIVE_COUNT_KEY_PREFIX+room.Id)
	})
	if room.RoomType == model.RoomTypePublic {
		s.publishEvent(ctx, chat.NewRoomEvent(chat.EventRoomsChanged, "", nil))
	}
}

func (s *Service) publishEvent(ctx context.Context, ev *chat.RoomEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		zap.L().Warn("event publish failed", zap.String("type", ev.Type), zap.Error(err))
	}
}
