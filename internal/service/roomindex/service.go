// Package roomindex 实现公开房间索引的业务逻辑
// 活跃人数是按活跃窗口现算的派生值，用 Redis 做短时缓存削峰，
// 列表页高频轮询时不至于每次都打到数据库
package roomindex

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dao/redis"
	"ignite_chat_server/internal/dto/respond"
	"ignite_chat_server/internal/model"
	"ignite_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// Service 公开房间索引业务实现
type Service struct {
	repos *postgres.Repositories
	cache redis.AsyncCacheService
}

// NewService 创建公开房间索引业务实例
func NewService(repos *postgres.Repositories, cache redis.AsyncCacheService) *Service {
	return &Service{
		repos: repos,
		cache: cache,
	}
}

// ListPublicRooms 列出公开房间及其活跃人数
// query 对房间名、会话码、房主名做大小写不敏感的包含匹配
// 结果按活跃人数降序，方便把热闹的房间排在前面
func (s *Service) ListPublicRooms(ctx context.Context, query string) ([]respond.PublicRoomRespond, error) {
	rooms, err := s.repos.Room.FindPublic()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	list := make([]respond.PublicRoomRespond, 0, len(rooms))
	for i := range rooms {
		if query != "" && !matchRoom(&rooms[i], query) {
			continue
		}
		count, err := s.ActiveUserCount(ctx, rooms[i].Id)
		if err != nil {
			// 单个房间计数失败按 0 处理，不拖垮整个列表
			zap.L().Warn("active count failed", zap.String("roomId", rooms[i].Id), zap.Error(err))
			count = 0
		}
		list = append(list, respond.PublicRoomRespond{
			RoomRespond: respond.NewRoomRespond(&rooms[i]),
			UserCount:   count,
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UserCount > list[j].UserCount
	})
	return list, nil
}

// ActiveUserCount 统计房间内活跃窗口内的成员数
// 先读缓存，未命中时查库并异步回填
func (s *Service) ActiveUserCount(ctx context.Context, roomId string) (int64, error) {
	key := constants.ACTIVE_COUNT_KEY_PREFIX + roomId
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	cutoff := time.Now().Add(-constants.INACTIVITY_TIMEOUT)
	count, err := s.repos.RoomUser.CountActive(roomId, cutoff)
	if err != nil {
		return 0, err
	}

	s.cache.SubmitTask(func() {
		_ = s.cache.Set(context.Background(), key,
			strconv.FormatInt(count, 10), constants.ACTIVE_COUNT_CACHE_TTL)
	})
	return count, nil
}

// matchRoom 过滤谓词，query 已转为小写
func matchRoom(room *model.ChatRoom, query string) bool {
	return strings.Contains(strings.ToLower(room.RoomName), query) ||
		strings.Contains(strings.ToLower(room.SessionId), query) ||
		strings.Contains(strings.ToLower(room.OwnerName), query)
}
