// Package tasks 实现后台定时任务
// idle_sweeper.go
// 核心职责：闲置成员清扫
// 浏览器崩溃、断网等场景下 beacon 和 ws 断开回调都指望不上，
// 这里按固定周期扫掉最近活跃超窗的成员行，是在场状态的最终兜底
package tasks

import (
	"context"
	"time"

	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dao/redis"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// IdleSweeper 闲置成员清扫器
type IdleSweeper struct {
	repos     *postgres.Repositories
	cache     redis.AsyncCacheService
	publisher chat.Publisher
	interval  time.Duration
	done      chan struct{}
}

// NewIdleSweeper 创建清扫器
func NewIdleSweeper(repos *postgres.Repositories, cache redis.AsyncCacheService, publisher chat.Publisher) *IdleSweeper {
	return &IdleSweeper{
		repos:     repos,
		cache:     cache,
		publisher: publisher,
		interval:  constants.IDLE_SWEEP_INTERVAL,
		done:      make(chan struct{}),
	}
}

// Start 启动清扫循环，在独立协程中调用
func (s *IdleSweeper) Start() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.SweepOnce(context.Background())
		case <-s.done:
			return
		}
	}
}

// Stop 停止清扫循环
func (s *IdleSweeper) Stop() {
	close(s.done)
}

// SweepOnce 执行一轮清扫
// 找出所有活跃超窗的成员行，批量删除后按房间扇出成员变更
func (s *IdleSweeper) SweepOnce(ctx context.Context) {
	cutoff := time.Now().Add(-constants.INACTIVITY_TIMEOUT)
	idle, err := s.repos.RoomUser.FindIdleBefore(cutoff)
	if err != nil {
		zap.L().Error("idle sweep query failed", zap.Error(err))
		return
	}
	if len(idle) == 0 {
		return
	}

	ids := make([]string, 0, len(idle))
	roomIds := make(map[string]struct{})
	for _, u := range idle {
		ids = append(ids, u.Id)
		roomIds[u.RoomId] = struct{}{}
	}

	if err := s.repos.RoomUser.DeleteByIds(ids); err != nil {
		zap.L().Error("idle sweep delete failed", zap.Error(err))
		return
	}
	zap.L().Info("idle members swept",
		zap.Int("members", len(ids)), zap.Int("rooms", len(roomIds)))

	for roomId := range roomIds {
		s.publish(ctx, chat.NewRoomEvent(chat.EventMemberDelete, roomId, nil))
	}
	// 一轮清扫可能波及很多房间，按前缀整体失效活跃人数缓存
	s.cache.SubmitTask(func() {
		_ = s.cache.DeleteByPattern(context.Background(), constants.ACTIVE_COUNT_KEY_PREFIX+"*")
	})
	// 成员变了，公开索引的人数随之变化
	s.publish(ctx, chat.NewRoomEvent(chat.EventRoomsChanged, "", nil))
}

func (s *IdleSweeper) publish(ctx context.Context, ev *chat.RoomEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		zap.L().Warn("sweep event publish failed", zap.String("type", ev.Type), zap.Error(err))
	}
}
