// Package chat 实现房间事件的实时扇出
// hub.go
// 核心职责：维护本实例的订阅关系
// 1. 按房间维度的订阅（房间内消息和成员变更）
// 2. 公开房间索引的全局订阅（房间列表页）
package chat

import (
	"sync"
)

// Subscriber 事件订阅方
// 由 WebSocket 连接实现，Send 失败视为尽力而为，不重试
type Subscriber interface {
	Send(data []byte) error
	UserName() string
}

// Hub 订阅关系表
// 读多写少，用 RWMutex 保护两张映射表
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Subscriber]struct{} // roomId -> 订阅集合
	index map[Subscriber]struct{}            // 公开房间索引的订阅集合
}

// NewHub 创建 Hub 实例
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[Subscriber]struct{}),
		index: make(map[Subscriber]struct{}),
	}
}

// Subscribe 订阅指定房间的事件
func (h *Hub) Subscribe(roomId string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[roomId]
	if !ok {
		rs = make(map[Subscriber]struct{})
		h.rooms[roomId] = rs
	}
	rs[s] = struct{}{}
}

// Unsubscribe 退订指定房间的事件
func (h *Hub) Unsubscribe(roomId string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[roomId]; ok {
		delete(rs, s)
		if len(rs) == 0 {
			delete(h.rooms, roomId)
		}
	}
}

// SubscribeIndex 订阅公开房间索引的事件
func (h *Hub) SubscribeIndex(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index[s] = struct{}{}
}

// UnsubscribeIndex 退订公开房间索引的事件
func (h *Hub) UnsubscribeIndex(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.index, s)
}

// Dispatch 把事件投递给对应的订阅方
// 房间事件发给该房间的订阅者，全局事件发给索引订阅者
// Send 失败只忽略：推送通道本就不保证必达，兜底靠轮询刷新
func (h *Hub) Dispatch(ev *RoomEvent) {
	data, err := ev.Encode()
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if ev.RoomId != "" {
		for s := range h.rooms[ev.RoomId] {
			_ = s.Send(data)
		}
		return
	}
	for s := range h.index {
		_ = s.Send(data)
	}
}

// RoomSubscriberCount 返回房间当前的订阅数（测试和日志用）
func (h *Hub) RoomSubscriberCount(roomId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomId])
}
