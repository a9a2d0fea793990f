// Package chat 实现房间事件的实时扇出
// events.go
// 核心职责：定义行级变更事件
// 订阅方收到事件后的约定：消息插入按到达顺序直接追加本地视图；
// 成员插入/删除一律触发整表重新拉取，不做增量修补，避免视图漂移
package chat

import (
	"encoding/json"
)

// 事件类型
const (
	EventMessageInsert = "message_insert" // 房间内新消息，载荷为完整消息
	EventMemberInsert  = "member_insert"  // 房间成员插入，提示重新拉取成员列表
	EventMemberDelete  = "member_delete"  // 房间成员删除，提示重新拉取成员列表
	EventRoomsChanged  = "rooms_changed"  // 公开房间索引变化，提示重新拉取房间列表
	EventNotice        = "notice"         // 面向单个连接的提示（如不活跃踢出），不走 broker
)

// RoomEvent 行级变更事件
// RoomId 为空表示全局事件（公开房间索引通道）
type RoomEvent struct {
	Type    string          `json:"type"`
	RoomId  string          `json:"room_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewRoomEvent 构造房间事件，载荷序列化失败时退化为空载荷
func NewRoomEvent(eventType, roomId string, payload any) *RoomEvent {
	ev := &RoomEvent{Type: eventType, RoomId: roomId}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			ev.Payload = data
		}
	}
	return ev
}

// Encode 序列化事件（Kafka 传输和 WebSocket 下发共用）
func (e *RoomEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeRoomEvent 反序列化事件
func DecodeRoomEvent(data []byte) (*RoomEvent, error) {
	var ev RoomEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
