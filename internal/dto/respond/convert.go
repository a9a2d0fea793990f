package respond

import (
	"strconv"
	"time"

	"ignite_chat_server/internal/model"
)

// 模型到应答的转换集中在这里，各 Service 共用

// NewRoomRespond 由房间模型构造应答
func NewRoomRespond(room *model.ChatRoom) RoomRespond {
	return RoomRespond{
		Id:        room.Id,
		SessionId: room.SessionId,
		RoomName:  room.RoomName,
		RoomType:  room.RoomType,
		OwnerName: room.OwnerName,
		CreatedAt: room.CreatedAt.Format(time.RFC3339),
	}
}

// NewRoomUserRespond 由成员模型构造应答
func NewRoomUserRespond(user *model.RoomUser) RoomUserRespond {
	return RoomUserRespond{
		Id:           user.Id,
		UserName:     user.UserName,
		IsOwner:      user.IsOwner,
		JoinedAt:     user.JoinedAt.Format(time.RFC3339),
		LastActivity: user.LastActivity.Format(time.RFC3339),
	}
}

// NewRoomUserRespondList 批量转换成员列表
func NewRoomUserRespondList(users []model.RoomUser) []RoomUserRespond {
	list := make([]RoomUserRespond, 0, len(users))
	for i := range users {
		list = append(list, NewRoomUserRespond(&users[i]))
	}
	return list
}

// NewMessageRespond 由消息模型构造应答
// 雪花 ID 用十进制字符串承载
func NewMessageRespond(message *model.Message) MessageRespond {
	return MessageRespond{
		Id:        strconv.FormatInt(message.Id, 10),
		RoomId:    message.RoomId,
		UserName:  message.UserName,
		Content:   message.Content,
		MediaUrl:  message.MediaUrl,
		MediaType: message.MediaType,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
}

// NewMessageRespondList 批量转换消息列表
func NewMessageRespondList(messages []model.Message) []MessageRespond {
	list := make([]MessageRespond, 0, len(messages))
	for i := range messages {
		list = append(list, NewMessageRespond(&messages[i]))
	}
	return list
}
