package respond

// JoinRoomRespond 加入房间的完整应答
// 一次性带回房间、初始视图数据和房间访问令牌
type JoinRoomRespond struct {
	Room      RoomRespond       `json:"room"`
	Created   bool              `json:"created"` // 本次加入是否新建了房间
	Token     string            `json:"token"`
	Messages  []MessageRespond  `json:"messages"`
	RoomUsers []RoomUserRespond `json:"room_users"`
}
