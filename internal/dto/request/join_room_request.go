package request

// JoinRoomRequest 加入/创建房间请求
// RoomType 只在创建新房间时需要：房间不存在且未携带 RoomType 时，
// 服务端返回 CodeRoomNotExist，由用户确认可见性后重试
type JoinRoomRequest struct {
	SessionId string `json:"session_id" binding:"required,len=8"`
	UserName  string `json:"user_name" binding:"required,max=50"`
	RoomType  string `json:"room_type" binding:"omitempty,oneof=public private"`
}
