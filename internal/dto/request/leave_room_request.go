package request

// LeaveRoomRequest 离开房间请求
type LeaveRoomRequest struct {
	RoomId   string `json:"room_id" binding:"required,uuid"`
	UserName string `json:"user_name" binding:"required,max=50"`
}
