package request

// HeartbeatRequest 活跃心跳请求
// 客户端在有真实输入事件时发送，刷新成员行的最近活跃时间
type HeartbeatRequest struct {
	RoomId   string `json:"room_id" binding:"required,uuid"`
	UserName string `json:"user_name" binding:"required,max=50"`
}
