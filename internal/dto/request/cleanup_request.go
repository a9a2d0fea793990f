package request

// CleanupRequest 成员清理请求
// 对应 cleanup_user_from_room 与 beacon 两个入口的统一载荷
// beacon 入口由浏览器 sendBeacon 在页面卸载时发出，尽力而为、不等确认
type CleanupRequest struct {
	RoomId   string `json:"room_id" binding:"required,uuid"`
	UserName string `json:"user_name" binding:"required,max=50"`
}
