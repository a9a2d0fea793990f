package respond

// PublicRoomRespond 公开房间列表项
// UserCount 是派生值：由成员表按活跃窗口现算，不落库
type PublicRoomRespond struct {
	RoomRespond
	UserCount int64 `json:"user_count"`
}
