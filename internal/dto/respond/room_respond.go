package respond

// RoomRespond 房间信息
type RoomRespond struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`
	RoomName  string `json:"room_name"`
	RoomType  string `json:"room_type"`
	OwnerName string `json:"owner_name"`
	CreatedAt string `json:"created_at"`
}
