package respond

// RoomUserRespond 房间成员信息
type RoomUserRespond struct {
	Id           string `json:"id"`
	UserName     string `json:"user_name"`
	IsOwner      bool   `json:"is_owner"`
	JoinedAt     string `json:"joined_at"`
	LastActivity string `json:"last_activity"`
}
