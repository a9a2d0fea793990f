package respond

// MessageRespond 消息信息
// Id 使用字符串承载雪花 ID，避免 JavaScript 精度丢失
type MessageRespond struct {
	Id        string `json:"id"`
	RoomId    string `json:"room_id"`
	UserName  string `json:"user_name"`
	Content   string `json:"message,omitempty"`
	MediaUrl  string `json:"media_url,omitempty"`
	MediaType string `json:"media_type,omitempty"`
	CreatedAt string `json:"created_at"`
}
