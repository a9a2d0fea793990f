package request

// SendMessageRequest 发送消息请求
// Content 和 MediaUrl 至少要有一个，该不变量由 Service 层校验
type SendMessageRequest struct {
	RoomId    string `json:"room_id" binding:"required,uuid"`
	UserName  string `json:"user_name" binding:"required,max=50"`
	Content   string `json:"message"`
	MediaUrl  string `json:"media_url" binding:"omitempty,url"`
	MediaType string `json:"media_type" binding:"omitempty,oneof=image video"`
}
