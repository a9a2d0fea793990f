package request

// 入站 WebSocket 帧类型
const (
	FrameActivity = "activity" // 真实输入事件，重置不活跃计时并触发心跳
	FrameChat     = "chat"     // 房间内发消息
)

// ChatFrameRequest 入站 WebSocket 帧
// Activity 帧只有 Type 字段有意义；Chat 帧复用发消息的字段
type ChatFrameRequest struct {
	Type      string `json:"type"`
	Content   string `json:"message,omitempty"`
	MediaUrl  string `json:"media_url,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}
