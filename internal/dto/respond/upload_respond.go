package respond

// UploadRespond 媒体上传应答
type UploadRespond struct {
	MediaUrl  string `json:"media_url"`
	MediaType string `json:"media_type"` // image 或 video
}
