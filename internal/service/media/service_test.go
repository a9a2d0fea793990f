package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"ignite_chat_server/internal/model"
	"ignite_chat_server/pkg/constants"
	"ignite_chat_server/pkg/errorx"
)

// stubUploader 记录上传调用，返回可预测的链接
type stubUploader struct {
	calls       int
	lastPath    string
	lastType    string
	lastPayload []byte
}

func (u *stubUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	u.calls++
	u.lastPath = objectPath
	u.lastType = contentType
	u.lastPayload, _ = io.ReadAll(r)
	return "https://cdn.example.com/chat-media/" + objectPath, nil
}

func TestUploadImage(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewService(uploader)
	payload := []byte("fake png bytes")

	rsp, err := svc.Upload(context.Background(), "room-1", "cat.png", "image/png",
		int64(len(payload)), bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if rsp.MediaType != model.MediaTypeImage {
		t.Errorf("expected image, got %s", rsp.MediaType)
	}
	if rsp.MediaUrl == "" {
		t.Error("expected a public url")
	}
	if !strings.HasPrefix(uploader.lastPath, "room-1/") || !strings.HasSuffix(uploader.lastPath, ".png") {
		t.Errorf("unexpected object path: %s", uploader.lastPath)
	}
	if !bytes.Equal(uploader.lastPayload, payload) {
		t.Error("payload must reach the uploader unchanged")
	}
}

func TestUploadVideoKind(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewService(uploader)

	rsp, err := svc.Upload(context.Background(), "room-1", "clip.mp4", "video/mp4",
		10, strings.NewReader("0123456789"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if rsp.MediaType != model.MediaTypeVideo {
		t.Errorf("expected video, got %s", rsp.MediaType)
	}
}

func TestUploadTooLargeRejected(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewService(uploader)

	_, err := svc.Upload(context.Background(), "room-1", "huge.png", "image/png",
		constants.MEDIA_MAX_SIZE+1, strings.NewReader(""))
	if errorx.GetCode(err) != errorx.CodeMediaTooLarge {
		t.Fatalf("expected CodeMediaTooLarge, got %v", err)
	}
	if uploader.calls != 0 {
		t.Error("oversized file must not reach the uploader")
	}
}

func TestUploadBadTypeRejected(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewService(uploader)

	for _, contentType := range []string{"application/pdf", "text/plain", ""} {
		_, err := svc.Upload(context.Background(), "room-1", "doc.pdf", contentType,
			10, strings.NewReader("0123456789"))
		if errorx.GetCode(err) != errorx.CodeMediaBadType {
			t.Errorf("content type %q: expected CodeMediaBadType, got %v", contentType, err)
		}
	}
	if uploader.calls != 0 {
		t.Error("rejected file must not reach the uploader")
	}
}

func TestUploadExactLimitAccepted(t *testing.T) {
	uploader := &stubUploader{}
	svc := NewService(uploader)

	_, err := svc.Upload(context.Background(), "room-1", "edge.png", "image/png",
		constants.MEDIA_MAX_SIZE, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("file at the exact size limit must pass: %v", err)
	}
}
