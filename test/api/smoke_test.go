package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/dto/respond"
	gateway "ignite_chat_server/internal/gateway/websocket"
	"ignite_chat_server/internal/handler"
	"ignite_chat_server/internal/http_server"
	"ignite_chat_server/internal/service"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type stubRoomService struct{}

func (s stubRoomService) JoinRoom(_ context.Context, req *request.JoinRoomRequest) (*respond.JoinRoomRespond, error) {
	token, err := jwt.GenerateRoomToken("R_TEST", req.UserName)
	if err != nil {
		return nil, err
	}
	return &respond.JoinRoomRespond{
		Room:  respond.RoomRespond{Id: "R_TEST", SessionId: req.SessionId},
		Token: token,
	}, nil
}
func (s stubRoomService) LeaveRoom(context.Context, string, string) error           { return nil }
func (s stubRoomService) Heartbeat(context.Context, string, string) error           { return nil }
func (s stubRoomService) CleanupUserFromRoom(context.Context, string, string) error { return nil }
func (s stubRoomService) GetRoomMembers(context.Context, string) ([]respond.RoomUserRespond, error) {
	return []respond.RoomUserRespond{}, nil
}
func (s stubRoomService) GenerateSessionCode(context.Context) (string, error) {
	return "A1B2C3D4", nil
}

type stubRoomIndexService struct{}

func (s stubRoomIndexService) ListPublicRooms(context.Context, string) ([]respond.PublicRoomRespond, error) {
	return []respond.PublicRoomRespond{}, nil
}
func (s stubRoomIndexService) ActiveUserCount(context.Context, string) (int64, error) {
	return 2, nil
}

type stubMessageService struct{}

func (s stubMessageService) ListMessages(context.Context, string) ([]respond.MessageRespond, error) {
	return []respond.MessageRespond{}, nil
}
func (s stubMessageService) SendMessage(_ context.Context, req *request.SendMessageRequest) (*respond.MessageRespond, error) {
	return &respond.MessageRespond{Id: "1", RoomId: req.RoomId, UserName: req.UserName}, nil
}

type stubMediaService struct{}

func (s stubMediaService) Upload(_ context.Context, _, _, _ string, _ int64, _ io.Reader) (*respond.UploadRespond, error) {
	return &respond.UploadRespond{MediaUrl: "https://cdn.example.com/x.png", MediaType: "image"}, nil
}

func mustJSON(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, client *http.Client, method, url string, body io.Reader, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, url, err)
	}
	return resp
}

func requireNot5xxOr404(t *testing.T, path string, resp *http.Response) {
	t.Helper()
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		t.Fatalf("%s status=%d", path, resp.StatusCode)
	}
}

func TestAllHTTPAndWebSocketEndpoints_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 15)
	if err := handler.InitTrans("zh"); err != nil {
		t.Fatalf("init trans: %v", err)
	}

	hub := chat.NewHub()
	broker := chat.NewChannelBroker(hub)
	go broker.Start()
	defer broker.Close()

	svcs := &service.Services{
		Room:      stubRoomService{},
		RoomIndex: stubRoomIndexService{},
		Message:   stubMessageService{},
		Media:     stubMediaService{},
	}
	gw := gateway.NewGateway(hub, svcs.Room, svcs.Message)

	engine := http_server.Init(handler.NewHandlers(svcs, gw))
	server := httptest.NewServer(engine)
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	token, err := jwt.GenerateRoomToken("R_TEST", "alice")
	if err != nil {
		t.Fatalf("generate room token: %v", err)
	}
	authHeader := "Bearer " + token

	// ===== 公共接口（无需鉴权） =====
	resp := doReq(t, client, http.MethodPost, server.URL+"/room/join", mustJSON(t, map[string]any{
		"session_id": "ABCD1234",
		"user_name":  "alice",
		"room_type":  "public",
	}), "")
	requireNot5xxOr404(t, "/room/join", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/publicRooms?query=ali", nil, "")
	requireNot5xxOr404(t, "/room/publicRooms", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/generateCode", nil, "")
	requireNot5xxOr404(t, "/room/generateCode", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/rpc/get_active_room_user_count?room_id=R_TEST", nil, "")
	requireNot5xxOr404(t, "/rpc/get_active_room_user_count", resp)
	_ = resp.Body.Close()

	// beacon 入口无论如何都要 204
	resp = doReq(t, client, http.MethodPost, server.URL+"/rpc/cleanup_user_from_room_beacon", mustJSON(t, map[string]any{
		"room_id":   "11111111-1111-1111-1111-111111111111",
		"user_name": "alice",
	}), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("beacon cleanup status=%d, want 204", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// 错误载荷也要 204，页面卸载时没人读响应
	resp = doReq(t, client, http.MethodPost, server.URL+"/rpc/cleanup_user_from_room_beacon",
		strings.NewReader("not json"), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("beacon cleanup bad payload status=%d, want 204", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// ===== 私有接口（需要鉴权） =====
	resp = doReq(t, client, http.MethodPost, server.URL+"/room/leave", mustJSON(t, map[string]any{
		"room_id":   "11111111-1111-1111-1111-111111111111",
		"user_name": "alice",
	}), authHeader)
	requireNot5xxOr404(t, "/room/leave", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/room/heartbeat", mustJSON(t, map[string]any{
		"room_id":   "11111111-1111-1111-1111-111111111111",
		"user_name": "alice",
	}), authHeader)
	requireNot5xxOr404(t, "/room/heartbeat", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/room/members?room_id=R_TEST", nil, authHeader)
	requireNot5xxOr404(t, "/room/members", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/message/send", mustJSON(t, map[string]any{
		"room_id":   "11111111-1111-1111-1111-111111111111",
		"user_name": "alice",
		"message":   "hello",
	}), authHeader)
	requireNot5xxOr404(t, "/message/send", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodGet, server.URL+"/message/list?room_id=R_TEST", nil, authHeader)
	requireNot5xxOr404(t, "/message/list", resp)
	_ = resp.Body.Close()

	// 未带令牌的私有接口要被拦下
	resp = doReq(t, client, http.MethodGet, server.URL+"/message/list?room_id=R_TEST", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("/message/list without token status=%d, want 401", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// multipart 媒体上传
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("room_id", "R_TEST")
	fw, err := mw.CreateFormFile("file", "cat.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("fake png"))
	_ = mw.Close()

	uploadReq, err := http.NewRequest(http.MethodPost, server.URL+"/media/upload", &buf)
	if err != nil {
		t.Fatalf("new upload request: %v", err)
	}
	uploadReq.Header.Set("Content-Type", mw.FormDataContentType())
	uploadReq.Header.Set("Authorization", authHeader)
	resp, err = client.Do(uploadReq)
	if err != nil {
		t.Fatalf("upload request: %v", err)
	}
	requireNot5xxOr404(t, "/media/upload", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/rpc/cleanup_user_from_room", mustJSON(t, map[string]any{
		"room_id":   "11111111-1111-1111-1111-111111111111",
		"user_name": "alice",
	}), authHeader)
	requireNot5xxOr404(t, "/rpc/cleanup_user_from_room", resp)
	_ = resp.Body.Close()

	// ===== WebSocket 实时通道 =====
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, wsResp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	if wsResp != nil {
		_ = wsResp.Body.Close()
	}
	defer conn.Close()

	// activity 帧不应断开连接
	if err := conn.WriteJSON(map[string]string{"type": "activity"}); err != nil {
		t.Fatalf("ws write activity: %v", err)
	}

	// 通过代理发布事件，应从 ws 收到
	ev := chat.NewRoomEvent(chat.EventMessageInsert, "R_TEST",
		respond.MessageRespond{Id: "1", RoomId: "R_TEST", UserName: "bob", Content: "hi"})
	if err := broker.Publish(context.Background(), ev); err != nil {
		t.Fatalf("broker publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	got, err := chat.DecodeRoomEvent(data)
	if err != nil {
		t.Fatalf("decode ws event: %v", err)
	}
	if got.Type != chat.EventMessageInsert || got.RoomId != "R_TEST" {
		t.Fatalf("unexpected ws event: %+v", got)
	}

	// 无效令牌的升级请求要被拒绝
	badURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=bad"
	_, badResp, err := websocket.DefaultDialer.Dial(badURL, nil)
	if err == nil {
		t.Fatal("ws dial with bad token must fail")
	}
	if badResp != nil {
		if badResp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("bad token ws status=%d, want 401", badResp.StatusCode)
		}
		_ = badResp.Body.Close()
	}
}
