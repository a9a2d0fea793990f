// conn_manager.go
// 核心职责：WebSocket 连接生命周期管理
//  1. 建立 WebSocket 连接 (Upgrade)
//  2. 封装 RoomConn 对象，管理读写协程 (Read/Write Loop)
//  3. 作为"一线柜员"，直接对接前端：收 activity/chat 帧 -> 喂给看守和消息服务；
//     从 Hub 收事件 -> 推送给前端
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/service"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/constants"
	"ignite_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inactivityNotice 不活跃踢出时下发的提示文案
const inactivityNotice = "You were disconnected due to inactivity."

var ctx = context.Background()

// Gateway 实时通道网关
// 持有 Hub 做订阅登记，持有业务服务处理帧语义
type Gateway struct {
	hub      *chat.Hub
	rooms    service.RoomService
	messages service.MessageService
}

// NewGateway 创建网关实例
func NewGateway(hub *chat.Hub, rooms service.RoomService, messages service.MessageService) *Gateway {
	return &Gateway{
		hub:      hub,
		rooms:    rooms,
		messages: messages,
	}
}

// RoomConn 一条进了房间的 WebSocket 连接
// 实现 chat.Subscriber，Hub 的事件经 sendBack 推送给前端
type RoomConn struct {
	conn     *gorillaws.Conn
	roomId   string
	userName string
	sendBack chan []byte
	guard    *SessionGuard
	gateway  *Gateway
	leave    func() // 至多执行一次的离开动作

	sendMu sync.Mutex
	closed bool // 发送队列已关闭，Send 不再投递
}

// Send 实现 chat.Subscriber，把事件塞入发送队列
// 队列满说明消费端卡死，返回错误让 Hub 放弃本条投递
// 和 closeSend 用同一把锁，保证不会往已关闭的队列里写
func (rc *RoomConn) Send(data []byte) error {
	rc.sendMu.Lock()
	defer rc.sendMu.Unlock()
	if rc.closed {
		return errors.New("connection closed")
	}
	select {
	case rc.sendBack <- data:
		return nil
	default:
		return errors.New("send queue full")
	}
}

// closeSend 关闭发送队列，幂等
func (rc *RoomConn) closeSend() {
	rc.sendMu.Lock()
	defer rc.sendMu.Unlock()
	if rc.closed {
		return
	}
	rc.closed = true
	close(rc.sendBack)
}

// UserName 实现 chat.Subscriber
func (rc *RoomConn) UserName() string {
	return rc.userName
}

// Handle 处理 ws 升级请求
// token 放查询串里（浏览器 WebSocket API 加不了请求头）
func (g *Gateway) Handle(c *gin.Context) {
	claims, err := jwt.ParseToken(c.Query("token"))
	if err != nil || claims.Subject != "room_access" {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}

	rc := &RoomConn{
		conn:     conn,
		roomId:   claims.RoomID,
		userName: claims.UserName,
		sendBack: make(chan []byte, constants.CHANNEL_SIZE),
		gateway:  g,
	}
	rc.leave = leaveOnce(g, rc)
	rc.guard = NewSessionGuard(constants.INACTIVITY_TIMEOUT, rc.onInactive)

	// 房间事件和公开索引事件都推给这条连接
	g.hub.Subscribe(rc.roomId, rc)
	g.hub.SubscribeIndex(rc)

	go rc.readLoop()
	go rc.writeLoop()
	zap.L().Info("ws连接成功",
		zap.String("roomId", rc.roomId), zap.String("userName", rc.userName))
}

// readLoop 读取前端帧并分发
// activity 帧重置看守并刷新心跳；chat 帧同样刷新心跳后走消息服务
// 读出错即视为连接断开，走离开路径收尾
func (rc *RoomConn) readLoop() {
	defer rc.teardown()
	for {
		_, data, err := rc.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame request.ChatFrameRequest
		if err := json.Unmarshal(data, &frame); err != nil {
			zap.L().Warn("bad ws frame", zap.Error(err))
			continue
		}
		switch frame.Type {
		case request.FrameActivity:
			rc.guard.Touch()
			if err := rc.gateway.rooms.Heartbeat(ctx, rc.roomId, rc.userName); err != nil {
				zap.L().Warn("heartbeat failed", zap.String("roomId", rc.roomId), zap.Error(err))
			}
		case request.FrameChat:
			// 发消息同样算合格输入，既重置看守也刷新活跃时间
			rc.guard.Touch()
			if err := rc.gateway.rooms.Heartbeat(ctx, rc.roomId, rc.userName); err != nil {
				zap.L().Warn("heartbeat failed", zap.String("roomId", rc.roomId), zap.Error(err))
			}
			_, err := rc.gateway.messages.SendMessage(ctx, &request.SendMessageRequest{
				RoomId:    rc.roomId,
				UserName:  rc.userName,
				Content:   frame.Content,
				MediaUrl:  frame.MediaUrl,
				MediaType: frame.MediaType,
			})
			if err != nil {
				zap.L().Warn("ws chat frame rejected", zap.String("roomId", rc.roomId), zap.Error(err))
			}
		default:
			zap.L().Warn("unknown ws frame type", zap.String("type", frame.Type))
		}
	}
}

// writeLoop 把发送队列里的事件写给前端
func (rc *RoomConn) writeLoop() {
	for data := range rc.sendBack {
		if err := rc.conn.WriteMessage(gorillaws.TextMessage, data); err != nil {
			zap.L().Error("ws write failed", zap.Error(err))
			_ = rc.conn.Close()
			return
		}
	}
}

// onInactive 看守到期：推提示、执行离开、关连接
func (rc *RoomConn) onInactive() {
	notice := chat.NewRoomEvent(chat.EventNotice, rc.roomId,
		map[string]string{"text": inactivityNotice})
	if data, err := notice.Encode(); err == nil {
		_ = rc.Send(data)
	}
	rc.leave()
	_ = rc.conn.Close()
}

// teardown 连接收尾，读协程退出时执行
// 退订、解除看守、离开房间、关闭发送队列
func (rc *RoomConn) teardown() {
	rc.gateway.hub.Unsubscribe(rc.roomId, rc)
	rc.gateway.hub.UnsubscribeIndex(rc)
	rc.guard.Stop()
	rc.leave()
	_ = rc.conn.Close()
	rc.closeSend()
}

// leaveOnce 把离开动作包成至多执行一次
// 看守到期和连接断开两条路径共用，避免重复播报离开消息
func leaveOnce(g *Gateway, rc *RoomConn) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := g.rooms.LeaveRoom(ctx, rc.roomId, rc.userName); err != nil {
				zap.L().Warn("leave on disconnect failed",
					zap.String("roomId", rc.roomId), zap.String("userName", rc.userName), zap.Error(err))
			}
		})
	}
}
