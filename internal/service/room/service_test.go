package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ignite_chat_server/internal/dao/postgres"
	"ignite_chat_server/internal/dto/request"
	"ignite_chat_server/internal/model"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/constants"
	"ignite_chat_server/pkg/errorx"
	"ignite_chat_server/pkg/util/jwt"
	"ignite_chat_server/pkg/util/snowflake"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret-key-for-room-service-tests", 60)
	snowflake.Init(1)
	m.Run()
}

// memStore 内存版数据层，同时实现三个 Repository 接口
// ops 记录写操作顺序，用于校验播报先于删除这类顺序约束
type memStore struct {
	mu       sync.Mutex
	rooms    []*model.ChatRoom
	users    []model.RoomUser
	messages []model.Message
	ops      []string

	// 下一次 Create 房间时返回的错误，模拟并发建房冲突
	roomCreateErr error
	// 下一次插入成员行时返回的错误
	memberCreateErr error
}

func notFound() error { return errorx.New(errorx.CodeNotFound, "记录不存在") }

func (s *memStore) FindBySessionCode(code string) (*model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.SessionId == code {
			copied := *r
			return &copied, nil
		}
	}
	return nil, notFound()
}

func (s *memStore) FindById(id string) (*model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Id == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, notFound()
}

func (s *memStore) FindPublic() ([]model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []model.ChatRoom
	for _, r := range s.rooms {
		if r.RoomType == model.RoomTypePublic {
			list = append(list, *r)
		}
	}
	return list, nil
}

func (s *memStore) Create(room *model.ChatRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roomCreateErr != nil {
		err := s.roomCreateErr
		s.roomCreateErr = nil
		return err
	}
	copied := *room
	copied.CreatedAt = time.Now()
	s.rooms = append(s.rooms, &copied)
	s.ops = append(s.ops, "room_create")
	return nil
}

func (s *memStore) Exists(roomId, userName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.RoomId == roomId && u.UserName == userName {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) FindByRoomId(roomId string) ([]model.RoomUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []model.RoomUser
	for _, u := range s.users {
		if u.RoomId == roomId {
			list = append(list, u)
		}
	}
	return list, nil
}

func (s *memStore) createUser(user *model.RoomUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memberCreateErr != nil {
		err := s.memberCreateErr
		s.memberCreateErr = nil
		return err
	}
	s.users = append(s.users, *user)
	s.ops = append(s.ops, "member_insert:"+user.UserName)
	return nil
}

func (s *memStore) DeleteByRoomAndUser(roomId, userName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.users[:0]
	for _, u := range s.users {
		if !(u.RoomId == roomId && u.UserName == userName) {
			kept = append(kept, u)
		}
	}
	s.users = kept
	s.ops = append(s.ops, "member_delete:"+userName)
	return nil
}

func (s *memStore) DeleteIdle(roomId, userName string, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.RoomId == roomId && u.UserName == userName && u.LastActivity.Before(cutoff) {
			continue
		}
		kept = append(kept, u)
	}
	s.users = kept
	return nil
}

func (s *memStore) TouchActivity(user *model.RoomUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].RoomId == user.RoomId && s.users[i].UserName == user.UserName {
			s.users[i].LastActivity = user.LastActivity
			return nil
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *memStore) CountActive(roomId string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, u := range s.users {
		if u.RoomId == roomId && u.LastActivity.After(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *memStore) FindIdleBefore(cutoff time.Time) ([]model.RoomUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []model.RoomUser
	for _, u := range s.users {
		if u.LastActivity.Before(cutoff) {
			list = append(list, u)
		}
	}
	return list, nil
}

func (s *memStore) DeleteByIds(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	kept := s.users[:0]
	for _, u := range s.users {
		if _, ok := idSet[u.Id]; !ok {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

func (s *memStore) createMessage(message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *message)
	s.ops = append(s.ops, "message_create:"+message.Content)
	return nil
}

// userRepo / messageRepo 把 memStore 适配成各自的接口
// 两个接口都有 Create 方法，需要各自包一层
type userRepo struct{ *memStore }

func (r userRepo) Create(user *model.RoomUser) error { return r.createUser(user) }

type messageRepo struct{ *memStore }

func (r messageRepo) Create(message *model.Message) error { return r.createMessage(message) }

func (r messageRepo) FindByRoomId(roomId string) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Message
	for _, m := range r.messages {
		if m.RoomId == roomId {
			list = append(list, m)
		}
	}
	return list, nil
}

// stubCache 同步执行异步任务的缓存桩
type stubCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubCache() *stubCache { return &stubCache{data: make(map[string]string)} }

func (c *stubCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *stubCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *stubCache) DeleteByPattern(_ context.Context, _ string) error { return nil }

func (c *stubCache) SubmitTask(action func()) { action() }

// stubPublisher 记录发布的事件类型
type stubPublisher struct {
	mu     sync.Mutex
	events []*chat.RoomEvent
}

func (p *stubPublisher) Publish(_ context.Context, ev *chat.RoomEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *stubPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var list []string
	for _, ev := range p.events {
		list = append(list, ev.Type)
	}
	return list
}

func newTestService() (*Service, *memStore, *stubPublisher) {
	store := &memStore{}
	pub := &stubPublisher{}
	repos := &postgres.Repositories{
		Room:     store,
		RoomUser: userRepo{store},
		Message:  messageRepo{store},
	}
	return NewService(repos, newStubCache(), pub), store, pub
}

func seedRoom(store *memStore, code, roomType, owner string) *model.ChatRoom {
	room := &model.ChatRoom{
		Id:        uuid.NewString(),
		SessionId: code,
		RoomName:  "Room-" + code,
		RoomType:  roomType,
		OwnerName: owner,
		CreatedAt: time.Now(),
	}
	store.rooms = append(store.rooms, room)
	return room
}

func hasMessage(store *memStore, content string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, m := range store.messages {
		if m.Content == content && m.UserName == constants.SYSTEM_USER_NAME {
			return true
		}
	}
	return false
}

func TestJoinRoomCreatesRoom(t *testing.T) {
	svc, store, pub := newTestService()

	rsp, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "ABCD1234",
		UserName:  "alice",
		RoomType:  model.RoomTypePublic,
	})
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if !rsp.Created {
		t.Error("expected Created to be true")
	}
	if rsp.Room.RoomName != "Room-ABCD1234" {
		t.Errorf("unexpected room name: %s", rsp.Room.RoomName)
	}
	if rsp.Room.OwnerName != "alice" {
		t.Errorf("unexpected owner: %s", rsp.Room.OwnerName)
	}
	if rsp.Token == "" {
		t.Error("expected a room token")
	}
	if !hasMessage(store, "alice created the room") {
		t.Error("expected creation broadcast")
	}
	if hasMessage(store, "alice joined the room") {
		t.Error("creation should not also broadcast a join")
	}
	if len(rsp.RoomUsers) != 1 || !rsp.RoomUsers[0].IsOwner {
		t.Errorf("expected one owner member, got %+v", rsp.RoomUsers)
	}

	types := pub.types()
	if !containsType(types, chat.EventMemberInsert) || !containsType(types, chat.EventRoomsChanged) {
		t.Errorf("expected member_insert and rooms_changed events, got %v", types)
	}
}

func TestJoinRoomMissingTypeRejected(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "ABCD1234",
		UserName:  "alice",
	})
	if errorx.GetCode(err) != errorx.CodeRoomNotExist {
		t.Fatalf("expected CodeRoomNotExist, got %v", err)
	}
	if len(store.rooms) != 0 {
		t.Error("no room should be created without a room type")
	}
}

func TestJoinRoomExistingBroadcastsJoin(t *testing.T) {
	svc, store, _ := newTestService()
	seedRoom(store, "ABCD1234", model.RoomTypePublic, "alice")

	rsp, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "ABCD1234",
		UserName:  "bob",
	})
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if rsp.Created {
		t.Error("joining an existing room must not report Created")
	}
	if !hasMessage(store, "bob joined the room") {
		t.Error("expected join broadcast")
	}
	if len(rsp.RoomUsers) != 1 || rsp.RoomUsers[0].IsOwner {
		t.Errorf("bob must not be owner, got %+v", rsp.RoomUsers)
	}
}

func TestJoinRoomRejoinNoRebroadcast(t *testing.T) {
	svc, store, _ := newTestService()
	room := seedRoom(store, "ABCD1234", model.RoomTypePrivate, "alice")
	store.users = append(store.users, model.RoomUser{
		Id:           uuid.NewString(),
		RoomId:       room.Id,
		UserName:     "bob",
		JoinedAt:     time.Now().Add(-time.Minute),
		LastActivity: time.Now().Add(-time.Minute),
	})

	rsp, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "ABCD1234",
		UserName:  "bob",
	})
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if hasMessage(store, "bob joined the room") {
		t.Error("refresh rejoin must not rebroadcast a join")
	}
	// 旧行被清掉，只剩新插入的一行
	if len(rsp.RoomUsers) != 1 {
		t.Errorf("expected exactly one member row, got %d", len(rsp.RoomUsers))
	}
}

func TestJoinRoomDuplicateCodeRace(t *testing.T) {
	svc, store, _ := newTestService()
	// 模拟另一实例抢先建房：Create 报唯一键冲突，房间已在库里
	seedRoom(store, "ABCD1234", model.RoomTypePublic, "carol")
	store.roomCreateErr = gorm.ErrDuplicatedKey

	rsp, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "ABCD1234",
		UserName:  "alice",
		RoomType:  model.RoomTypePublic,
	})
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if rsp.Created {
		t.Error("race loser must join, not create")
	}
	if rsp.Room.OwnerName != "carol" {
		t.Errorf("expected winner's room, got owner %s", rsp.Room.OwnerName)
	}
}

// 清理旧成员行和插入新鲜行在一个事务里提交，插入失败时整个加入请求失败
func TestJoinRoomMemberInsertFailureAborts(t *testing.T) {
	svc, store, _ := newTestService()
	seedRoom(store, "EEEE5555", model.RoomTypePrivate, "bob")
	store.memberCreateErr = errors.New("insert failed")

	_, err := svc.JoinRoom(context.Background(), &request.JoinRoomRequest{
		SessionId: "EEEE5555",
		UserName:  "alice",
	})
	if err == nil {
		t.Fatal("expected join to fail when the member insert fails")
	}
}

func TestLeaveRoomBroadcastBeforeDelete(t *testing.T) {
	svc, store, pub := newTestService()
	room := seedRoom(store, "ABCD1234", model.RoomTypePublic, "alice")
	store.users = append(store.users, model.RoomUser{
		Id:           uuid.NewString(),
		RoomId:       room.Id,
		UserName:     "alice",
		LastActivity: time.Now(),
	})

	if err := svc.LeaveRoom(context.Background(), room.Id, "alice"); err != nil {
		t.Fatalf("LeaveRoom failed: %v", err)
	}

	if !hasMessage(store, "alice left the room") {
		t.Error("expected leave broadcast")
	}
	if got, _ := store.Exists(room.Id, "alice"); got {
		t.Error("member row must be removed after leave")
	}

	// 播报必须发生在删除之前
	msgIdx, delIdx := -1, -1
	for i, op := range store.ops {
		if strings.HasPrefix(op, "message_create:alice left") && msgIdx < 0 {
			msgIdx = i
		}
		if op == "member_delete:alice" {
			delIdx = i
		}
	}
	if msgIdx < 0 || delIdx < 0 || msgIdx > delIdx {
		t.Errorf("leave broadcast must precede member delete, ops: %v", store.ops)
	}

	types := pub.types()
	if !containsType(types, chat.EventMemberDelete) || !containsType(types, chat.EventRoomsChanged) {
		t.Errorf("expected member_delete and rooms_changed events, got %v", types)
	}
}

func TestCleanupIdempotent(t *testing.T) {
	svc, store, _ := newTestService()
	room := seedRoom(store, "ABCD1234", model.RoomTypePrivate, "alice")

	// 用户根本不在场，清理也应成功
	if err := svc.CleanupUserFromRoom(context.Background(), room.Id, "ghost"); err != nil {
		t.Fatalf("cleanup of absent user failed: %v", err)
	}
	if err := svc.CleanupUserFromRoom(context.Background(), room.Id, "ghost"); err != nil {
		t.Fatalf("repeated cleanup failed: %v", err)
	}
}

func TestHeartbeatRefreshesActivity(t *testing.T) {
	svc, store, _ := newTestService()
	room := seedRoom(store, "ABCD1234", model.RoomTypePublic, "alice")
	stale := time.Now().Add(-10 * time.Minute)
	store.users = append(store.users, model.RoomUser{
		Id:           uuid.NewString(),
		RoomId:       room.Id,
		UserName:     "alice",
		LastActivity: stale,
	})

	if err := svc.Heartbeat(context.Background(), room.Id, "alice"); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}
	if store.users[0].LastActivity.Equal(stale) {
		t.Error("heartbeat must refresh last activity")
	}
}

func TestGenerateSessionCode(t *testing.T) {
	svc, _, _ := newTestService()

	code, err := svc.GenerateSessionCode(context.Background())
	if err != nil {
		t.Fatalf("GenerateSessionCode failed: %v", err)
	}
	if len(code) != constants.SESSION_CODE_LENGTH {
		t.Errorf("unexpected code length: %q", code)
	}
	for _, c := range code {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", c) {
			t.Errorf("unexpected character %q in code %q", c, code)
		}
	}
}

func containsType(types []string, want string) bool {
	for _, tp := range types {
		if tp == want {
			return true
		}
	}
	return false
}
