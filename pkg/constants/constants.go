package constants

import "time"

const (
	CHANNEL_SIZE   = 100             // 通道大小
	MEDIA_MAX_SIZE = 5 * 1024 * 1024 // 媒体文件最大大小（5 MiB）

	SESSION_CODE_LENGTH = 8 // 房间会话码长度

	// INACTIVITY_TIMEOUT 不活跃超时窗口
	// 超过该时间没有任何输入事件的连接会被踢出房间
	INACTIVITY_TIMEOUT = 5 * time.Minute

	// IDLE_SWEEP_INTERVAL 后台闲置清扫周期
	IDLE_SWEEP_INTERVAL = time.Minute

	// PUBLIC_ROOMS_REFRESH_INTERVAL 公开房间列表的定时刷新周期
	// 推送通道之外的兜底刷新，两条链路互相独立
	PUBLIC_ROOMS_REFRESH_INTERVAL = 5 * time.Second

	// FANOUT_SETTLE_DELAY 离开房间时等待推送扩散的固定延迟
	// 只是尽力而为的顺序辅助，不是同步原语
	FANOUT_SETTLE_DELAY = 200 * time.Millisecond

	// ACTIVE_COUNT_CACHE_TTL 房间活跃人数缓存的过期时间
	ACTIVE_COUNT_CACHE_TTL = 3 * time.Second
)

// SYSTEM_USER_NAME 系统消息的固定作者名
const SYSTEM_USER_NAME = "System"

// ACTIVE_COUNT_KEY_PREFIX 房间活跃人数的缓存键前缀，后接房间 UUID
const ACTIVE_COUNT_KEY_PREFIX = "room_active_count:"
