// Package websocket 实现实时通道的连接网关
// session_guard.go
// 核心职责：连接级的不活跃看守
// 每条连接持有一个单发计时器，合格的输入事件（activity 帧、发消息）
// 重置计时；计时到期整条会话被判定不活跃，触发一次到期回调
package websocket

import (
	"sync"
	"time"
)

// SessionGuard 不活跃看守
// Touch 和 Stop 可在多个协程并发调用；onExpire 至多触发一次
type SessionGuard struct {
	mu       sync.Mutex
	timer    *time.Timer
	timeout  time.Duration
	stopped  bool
	onExpire func()
}

// NewSessionGuard 创建并立即武装看守
// onExpire 在超时协程里执行，调用方自己保证回调幂等之外的约束
func NewSessionGuard(timeout time.Duration, onExpire func()) *SessionGuard {
	g := &SessionGuard{
		timeout:  timeout,
		onExpire: onExpire,
	}
	g.timer = time.AfterFunc(timeout, g.expire)
	return g
}

// Touch 输入事件到达，重新武装计时器
// 已经停止或已到期的看守不再复活
func (g *SessionGuard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	g.timer.Reset(g.timeout)
}

// Stop 解除看守，所有退出路径都必须调用
// 返回 false 表示看守已经到期或已被停止过
func (g *SessionGuard) Stop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return false
	}
	g.stopped = true
	g.timer.Stop()
	return true
}

func (g *SessionGuard) expire() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.stopped = true
	g.mu.Unlock()
	g.onExpire()
}
