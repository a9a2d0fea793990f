package websocket

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestGuardExpiresOnce(t *testing.T) {
	var fired atomic.Int32
	NewSessionGuard(20*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected exactly one expiry, got %d", got)
	}
}

func TestGuardTouchDefersExpiry(t *testing.T) {
	var fired atomic.Int32
	g := NewSessionGuard(60*time.Millisecond, func() { fired.Add(1) })

	// 持续输入期间不允许到期
	for i := 0; i < 5; i++ {
		time.Sleep(30 * time.Millisecond)
		g.Touch()
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("guard expired despite activity, fired %d times", got)
	}

	// 输入停止后照常到期
	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected expiry after activity stopped, got %d", got)
	}
}

func TestGuardStopPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	g := NewSessionGuard(30*time.Millisecond, func() { fired.Add(1) })

	if !g.Stop() {
		t.Fatal("first Stop must report success")
	}
	if g.Stop() {
		t.Error("second Stop must report already stopped")
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("stopped guard must not expire, fired %d times", got)
	}
}

func TestGuardTouchAfterStopIsNoop(t *testing.T) {
	var fired atomic.Int32
	g := NewSessionGuard(20*time.Millisecond, func() { fired.Add(1) })
	g.Stop()
	g.Touch()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("touch after stop must not revive the guard, fired %d times", got)
	}
}
