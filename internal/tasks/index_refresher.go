// index_refresher.go
// 核心职责：公开房间索引的定时推送
// 变更事件之外的独立兜底链路，推送周期内漏掉的变更靠它补齐，
// 消费端做整表重拉，收到重复提示也无害
package tasks

import (
	"context"
	"time"

	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// IndexRefresher 公开索引定时推送器
type IndexRefresher struct {
	publisher chat.Publisher
	interval  time.Duration
	done      chan struct{}
}

// NewIndexRefresher 创建推送器
func NewIndexRefresher(publisher chat.Publisher) *IndexRefresher {
	return &IndexRefresher{
		publisher: publisher,
		interval:  constants.PUBLIC_ROOMS_REFRESH_INTERVAL,
		done:      make(chan struct{}),
	}
}

// Start 启动推送循环，在独立协程中调用
func (r *IndexRefresher) Start() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ev := chat.NewRoomEvent(chat.EventRoomsChanged, "", nil)
			if err := r.publisher.Publish(context.Background(), ev); err != nil {
				zap.L().Warn("index refresh publish failed", zap.Error(err))
			}
		case <-r.done:
			return
		}
	}
}

// Stop 停止推送循环
func (r *IndexRefresher) Stop() {
	close(r.done)
}
