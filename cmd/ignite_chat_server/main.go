package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ignite_chat_server/internal/config"
	"ignite_chat_server/internal/dao/postgres"
	myredis "ignite_chat_server/internal/dao/redis"
	gateway "ignite_chat_server/internal/gateway/websocket"
	"ignite_chat_server/internal/handler"
	"ignite_chat_server/internal/http_server"
	"ignite_chat_server/internal/infrastructure/logger"
	"ignite_chat_server/internal/service"
	"ignite_chat_server/internal/service/chat"
	"ignite_chat_server/internal/tasks"
	"ignite_chat_server/pkg/util/jwt"
	"ignite_chat_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := postgres.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	zap.L().Info("JWT 与雪花节点初始化成功")

	// 6. 初始化 ChatServer（实时扇出层）
	chatServer := chat.NewChatServer()
	chatServer.Start()
	zap.L().Info("ChatServer 初始化成功")

	// 7. 初始化 Service 层 (依赖注入)
	cache := myredis.GetCacheService()
	services := service.NewServices(repos, cache, chatServer.Broker)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化 WebSocket 网关和 Handler 层
	gw := gateway.NewGateway(chatServer.Hub, services.Room, services.Message)
	handlers := handler.NewHandlers(services, gw)

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 10. 启动后台任务：闲置清扫 + 公开索引定时推送
	sweeper := tasks.NewIdleSweeper(repos, cache, chatServer.Broker)
	refresher := tasks.NewIndexRefresher(chatServer.Broker)
	go sweeper.Start()
	go refresher.Start()
	zap.L().Info("后台任务启动成功")

	// 11. 初始化 HTTP 服务器并启动
	engine := http_server.Init(handlers)

	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("HTTP 服务器启动成功", zap.String("host", host), zap.Int("port", port))

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	sweeper.Stop()
	refresher.Stop()
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
