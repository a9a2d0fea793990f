package middleware

import (
	"net/http"
	"strings"

	"ignite_chat_server/pkg/errorx"
	"ignite_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// 上下文键，下游 handler 通过这些键取出令牌里的身份
const (
	CtxRoomID   = "room_id"
	CtxUserName = "user_name"
)

// RoomAuth 房间访问令牌校验中间件
// 校验 Join 时签发的令牌，并把 (房间, 用户名) 写入上下文
// 注意 beacon 清理接口不挂这个中间件：sendBeacon 无法携带请求头
func RoomAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "请先加入房间",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Token 格式错误，请使用 Bearer Token",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil || claims.Subject != "room_access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "Token 已过期或无效，请重新加入房间",
			})
			return
		}

		c.Set(CtxRoomID, claims.RoomID)
		c.Set(CtxUserName, claims.UserName)
		c.Next()
	}
}
