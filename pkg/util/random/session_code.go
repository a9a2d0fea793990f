// Package random 提供房间会话码的生成
package random

import (
	"math/rand"
)

// sessionCodeCharset 会话码字符集，36 个符号
const sessionCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSessionCode 生成指定长度的房间会话码
// 纯本地操作，无副作用，不访问外部服务
// 用的是非加密随机源：会话码不是安全凭证，撞码由 Resolver 按
// "加入同一个房间" 的语义消化，不需要加密强度
func GenerateSessionCode(length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = sessionCodeCharset[rand.Intn(len(sessionCodeCharset))]
	}
	return string(result)
}
