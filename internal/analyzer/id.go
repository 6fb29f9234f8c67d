package analyzer

import (
	"math/rand/v2"
)

// idAlphabet 结果ID的字符表：小写字母加数字
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// idLength 结果ID长度
const idLength = 7

// NewAnalysisID 生成一个本地结果标识
// 仅用于路由和展示，不与服务端做任何关联，也不保证全局唯一
func NewAnalysisID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(buf)
}
