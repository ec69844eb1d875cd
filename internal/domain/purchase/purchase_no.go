package purchase

import (
	"fmt"
	"math/rand"
	"time"
)

// GeneratePurchaseNo 生成购买单号
// 教学要点:单号设计原则
// 1. 全局唯一(避免冲突)
// 2. 时间有序(便于分库分表)
// 3. 不可预测(防止恶意遍历)
//
// 格式:PUR + 时间戳(秒) + 6位随机数
// 示例:PUR1699248000123456
//
// 生产环境推荐:
// - 雪花算法(Snowflake):分布式唯一ID
// - UUID:简单但无序
func GeneratePurchaseNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000) // 6位随机数
	return fmt.Sprintf("PUR%d%06d", timestamp, random)
}
