package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string // 运行环境：dev 或 prod
	Addr string // 服务绑定地址，例如 :3001

	MongoURI string // MongoDB 连接串
	MongoDB  string // 数据库名

	JWTSecret string        // JWT 签名密钥
	JWTExpire time.Duration // Token 有效期

	BcryptCost int // bcrypt 哈希成本（对应原来的 SALTROUNDS）

	AllowOrigins string // CORS 允许的来源列表，逗号分隔
}

// Load 从 .env 文件和环境变量读取配置
// 优先级：环境变量 > .env 文件 > 默认值
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Env:          get("ENV", "dev"),
		Addr:         get("ADDR", ":3001"),
		MongoURI:     get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      get("MONGO_DB", "timeledger"),
		JWTSecret:    get("JWT_SECRET", "dev-secret"),
		JWTExpire:    getDuration("JWT_EXPIRE", 72*time.Hour),
		BcryptCost:   getInt("BCRYPT_COST", 10),
		AllowOrigins: get("ALLOW_ORIGINS", ""),
	}
	return c, nil
}

// get 从环境变量获取值，如果为空则返回默认值
func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil && d > 0 {
		return d
	}
	return def
}
