package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Init 配置全局 logrus
// dev 环境输出 Debug 级别的文本日志，prod 环境输出 Info 级别的 JSON 日志
func Init(env string) {
	log.SetOutput(os.Stdout)
	if env == "prod" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}
